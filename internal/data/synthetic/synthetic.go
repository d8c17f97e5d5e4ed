package synthetic

import (
	"context"
	"hash/fnv"
	"math/rand"
	"strings"

	"github.com/influscan/influscan/internal/models"
)

// Synthetic data generation for subjects without live upstream data.
// Everything here is keyed by a stable FNV-1a hash of the input string, so
// repeated analysis of the same subject is reproducible across processes.

var tokenNames = []string{
	"MoonRocket", "SafeGalaxy", "PepeClassic", "FlokiMax", "TurboDoge",
	"DiamondPaws", "LamboDream", "ApeStorm", "GigaYield", "ShibaPrime",
	"RocketFuel", "ZeroGravity",
}

func seedFor(key string) int64 {
	h := fnv.New64a()
	h.Write([]byte(strings.ToLower(strings.TrimSpace(key))))
	return int64(h.Sum64())
}

// SocialMetricsFor generates deterministic social metrics for a subject.
func SocialMetricsFor(handle string, platform models.Platform) models.SocialMetrics {
	rng := rand.New(rand.NewSource(seedFor(string(platform) + ":" + handle)))

	metrics := models.SocialMetrics{
		Followers:              1_000 + rng.Int63n(900_000),
		RealFollowerPercentage: 15 + rng.Float64()*80,
		EngagementRate:         rng.Float64() * 6,
	}

	assetCount := 3 + rng.Intn(8)
	metrics.PromotedAssets = make([]models.PromotedAsset, 0, assetCount)
	for i := 0; i < assetCount; i++ {
		name := tokenNames[rng.Intn(len(tokenNames))]

		var status models.AssetStatus
		var performance float64
		switch roll := rng.Float64(); {
		case roll < 0.3:
			status = models.AssetRugPull
			performance = -85 - rng.Float64()*14 // near-total collapse
		case roll < 0.6:
			status = models.AssetDeclined
			performance = -20 - rng.Float64()*60
		default:
			status = models.AssetActive
			performance = -10 + rng.Float64()*210
		}

		metrics.PromotedAssets = append(metrics.PromotedAssets, models.PromotedAsset{
			Name:                  name,
			Status:                status,
			PerformancePercentage: performance,
		})
	}

	return metrics
}

// ActivityFor generates deterministic on-chain activity for an address.
// The handle is used as the seed key when no address is known.
func ActivityFor(address string) models.BlockchainActivity {
	rng := rand.New(rand.NewSource(seedFor("chain:" + address)))

	activity := models.BlockchainActivity{
		Address:      address,
		RugPullCount: rng.Intn(6),
		MEVDetected:  rng.Float64() < 0.25,
	}

	switch roll := rng.Float64(); {
	case roll < 0.5:
		activity.DumpingBehavior = models.DumpingLow
	case roll < 0.8:
		activity.DumpingBehavior = models.DumpingMedium
	default:
		activity.DumpingBehavior = models.DumpingHigh
	}

	return activity
}

// SocialProvider serves generated social metrics, for demo mode and tests.
type SocialProvider struct{}

func NewSocialProvider() *SocialProvider { return &SocialProvider{} }

// Fetch implements the data.SocialMetricsProvider interface
func (p *SocialProvider) Fetch(_ context.Context, handle string, platform models.Platform) (*models.SocialMetrics, error) {
	metrics := SocialMetricsFor(handle, platform)
	return &metrics, nil
}

// ActivityProvider serves generated on-chain activity.
type ActivityProvider struct{}

func NewActivityProvider() *ActivityProvider { return &ActivityProvider{} }

// Fetch implements the data.BlockchainActivityProvider interface
func (p *ActivityProvider) Fetch(_ context.Context, address string) (*models.BlockchainActivity, error) {
	activity := ActivityFor(address)
	return &activity, nil
}
