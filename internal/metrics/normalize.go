package metrics

import (
	"math"

	"github.com/influscan/influscan/internal/models"
)

// Normalize sanitizes raw provider output into the canonical data model.
// It never fails: out-of-range values are clamped and missing or garbage
// fields fall back to the most risk-neutral value, since partial or
// synthetic upstream data is expected. Normalize is idempotent.
func Normalize(social models.SocialMetrics, chain models.BlockchainActivity) (models.SocialMetrics, models.BlockchainActivity) {
	return NormalizeSocial(social), NormalizeChain(chain)
}

// NormalizeSocial clamps the social axis of the model.
func NormalizeSocial(s models.SocialMetrics) models.SocialMetrics {
	if s.Followers < 0 {
		s.Followers = 0
	}
	s.RealFollowerPercentage = clamp(safeNumber(s.RealFollowerPercentage), 0, 100)
	s.EngagementRate = safeNumber(s.EngagementRate)
	if s.EngagementRate < 0 {
		s.EngagementRate = 0
	}

	for i, asset := range s.PromotedAssets {
		switch asset.Status {
		case models.AssetRugPull, models.AssetActive, models.AssetDeclined:
		default:
			// Unknown outcome must not inflate the rug-pull axis.
			s.PromotedAssets[i].Status = models.AssetActive
		}
		s.PromotedAssets[i].PerformancePercentage = safeNumber(asset.PerformancePercentage)
	}

	return s
}

// NormalizeChain clamps the on-chain axis of the model.
func NormalizeChain(c models.BlockchainActivity) models.BlockchainActivity {
	if c.RugPullCount < 0 {
		c.RugPullCount = 0
	}
	switch c.DumpingBehavior {
	case models.DumpingLow, models.DumpingMedium, models.DumpingHigh:
	default:
		c.DumpingBehavior = models.DumpingLow
	}
	return c
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// safeNumber coerces NaN and Inf to 0 so score arithmetic stays finite.
func safeNumber(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
