package risk

import (
	"math"

	"github.com/influscan/influscan/internal/models"
)

const (
	// MinScore and MaxScore bound every composite score.
	MinScore = 1
	MaxScore = 99

	baseline = 50

	maxRugPullContribution     = 30
	maxRugPullAssetContrib     = 30
	maxFollowerTrustDiscount   = 20
	maxEngagementTrustDiscount = 20

	dumpingHighContribution   = 15
	dumpingMediumContribution = 7
	mevContribution           = 10
)

// Band 风险等级
type Band string

const (
	BandLow    Band = "LOW"
	BandMedium Band = "MEDIUM"
	BandHigh   Band = "HIGH"
)

// BandFor maps a composite score to its risk band.
func BandFor(score int) Band {
	switch {
	case score >= 70:
		return BandHigh
	case score >= 30:
		return BandMedium
	default:
		return BandLow
	}
}

// Score computes the bounded composite risk score for a subject from
// normalized metrics. The model is additive around a neutral baseline of 50:
// on-chain behavior and promotion history raise the score (each axis capped
// so no single signal saturates it), audience authenticity and genuine
// engagement lower it, and the result is clamped to [MinScore, MaxScore].
// Score is a pure function and never fails.
func Score(social models.SocialMetrics, chain models.BlockchainActivity) int {
	score := float64(baseline)

	// Rug-pull history dominates but is capped.
	score += math.Min(maxRugPullContribution, float64(chain.RugPullCount)*10)

	switch chain.DumpingBehavior {
	case models.DumpingHigh:
		score += dumpingHighContribution
	case models.DumpingMedium:
		score += dumpingMediumContribution
	}

	if chain.MEVDetected {
		score += mevContribution
	}

	score -= math.Min(maxFollowerTrustDiscount, social.RealFollowerPercentage/5)
	score -= math.Min(maxEngagementTrustDiscount, social.EngagementRate*4)

	score += math.Min(maxRugPullAssetContrib, rugPullAssetPercentage(social.PromotedAssets)/3)

	rounded := int(math.Round(score))
	if rounded < MinScore {
		return MinScore
	}
	if rounded > MaxScore {
		return MaxScore
	}
	return rounded
}

// rugPullAssetPercentage is the share of promoted assets that ended in a rug
// pull, in percent. An empty promotion history contributes 0, never NaN.
func rugPullAssetPercentage(assets []models.PromotedAsset) float64 {
	if len(assets) == 0 {
		return 0
	}
	rugPulls := 0
	for _, a := range assets {
		if a.Status == models.AssetRugPull {
			rugPulls++
		}
	}
	return float64(rugPulls) / float64(len(assets)) * 100
}

// CountByStatus tallies promoted assets per outcome, used by the narrative layer.
func CountByStatus(assets []models.PromotedAsset) (rugPulls, active, declined int) {
	for _, a := range assets {
		switch a.Status {
		case models.AssetRugPull:
			rugPulls++
		case models.AssetActive:
			active++
		case models.AssetDeclined:
			declined++
		}
	}
	return rugPulls, active, declined
}
