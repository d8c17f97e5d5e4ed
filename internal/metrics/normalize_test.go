package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/influscan/influscan/internal/models"
)

func TestNormalizeSocial(t *testing.T) {
	tests := []struct {
		name string
		in   models.SocialMetrics
		want models.SocialMetrics
	}{
		{
			name: "in range values are untouched",
			in: models.SocialMetrics{
				Followers:              85000,
				RealFollowerPercentage: 72,
				EngagementRate:         1.8,
			},
			want: models.SocialMetrics{
				Followers:              85000,
				RealFollowerPercentage: 72,
				EngagementRate:         1.8,
			},
		},
		{
			name: "negative counts and rates clamp to zero",
			in: models.SocialMetrics{
				Followers:              -5,
				RealFollowerPercentage: -10,
				EngagementRate:         -0.4,
			},
			want: models.SocialMetrics{},
		},
		{
			name: "percentage clamps to 100",
			in:   models.SocialMetrics{RealFollowerPercentage: 250},
			want: models.SocialMetrics{RealFollowerPercentage: 100},
		},
		{
			name: "NaN coerces to zero",
			in: models.SocialMetrics{
				RealFollowerPercentage: math.NaN(),
				EngagementRate:         math.Inf(1),
			},
			want: models.SocialMetrics{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSocial(tt.in))
		})
	}
}

func TestNormalizeSocial_Assets(t *testing.T) {
	in := models.SocialMetrics{
		PromotedAssets: []models.PromotedAsset{
			{Name: "MoonRocket", Status: models.AssetRugPull, PerformancePercentage: -99},
			{Name: "GigaYield", Status: "EXPLODED", PerformancePercentage: math.NaN()},
		},
	}

	out := NormalizeSocial(in)

	assert.Equal(t, models.AssetRugPull, out.PromotedAssets[0].Status)
	assert.Equal(t, models.AssetActive, out.PromotedAssets[1].Status, "unknown status coerces to the risk-neutral outcome")
	assert.Zero(t, out.PromotedAssets[1].PerformancePercentage)
}

func TestNormalizeChain(t *testing.T) {
	tests := []struct {
		name string
		in   models.BlockchainActivity
		want models.BlockchainActivity
	}{
		{
			name: "valid activity is untouched",
			in: models.BlockchainActivity{
				Address:         "0xabc",
				RugPullCount:    3,
				DumpingBehavior: models.DumpingHigh,
				MEVDetected:     true,
			},
			want: models.BlockchainActivity{
				Address:         "0xabc",
				RugPullCount:    3,
				DumpingBehavior: models.DumpingHigh,
				MEVDetected:     true,
			},
		},
		{
			name: "negative count clamps, missing level defaults to LOW",
			in:   models.BlockchainActivity{RugPullCount: -2},
			want: models.BlockchainActivity{DumpingBehavior: models.DumpingLow},
		},
		{
			name: "unknown level defaults to LOW",
			in:   models.BlockchainActivity{DumpingBehavior: "EXTREME"},
			want: models.BlockchainActivity{DumpingBehavior: models.DumpingLow},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeChain(tt.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	social := models.SocialMetrics{
		Followers:              -100,
		RealFollowerPercentage: 180,
		EngagementRate:         math.NaN(),
		PromotedAssets: []models.PromotedAsset{
			{Name: "TurboDoge", Status: "??", PerformancePercentage: math.Inf(-1)},
		},
	}
	chain := models.BlockchainActivity{RugPullCount: -1, DumpingBehavior: "???"}

	onceSocial, onceChain := Normalize(social, chain)
	twiceSocial, twiceChain := Normalize(onceSocial, onceChain)

	assert.Equal(t, onceSocial, twiceSocial)
	assert.Equal(t, onceChain, twiceChain)
}
