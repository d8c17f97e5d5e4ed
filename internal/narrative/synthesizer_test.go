package narrative

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/influscan/influscan/internal/models"
)

type stubGenerator struct {
	response string
	err      error
	calls    int
}

func (s *stubGenerator) Complete(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.response, s.err
}

func sampleMetrics() (models.SocialMetrics, models.BlockchainActivity) {
	social := models.SocialMetrics{
		Followers:              85000,
		RealFollowerPercentage: 72,
		EngagementRate:         1.8,
		PromotedAssets: []models.PromotedAsset{
			{Name: "MoonRocket", Status: models.AssetRugPull, PerformancePercentage: -98.5},
			{Name: "GigaYield", Status: models.AssetActive, PerformancePercentage: 42.1},
			{Name: "TurboDoge", Status: models.AssetDeclined, PerformancePercentage: -55.0},
		},
	}
	chain := models.BlockchainActivity{
		Address:         "0xabc",
		RugPullCount:    2,
		DumpingBehavior: models.DumpingMedium,
		MEVDetected:     true,
	}
	return social, chain
}

func TestSynthesize_UsesGeneratorSections(t *testing.T) {
	social, chain := sampleMetrics()
	generator := &stubGenerator{
		response: "SUMMARY:\nA generated summary.\nDETAILED ANALYSIS:\nA generated analysis paragraph.",
	}

	s := NewSynthesizer(generator)
	got := s.Synthesize(context.Background(), 55, "cryptoguru", models.PlatformX, social, chain)

	assert.Equal(t, 1, generator.calls)
	assert.Equal(t, "A generated summary.", got.Summary)
	assert.Equal(t, "A generated analysis paragraph.", got.DetailedAnalysis)
}

func TestSynthesize_FallsBack(t *testing.T) {
	social, chain := sampleMetrics()

	tests := []struct {
		name      string
		generator *stubGenerator
		wantCalls int
	}{
		{
			name:      "generator error",
			generator: &stubGenerator{err: fmt.Errorf("api unreachable")},
			wantCalls: 3,
		},
		{
			name:      "missing section labels",
			generator: &stubGenerator{response: "the model ignored the format"},
			wantCalls: 3,
		},
		{
			name:      "labels out of order",
			generator: &stubGenerator{response: "DETAILED ANALYSIS:\nbody\nSUMMARY:\nsummary"},
			wantCalls: 3,
		},
		{
			name:      "empty section",
			generator: &stubGenerator{response: "SUMMARY:\nDETAILED ANALYSIS:\nbody"},
			wantCalls: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSynthesizer(tt.generator)
			got := s.Synthesize(context.Background(), 55, "cryptoguru", models.PlatformX, social, chain)

			assert.Equal(t, tt.wantCalls, tt.generator.calls)
			assert.Equal(t, Fallback(55, "cryptoguru", models.PlatformX, social, chain), got)
		})
	}
}

func TestSynthesize_NoGenerator(t *testing.T) {
	social, chain := sampleMetrics()

	s := NewSynthesizer(nil)
	got := s.Synthesize(context.Background(), 55, "cryptoguru", models.PlatformX, social, chain)

	assert.Equal(t, Fallback(55, "cryptoguru", models.PlatformX, social, chain), got)
}

func TestFallback_Deterministic(t *testing.T) {
	social, chain := sampleMetrics()

	for _, score := range []int{5, 45, 90} {
		first := Fallback(score, "cryptoguru", models.PlatformX, social, chain)
		second := Fallback(score, "cryptoguru", models.PlatformX, social, chain)
		assert.Equal(t, first, second, "score=%d", score)
	}
}

func TestFallback_BandCoherence(t *testing.T) {
	social, chain := sampleMetrics()

	tests := []struct {
		name    string
		score   int
		markers []string
	}{
		{
			name:    "low band asserts trustworthiness",
			score:   15,
			markers: []string{"low-risk", "trustworthy"},
		},
		{
			name:    "medium band urges caution",
			score:   50,
			markers: []string{"moderate risk", "exercise caution"},
		},
		{
			name:    "high band issues an explicit warning",
			score:   85,
			markers: []string{"Warning", "do not follow this account's recommendations"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fallback(tt.score, "cryptoguru", models.PlatformX, social, chain)
			text := got.Summary + "\n" + got.DetailedAnalysis
			for _, marker := range tt.markers {
				assert.Contains(t, text, marker)
			}
		})
	}
}

func TestFallback_Shape(t *testing.T) {
	social, chain := sampleMetrics()

	for _, score := range []int{10, 50, 90} {
		got := Fallback(score, "cryptoguru", models.PlatformX, social, chain)

		sentences := strings.Count(got.Summary, ". ") + 1
		assert.GreaterOrEqual(t, sentences, 2, "score=%d", score)
		assert.LessOrEqual(t, sentences, 4, "score=%d", score)

		words := len(strings.Fields(got.DetailedAnalysis))
		assert.GreaterOrEqual(t, words, 150, "score=%d", score)
		assert.LessOrEqual(t, words, 300, "score=%d", score)

		assert.Contains(t, got.DetailedAnalysis, "Investor advice:")
		assert.Contains(t, got.Summary, "@cryptoguru")
		assert.Contains(t, got.Summary, "X")
	}
}

func TestFallback_EmptyAssets(t *testing.T) {
	chain := models.BlockchainActivity{DumpingBehavior: models.DumpingLow}
	social := models.SocialMetrics{Followers: 100, RealFollowerPercentage: 50}

	got := Fallback(40, "newcomer", models.PlatformTelegram, social, chain)
	require.NotEmpty(t, got.Summary)
	require.NotEmpty(t, got.DetailedAnalysis)
}

func TestBuildPrompt(t *testing.T) {
	social, chain := sampleMetrics()

	prompt := BuildPrompt(72, "cryptoguru", models.PlatformX, social, chain)

	assert.Contains(t, prompt, "@cryptoguru")
	assert.Contains(t, prompt, "Platform: X")
	assert.Contains(t, prompt, "72/99")
	assert.Contains(t, prompt, "Followers: 85000")
	assert.Contains(t, prompt, "MoonRocket (RUGPULL, -98.5%)")
	assert.Contains(t, prompt, "GigaYield (ACTIVE, +42.1%)")
	assert.Contains(t, prompt, "0xabc")
	assert.Contains(t, prompt, summaryLabel)
	assert.Contains(t, prompt, detailedLabel)
}

func TestBuildPrompt_NoAssetsNoAddress(t *testing.T) {
	prompt := BuildPrompt(40, "newcomer", models.PlatformOther, models.SocialMetrics{}, models.BlockchainActivity{})

	assert.Contains(t, prompt, "none recorded")
	assert.Contains(t, prompt, "Wallet address: unknown")
}

func TestSplitSections(t *testing.T) {
	summary, detailed, ok := splitSections("preamble SUMMARY: short overview DETAILED ANALYSIS: long body")
	assert.True(t, ok)
	assert.Equal(t, "short overview", summary)
	assert.Equal(t, "long body", detailed)
}
