package narrative

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/influscan/influscan/internal/models"
	"github.com/influscan/influscan/internal/risk"
)

const (
	summaryLabel  = "SUMMARY:"
	detailedLabel = "DETAILED ANALYSIS:"

	maxAttempts  = 3
	retryBackoff = 300 * time.Millisecond
)

// Synthesizer produces the summary / detailed-analysis pair for a report.
// It prefers the injected TextGenerator and falls back to deterministic
// templated text whenever the generator is absent, fails, or returns text
// missing the expected section labels. No generator failure escapes.
type Synthesizer struct {
	generator TextGenerator
}

// NewSynthesizer creates a Synthesizer. generator may be nil.
func NewSynthesizer(generator TextGenerator) *Synthesizer {
	return &Synthesizer{generator: generator}
}

// Synthesize returns narrative text for the given score and normalized
// metrics. It always returns a usable Narrative.
func (s *Synthesizer) Synthesize(ctx context.Context, score int, handle string, platform models.Platform, social models.SocialMetrics, chain models.BlockchainActivity) Narrative {
	if s.generator != nil {
		prompt := BuildPrompt(score, handle, platform, social, chain)

		for attempt := 0; attempt < maxAttempts; attempt++ {
			if ctx.Err() != nil {
				break
			}
			if attempt > 0 {
				select {
				case <-ctx.Done():
				case <-time.After(retryBackoff):
				}
			}

			text, err := s.generator.Complete(ctx, prompt)
			if err != nil {
				continue
			}
			if summary, detailed, ok := splitSections(text); ok {
				return Narrative{Summary: summary, DetailedAnalysis: detailed}
			}
		}
	}

	return Fallback(score, handle, platform, social, chain)
}

// BuildPrompt assembles the structured completion prompt embedding the
// subject identity, the composite score and every normalized metric field.
func BuildPrompt(score int, handle string, platform models.Platform, social models.SocialMetrics, chain models.BlockchainActivity) string {
	address := chain.Address
	if address == "" {
		address = "unknown"
	}

	return fmt.Sprintf(`Analyze the following crypto influencer and write a risk report for retail investors:

Handle: @%s
Platform: %s
Composite risk score: %d/99 (higher is riskier)

Social metrics:
- Followers: %d
- Real follower percentage: %.1f%%
- Engagement rate: %.2f%%
- Promoted assets: %s

Blockchain activity:
- Wallet address: %s
- Rug pulls involved: %d
- Dumping behavior after promotions: %s
- MEV activity detected: %t

Respond with exactly two labeled sections:
SUMMARY:
A 2-4 sentence overview of the risk this influencer poses to investors.
DETAILED ANALYSIS:
One paragraph of roughly 150-300 words weighing the social and on-chain evidence, ending with explicit investor advice.`,
		handle, platform, score,
		social.Followers, social.RealFollowerPercentage, social.EngagementRate,
		describeAssets(social.PromotedAssets),
		address, chain.RugPullCount, chain.DumpingBehavior, chain.MEVDetected)
}

// describeAssets renders the promotion history as a comma-joined listing of
// name, outcome status and performance.
func describeAssets(assets []models.PromotedAsset) string {
	if len(assets) == 0 {
		return "none recorded"
	}
	parts := make([]string, 0, len(assets))
	for _, a := range assets {
		parts = append(parts, fmt.Sprintf("%s (%s, %+.1f%%)", a.Name, a.Status, a.PerformancePercentage))
	}
	return strings.Join(parts, ", ")
}

// splitSections extracts the two labeled sections from generated text.
// ok is false when either label is missing, out of order, or empty.
func splitSections(text string) (summary, detailed string, ok bool) {
	si := strings.Index(text, summaryLabel)
	di := strings.Index(text, detailedLabel)
	if si < 0 || di < 0 || di < si {
		return "", "", false
	}

	summary = strings.TrimSpace(text[si+len(summaryLabel) : di])
	detailed = strings.TrimSpace(text[di+len(detailedLabel):])
	if summary == "" || detailed == "" {
		return "", "", false
	}
	return summary, detailed, true
}

// Fallback produces deterministic templated narrative text banded by score.
// Identical inputs always yield identical text; the three bands differ in
// tone, not just substituted numbers.
func Fallback(score int, handle string, platform models.Platform, social models.SocialMetrics, chain models.BlockchainActivity) Narrative {
	switch risk.BandFor(score) {
	case risk.BandHigh:
		return highRiskNarrative(score, handle, platform, social, chain)
	case risk.BandMedium:
		return mediumRiskNarrative(score, handle, platform, social, chain)
	default:
		return lowRiskNarrative(score, handle, platform, social, chain)
	}
}

func lowRiskNarrative(score int, handle string, platform models.Platform, social models.SocialMetrics, chain models.BlockchainActivity) Narrative {
	rugPulls, active, declined := risk.CountByStatus(social.PromotedAssets)

	summary := fmt.Sprintf(
		"@%s on %s currently scores %d/99, placing them in the low-risk band. "+
			"Roughly %.1f%% of their %d followers appear authentic and their wallet history shows %d rug pulls. "+
			"The evidence points to a credible account whose recommendations can reasonably be treated as trustworthy.",
		handle, platform, score,
		social.RealFollowerPercentage, social.Followers, chain.RugPullCount)

	detailed := fmt.Sprintf(
		"The on-chain record tied to @%s shows %d rug pulls, dumping behavior rated %s, and %s. "+
			"Across %d promoted assets, %d remain active, %d have declined and %d collapsed in rug pulls. "+
			"On the social side, roughly %.1f%% of %d followers appear to be real accounts and content draws an engagement rate of %.2f%%, "+
			"figures consistent with an organically grown audience rather than a purchased one. "+
			"Taken together the signals place this %s account firmly in the low-risk band: the promotion history is not littered with failed tokens, "+
			"the wallet does not sell into its own recommendations, and the audience receiving those recommendations is largely genuine. "+
			"No assessment of this kind is a guarantee, and even well-intentioned influencers promote assets that lose value. "+
			"Investor advice: recommendations from this account can reasonably be treated as trustworthy, "+
			"though standard due diligence and conservative position sizing for volatile assets still apply.",
		handle, chain.RugPullCount, chain.DumpingBehavior, mevClause(chain.MEVDetected),
		len(social.PromotedAssets), active, declined, rugPulls,
		social.RealFollowerPercentage, social.Followers, social.EngagementRate,
		platform)

	return Narrative{Summary: summary, DetailedAnalysis: detailed}
}

func mediumRiskNarrative(score int, handle string, platform models.Platform, social models.SocialMetrics, chain models.BlockchainActivity) Narrative {
	rugPulls, active, declined := risk.CountByStatus(social.PromotedAssets)

	summary := fmt.Sprintf(
		"@%s on %s scores %d/99, a moderate risk level. "+
			"%d of their %d promoted assets ended in rug pulls and on-chain dumping behavior is rated %s, though their audience appears largely genuine. "+
			"Followers should exercise caution and verify any promoted project independently before investing.",
		handle, platform, score,
		rugPulls, len(social.PromotedAssets), chain.DumpingBehavior)

	detailed := fmt.Sprintf(
		"The picture around @%s on %s is mixed. The linked wallet records %d rug pulls, dumping behavior rated %s, and %s. "+
			"Of %d promoted assets, %d ended in rug pulls, %d have declined and %d remain active, "+
			"a track record that falls short of clean but stops well short of serial fraud. "+
			"The audience partially offsets these concerns: about %.1f%% of %d followers appear authentic and the engagement rate of %.2f%% "+
			"suggests real people are reading the recommendations. "+
			"Engagement at that level does not prove good faith, but it does mean the account has a real audience to lose, which tends to restrain the worst behavior. "+
			"Scores in this middle band usually describe influencers who promote aggressively and indiscriminately rather than ones running deliberate exit scams, "+
			"but the distinction matters little to a follower left holding a collapsed token. "+
			"Investor advice: exercise caution with this account - independently verify any promoted project, "+
			"assume promotions are paid unless disclosed otherwise, and never allocate more than you are prepared to lose on a single recommendation.",
		handle, platform, chain.RugPullCount, chain.DumpingBehavior, mevClause(chain.MEVDetected),
		len(social.PromotedAssets), rugPulls, declined, active,
		social.RealFollowerPercentage, social.Followers, social.EngagementRate)

	return Narrative{Summary: summary, DetailedAnalysis: detailed}
}

func highRiskNarrative(score int, handle string, platform models.Platform, social models.SocialMetrics, chain models.BlockchainActivity) Narrative {
	rugPulls, active, declined := risk.CountByStatus(social.PromotedAssets)

	summary := fmt.Sprintf(
		"Warning: @%s on %s scores %d/99, firmly in the high-risk band. "+
			"The linked wallet shows %d rug pulls with %s dumping behavior, and %d of %d promoted assets collapsed. "+
			"Do not follow this account's recommendations.",
		handle, platform, score,
		chain.RugPullCount, chain.DumpingBehavior, rugPulls, len(social.PromotedAssets))

	detailed := fmt.Sprintf(
		"Warning signs around @%s on %s are substantial. The linked wallet is associated with %d rug pulls, dumping behavior is rated %s, and %s. "+
			"The promotion history reinforces the on-chain record: of %d promoted assets, %d collapsed in rug pulls, %d have declined and only %d remain active. "+
			"Social signals offer little reassurance - an estimated %.1f%% of %d followers appear real and the engagement rate sits at %.2f%%, "+
			"so the reach behind these promotions may itself be partly manufactured. "+
			"Dumping at this level means the wallet has repeatedly sold positions shortly after promoting them to followers, the clearest conflict of interest this analysis measures. "+
			"The combination of repeated failed promotions, selling into followers' buying and extraction-style trading is the profile of an account "+
			"that profits from its audience rather than for it. "+
			"Investor advice: do not follow this account's recommendations; treat any project it promotes as high risk, "+
			"and if you already hold tokens it has promoted, reassess that exposure immediately.",
		handle, platform, chain.RugPullCount, chain.DumpingBehavior, mevClause(chain.MEVDetected),
		len(social.PromotedAssets), rugPulls, declined, active,
		social.RealFollowerPercentage, social.Followers, social.EngagementRate)

	return Narrative{Summary: summary, DetailedAnalysis: detailed}
}

func mevClause(detected bool) string {
	if detected {
		return "MEV-style front-running was detected"
	}
	return "no MEV activity was detected"
}
