package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/influscan/influscan/internal/data"
	"github.com/influscan/influscan/internal/data/synthetic"
	"github.com/influscan/influscan/internal/metrics"
	"github.com/influscan/influscan/internal/models"
	"github.com/influscan/influscan/internal/narrative"
	"github.com/influscan/influscan/internal/risk"
)

var (
	// ErrInvalidSubject means no usable subject identity could be produced.
	// It is one of only two errors BuildReport can return.
	ErrInvalidSubject = errors.New("invalid subject handle")

	// ErrGenerationCancelled means the caller's context ended before the
	// report was assembled.
	ErrGenerationCancelled = errors.New("report generation cancelled")
)

const (
	fetchAttempts = 3
	fetchBackoff  = 300 * time.Millisecond
)

// Stage names for one request, in order.
const (
	stageFetchingSocial = "FETCHING_SOCIAL"
	stageFetchingChain  = "FETCHING_BLOCKCHAIN"
	stageNormalizing    = "NORMALIZING"
	stageScoring        = "SCORING"
	stageSynthesizing   = "SYNTHESIZING"
	stageAssembled      = "ASSEMBLED"
)

type Logger interface {
	Error(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
}

type nopLogger struct{}

func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}

// Request describes one analysis request.
type Request struct {
	Handle   string          // subject handle, with or without leading @
	Platform models.Platform // defaults to OTHER
	Address  string          // optional wallet address
}

// Assembler runs the full pipeline for a request: fetch social and on-chain
// metrics concurrently, normalize, score, synthesize narrative text and
// package the result. Provider failures never abort a request; each failing
// fetch substitutes a deterministic synthetic value keyed by the subject so
// repeated analysis without live data is reproducible.
type Assembler struct {
	social      data.SocialMetricsProvider
	chain       data.BlockchainActivityProvider
	synthesizer *narrative.Synthesizer
	logger      Logger
}

// NewAssembler creates an Assembler. Either provider may be nil, in which
// case that axis always comes from the synthetic generator. logger may be
// nil.
func NewAssembler(social data.SocialMetricsProvider, chain data.BlockchainActivityProvider, synthesizer *narrative.Synthesizer, logger Logger) *Assembler {
	if synthesizer == nil {
		synthesizer = narrative.NewSynthesizer(nil)
	}
	if logger == nil {
		logger = nopLogger{}
	}
	return &Assembler{
		social:      social,
		chain:       chain,
		synthesizer: synthesizer,
		logger:      logger,
	}
}

// BuildReport produces a complete RiskReport for the request. Only
// ErrInvalidSubject and ErrGenerationCancelled can be returned; every other
// upstream failure is absorbed, so an accepted request always yields a
// report with a score in range and non-empty narrative text.
func (a *Assembler) BuildReport(ctx context.Context, req Request) (*models.RiskReport, error) {
	handle := NormalizeHandle(req.Handle)
	if handle == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSubject, req.Handle)
	}
	platform := models.ParsePlatform(string(req.Platform))

	var (
		social models.SocialMetrics
		chain  models.BlockchainActivity
		wg     sync.WaitGroup
	)

	// The two fetches are independent: neither failure nor latency on one
	// axis blocks the other.
	wg.Add(2)
	go func() {
		defer wg.Done()
		social = a.fetchSocial(ctx, handle, platform)
	}()
	go func() {
		defer wg.Done()
		chain = a.fetchChain(ctx, handle, req.Address)
	}()
	wg.Wait()

	if ctx.Err() != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationCancelled, ctx.Err())
	}

	social, chain = metrics.Normalize(social, chain)
	a.logger.Info("pipeline stage complete", "stage", stageNormalizing, "handle", handle)

	score := risk.Score(social, chain)
	a.logger.Info("pipeline stage complete", "stage", stageScoring, "handle", handle, "score", score)

	text := a.synthesizer.Synthesize(ctx, score, handle, platform, social, chain)
	if ctx.Err() != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationCancelled, ctx.Err())
	}
	a.logger.Info("pipeline stage complete", "stage", stageSynthesizing, "handle", handle)

	now := time.Now()
	report := &models.RiskReport{
		ID:                 fmt.Sprintf("%s-%d", handle, now.UnixMilli()),
		Subject:            models.SubjectData{Handle: handle},
		SocialMetrics:      social,
		BlockchainActivity: chain,
		RiskScore:          score,
		Summary:            text.Summary,
		DetailedAnalysis:   text.DetailedAnalysis,
		CreatedAt:          now.UnixMilli(),
		Platform:           platform,
	}
	a.logger.Info("pipeline stage complete", "stage", stageAssembled, "handle", handle, "id", report.ID)

	return report, nil
}

// NormalizeHandle trims whitespace and strips a single leading @.
func NormalizeHandle(handle string) string {
	handle = strings.TrimSpace(handle)
	handle = strings.TrimPrefix(handle, "@")
	return strings.TrimSpace(handle)
}

func (a *Assembler) fetchSocial(ctx context.Context, handle string, platform models.Platform) models.SocialMetrics {
	if a.social != nil {
		for attempt := 0; attempt < fetchAttempts; attempt++ {
			if ctx.Err() != nil {
				break
			}
			if attempt > 0 {
				sleep(ctx, fetchBackoff)
			}

			fetched, err := a.social.Fetch(ctx, handle, platform)
			if err == nil && fetched != nil {
				a.logger.Info("pipeline stage complete", "stage", stageFetchingSocial, "handle", handle)
				return *fetched
			}
			a.logger.Error("social metrics fetch failed", "handle", handle, "attempt", attempt+1, "error", err)
		}
	}

	a.logger.Info("substituting synthetic social metrics", "stage", stageFetchingSocial, "handle", handle)
	return synthetic.SocialMetricsFor(handle, platform)
}

func (a *Assembler) fetchChain(ctx context.Context, handle, address string) models.BlockchainActivity {
	if a.chain != nil && address != "" {
		for attempt := 0; attempt < fetchAttempts; attempt++ {
			if ctx.Err() != nil {
				break
			}
			if attempt > 0 {
				sleep(ctx, fetchBackoff)
			}

			fetched, err := a.chain.Fetch(ctx, address)
			if err == nil && fetched != nil {
				a.logger.Info("pipeline stage complete", "stage", stageFetchingChain, "address", address)
				return *fetched
			}
			a.logger.Error("blockchain activity fetch failed", "address", address, "attempt", attempt+1, "error", err)
		}
	}

	// Seed by address when known so the same wallet resolves identically
	// regardless of which handle referenced it.
	seedKey := address
	if seedKey == "" {
		seedKey = handle
	}
	a.logger.Info("substituting synthetic blockchain activity", "stage", stageFetchingChain, "handle", handle)

	activity := synthetic.ActivityFor(seedKey)
	activity.Address = address
	return activity
}

func sleep(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
