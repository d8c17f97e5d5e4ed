package enrich

import (
	"context"
	"strconv"
	"strings"

	"github.com/adshao/go-binance/v2"

	"github.com/influscan/influscan/internal/data"
	"github.com/influscan/influscan/internal/models"
)

// BinanceEnricher refreshes promoted-asset performance figures from Binance
// 24h ticker statistics. Enrichment is best-effort: assets without a listed
// pair, or any lookup failure, are left untouched.
type BinanceEnricher struct {
	client     *binance.Client
	quoteAsset string
}

// NewBinanceEnricher creates an enricher. Ticker stats are public, so no
// API credentials are required.
func NewBinanceEnricher() *BinanceEnricher {
	return &BinanceEnricher{
		client:     binance.NewClient("", ""),
		quoteAsset: "USDT",
	}
}

// EnrichAssets updates each asset's performance percentage and outcome
// status from live ticker data and returns the slice.
func (e *BinanceEnricher) EnrichAssets(ctx context.Context, assets []models.PromotedAsset) []models.PromotedAsset {
	for i, asset := range assets {
		symbol := strings.ToUpper(asset.Name) + e.quoteAsset

		stats, err := e.client.NewListPriceChangeStatsService().Symbol(symbol).Do(ctx)
		if err != nil || len(stats) == 0 {
			continue
		}

		performance, err := strconv.ParseFloat(stats[0].PriceChangePercent, 64)
		if err != nil {
			continue
		}

		assets[i].PerformancePercentage = performance
		assets[i].Status = classifyStatus(asset.Status, performance)
	}
	return assets
}

// EnrichingProvider decorates a social metrics provider so promoted-asset
// performance is refreshed before the metrics enter the pipeline.
type EnrichingProvider struct {
	inner    data.SocialMetricsProvider
	enricher *BinanceEnricher
}

func NewEnrichingProvider(inner data.SocialMetricsProvider, enricher *BinanceEnricher) *EnrichingProvider {
	return &EnrichingProvider{inner: inner, enricher: enricher}
}

// Fetch implements the data.SocialMetricsProvider interface
func (p *EnrichingProvider) Fetch(ctx context.Context, handle string, platform models.Platform) (*models.SocialMetrics, error) {
	metrics, err := p.inner.Fetch(ctx, handle, platform)
	if err != nil {
		return nil, err
	}
	metrics.PromotedAssets = p.enricher.EnrichAssets(ctx, metrics.PromotedAssets)
	return metrics, nil
}

// classifyStatus maps a performance figure to an outcome status. A recorded
// rug pull never recovers to a better status.
func classifyStatus(current models.AssetStatus, performance float64) models.AssetStatus {
	if current == models.AssetRugPull {
		return models.AssetRugPull
	}
	switch {
	case performance <= -95:
		return models.AssetRugPull
	case performance <= -30:
		return models.AssetDeclined
	default:
		return models.AssetActive
	}
}
