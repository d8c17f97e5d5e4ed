package social

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/influscan/influscan/internal/models"
	"github.com/influscan/influscan/internal/utils/request"
)

// APIProvider fetches social metrics from an influencer-stats HTTP API.
// The raw payload is passed through as-is; clamping belongs to the
// normalizer, not the transport.
type APIProvider struct {
	baseURL    string
	apiKey     string
	httpClient *resty.Client
}

// NewAPIProvider creates a provider for the given API endpoint.
func NewAPIProvider(baseURL, apiKey string) *APIProvider {
	return &APIProvider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: request.Request,
	}
}

// Fetch implements the data.SocialMetricsProvider interface
func (p *APIProvider) Fetch(ctx context.Context, handle string, platform models.Platform) (*models.SocialMetrics, error) {
	url := fmt.Sprintf("%s/v1/influencers/%s/%s", p.baseURL, strings.ToLower(string(platform)), handle)

	resp, err := p.httpClient.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+p.apiKey).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	var result struct {
		Followers              int64   `json:"followers"`
		RealFollowerPercentage float64 `json:"real_follower_percentage"`
		EngagementRate         float64 `json:"engagement_rate"`
		PromotedAssets         []struct {
			Name                  string  `json:"name"`
			Status                string  `json:"status"`
			PerformancePercentage float64 `json:"performance_percentage"`
		} `json:"promoted_assets"`
	}
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	metrics := &models.SocialMetrics{
		Followers:              result.Followers,
		RealFollowerPercentage: result.RealFollowerPercentage,
		EngagementRate:         result.EngagementRate,
	}
	for _, asset := range result.PromotedAssets {
		metrics.PromotedAssets = append(metrics.PromotedAssets, models.PromotedAsset{
			Name:                  asset.Name,
			Status:                models.AssetStatus(strings.ToUpper(asset.Status)),
			PerformancePercentage: asset.PerformancePercentage,
		})
	}

	return metrics, nil
}
