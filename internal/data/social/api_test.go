package social

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/influscan/influscan/internal/models"
)

func setupTestServer(t *testing.T, path string, status int, response interface{}) (*httptest.Server, *APIProvider) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, path, r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		err := json.NewEncoder(w).Encode(response)
		require.NoError(t, err)
	}))

	provider := NewAPIProvider(server.URL, "test-key")
	provider.httpClient = resty.NewWithClient(server.Client())

	return server, provider
}

func TestAPIProvider_Fetch(t *testing.T) {
	response := map[string]interface{}{
		"followers":                85000,
		"real_follower_percentage": 72.5,
		"engagement_rate":          1.8,
		"promoted_assets": []map[string]interface{}{
			{"name": "MoonRocket", "status": "rugpull", "performance_percentage": -98.2},
			{"name": "GigaYield", "status": "ACTIVE", "performance_percentage": 12.0},
		},
	}
	server, provider := setupTestServer(t, "/v1/influencers/x/cryptoguru", http.StatusOK, response)
	defer server.Close()

	got, err := provider.Fetch(context.Background(), "cryptoguru", models.PlatformX)
	require.NoError(t, err)

	assert.Equal(t, int64(85000), got.Followers)
	assert.Equal(t, 72.5, got.RealFollowerPercentage)
	assert.Equal(t, 1.8, got.EngagementRate)
	require.Len(t, got.PromotedAssets, 2)
	assert.Equal(t, models.AssetRugPull, got.PromotedAssets[0].Status, "lowercase status is upper-cased")
	assert.Equal(t, models.AssetActive, got.PromotedAssets[1].Status)
}

func TestAPIProvider_FetchUpstreamError(t *testing.T) {
	server, provider := setupTestServer(t, "/v1/influencers/telegram/ghost", http.StatusNotFound, map[string]string{"error": "unknown handle"})
	defer server.Close()

	_, err := provider.Fetch(context.Background(), "ghost", models.PlatformTelegram)
	assert.Error(t, err)
}
