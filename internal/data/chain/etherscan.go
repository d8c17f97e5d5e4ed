package chain

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

// EtherscanProvider derives blockchain activity from an Etherscan-compatible
// transaction list API.
type EtherscanProvider struct {
	baseURL    string
	apiKey     string
	httpClient *resty.Client
	cache      ActivityCache
}

// NewEtherscanProvider creates a provider. cache may be nil, in which case an
// in-memory cache with DefaultCacheTTL is used.
func NewEtherscanProvider(apiKey string, cache ActivityCache) *EtherscanProvider {
	if cache == nil {
		cache = NewMemoryCache(DefaultCacheTTL)
	}
	return &EtherscanProvider{
		baseURL:    "https://api.etherscan.io/api",
		apiKey:     apiKey,
		httpClient: request.Request,
		cache:      cache,
	}
}

type transaction struct {
	From         string `json:"from"`
	To           string `json:"to"`
	Value        string `json:"value"`
	TimeStamp    string `json:"timeStamp"`
	FunctionName string `json:"functionName"`
	IsError      string `json:"isError"`
}

// Fetch implements the data.BlockchainActivityProvider interface
func (p *EtherscanProvider) Fetch(ctx context.Context, address string) (*models.BlockchainActivity, error) {
	if address == "" {
		return nil, fmt.Errorf("no address provided")
	}

	if cached, ok := p.cache.Get(address); ok {
		return cached, nil
	}

	resp, err := p.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"module":  "account",
			"action":  "txlist",
			"address": address,
			"sort":    "desc",
			"page":    "1",
			"offset":  "200",
			"apikey":  p.apiKey,
		}).
		Get(p.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	var result struct {
		Status  string          `json:"status"`
		Message string          `json:"message"`
		Result  json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	// Etherscan reports errors with status "0" and a string result.
	var txs []transaction
	if err := json.Unmarshal(result.Result, &txs); err != nil {
		return nil, fmt.Errorf("explorer error: %s", result.Message)
	}

	activity := deriveActivity(address, txs)
	p.cache.Put(address, activity)
	return activity, nil
}

// deriveActivity reduces a transaction list to the activity heuristics the
// scorer consumes: liquidity removals count as rug pulls, the share of
// outbound swaps sets the dumping level, and repeated transactions in the
// same block flag MEV-style bracketing.
func deriveActivity(address string, txs []transaction) *models.BlockchainActivity {
	activity := &models.BlockchainActivity{
		Address:         address,
		DumpingBehavior: models.DumpingLow,
	}

	sells := 0
	outbound := 0
	blockCounts := make(map[string]int)

	for _, tx := range txs {
		if tx.IsError == "1" {
			continue
		}

		fn := strings.ToLower(tx.FunctionName)
		fromSubject := strings.EqualFold(tx.From, address)

		if fromSubject && strings.HasPrefix(fn, "removeliquidity") {
			activity.RugPullCount++
		}
		if fromSubject {
			outbound++
			if strings.Contains(fn, "swapexacttokensfor") || strings.Contains(fn, "sell") {
				sells++
			}
			blockCounts[tx.TimeStamp]++
		}
	}

	if outbound > 0 {
		sellRatio := float64(sells) / float64(outbound)
		switch {
		case sellRatio > 0.5:
			activity.DumpingBehavior = models.DumpingHigh
		case sellRatio > 0.2:
			activity.DumpingBehavior = models.DumpingMedium
		}
	}

	// Three or more transactions landing in one block is the classic
	// sandwich signature.
	for _, count := range blockCounts {
		if count >= 3 {
			activity.MEVDetected = true
			break
		}
	}

	return activity
}
