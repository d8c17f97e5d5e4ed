package data

import (
	"context"

	"github.com/influscan/influscan/internal/models"
)

// SocialMetricsProvider 负责获取社交指标
type SocialMetricsProvider interface {
	// Fetch retrieves social metrics for a subject handle on a platform.
	Fetch(ctx context.Context, handle string, platform models.Platform) (*models.SocialMetrics, error)
}

// BlockchainActivityProvider 负责获取链上行为指标
type BlockchainActivityProvider interface {
	// Fetch retrieves on-chain activity for a wallet address.
	Fetch(ctx context.Context, address string) (*models.BlockchainActivity, error)
}

// ReportStore 处理报告的持久化
// The store is caller-owned: the assembler returns reports, it never saves them.
type ReportStore interface {
	// SaveReport stores an assembled report.
	SaveReport(ctx context.Context, report *models.RiskReport) error

	// ListReports retrieves stored reports, newest first.
	ListReports(ctx context.Context) ([]models.RiskReport, error)
}
