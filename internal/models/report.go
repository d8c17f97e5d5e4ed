package models

// Platform 社交平台
type Platform string

const (
	PlatformX         Platform = "X"
	PlatformInstagram Platform = "INSTAGRAM"
	PlatformTelegram  Platform = "TELEGRAM"
	PlatformOther     Platform = "OTHER"
)

// ParsePlatform maps a raw platform string to a known Platform, defaulting to OTHER.
func ParsePlatform(s string) Platform {
	switch Platform(s) {
	case PlatformX, PlatformInstagram, PlatformTelegram:
		return Platform(s)
	default:
		return PlatformOther
	}
}

// AssetStatus is the observed outcome of a promoted asset.
type AssetStatus string

const (
	AssetRugPull  AssetStatus = "RUGPULL"
	AssetActive   AssetStatus = "ACTIVE"
	AssetDeclined AssetStatus = "DECLINED"
)

// DumpingLevel classifies post-promotion sell pressure from the subject's wallet.
type DumpingLevel string

const (
	DumpingLow    DumpingLevel = "LOW"
	DumpingMedium DumpingLevel = "MEDIUM"
	DumpingHigh   DumpingLevel = "HIGH"
)

// PromotedAsset 推广代币记录
type PromotedAsset struct {
	Name                  string      `json:"name"`
	Status                AssetStatus `json:"status"`
	PerformancePercentage float64     `json:"performance_percentage"`
}

// SocialMetrics 社交指标
type SocialMetrics struct {
	Followers              int64           `json:"followers"`
	RealFollowerPercentage float64         `json:"real_follower_percentage"` // 0-100
	EngagementRate         float64         `json:"engagement_rate"`          // percent, >= 0
	PromotedAssets         []PromotedAsset `json:"promoted_assets"`
}

// BlockchainActivity 链上行为指标
type BlockchainActivity struct {
	Address         string       `json:"address,omitempty"`
	RugPullCount    int          `json:"rug_pull_count"`
	DumpingBehavior DumpingLevel `json:"dumping_behavior"`
	MEVDetected     bool         `json:"mev_detected"`
}

// SubjectData identifies the account being analyzed.
type SubjectData struct {
	Handle      string `json:"handle"`
	DisplayName string `json:"display_name,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// RiskReport 风险报告
// Immutable once assembled; the engine is the sole writer of RiskScore,
// Summary and DetailedAnalysis.
type RiskReport struct {
	ID                 string             `json:"id"`
	Subject            SubjectData        `json:"subject"`
	SocialMetrics      SocialMetrics      `json:"social_metrics"`
	BlockchainActivity BlockchainActivity `json:"blockchain_activity"`
	RiskScore          int                `json:"risk_score"` // 1-99, lower is safer
	Summary            string             `json:"summary"`
	DetailedAnalysis   string             `json:"detailed_analysis"`
	CreatedAt          int64              `json:"created_at"` // epoch milliseconds
	Platform           Platform           `json:"platform"`
}
