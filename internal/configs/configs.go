package configs

type Config struct {
	// 基础配置
	Handles  []string `json:"handles" yaml:"handles"`   // 待分析账号列表
	Platform string   `json:"platform" yaml:"platform"` // X, INSTAGRAM, TELEGRAM, OTHER

	Database Database `json:"database" yaml:"database"`

	// 社交指标来源
	SocialAPI SocialAPIConfig `json:"social_api" yaml:"social_api"`

	// 链上数据来源
	Chain ChainConfig `json:"chain" yaml:"chain"`

	// AI 模型参数
	AIConfig AIConfig `json:"ai_config" yaml:"ai_config"`

	// 推广代币行情回填
	EnrichAssets bool `json:"enrich_assets" yaml:"enrich_assets"`
}

type SocialAPIConfig struct {
	BaseURL string `json:"base_url" yaml:"base_url"` // 为空时使用合成数据
	APIKey  string `json:"api_key" yaml:"api_key"`
}

type ChainConfig struct {
	EtherscanAPIKey string            `json:"etherscan_api_key" yaml:"etherscan_api_key"` // 为空时使用合成数据
	CacheTTL        string            `json:"cache_ttl" yaml:"cache_ttl"`                 // 活动缓存时长, eg 10s
	Addresses       map[string]string `json:"addresses" yaml:"addresses"`                 // handle -> 钱包地址
}

type AIConfig struct {
	APIKey    string `json:"api_key" yaml:"api_key"`       // AI服务API密钥, 为空时使用模板文本
	ModelType string `json:"model_type" yaml:"model_type"` // AI模型类型
}

type Database struct {
	ConnStr string `json:"conn_str" yaml:"conn_str"` // 数据库连接字符串, 为空时不落库
}
