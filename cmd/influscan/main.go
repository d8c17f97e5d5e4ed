package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	openaigen "github.com/influscan/influscan/internal/narrative/openai"

	"github.com/influscan/influscan/internal/configs"
	"github.com/influscan/influscan/internal/data"
	"github.com/influscan/influscan/internal/data/chain"
	"github.com/influscan/influscan/internal/data/enrich"
	"github.com/influscan/influscan/internal/data/social"
	"github.com/influscan/influscan/internal/data/storage"
	"github.com/influscan/influscan/internal/data/synthetic"
	"github.com/influscan/influscan/internal/models"
	"github.com/influscan/influscan/internal/narrative"
	"github.com/influscan/influscan/internal/report"
)

var (
	flagconf     string
	flagHandle   string
	flagPlatform string
	flagAddress  string

	log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   true,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
)

func init() {
	flag.StringVar(&flagconf, "conf", "", "config path, eg: -conf config.json")
	flag.StringVar(&flagHandle, "handle", "", "subject handle to analyze, overrides config")
	flag.StringVar(&flagPlatform, "platform", "X", "platform: X, INSTAGRAM, TELEGRAM, OTHER")
	flag.StringVar(&flagAddress, "address", "", "wallet address linked to the subject")
}

func main() {
	flag.Parse()

	// 加载配置
	_ = godotenv.Load()

	config := &configs.Config{}
	if flagconf != "" {
		configFile, err := os.ReadFile(flagconf)
		if err != nil {
			log.Error("Error reading config file", "err", err)
			return
		}
		if err := json.Unmarshal(configFile, config); err != nil {
			log.Error("Error parsing config file", "err", err)
			return
		}
	}

	// 环境变量优先于配置文件
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		config.AIConfig.APIKey = v
	}
	if v := os.Getenv("ETHERSCAN_API_KEY"); v != "" {
		config.Chain.EtherscanAPIKey = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		config.Database.ConnStr = v
	}

	log.Debug("Loaded config", "config", config)

	// 初始化各个组件
	var socialProvider data.SocialMetricsProvider
	if config.SocialAPI.BaseURL != "" {
		socialProvider = social.NewAPIProvider(config.SocialAPI.BaseURL, config.SocialAPI.APIKey)
	} else {
		socialProvider = synthetic.NewSocialProvider()
	}

	if config.EnrichAssets {
		socialProvider = enrich.NewEnrichingProvider(socialProvider, enrich.NewBinanceEnricher())
	}

	log.Debug("init social provider")

	var chainProvider data.BlockchainActivityProvider
	if config.Chain.EtherscanAPIKey != "" {
		cacheTTL, err := time.ParseDuration(config.Chain.CacheTTL)
		if err != nil {
			cacheTTL = chain.DefaultCacheTTL
		}
		chainProvider = chain.NewEtherscanProvider(config.Chain.EtherscanAPIKey, chain.NewMemoryCache(cacheTTL))
	} else {
		chainProvider = synthetic.NewActivityProvider()
	}

	log.Debug("init chain provider")

	var generator narrative.TextGenerator
	if config.AIConfig.APIKey != "" {
		generator = openaigen.NewGenerator(config.AIConfig.APIKey, config.AIConfig.ModelType)
	}

	log.Debug("init generator")

	var store data.ReportStore
	if config.Database.ConnStr != "" {
		postgres, err := storage.NewPostgresStore(config.Database.ConnStr)
		if err != nil {
			log.Error("Error creating report store", "err", err)
			return
		}
		store = postgres
	}

	log.Debug("init store")

	assembler := report.NewAssembler(socialProvider, chainProvider, narrative.NewSynthesizer(generator), log)

	handles := config.Handles
	if flagHandle != "" {
		handles = []string{flagHandle}
	}
	if len(handles) == 0 {
		log.Error("no handles to analyze, use -handle or the config file")
		return
	}

	platform := models.ParsePlatform(flagPlatform)
	if flagHandle == "" && config.Platform != "" {
		platform = models.ParsePlatform(config.Platform)
	}

	for _, handle := range handles {
		address := flagAddress
		if address == "" {
			address = config.Chain.Addresses[report.NormalizeHandle(handle)]
		}

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		rep, err := assembler.BuildReport(ctx, report.Request{
			Handle:   handle,
			Platform: platform,
			Address:  address,
		})
		cancel()
		if err != nil {
			log.Error("Error building report", "handle", handle, "err", err)
			continue
		}

		if store != nil {
			saveCtx, cancelSave := context.WithTimeout(context.Background(), 10*time.Second)
			if err := store.SaveReport(saveCtx, rep); err != nil {
				log.Error("Error saving report", "id", rep.ID, "err", err)
			}
			cancelSave()
		}

		out, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			log.Error("Error encoding report", "id", rep.ID, "err", err)
			continue
		}
		fmt.Println(string(out))
	}
}
