package config

import (
	"finsight/pkg/config"
)

// Importer holds importer-specific configuration.
type Importer struct {
	PriceCSV          string  `mapstructure:"price_csv"`
	HotTopicCSV       string  `mapstructure:"hot_topic_csv"`
	RecommendationCSV string  `mapstructure:"recommendation_csv"`
	SourceCode        string  `mapstructure:"source_code"`
	Timeframe         string  `mapstructure:"timeframe"`
	MarketType        string  `mapstructure:"market_type"`
	Threshold         float64 `mapstructure:"threshold"`
	BatchSize         int     `mapstructure:"batch_size"`
}

// Config holds the full configuration for the import drivers.
type Config struct {
	App      config.App      `mapstructure:"app"`
	Logger   config.Logger   `mapstructure:"logger"`
	Database config.Database `mapstructure:"database"`
	Importer Importer        `mapstructure:"importer"`
}

// Load loads the importer configuration from the given path and applies
// defaults for anything left unset.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Logger.Level == "" {
		cfg.Logger.Level = "info"
	}
	if cfg.Importer.PriceCSV == "" {
		cfg.Importer.PriceCSV = "stock_price_data_top80.csv"
	}
	if cfg.Importer.HotTopicCSV == "" {
		cfg.Importer.HotTopicCSV = "top_increasing_stocks.csv"
	}
	if cfg.Importer.RecommendationCSV == "" {
		cfg.Importer.RecommendationCSV = "prediction_result_report.csv"
	}
	if cfg.Importer.SourceCode == "" {
		cfg.Importer.SourceCode = "NAVER"
	}
	if cfg.Importer.Timeframe == "" {
		cfg.Importer.Timeframe = "1H"
	}
	if cfg.Importer.MarketType == "" {
		cfg.Importer.MarketType = "DOMESTIC"
	}
	if cfg.Importer.Threshold == 0 {
		cfg.Importer.Threshold = 0.35
	}
	if cfg.Importer.BatchSize == 0 {
		cfg.Importer.BatchSize = 5000
	}
}
