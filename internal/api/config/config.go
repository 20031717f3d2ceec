package config

import (
	"finsight/pkg/config"
)

// Query holds query-defaults configuration for the read API.
type Query struct {
	SourceCode string `mapstructure:"source_code"`
}

// Config holds the full configuration for the API service.
type Config struct {
	App      config.App      `mapstructure:"app"`
	Logger   config.Logger   `mapstructure:"logger"`
	Database config.Database `mapstructure:"database"`
	API      config.API      `mapstructure:"api"`
	Query    Query           `mapstructure:"query"`
}

// Load loads the API configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	if cfg.Logger.Level == "" {
		cfg.Logger.Level = "info"
	}
	if cfg.API.Port == 0 {
		cfg.API.Port = 8000
	}
	if cfg.Query.SourceCode == "" {
		cfg.Query.SourceCode = "NAVER"
	}
	return &cfg, nil
}
