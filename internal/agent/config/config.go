package config

import (
	"company-news-agent/pkg/config"
)

// NewsAPI holds configuration for the newsapi.org provider.
type NewsAPI struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// RSS holds configuration for the RSS feed provider.
type RSS struct {
	Sections map[string]string `mapstructure:"sections"`
}

// SEC holds configuration for the SEC EDGAR filings provider.
type SEC struct {
	UserAgent    string `mapstructure:"user_agent"`
	MaxYears     int    `mapstructure:"max_years"`
	BaseURL      string `mapstructure:"base_url"`
	TickerMapURL string `mapstructure:"ticker_map_url"`
}

// Agent holds aggregation behavior configuration.
type Agent struct {
	DefaultLimit   int      `mapstructure:"default_limit"`
	PerSourceLimit int      `mapstructure:"per_source_limit"`
	AllowedDomains []string `mapstructure:"allowed_domains"`
	UseMock        bool     `mapstructure:"use_mock"`
}

// Config holds the full configuration for the news agent service.
type Config struct {
	App     config.App    `mapstructure:"app"`
	Logger  config.Logger `mapstructure:"logger"`
	API     config.API    `mapstructure:"api"`
	NewsAPI NewsAPI       `mapstructure:"newsapi"`
	RSS     RSS           `mapstructure:"rss"`
	SEC     SEC           `mapstructure:"sec"`
	Agent   Agent         `mapstructure:"agent"`
}

// Load loads the news agent configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	if cfg.Agent.DefaultLimit <= 0 {
		cfg.Agent.DefaultLimit = 10
	}
	if cfg.SEC.MaxYears <= 0 {
		cfg.SEC.MaxYears = 10
	}
	if cfg.Logger.Level == "" {
		cfg.Logger.Level = "info"
	}
	return &cfg, nil
}
