package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Alpaca struct {
		APIKey         string        `yaml:"api_key"`
		APISecret      string        `yaml:"api_secret"`
		BaseURL        string        `yaml:"base_url"`
		Feed           string        `yaml:"feed"`
		NewsLimit      int           `yaml:"news_limit"`
		SnapshotLimit  int           `yaml:"snapshot_limit"`
		RequestTimeout time.Duration `yaml:"request_timeout"`
		MaxAttempts    int           `yaml:"max_attempts"`
		RetryBackoff   time.Duration `yaml:"retry_backoff"`
		RateCapacity   float64       `yaml:"rate_capacity"`
		RatePerSec     float64       `yaml:"rate_per_sec"`
	} `yaml:"alpaca"`
	Sentiment struct {
		ServiceURL    string        `yaml:"service_url"`
		Timeout       time.Duration `yaml:"timeout"`
		MaxTextLength int           `yaml:"max_text_length"`
	} `yaml:"sentiment"`
	Analysis struct {
		Concurrency  int           `yaml:"concurrency"`
		SentimentTTL time.Duration `yaml:"sentiment_ttl"`
		OptionsTTL   time.Duration `yaml:"options_ttl"`
	} `yaml:"analysis"`
	Scoring struct {
		CompositeCap     float64 `yaml:"composite_cap"`
		HighVolThreshold float64 `yaml:"high_vol_threshold"`
		LowVolThreshold  float64 `yaml:"low_vol_threshold"`
		LongHorizonDays  float64 `yaml:"long_horizon_days"`
		KellyFloor       float64 `yaml:"kelly_floor"`
		KellyCeil        float64 `yaml:"kelly_ceil"`
	} `yaml:"scoring"`
	Cache struct {
		SweepInterval time.Duration `yaml:"sweep_interval"`
		Redis         struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("APCA_API_KEY_ID"); v != "" {
		c.Alpaca.APIKey = v
	}
	if v := os.Getenv("APCA_API_SECRET_KEY"); v != "" {
		c.Alpaca.APISecret = v
	}
	if v := os.Getenv("SENTIMENT_SERVICE_URL"); v != "" {
		c.Sentiment.ServiceURL = v
	}
	if v := os.Getenv("MAX_TEXT_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Sentiment.MaxTextLength = n
		}
	}
	if v := os.Getenv("ANALYSIS_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Analysis.Concurrency = n
		}
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Enabled = true
		c.Cache.Redis.Addr = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Alpaca.BaseURL == "" {
		c.Alpaca.BaseURL = "https://data.alpaca.markets"
	}
	if c.Alpaca.Feed == "" {
		c.Alpaca.Feed = "indicative"
	}
	if c.Alpaca.NewsLimit <= 0 {
		c.Alpaca.NewsLimit = 50
	}
	if c.Alpaca.SnapshotLimit <= 0 {
		c.Alpaca.SnapshotLimit = 50
	}
	if c.Alpaca.RequestTimeout <= 0 {
		c.Alpaca.RequestTimeout = 60 * time.Second
	}
	if c.Alpaca.MaxAttempts <= 0 {
		c.Alpaca.MaxAttempts = 3
	}
	if c.Alpaca.RetryBackoff <= 0 {
		c.Alpaca.RetryBackoff = 2 * time.Second
	}
	if c.Alpaca.RateCapacity <= 0 {
		c.Alpaca.RateCapacity = 10
	}
	if c.Alpaca.RatePerSec <= 0 {
		c.Alpaca.RatePerSec = 3
	}
	if c.Sentiment.Timeout <= 0 {
		c.Sentiment.Timeout = 30 * time.Second
	}
	if c.Sentiment.MaxTextLength <= 0 {
		c.Sentiment.MaxTextLength = 10000
	}
	if c.Analysis.Concurrency <= 0 {
		c.Analysis.Concurrency = 10
	}
	if c.Analysis.SentimentTTL <= 0 {
		c.Analysis.SentimentTTL = 300 * time.Second
	}
	if c.Analysis.OptionsTTL <= 0 {
		c.Analysis.OptionsTTL = 180 * time.Second
	}
	if c.Cache.SweepInterval <= 0 {
		c.Cache.SweepInterval = time.Minute
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Alpaca.APIKey == "" && os.Getenv("APCA_API_KEY_ID") == "" {
		return fmt.Errorf("alpaca.api_key is required")
	}
	if c.Alpaca.APISecret == "" && os.Getenv("APCA_API_SECRET_KEY") == "" {
		return fmt.Errorf("alpaca.api_secret is required")
	}
	if c.Sentiment.ServiceURL == "" && os.Getenv("SENTIMENT_SERVICE_URL") == "" {
		return fmt.Errorf("sentiment.service_url is required")
	}
	if !strings.HasPrefix(c.Alpaca.BaseURL, "http") {
		return fmt.Errorf("alpaca.base_url must be an http(s) URL, got '%s'", c.Alpaca.BaseURL)
	}
	return nil
}
