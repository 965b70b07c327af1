package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"StockPulse/internal/textgen"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Port            int           `yaml:"port"`
		Mode            string        `yaml:"mode"`
		AllowedOrigins  []string      `yaml:"allowed_origins"`
		RateLimitWindow time.Duration `yaml:"rate_limit_window"`
		RateLimitMax    int           `yaml:"rate_limit_max"`
		TrustedProxies  []string      `yaml:"trusted_proxies"`
	} `yaml:"server"`
	AlphaVantage struct {
		APIKey      string        `yaml:"api_key"`
		BaseURL     string        `yaml:"base_url"`
		MinInterval time.Duration `yaml:"min_interval"`
		Timeout     time.Duration `yaml:"timeout"`
	} `yaml:"alpha_vantage"`
	TextModel struct {
		Provider string        `yaml:"provider"`
		APIKey   string        `yaml:"api_key"`
		Model    string        `yaml:"model"`
		Timeout  time.Duration `yaml:"timeout"`
	} `yaml:"text_model"`
	Cache struct {
		DefaultTTL    time.Duration `yaml:"default_ttl"`
		StockTTL      time.Duration `yaml:"stock_ttl"`
		ChartTTL      time.Duration `yaml:"chart_ttl"`
		MoversTTL     time.Duration `yaml:"movers_ttl"`
		SentimentTTL  time.Duration `yaml:"sentiment_ttl"`
		StatsInterval time.Duration `yaml:"stats_interval"`
	} `yaml:"cache"`
	Proxy string `yaml:"proxy"`
}

// Server modes.
const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
	ModeTest        = "test"
)

// Path returns the config file location from CONFIG_PATH or the default.
func Path() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return "configs/config.yaml"
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v := firstEnv("APP_ENV", "NODE_ENV"); v != "" {
		c.Server.Mode = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		c.Server.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("RATE_LIMIT_WINDOW_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse RATE_LIMIT_WINDOW_MS: %w", err)
		}
		c.Server.RateLimitWindow = time.Duration(ms) * time.Millisecond
	}
	if v := os.Getenv("RATE_LIMIT_MAX_REQUESTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse RATE_LIMIT_MAX_REQUESTS: %w", err)
		}
		c.Server.RateLimitMax = n
	}
	if v := os.Getenv("TRUSTED_PROXIES"); v != "" {
		c.Server.TrustedProxies = splitList(v)
	}

	if v := os.Getenv("ALPHA_VANTAGE_API_KEY"); v != "" {
		c.AlphaVantage.APIKey = v
	}
	if v := os.Getenv("ALPHA_VANTAGE_BASE_URL"); v != "" {
		c.AlphaVantage.BaseURL = v
	}
	if v := os.Getenv("ALPHA_VANTAGE_MIN_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse ALPHA_VANTAGE_MIN_INTERVAL: %w", err)
		}
		c.AlphaVantage.MinInterval = d
	}

	if v := os.Getenv("TEXT_MODEL_PROVIDER"); v != "" {
		c.TextModel.Provider = strings.ToLower(v)
	}
	if c.TextModel.Provider == "" {
		// Infer the provider from whichever key is present.
		if os.Getenv("GEMINI_API_KEY") == "" && os.Getenv("OPENAI_API_KEY") != "" {
			c.TextModel.Provider = textgen.ProviderOpenAI
		} else {
			c.TextModel.Provider = textgen.ProviderGemini
		}
	}
	keyEnv := "GEMINI_API_KEY"
	if c.TextModel.Provider == textgen.ProviderOpenAI {
		keyEnv = "OPENAI_API_KEY"
	}
	if v := os.Getenv(keyEnv); v != "" {
		c.TextModel.APIKey = v
	}
	if other := c.unusedProviderKey(); other != "" {
		log.Printf("[WARN] text model provider is %s but only %s is set; set TEXT_MODEL_PROVIDER to use it", c.TextModel.Provider, other)
	}
	if v := os.Getenv("TEXT_MODEL"); v != "" {
		c.TextModel.Model = v
	}

	if v := os.Getenv("CACHE_DEFAULT_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse CACHE_DEFAULT_TTL: %w", err)
		}
		c.Cache.DefaultTTL = d
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.Proxy = v
	}
	return nil
}

// unusedProviderKey names the other provider's key variable when it is set
// and the selected provider has no key at all.
func (c *Config) unusedProviderKey() string {
	if c.TextModel.APIKey != "" {
		return ""
	}
	other := "OPENAI_API_KEY"
	if c.TextModel.Provider == textgen.ProviderOpenAI {
		other = "GEMINI_API_KEY"
	}
	if os.Getenv(other) == "" {
		return ""
	}
	return other
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 3001
	}
	if c.Server.Mode == "" {
		c.Server.Mode = ModeProduction
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	if c.Server.RateLimitWindow == 0 {
		c.Server.RateLimitWindow = 15 * time.Minute
	}
	if c.Server.RateLimitMax == 0 {
		c.Server.RateLimitMax = 100
	}

	if c.AlphaVantage.BaseURL == "" {
		c.AlphaVantage.BaseURL = "https://www.alphavantage.co/query"
	}
	if c.AlphaVantage.MinInterval == 0 {
		c.AlphaVantage.MinInterval = 12 * time.Second
	}
	if c.AlphaVantage.Timeout == 0 {
		c.AlphaVantage.Timeout = 30 * time.Second
	}

	if c.TextModel.Provider == "" {
		c.TextModel.Provider = textgen.ProviderGemini
	}
	if c.TextModel.Model == "" {
		switch c.TextModel.Provider {
		case textgen.ProviderOpenAI:
			c.TextModel.Model = textgen.DefaultOpenAIModel
		default:
			c.TextModel.Model = textgen.DefaultGeminiModel
		}
	}
	if c.TextModel.Timeout == 0 {
		c.TextModel.Timeout = 30 * time.Second
	}

	if c.Cache.DefaultTTL == 0 {
		c.Cache.DefaultTTL = 5 * time.Minute
	}
	if c.Cache.StockTTL == 0 {
		c.Cache.StockTTL = 5 * time.Minute
	}
	if c.Cache.ChartTTL == 0 {
		c.Cache.ChartTTL = time.Minute
	}
	if c.Cache.MoversTTL == 0 {
		c.Cache.MoversTTL = 5 * time.Minute
	}
	if c.Cache.SentimentTTL == 0 {
		c.Cache.SentimentTTL = time.Hour
	}
	if c.Cache.StatsInterval == 0 {
		c.Cache.StatsInterval = 5 * time.Minute
	}
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	switch c.Server.Mode {
	case ModeDevelopment, ModeProduction, ModeTest:
	default:
		return fmt.Errorf("server.mode %q must be development, production or test", c.Server.Mode)
	}
	if c.Server.RateLimitWindow < 0 || c.Server.RateLimitMax < 0 {
		return fmt.Errorf("server rate limit must not be negative")
	}
	if _, err := url.ParseRequestURI(c.AlphaVantage.BaseURL); err != nil {
		return fmt.Errorf("alpha_vantage.base_url: %w", err)
	}
	if c.AlphaVantage.MinInterval < 0 || c.AlphaVantage.Timeout < 0 {
		return fmt.Errorf("alpha_vantage intervals must not be negative")
	}
	switch c.TextModel.Provider {
	case textgen.ProviderGemini, textgen.ProviderOpenAI:
	default:
		return fmt.Errorf("text_model.provider %q must be gemini or openai", c.TextModel.Provider)
	}
	if c.Cache.DefaultTTL < 0 || c.Cache.StockTTL < 0 || c.Cache.ChartTTL < 0 ||
		c.Cache.MoversTTL < 0 || c.Cache.SentimentTTL < 0 || c.Cache.StatsInterval < 0 {
		return fmt.Errorf("cache durations must not be negative")
	}
	if c.Proxy != "" {
		if _, err := url.Parse(c.Proxy); err != nil {
			return fmt.Errorf("proxy: %w", err)
		}
	}
	return nil
}

// Development reports whether the server runs in development mode.
func (c *Config) Development() bool {
	return c.Server.Mode == ModeDevelopment
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
