package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"PORT", "APP_ENV", "NODE_ENV", "ALLOWED_ORIGINS", "RATE_LIMIT_WINDOW_MS", "RATE_LIMIT_MAX_REQUESTS",
		"ALPHA_VANTAGE_API_KEY", "ALPHA_VANTAGE_BASE_URL", "ALPHA_VANTAGE_MIN_INTERVAL",
		"TEXT_MODEL_PROVIDER", "GEMINI_API_KEY", "OPENAI_API_KEY", "TEXT_MODEL",
		"CACHE_DEFAULT_TTL", "HTTPS_PROXY", "TRUSTED_PROXIES",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 3001 || cfg.Server.Mode != ModeProduction {
		t.Errorf("unexpected server defaults: %+v", cfg.Server)
	}
	if cfg.Server.RateLimitWindow != 15*time.Minute || cfg.Server.RateLimitMax != 100 {
		t.Errorf("unexpected rate limit defaults: %+v", cfg.Server)
	}
	if cfg.AlphaVantage.MinInterval != 12*time.Second || cfg.AlphaVantage.Timeout != 30*time.Second {
		t.Errorf("unexpected alpha vantage defaults: %+v", cfg.AlphaVantage)
	}
	if cfg.TextModel.Provider != "gemini" || cfg.TextModel.Model != "gemini-1.5-flash" {
		t.Errorf("unexpected text model defaults: %+v", cfg.TextModel)
	}
	if cfg.Cache.ChartTTL != time.Minute || cfg.Cache.SentimentTTL != time.Hour {
		t.Errorf("unexpected cache defaults: %+v", cfg.Cache)
	}
	if len(cfg.Server.TrustedProxies) != 0 {
		t.Errorf("expected no trusted proxies by default, got %v", cfg.Server.TrustedProxies)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_TrustedProxies(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 192.168.1.2")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Server.TrustedProxies) != 2 || cfg.Server.TrustedProxies[1] != "192.168.1.2" {
		t.Errorf("unexpected trusted proxies: %v", cfg.Server.TrustedProxies)
	}
}

func TestLoad_ShippedConfigInfersProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-only")
	cfg, err := Load(filepath.Join("..", "..", "configs", "config.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TextModel.Provider != "openai" || cfg.TextModel.APIKey != "sk-only" {
		t.Errorf("expected openai inferred from the only key, got %+v", cfg.TextModel)
	}
}

func TestUnusedProviderKey(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("text_model:\n  provider: gemini\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("OPENAI_API_KEY", "sk-other")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TextModel.Provider != "gemini" || cfg.TextModel.APIKey != "" {
		t.Errorf("expected explicit provider to stay without a key, got %+v", cfg.TextModel)
	}
	if got := cfg.unusedProviderKey(); got != "OPENAI_API_KEY" {
		t.Errorf("expected OPENAI_API_KEY reported, got %q", got)
	}

	t.Setenv("GEMINI_API_KEY", "g-key")
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := cfg.unusedProviderKey(); got != "" {
		t.Errorf("expected nothing reported once the provider has a key, got %q", got)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
server:
  port: 8080
  mode: development
alpha_vantage:
  api_key: from-file
  min_interval: 1s
cache:
  stock_ttl: 90s
`
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ALPHA_VANTAGE_API_KEY", "from-env")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("RATE_LIMIT_WINDOW_MS", "60000")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 8080 || !cfg.Development() {
		t.Errorf("expected file values, got %+v", cfg.Server)
	}
	if cfg.AlphaVantage.APIKey != "from-env" {
		t.Errorf("expected env override, got %s", cfg.AlphaVantage.APIKey)
	}
	if cfg.AlphaVantage.MinInterval != time.Second || cfg.Cache.StockTTL != 90*time.Second {
		t.Errorf("expected durations from file, got %v %v", cfg.AlphaVantage.MinInterval, cfg.Cache.StockTTL)
	}
	if len(cfg.Server.AllowedOrigins) != 2 || cfg.Server.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("unexpected origins: %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Server.RateLimitWindow != time.Minute {
		t.Errorf("expected 1m window, got %v", cfg.Server.RateLimitWindow)
	}
	if cfg.TextModel.Provider != "openai" || cfg.TextModel.APIKey != "sk-test" || cfg.TextModel.Model != "gpt-4o-mini" {
		t.Errorf("expected openai inferred from key, got %+v", cfg.TextModel)
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("expected :8080, got %s", cfg.Addr())
	}
}

func TestLoad_BadInput(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}

	t.Setenv("PORT", "not-a-number")
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for invalid PORT")
	}
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port", func(c *Config) { c.Server.Port = 70000 }},
		{"mode", func(c *Config) { c.Server.Mode = "staging" }},
		{"provider", func(c *Config) { c.TextModel.Provider = "llama" }},
		{"base url", func(c *Config) { c.AlphaVantage.BaseURL = "not a url" }},
		{"negative ttl", func(c *Config) { c.Cache.SentimentTTL = -time.Second }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
			if err != nil {
				t.Fatal(err)
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
