package config

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port               string        `mapstructure:"PORT"`
	Env                string        `mapstructure:"ENV"`
	LogLevel           string        `mapstructure:"LOG_LEVEL"`
	DatabaseURL        string        `mapstructure:"DATABASE_URL"`
	DBMaxConns         int32         `mapstructure:"DB_MAX_CONNS"`
	DBMinConns         int32         `mapstructure:"DB_MIN_CONNS"`
	RedisURL           string        `mapstructure:"REDIS_URL"`
	CORSOrigins        []string      `mapstructure:"CORS_ORIGINS"`
	PHIEncryptionKey   string        `mapstructure:"PHI_ENCRYPTION_KEY"`
	OpenAIAPIKey       string        `mapstructure:"OPENAI_API_KEY"`
	OpenAIBaseURL      string        `mapstructure:"OPENAI_BASE_URL"`
	OpenAIModel        string        `mapstructure:"OPENAI_MODEL"`
	TranscribeModel    string        `mapstructure:"TRANSCRIBE_MODEL"`
	UpstreamTimeout    time.Duration `mapstructure:"UPSTREAM_TIMEOUT"`
	RequestTimeout     time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	BodyLimit          string        `mapstructure:"BODY_LIMIT"`
	AudioBodyLimit     string        `mapstructure:"AUDIO_BODY_LIMIT"`
	ExtractionCacheTTL time.Duration `mapstructure:"EXTRACTION_CACHE_TTL"`
	VoiceRatePerSecond float64       `mapstructure:"VOICE_RATE_PER_SECOND"`
	VoiceRateBurst     int           `mapstructure:"VOICE_RATE_BURST"`
	MigrationsDir      string        `mapstructure:"MIGRATIONS_DIR"`
}

var envKeys = []string{
	"PORT",
	"ENV",
	"LOG_LEVEL",
	"DATABASE_URL",
	"DB_MAX_CONNS",
	"DB_MIN_CONNS",
	"REDIS_URL",
	"CORS_ORIGINS",
	"PHI_ENCRYPTION_KEY",
	"OPENAI_API_KEY",
	"OPENAI_BASE_URL",
	"OPENAI_MODEL",
	"TRANSCRIBE_MODEL",
	"UPSTREAM_TIMEOUT",
	"REQUEST_TIMEOUT",
	"BODY_LIMIT",
	"AUDIO_BODY_LIMIT",
	"EXTRACTION_CACHE_TTL",
	"VOICE_RATE_PER_SECOND",
	"VOICE_RATE_BURST",
	"MIGRATIONS_DIR",
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173")
	v.SetDefault("OPENAI_BASE_URL", "https://api.openai.com/v1")
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("TRANSCRIBE_MODEL", "whisper-1")
	v.SetDefault("UPSTREAM_TIMEOUT", "60s")
	v.SetDefault("REQUEST_TIMEOUT", "90s")
	v.SetDefault("BODY_LIMIT", "2M")
	v.SetDefault("AUDIO_BODY_LIMIT", "26M")
	v.SetDefault("EXTRACTION_CACHE_TTL", "24h")
	v.SetDefault("VOICE_RATE_PER_SECOND", 1)
	v.SetDefault("VOICE_RATE_BURST", 5)
	v.SetDefault("MIGRATIONS_DIR", "migrations")

	// Bind explicitly so Unmarshal sees env-only keys.
	for _, k := range envKeys {
		_ = v.BindEnv(k)
	}

	// .env is optional
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if origins := v.GetString("CORS_ORIGINS"); origins != "" {
		cfg.CORSOrigins = splitList(origins)
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// VoiceEnabled reports whether an upstream speech/LLM provider is configured.
func (c *Config) VoiceEnabled() bool {
	return c.OpenAIAPIKey != ""
}

// Validate checks that the configuration is safe to run. In production the
// PHI key is mandatory; when set it must decode to 32 bytes.
func (c *Config) Validate() error {
	if c.IsProduction() && c.PHIEncryptionKey == "" {
		return fmt.Errorf("PHI_ENCRYPTION_KEY is required in production")
	}
	if c.PHIEncryptionKey != "" {
		keyBytes, err := hex.DecodeString(c.PHIEncryptionKey)
		if err != nil {
			return fmt.Errorf("PHI_ENCRYPTION_KEY is not valid hex: %w", err)
		}
		if len(keyBytes) != 32 {
			return fmt.Errorf("PHI_ENCRYPTION_KEY must be 32 bytes (64 hex chars), got %d bytes", len(keyBytes))
		}
	}
	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS (%d) must not exceed DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns)
	}
	if c.UpstreamTimeout <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must be positive")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}
	if c.VoiceRateBurst < 1 {
		return fmt.Errorf("VOICE_RATE_BURST must be at least 1")
	}
	if c.RequestTimeout < c.UpstreamTimeout {
		return fmt.Errorf("REQUEST_TIMEOUT (%s) must be at least UPSTREAM_TIMEOUT (%s)", c.RequestTimeout, c.UpstreamTimeout)
	}
	return nil
}
