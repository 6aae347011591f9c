package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Skufu/cardiocare/internal/apperrors"
)

type Config struct {
	Port          string
	GinMode       string
	ModelPath     string
	WebRoot       string
	LogLevel      string
	LogFormat     string
	DatabaseURL   string
	EnableDB      bool
	MaxBodyBytes  int64
	ChatRateLimit float64
	ChatRateBurst int
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		Port:          v.GetString("port"),
		GinMode:       v.GetString("gin_mode"),
		ModelPath:     v.GetString("model_path"),
		WebRoot:       v.GetString("web_root"),
		LogLevel:      v.GetString("log_level"),
		LogFormat:     v.GetString("log_format"),
		DatabaseURL:   v.GetString("database_url"),
		EnableDB:      v.GetBool("enable_db"),
		MaxBodyBytes:  v.GetInt64("max_body_bytes"),
		ChatRateLimit: v.GetFloat64("chat_rate_limit"),
		ChatRateBurst: v.GetInt("chat_rate_burst"),
	}

	if err := validate(cfg); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrConfigInvalid)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("gin_mode", "release")
	v.SetDefault("model_path", "model/cardio_model.json")
	v.SetDefault("web_root", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("database_url", "")
	v.SetDefault("enable_db", false)
	v.SetDefault("max_body_bytes", 1<<20)
	v.SetDefault("chat_rate_limit", 0)
	v.SetDefault("chat_rate_burst", 5)
}

func validate(cfg *Config) error {
	if cfg.EnableDB && cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required when ENABLE_DB=true")
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", cfg.LogFormat)
	}
	if cfg.ChatRateLimit < 0 {
		return fmt.Errorf("CHAT_RATE_LIMIT must not be negative")
	}
	if cfg.ChatRateLimit > 0 && cfg.ChatRateBurst < 1 {
		return fmt.Errorf("CHAT_RATE_BURST must be at least 1 when rate limiting is enabled")
	}
	if cfg.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive")
	}
	return nil
}
