package config

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const defaultSessionSecret = "supanos-dev-session-secret"

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string `mapstructure:"SERVER_PORT"`
	Env        string `mapstructure:"APP_ENV"`
	LogLevel   string `mapstructure:"LOG_LEVEL"`

	DBDriver    string `mapstructure:"DB_DRIVER"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	ResetDB     bool   `mapstructure:"RESET_DB"`

	RedisURL string `mapstructure:"REDIS_URL"`

	SessionStore  string        `mapstructure:"SESSION_STORE"`
	SessionSecret string        `mapstructure:"SESSION_SECRET"`
	SessionTTL    time.Duration `mapstructure:"SESSION_TTL"`
	CookieSecure  bool          `mapstructure:"COOKIE_SECURE"`

	UploadDir      string `mapstructure:"UPLOAD_DIR"`
	UploadMaxBytes int64  `mapstructure:"UPLOAD_MAX_BYTES"`

	CORSOrigins        string `mapstructure:"CORS_ORIGINS"`
	SwaggerHost        string `mapstructure:"SWAGGER_HOST"`
	LoginRatePerMinute int    `mapstructure:"LOGIN_RATE_PER_MINUTE"`
}

// Load builds Config from environment (and an optional .env file) with sensible defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "5000")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DATABASE_URL", "data/supanos.db")
	v.SetDefault("RESET_DB", false)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("SESSION_STORE", "db")
	v.SetDefault("SESSION_SECRET", defaultSessionSecret)
	v.SetDefault("SESSION_TTL", 24*time.Hour)
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("UPLOAD_DIR", "public/uploads")
	v.SetDefault("UPLOAD_MAX_BYTES", 5*1024*1024)
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("SWAGGER_HOST", "")
	v.SetDefault("LOGIN_RATE_PER_MINUTE", 20)

	// .env is optional
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	cfg.DBDriver = strings.ToLower(cfg.DBDriver)
	cfg.SessionStore = strings.ToLower(cfg.SessionStore)
	if cfg.SessionSecret == defaultSessionSecret && cfg.IsProduction() {
		log.Warn().Msg("SESSION_SECRET is not set; using the development secret")
	}
	return cfg, nil
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// AllowedOrigins splits CORS_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
