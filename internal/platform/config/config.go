package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Addr               string
	DatabaseURL        string
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	SessionTTL         time.Duration
	SessionCookie      string
	CookieSecure       bool
	AllowedOrigin      string
	FrontendDir        string
	Environment        string
	SeedAdminName      string
	SeedAdminEmail     string
	SeedAdminPassword  string
	RunMigrations      bool
	MigrationsDir      string
	RunSeed            bool
	MaxBodyBytes       int64
	RateLimitPerMinute int
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("APP_ADDR", ":8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SESSION_TTL", "30m")
	v.SetDefault("SESSION_COOKIE", "workhub_session")
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("ALLOWED_ORIGIN", "http://localhost:3000")
	v.SetDefault("FRONTEND_DIR", "frontend/dist")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("SEED_ADMIN_NAME", "Administrator")
	v.SetDefault("SEED_ADMIN_EMAIL", "")
	v.SetDefault("SEED_ADMIN_PASSWORD", "")
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("MIGRATIONS_DIR", "migrations")
	v.SetDefault("RUN_SEED", true)
	v.SetDefault("MAX_BODY_BYTES", 1048576)
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 60)

	return Config{
		Addr:               v.GetString("APP_ADDR"),
		DatabaseURL:        v.GetString("DATABASE_URL"),
		RedisAddr:          v.GetString("REDIS_ADDR"),
		RedisPassword:      v.GetString("REDIS_PASSWORD"),
		RedisDB:            v.GetInt("REDIS_DB"),
		SessionTTL:         v.GetDuration("SESSION_TTL"),
		SessionCookie:      v.GetString("SESSION_COOKIE"),
		CookieSecure:       v.GetBool("COOKIE_SECURE"),
		AllowedOrigin:      v.GetString("ALLOWED_ORIGIN"),
		FrontendDir:        v.GetString("FRONTEND_DIR"),
		Environment:        v.GetString("APP_ENV"),
		SeedAdminName:      v.GetString("SEED_ADMIN_NAME"),
		SeedAdminEmail:     v.GetString("SEED_ADMIN_EMAIL"),
		SeedAdminPassword:  v.GetString("SEED_ADMIN_PASSWORD"),
		RunMigrations:      v.GetBool("RUN_MIGRATIONS"),
		MigrationsDir:      v.GetString("MIGRATIONS_DIR"),
		RunSeed:            v.GetBool("RUN_SEED"),
		MaxBodyBytes:       v.GetInt64("MAX_BODY_BYTES"),
		RateLimitPerMinute: v.GetInt("RATE_LIMIT_PER_MINUTE"),
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.SessionTTL < time.Minute {
		return fmt.Errorf("SESSION_TTL must be at least one minute")
	}
	if strings.TrimSpace(c.SessionCookie) == "" {
		return fmt.Errorf("SESSION_COOKIE must not be empty")
	}
	if c.Environment == "production" {
		if !c.CookieSecure {
			return fmt.Errorf("COOKIE_SECURE must be enabled in production")
		}
		if c.RunSeed && strings.TrimSpace(c.SeedAdminPassword) == "" {
			return fmt.Errorf("SEED_ADMIN_PASSWORD must be set or RUN_SEED disabled in production")
		}
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	return nil
}
