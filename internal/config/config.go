package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Database
		Auth
		Weather
		Global
	}

	HTTP struct {
		Port int32
		Host string
	}
	Database struct {
		// PrimaryDSN is the postgres connection string. When empty or
		// unreachable the server falls back to the embedded SQLite store.
		PrimaryDSN   string
		FallbackPath string
	}
	Auth struct {
		JWTSecret       string
		TokenExpiry     time.Duration
		BcryptCost      int
		CleanupSchedule string // Cron format: "0 * * * *" = hourly
	}
	Weather struct {
		APIKey  string
		BaseURL string // Overridable for tests; empty = Weatherbit via RapidAPI
		Timeout time.Duration
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8080)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)

	v.SetDefault("database_url", "")
	v.SetDefault("database_fallback_path", DefaultFallbackPath)

	// Auth defaults
	v.SetDefault("auth_jwt_secret", "")
	v.SetDefault("auth_token_expiry", "1h")
	v.SetDefault("auth_bcrypt_cost", 12)
	v.SetDefault("auth_cleanup_schedule", "0 * * * *") // Hourly at :00

	// Weather defaults
	v.SetDefault("rapidapi_key", "")
	v.SetDefault("weather_base_url", "")
	v.SetDefault("weather_timeout", "10s")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Database: Database{
			PrimaryDSN:   v.GetString("DATABASE_URL"),
			FallbackPath: v.GetString("DATABASE_FALLBACK_PATH"),
		},
		Auth: Auth{
			JWTSecret:       v.GetString("AUTH_JWT_SECRET"),
			TokenExpiry:     v.GetDuration("AUTH_TOKEN_EXPIRY"),
			BcryptCost:      v.GetInt("AUTH_BCRYPT_COST"),
			CleanupSchedule: v.GetString("AUTH_CLEANUP_SCHEDULE"),
		},
		Weather: Weather{
			APIKey:  v.GetString("RAPIDAPI_KEY"),
			BaseURL: v.GetString("WEATHER_BASE_URL"),
			Timeout: v.GetDuration("WEATHER_TIMEOUT"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}
}
