package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// Telegram
	BotToken        string
	BotServiceToken string
	WebAppURL       string

	// Optional cache; empty disables it.
	RedisURL string

	// Reminder pipeline
	ReminderTickInterval time.Duration
	DispatchThrottle     time.Duration
	SendTimeout          time.Duration

	// HTTP rate limit in ulule/limiter notation, e.g. "120-M".
	RateLimit string
}

// LoadConfig loads configuration from environment variables and a .env file
// if present. BOT_TOKEN and BOT_SERVICE_TOKEN are required; everything else
// has a default.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("BOT_TOKEN", "")
	viper.SetDefault("BOT_SERVICE_TOKEN", "")
	viper.SetDefault("WEBAPP_URL", "http://localhost:3000")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("REMINDER_TICK_INTERVAL", "1m")
	viper.SetDefault("DISPATCH_THROTTLE", "350ms")
	viper.SetDefault("SEND_TIMEOUT", "10s")
	viper.SetDefault("RATE_LIMIT", "120-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.BotToken = viper.GetString("BOT_TOKEN")
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	cfg.BotServiceToken = viper.GetString("BOT_SERVICE_TOKEN")
	if cfg.BotServiceToken == "" {
		return nil, fmt.Errorf("BOT_SERVICE_TOKEN is required")
	}

	cfg.WebAppURL = viper.GetString("WEBAPP_URL")
	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	cfg.ReminderTickInterval = parseDurationOr("REMINDER_TICK_INTERVAL", time.Minute)
	cfg.DispatchThrottle = parseDurationOr("DISPATCH_THROTTLE", 350*time.Millisecond)
	cfg.SendTimeout = parseDurationOr("SEND_TIMEOUT", 10*time.Second)

	return cfg, nil
}

func parseDurationOr(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		return fallback
	}
	return d
}
