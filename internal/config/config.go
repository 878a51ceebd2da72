package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName                string
	AppEnv                 string
	AppPort                string
	DatabaseURL            string
	RedisURL               string
	NATSURL                string
	AttentionSubject       string
	JWTSecret              string
	TokenTTL               time.Duration
	CloudinaryCloudName    string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryUploadFolder string
	DashboardCacheTTL      time.Duration
	SweepWarmup            time.Duration
	SweepInterval          time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("GESTOR")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Gestor API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("attention.subject", "gestor.projects.attention")
	v.SetDefault("cloudinary.folder", "gestor/attachments")
	v.SetDefault("dashboard.cache_ttl", "5m")
	v.SetDefault("token.ttl", "12h")
	v.SetDefault("sweep.warmup", "5s")
	v.SetDefault("sweep.interval", "1h")

	ttl, err := parseDuration(v, "dashboard.cache_ttl")
	if err != nil {
		return Config{}, fmt.Errorf("invalid dashboard cache ttl: %w", err)
	}

	tokenTTL, err := parseDuration(v, "token.ttl")
	if err != nil {
		return Config{}, fmt.Errorf("invalid token ttl: %w", err)
	}

	sweepWarmup, err := parseDuration(v, "sweep.warmup")
	if err != nil {
		return Config{}, fmt.Errorf("invalid sweep warmup: %w", err)
	}

	sweepInterval, err := parseDuration(v, "sweep.interval")
	if err != nil {
		return Config{}, fmt.Errorf("invalid sweep interval: %w", err)
	}

	cfg := Config{
		AppName:                v.GetString("app.name"),
		AppEnv:                 v.GetString("app.env"),
		AppPort:                v.GetString("app.port"),
		DatabaseURL:            v.GetString("database.url"),
		RedisURL:               v.GetString("redis.url"),
		NATSURL:                v.GetString("nats.url"),
		AttentionSubject:       v.GetString("attention.subject"),
		JWTSecret:              v.GetString("jwt.secret"),
		TokenTTL:               tokenTTL,
		CloudinaryCloudName:    v.GetString("cloudinary.cloud_name"),
		CloudinaryAPIKey:       v.GetString("cloudinary.api_key"),
		CloudinaryAPISecret:    v.GetString("cloudinary.api_secret"),
		CloudinaryUploadFolder: v.GetString("cloudinary.folder"),
		DashboardCacheTTL:      ttl,
		SweepWarmup:            sweepWarmup,
		SweepInterval:          sweepInterval,
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := v.GetString(key)
	if raw == "" {
		return 0, fmt.Errorf("%s is empty", key)
	}

	return time.ParseDuration(raw)
}
