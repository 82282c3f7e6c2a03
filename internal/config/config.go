package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName           string
	AppEnv            string
	AppPort           string
	LogLevel          zerolog.Level
	DatabaseDSN       string
	RedisURL          string
	NATSURL           string
	NATSSubject       string
	DashboardCacheTTL time.Duration
	RateLimitMax      int
	RateLimitWindow   time.Duration
	CORSAllowOrigins  string
	AccessLog         bool
	StreamKeepAlive   time.Duration
	TUILogFile        string
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
	v.SetEnvPrefix("KIDTASK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "KidTask API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("database.dsn", "file:kidtask?mode=memory&cache=shared")
	v.SetDefault("nats.subject", "kidtask.tasks.assigned")
	v.SetDefault("dashboard.cache_ttl", "5m")
	v.SetDefault("rate_limit.max", 120)
	v.SetDefault("rate_limit.window", "1m")
	v.SetDefault("stream.keep_alive", "30s")
	v.SetDefault("cors.allow_origins", "*")
	v.SetDefault("http.access_log", false)

	ttl, err := parseDuration(v.GetString("dashboard.cache_ttl"), 5*time.Minute)
	if err != nil {
		return Config{}, fmt.Errorf("invalid dashboard cache ttl: %w", err)
	}

	window, err := parseDuration(v.GetString("rate_limit.window"), time.Minute)
	if err != nil {
		return Config{}, fmt.Errorf("invalid rate limit window: %w", err)
	}

	keepAlive, err := parseDuration(v.GetString("stream.keep_alive"), 30*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("invalid stream keep alive: %w", err)
	}

	level, err := zerolog.ParseLevel(strings.ToLower(v.GetString("log.level")))
	if err != nil {
		return Config{}, fmt.Errorf("invalid log level: %w", err)
	}

	cfg := Config{
		AppName:           v.GetString("app.name"),
		AppEnv:            v.GetString("app.env"),
		AppPort:           v.GetString("app.port"),
		LogLevel:          level,
		DatabaseDSN:       v.GetString("database.dsn"),
		RedisURL:          v.GetString("redis.url"),
		NATSURL:           v.GetString("nats.url"),
		NATSSubject:       v.GetString("nats.subject"),
		DashboardCacheTTL: ttl,
		RateLimitMax:      v.GetInt("rate_limit.max"),
		RateLimitWindow:   window,
		CORSAllowOrigins:  v.GetString("cors.allow_origins"),
		AccessLog:         v.GetBool("http.access_log"),
		StreamKeepAlive:   keepAlive,
		TUILogFile:        v.GetString("tui.log_file"),
	}

	if cfg.DatabaseDSN == "" {
		return Config{}, fmt.Errorf("database dsn must be provided")
	}

	if cfg.RateLimitMax <= 0 {
		cfg.RateLimitMax = 120
	}

	return cfg, nil
}

func parseDuration(value string, fallback time.Duration) (time.Duration, error) {
	if strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	return time.ParseDuration(value)
}
