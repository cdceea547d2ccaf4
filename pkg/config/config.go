package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"regionview/pkg/logger"
)

type Config struct {
	Port string

	LogLevel  string
	LogFormat string

	GeoAPIKey         string
	GeoKeyedBaseURL   string
	GeoKeylessBaseURL string
	GeoTimeout        time.Duration

	EasternThreshold float64
	DefaultTimezone  string
	AssetsDir        string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	Log *logger.Logger
}

// Load reads the optional .env file, then the environment. An invalid
// configuration is fatal.
func Load(serviceName string) *Config {
	dotEnvErr := loadDotEnv(getEnvStr(EnvDotEnvFile, DefaultDotEnvFile))

	cfg := FromEnv()
	cfg.Log = logger.New(logger.Config{
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
		AddSource: true,
		Service:   serviceName,
	})

	if dotEnvErr != nil {
		cfg.Log.Warn("Failed to load .env file", "error", dotEnvErr)
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

// FromEnv builds a Config from environment variables alone, without a logger.
func FromEnv() *Config {
	return &Config{
		Port: getEnvStr(EnvPort, DefaultPort),

		LogLevel:  getEnvStr(EnvLogLevel, DefaultLogLevel),
		LogFormat: getEnvStr(EnvLogFormat, DefaultLogFormat),

		GeoAPIKey:         getEnvStr(EnvGeoAPIKey, ""),
		GeoKeyedBaseURL:   getEnvStr(EnvGeoKeyedBaseURL, DefaultGeoKeyedBaseURL),
		GeoKeylessBaseURL: getEnvStr(EnvGeoKeylessBaseURL, DefaultGeoKeylessBaseURL),
		GeoTimeout:        getEnvDuration(EnvGeoTimeout, DefaultGeoTimeout),

		EasternThreshold: getEnvFloat(EnvEasternThreshold, DefaultEasternThreshold),
		DefaultTimezone:  getEnvStr(EnvDefaultTimezone, DefaultTimezone),
		AssetsDir:        getEnvStr(EnvAssetsDir, DefaultAssetsDir),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),
	}
}

func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if msg := validateBaseURL("GeoKeyedBaseURL", cfg.GeoKeyedBaseURL); msg != "" {
		errors = append(errors, msg)
	}
	if msg := validateBaseURL("GeoKeylessBaseURL", cfg.GeoKeylessBaseURL); msg != "" {
		errors = append(errors, msg)
	}
	if cfg.GeoTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("GeoTimeout must be positive, got: %s", cfg.GeoTimeout))
	}

	if cfg.EasternThreshold < -180 || cfg.EasternThreshold > 180 {
		errors = append(errors, fmt.Sprintf("EasternThreshold must be a longitude between -180 and 180, got: %g", cfg.EasternThreshold))
	}
	if cfg.DefaultTimezone != "" && cfg.DefaultTimezone != "Local" {
		if _, err := time.LoadLocation(cfg.DefaultTimezone); err != nil {
			errors = append(errors, fmt.Sprintf("DefaultTimezone must be an IANA zone name, got: %s", cfg.DefaultTimezone))
		}
	}
	if cfg.AssetsDir == "" {
		errors = append(errors, "AssetsDir cannot be empty")
	}

	if cfg.RateLimitWindow <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitWindow must be positive, got: %s", cfg.RateLimitWindow))
	}
	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	// The page must still have time to render the fallback after a lookup times out.
	if cfg.GeoTimeout > 0 && cfg.RequestTimeout > 0 && cfg.GeoTimeout >= cfg.RequestTimeout {
		errors = append(errors, fmt.Sprintf("GeoTimeout (%s) must be shorter than RequestTimeout (%s)", cfg.GeoTimeout, cfg.RequestTimeout))
	}
	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"port", cfg.Port,
		"log_level", cfg.LogLevel,
		"log_format", cfg.LogFormat,
		"geo_api_key", redactSecret(cfg.GeoAPIKey),
		"geo_keyed_base_url", cfg.GeoKeyedBaseURL,
		"geo_keyless_base_url", cfg.GeoKeylessBaseURL,
		"geo_timeout", cfg.GeoTimeout,
		"eastern_threshold", cfg.EasternThreshold,
		"default_timezone", cfg.DefaultTimezone,
		"assets_dir", cfg.AssetsDir,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
	)
}

func validateBaseURL(name, raw string) string {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Sprintf("%s must be an absolute http(s) URL, got: %s", name, raw)
	}
	return ""
}

func redactSecret(secret string) string {
	if secret == "" {
		return "<unset>"
	}
	if len(secret) <= 4 {
		return "***"
	}
	return secret[:2] + "***" + secret[len(secret)-2:]
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
