package config

import (
	"time"

	"regionview/internal/region"
)

const (
	DefaultPort      = "8080"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultGeoKeyedBaseURL   = "https://api.ipapi.com"
	DefaultGeoKeylessBaseURL = "https://ipapi.co"
	DefaultGeoTimeout        = 5 * time.Second

	DefaultEasternThreshold = region.DefaultEasternThreshold
	DefaultTimezone         = "Local"
	DefaultAssetsDir        = "./assets"

	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 15 * time.Second
	DefaultMaxRequestSize = 64 * 1024 // 64KB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultDotEnvFile = ".env"
)
