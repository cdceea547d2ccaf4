package config

const (
	EnvPort      = "PORT"
	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFormat = "LOG_FORMAT"

	EnvGeoAPIKey         = "GEO_API_KEY"
	EnvGeoKeyedBaseURL   = "GEO_KEYED_BASE_URL"
	EnvGeoKeylessBaseURL = "GEO_KEYLESS_BASE_URL"
	EnvGeoTimeout        = "GEO_TIMEOUT"

	EnvEasternThreshold = "EASTERN_LONGITUDE_THRESHOLD"
	EnvDefaultTimezone  = "DEFAULT_TIMEZONE"
	EnvAssetsDir        = "ASSETS_DIR"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvDotEnvFile = "DOTENV_FILE"
)
