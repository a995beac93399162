package config

import "time"

// Environment variable names.
const (
	envPort           = "PORT"
	envProvider       = "PROVIDER"
	envLeagues        = "LEAGUES"
	envCampaign       = "CAMPAIGN"
	envCronSecret     = "CRON_SECRET"
	envAdminToken     = "ADMIN_TOKEN"
	envScheduleSpec   = "SCHEDULE_CRON"
	envScoreboardSpec = "SCOREBOARD_CRON"
	envSchedulerOn    = "SCHEDULER_ENABLED"

	envSportsfeedBaseURL  = "SPORTSFEED_BASE_URL"
	envSportsfeedTimeout  = "SPORTSFEED_TIMEOUT"
	envSportsfeedRetries  = "SPORTSFEED_RETRY_ATTEMPTS"
	envSportsfeedBackoff  = "SPORTSFEED_RETRY_BACKOFF"
	envSportsfeedInterval = "SPORTSFEED_MIN_INTERVAL"

	envPostgresDSN   = "POSTGRES_DSN"
	envRedisAddr     = "REDIS_ADDR"
	envRedisPassword = "REDIS_PASSWORD"
	envRedisDB       = "REDIS_DB"
	envMongoURI      = "MONGO_URI"
	envMongoDatabase = "MONGO_DATABASE"

	envMetricsEnabled = "METRICS_ENABLED"
	envMetricsPort    = "METRICS_PORT"
	envMetricsService = "METRICS_SERVICE_NAME"
	envOtlpEndpoint   = "OTLP_ENDPOINT"
	envOtlpInsecure   = "OTLP_INSECURE"
)

// Defaults.
const (
	defaultPort           = "8080"
	defaultProvider       = "sportsfeed"
	defaultLeagues        = "NFL"
	defaultCampaign       = "2026"
	defaultScheduleSpec   = "0 * * * *"
	defaultScoreboardSpec = "* * * * *"

	defaultSportsfeedTimeout = 10 * time.Second
	defaultRetryAttempts     = 1
	defaultRetryBackoff      = 200 * time.Millisecond

	defaultMongoDatabase = "chainlink"

	defaultMetricsPort    = "9090"
	defaultMetricsService = "chainlink-service"
)
