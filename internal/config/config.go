package config

import (
	"chainlink-service/internal/domain"
)

// Config holds runtime configuration for the server.
type Config struct {
	Port     string
	Provider string
	Leagues  []domain.League
	Campaign string

	CronSecret string
	AdminToken string

	Scheduler  SchedulerConfig
	Sportsfeed SportsfeedConfig
	Storage    StorageConfig
	Metrics    MetricsConfig
}

// SchedulerConfig controls the in-process cron entries.
type SchedulerConfig struct {
	Enabled        bool
	ScheduleSpec   string
	ScoreboardSpec string
}

// SportsfeedConfig controls how the upstream sports-data client behaves.
type SportsfeedConfig struct {
	BaseURL       string
	Timeout       Duration
	RetryAttempts int
	RetryBackoff  Duration
	MinInterval   Duration
}

// StorageConfig selects the backing stores. Empty values fall back to
// in-memory implementations, which keeps local runs and tests dependency-free.
type StorageConfig struct {
	PostgresDSN   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	MongoURI      string
	MongoDatabase string
}

// MetricsConfig controls telemetry exporters.
type MetricsConfig struct {
	Enabled      bool
	Port         string
	ServiceName  string
	OtlpEndpoint string
	OtlpInsecure bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:       envOrDefault(envPort, defaultPort),
		Provider:   envOrDefault(envProvider, defaultProvider),
		Leagues:    loadLeagues(),
		Campaign:   envOrDefault(envCampaign, defaultCampaign),
		CronSecret: envOrDefault(envCronSecret, ""),
		AdminToken: envOrDefault(envAdminToken, ""),
		Scheduler: SchedulerConfig{
			Enabled:        boolEnvOrDefault(envSchedulerOn, false),
			ScheduleSpec:   envOrDefault(envScheduleSpec, defaultScheduleSpec),
			ScoreboardSpec: envOrDefault(envScoreboardSpec, defaultScoreboardSpec),
		},
		Sportsfeed: SportsfeedConfig{
			BaseURL:       envOrDefault(envSportsfeedBaseURL, ""),
			Timeout:       durationEnvOrDefault(envSportsfeedTimeout, defaultSportsfeedTimeout),
			RetryAttempts: intEnvOrDefault(envSportsfeedRetries, defaultRetryAttempts),
			RetryBackoff:  durationEnvOrDefault(envSportsfeedBackoff, defaultRetryBackoff),
			MinInterval:   durationEnvOrDefault(envSportsfeedInterval, 0),
		},
		Storage: StorageConfig{
			PostgresDSN:   envOrDefault(envPostgresDSN, ""),
			RedisAddr:     envOrDefault(envRedisAddr, ""),
			RedisPassword: envOrDefault(envRedisPassword, ""),
			RedisDB:       intEnvOrDefault(envRedisDB, 0),
			MongoURI:      envOrDefault(envMongoURI, ""),
			MongoDatabase: envOrDefault(envMongoDatabase, defaultMongoDatabase),
		},
		Metrics: MetricsConfig{
			Enabled:      boolEnvOrDefault(envMetricsEnabled, false),
			Port:         envOrDefault(envMetricsPort, defaultMetricsPort),
			ServiceName:  envOrDefault(envMetricsService, defaultMetricsService),
			OtlpEndpoint: envOrDefault(envOtlpEndpoint, ""),
			OtlpInsecure: boolEnvOrDefault(envOtlpInsecure, false),
		},
	}
}

// loadLeagues parses the LEAGUES csv, dropping unsupported codes.
func loadLeagues() []domain.League {
	raw := csvEnvOrDefault(envLeagues, defaultLeagues)
	leagues := make([]domain.League, 0, len(raw))
	for _, code := range raw {
		league, err := domain.ParseLeague(code)
		if err != nil {
			continue
		}
		leagues = append(leagues, league)
	}
	if len(leagues) == 0 {
		leagues = []domain.League{domain.LeagueNFL}
	}
	return leagues
}
