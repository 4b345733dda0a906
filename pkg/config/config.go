package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	OpenAI   OpenAIConfig
	OTEL     OTELConfig
	Match    MatchConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string
	Port int
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// OpenAIConfig holds the text-completion backend configuration. An empty
// APIKey disables the LLM extraction strategy entirely.
type OpenAIConfig struct {
	APIKey         string
	Model          string
	TimeoutSeconds int
	RateLimitRPM   int
	RateLimitBurst int
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// MatchConfig holds matching pipeline tuning. The score weights are
// empirical defaults, not derived from labeled relevance data, which is
// why they are configuration rather than constants.
type MatchConfig struct {
	PageSize             int
	TargetCandidates     int
	BioTermLimit         int
	StageTimeoutSeconds  int
	IntentCacheSeconds   int
	WeightSpecialization int
	WeightProviderType   int
	WeightExperienceCap  int
	WeightRatingCap      int
	WeightVerification   int
	WeightProximityNear  int
	WeightProximityMid   int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
			Env:  getEnv("APP_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "caregiver_match"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		OpenAI: OpenAIConfig{
			APIKey:         getEnv("OPENAI_API_KEY", ""),
			Model:          getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			TimeoutSeconds: getEnvAsInt("OPENAI_TIMEOUT_SECONDS", 5),
			RateLimitRPM:   getEnvAsInt("OPENAI_RATE_LIMIT_RPM", 60),
			RateLimitBurst: getEnvAsInt("OPENAI_RATE_LIMIT_BURST", 5),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "caregiver-match"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
		Match: MatchConfig{
			PageSize:             getEnvAsInt("MATCH_PAGE_SIZE", 10),
			TargetCandidates:     getEnvAsInt("MATCH_TARGET_CANDIDATES", 10),
			BioTermLimit:         getEnvAsInt("MATCH_BIO_TERM_LIMIT", 3),
			StageTimeoutSeconds:  getEnvAsInt("MATCH_STAGE_TIMEOUT_SECONDS", 2),
			IntentCacheSeconds:   getEnvAsInt("MATCH_INTENT_CACHE_SECONDS", 60),
			WeightSpecialization: getEnvAsInt("MATCH_WEIGHT_SPECIALIZATION", 35),
			WeightProviderType:   getEnvAsInt("MATCH_WEIGHT_PROVIDER_TYPE", 20),
			WeightExperienceCap:  getEnvAsInt("MATCH_WEIGHT_EXPERIENCE_CAP", 20),
			WeightRatingCap:      getEnvAsInt("MATCH_WEIGHT_RATING_CAP", 15),
			WeightVerification:   getEnvAsInt("MATCH_WEIGHT_VERIFICATION", 10),
			WeightProximityNear:  getEnvAsInt("MATCH_WEIGHT_PROXIMITY_NEAR", 10),
			WeightProximityMid:   getEnvAsInt("MATCH_WEIGHT_PROXIMITY_MID", 5),
		},
	}, nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
