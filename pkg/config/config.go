package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Bandit   BanditConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// StateTTLSeconds bounds how long checkpointed context state lives in
	// the cache. 0 disables expiry.
	StateTTLSeconds int
}

// BanditConfig carries the engine defaults; per-context overrides come
// from the config repository at runtime.
type BanditConfig struct {
	PriorBudget      float64
	LambdaFG         float64
	BonusScale       float64
	SuccessThreshold float64
	ConfidenceLevel  float64
	Seed             int64
	MaxIdleContexts  int
}

func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "x-recruiter"),
			Version:     getEnv("APP_VERSION", "dev"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "xrecruiter"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:            getEnv("REDIS_ADDR", ""),
			Password:        getEnv("REDIS_PASSWORD", ""),
			DB:              getEnvInt("REDIS_DB", 0),
			StateTTLSeconds: getEnvInt("REDIS_STATE_TTL_SECONDS", 86400),
		},
		Bandit: BanditConfig{
			PriorBudget:      getEnvFloat("BANDIT_PRIOR_BUDGET", 1000),
			LambdaFG:         getEnvFloat("BANDIT_LAMBDA_FG", 0.1),
			BonusScale:       getEnvFloat("BANDIT_BONUS_SCALE", 0.05),
			SuccessThreshold: getEnvFloat("BANDIT_SUCCESS_THRESHOLD", 0.5),
			ConfidenceLevel:  getEnvFloat("BANDIT_CONFIDENCE_LEVEL", 0.95),
			Seed:             int64(getEnvInt("BANDIT_SEED", 0)),
			MaxIdleContexts:  getEnvInt("BANDIT_MAX_IDLE_CONTEXTS", 256),
		},
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
