package config

import (
	"os"
	"strconv"
)

type AppConfig struct {
	DebugMode      bool
	JudgeConfig    *JudgeConfig
	GradingConfig  *GradingConfig
	PostgresConfig *PostgresConfig
	RedisConfig    *RedisConfig
	MongoConfig    *MongoConfig
	JwtConfig      *JwtConfig
}

// NewSystemConfig resolves the full configuration from the environment once at
// startup. Nothing outside this package reads environment variables.
func NewSystemConfig() *AppConfig {
	return &AppConfig{
		DebugMode:      os.Getenv("DEBUG_MODE") == "true",
		JudgeConfig:    NewJudgeConfig(),
		GradingConfig:  NewGradingConfig(),
		PostgresConfig: NewPostgresConfig(),
		RedisConfig:    NewRedisConfig(),
		MongoConfig:    NewMongoConfig(),
		JwtConfig:      NewJwtConfig(),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return value
}

func getFloatEnv(key string, fallback float64) float64 {
	value, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return fallback
	}
	return value
}
