package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	// Server
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	// Redis
	RedisURL string `mapstructure:"REDIS_URL"`

	// Logging
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// CORS
	CorsOrigins []string `mapstructure:"CORS_ORIGINS"`

	// Optimizer
	SalaryCap            int `mapstructure:"SALARY_CAP"`
	MaxLineups           int `mapstructure:"MAX_LINEUPS"`
	OptimizerCandidates  int `mapstructure:"OPTIMIZER_CANDIDATES"`
	OptimizerWorkers     int `mapstructure:"OPTIMIZER_WORKERS"`
	OptimizationTimeout  int `mapstructure:"OPTIMIZATION_TIMEOUT"`
	MaxPlayerExposurePct int `mapstructure:"MAX_PLAYER_EXPOSURE_PCT"`

	// Cache
	CacheTTLSeconds int `mapstructure:"CACHE_TTL_SECONDS"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("LOG_LEVEL", "")
	viper.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")
	viper.SetDefault("SALARY_CAP", 50000)
	viper.SetDefault("MAX_LINEUPS", 150)
	viper.SetDefault("OPTIMIZER_CANDIDATES", 2000)
	viper.SetDefault("OPTIMIZER_WORKERS", 4)
	viper.SetDefault("OPTIMIZATION_TIMEOUT", 30)
	viper.SetDefault("MAX_PLAYER_EXPOSURE_PCT", 60)
	viper.SetDefault("CACHE_TTL_SECONDS", 900)

	// Read from environment
	viper.AutomaticEnv()

	// Read config file if exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Parse CORS origins from comma-separated string
	if corsStr := viper.GetString("CORS_ORIGINS"); corsStr != "" {
		config.CorsOrigins = strings.Split(corsStr, ",")
	}

	return &config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
