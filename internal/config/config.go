package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string
	Stage       string
	TablePrefix string
	Store       StoreConfig
	AWS         AWSConfig
	Auth        AuthConfig
}

// StoreConfig selects the backing store implementation
type StoreConfig struct {
	Type string // "dynamo" or "memory"
}

// AWSConfig holds AWS client configuration
type AWSConfig struct {
	Region      string
	EndpointURL string // non-empty points clients at a local endpoint
}

// AuthConfig holds token validation and issuance configuration
type AuthConfig struct {
	ValidateFunctionName   string
	TokenTTLMinutes        int
	ValidateTimeoutSeconds int
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Set up Viper
	viper.AutomaticEnv()
	viper.SetDefault("PORT", "8081")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("STAGE", "dev")
	viper.SetDefault("STORE_TYPE", "dynamo")
	viper.SetDefault("AWS_REGION", "us-east-1")
	viper.SetDefault("TOKEN_TTL_MINUTES", 60)
	viper.SetDefault("VALIDATE_TIMEOUT_SECONDS", 5)

	config := &Config{
		Environment: viper.GetString("ENVIRONMENT"),
		Port:        viper.GetString("PORT"),
		Stage:       viper.GetString("STAGE"),
		TablePrefix: viper.GetString("TABLE_PREFIX"),
		Store: StoreConfig{
			Type: viper.GetString("STORE_TYPE"),
		},
		AWS: AWSConfig{
			Region:      viper.GetString("AWS_REGION"),
			EndpointURL: viper.GetString("AWS_ENDPOINT_URL"),
		},
		Auth: AuthConfig{
			ValidateFunctionName:   viper.GetString("VALIDATE_FUNCTION_NAME"),
			TokenTTLMinutes:        viper.GetInt("TOKEN_TTL_MINUTES"),
			ValidateTimeoutSeconds: viper.GetInt("VALIDATE_TIMEOUT_SECONDS"),
		},
	}

	return config, nil
}

// TableName derives the table name for an entity family from the deployment
// stage, e.g. "dev_t_activities". TABLE_PREFIX overrides the stage-derived
// prefix when set.
func (c *Config) TableName(entity string) string {
	prefix := c.TablePrefix
	if prefix == "" {
		prefix = c.Stage
	}
	return fmt.Sprintf("%s_t_%s", prefix, entity)
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// GetEnvAsInt gets an environment variable as integer with a fallback value
func GetEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
