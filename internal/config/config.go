// File: internal/config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort    string
	Environment   string
	JWTSecretKey  string
	AccessPINHash string

	// Completion service settings. The API key may be empty: the app still
	// runs, and turns fail with an in-conversation message instead.
	LLMAPIKey  string
	LLMBaseURL string
	LLMModel   string

	// StoreType selects the persistence backend: sqlite, bolt or memory.
	StoreType string
	StorePath string

	HistoryWindow int
}

// Load reads configuration from environment variables or .env file.
func Load() *Config {
	env := os.Getenv("ENV")
	if strings.ToLower(env) != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}

	cfg := &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		Environment:   env,
		JWTSecretKey:  getEnv("JWT_SECRET_KEY", ""),
		AccessPINHash: getEnv("ACCESS_PIN_HASH", ""),
		LLMAPIKey:     getEnv("COMPANION_LLM_KEY", ""),
		LLMBaseURL:    getEnv("COMPANION_LLM_BASE_URL", ""),
		LLMModel:      getEnv("COMPANION_LLM_MODEL", ""),
		StoreType:     getEnv("STORE_TYPE", "sqlite"),
		StorePath:     getEnv("STORE_PATH", "companion.db"),
		HistoryWindow: getEnvAsInt("HISTORY_WINDOW", 20),
	}

	// Validation for production environments
	if strings.ToLower(env) == "production" {
		missing := []string{}
		if cfg.JWTSecretKey == "" {
			missing = append(missing, "JWT_SECRET_KEY")
		}
		if cfg.AccessPINHash == "" {
			missing = append(missing, "ACCESS_PIN_HASH")
		}
		if len(missing) > 0 {
			log.Fatalf("Missing required production environment variables: %v", missing)
		}
	}

	return cfg
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an env var as an integer, with a fallback.
func getEnvAsInt(key string, defaultValue int) int {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(strValue)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as integer. Using default value.", key)
		return defaultValue
	}
	return intValue
}
