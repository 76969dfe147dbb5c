package config

import (
	"os"
	"path/filepath"
	"sync"

	"fjacquet/customer-grouper/internal/logging"

	"github.com/joho/godotenv"
)

var once sync.Once

// LoadEnv loads environment variables from a .env file in the working
// directory or its parent, once per process. Variables already set win.
func LoadEnv(logger logging.Logger) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	once.Do(func() {
		envFile, ok := findEnvFile()
		if !ok {
			logger.Debug("No .env file found, using environment variables")
			return
		}

		if err := godotenv.Load(envFile); err != nil {
			logger.WithError(err).Warn("Error loading .env file")
			return
		}
		logger.Debug("Loaded environment variables", logging.Field{Key: logging.FieldFile, Value: envFile})
	})
}

func findEnvFile() (string, bool) {
	for _, candidate := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}

// GetEnv retrieves an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}
