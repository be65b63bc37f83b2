// Package config loads the application configuration: defaults, an optional
// config.yaml, a .env file and JOSE_* environment variables, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// EnvFileCandidates lists where LoadEnv looks for a .env file, in order.
var EnvFileCandidates = []string{".env", filepath.Join("..", ".env")}

// LoadEnv loads the first existing .env file into the process environment.
// Variables already set are not overridden. It returns the loaded path, or ""
// when no file exists.
func LoadEnv() (string, error) {
	for _, envFile := range EnvFileCandidates {
		if _, err := os.Stat(envFile); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			return "", fmt.Errorf("error loading %s: %w", envFile, err)
		}
		return envFile, nil
	}
	return "", nil
}

// GetEnv retrieves an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}
