package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// loadEnvFiles loads environment variables from .env/.env.local if present.
// Existing process environment variables are never overwritten; godotenv.Load
// already skips keys that are set. Missing files are not an error.
func loadEnvFiles() {
	for _, path := range []string{".env", ".env.local"} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			slog.Warn("failed to load env file", "path", path, "error", err)
			continue
		}
		slog.Debug("loaded environment variables", "path", path)
	}
}
