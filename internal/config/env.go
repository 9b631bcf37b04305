package config

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
)

// envFiles are loaded in order; godotenv.Load never overrides variables
// that are already set, so the first file wins for duplicated keys.
var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads .env style files that exist. Missing files are skipped.
func loadEnvFiles(paths ...string) error {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
		slog.Debug("Loaded environment file", "path", path)
	}
	return nil
}
