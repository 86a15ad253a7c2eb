package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from the first .env file found among
// paths (default: ".env"). Variables already set win. It returns the file
// loaded, or "" when none was found.
func LoadEnv(paths ...string) (string, error) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return "", err
		}
		return path, nil
	}
	return "", nil
}
