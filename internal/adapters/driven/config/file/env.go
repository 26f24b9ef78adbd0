package file

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
)

// EnvOverrides maps config keys to the environment variables that
// override them.
var EnvOverrides = map[string]string{
	"api.base_url":            "RECETASU_API_URL",
	"api.timeout_seconds":     "RECETASU_API_TIMEOUT",
	"api.requests_per_second": "RECETASU_API_RPS",
	"comments.backend":        "RECETASU_COMMENTS_BACKEND",
}

// LoadDotEnv loads variables from the given .env files into the process
// environment. Variables already set are never overwritten, and missing
// files are skipped. With no paths it reads ".env" in the working directory.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}
