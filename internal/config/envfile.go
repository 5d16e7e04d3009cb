package config

import (
	"os"
	"path/filepath"
)

// GetEnvFilePath returns the .env file read before the environment is parsed.
func GetEnvFilePath() string {
	path := os.Getenv("GPTMCP_ENV_FILE")
	if path == "" {
		path = ".env"
	}

	if !filepath.IsAbs(path) {
		if wd, err := os.Getwd(); err == nil {
			path = filepath.Join(wd, path)
		}
	}
	return path
}
