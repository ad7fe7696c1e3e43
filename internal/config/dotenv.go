package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

const defaultDotEnvPath = ".env"

// loadDotEnv copies the variables from the .env file into the process
// environment. Variables that are already set keep their value. A missing
// file is not an error.
func loadDotEnv() error {
	path := os.Getenv("DOTENV")
	if path == "" {
		path = defaultDotEnvPath
	}

	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error loading %s: %w", path, err)
	}

	return nil
}
