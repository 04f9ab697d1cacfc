// Package config loads configuration structs from the environment.
//
// Values come from the process environment, optionally seeded from .env
// files. Struct fields use envconfig tags:
//
//	type Config struct {
//		Region string `envconfig:"AWS_REGION" required:"true"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// DefaultEnvFile is loaded by Load when present.
const DefaultEnvFile = ".env"

// Load reads DefaultEnvFile if it exists and fills every target from the environment.
func Load(targets ...any) error {
	return LoadFiles([]string{DefaultEnvFile}, targets...)
}

// LoadFiles reads the given env files, ignoring missing ones, and fills every
// target from the environment. Variables already set in the environment win
// over file values.
func LoadFiles(files []string, targets ...any) error {
	for _, file := range files {
		if file == "" {
			continue
		}
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: failed to load %s: %w", file, err)
		}
	}

	for _, target := range targets {
		if err := envconfig.Process("", target); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}

	return nil
}
