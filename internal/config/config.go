package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	envLogLevel  = "TOMERATER_LOG_LEVEL"
	envLogFormat = "TOMERATER_LOG_FORMAT"
	envSeedFile  = "TOMERATER_SEED_FILE"
	envOutput    = "TOMERATER_OUTPUT"
)

type Config struct {
	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=json console"`
	SeedFile  string `validate:"omitempty,file"`
	Output    string `validate:"oneof=text json"`
}

var validate = validator.New()

// LoadEnvFiles reads .env and .env.local. Variables already present in the
// environment are not overridden.
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// FromEnv builds a Config from the environment and validates it.
func FromEnv() (Config, error) {
	cfg := Config{
		LogLevel:  strings.ToLower(getEnv(envLogLevel, "info")),
		LogFormat: strings.ToLower(getEnv(envLogFormat, "console")),
		SeedFile:  getEnv(envSeedFile, ""),
		Output:    strings.ToLower(getEnv(envOutput, "text")),
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Load reads the env files and then the environment.
func Load() (Config, error) {
	LoadEnvFiles()
	return FromEnv()
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
