package config

import (
	"log/slog"
	"os"

	"github.com/subosito/gotenv"
)

// AppEnv returns APP_ENV, defaulting to dev.
func AppEnv() string {
	if env := os.Getenv("APP_ENV"); env != "" {
		return env
	}
	return "dev"
}

// LoadEnv loads config/envs/.env.<env> into the process environment without
// overriding variables that are already set.
func LoadEnv(env string) {
	envFile := "config/envs/.env." + env
	if err := gotenv.Load(envFile); err != nil {
		slog.Warn("[Config] No .env file found, using OS environment", slog.String("file", envFile))
	}
}
