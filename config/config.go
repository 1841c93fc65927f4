package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// AppConfig is the environment driven configuration shared by the CLI and the
// render worker. Kafka settings are read by kafka_client.GetKafkaConfig.
type AppConfig struct {
	Env      string
	LogLevel string

	Preset     string
	StylesPath string

	FeedbackAPIURL   string
	FeedbackAPIToken string

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	ValkeyAddress  string
	ValkeyPassword string
	ValkeyTLS      bool
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

// Load reads AppConfig from the environment. Call LoadEnv first to pick up
// the .env file for the current APP_ENV.
func Load() (AppConfig, error) {
	cfg := AppConfig{
		Env:              AppEnv(),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		Preset:           strings.ToLower(getEnv("SENTIVIEW_PRESET", "classic")),
		StylesPath:       os.Getenv("SENTIVIEW_STYLES"),
		FeedbackAPIURL:   getEnv("FEEDBACK_API_URL", "http://127.0.0.1:8000"),
		FeedbackAPIToken: os.Getenv("FEEDBACK_API_TOKEN"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:    os.Getenv("OPENAI_BASE_URL"),
		OpenAIModel:      os.Getenv("OPENAI_MODEL"),
		ValkeyAddress:    getEnv("VALKEY_INIT_ADDRESS", "localhost:6379"),
		ValkeyPassword:   os.Getenv("VALKEY_PASSWORD"),
	}

	if raw := os.Getenv("VALKEY_TLS"); raw != "" {
		useTLS, err := strconv.ParseBool(raw)
		if err != nil {
			return AppConfig{}, fmt.Errorf("[Config] invalid VALKEY_TLS %q: %w", raw, err)
		}
		cfg.ValkeyTLS = useTLS
	}

	return cfg, nil
}
