package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// ConfigurationError means a required setting is absent. It indicates a
// deployment defect, so callers fail fast instead of surfacing it as a
// user-facing message.
type ConfigurationError struct {
	Key string
}

func (e ConfigurationError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", e.Key)
}

type Email struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
}

// Enabled reports whether the transactional-email trigger is configured.
// Absent email config silently disables sending.
func (e Email) Enabled() bool {
	return e.ServiceID != "" && e.PublicKey != ""
}

type Config struct {
	Port            string
	PostgresURL     string
	RedisAddr       string
	APIBaseURL      string
	Email           Email
	PollInterval    time.Duration
	PollMaxAttempts int
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return Config{
		Port:        port,
		PostgresURL: os.Getenv("POSTGRES_URL"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		APIBaseURL:  os.Getenv("API_BASE_URL"),
		Email: Email{
			ServiceID:  os.Getenv("EMAIL_SERVICE_ID"),
			TemplateID: os.Getenv("EMAIL_TEMPLATE_ID"),
			PublicKey:  os.Getenv("EMAIL_PUBLIC_KEY"),
		},
		PollInterval:    readDurationSeconds("POLL_INTERVAL_SECONDS", 2),
		PollMaxAttempts: readInt("POLL_MAX_ATTEMPTS", 30),
	}
}

// Validate checks the settings every deployment needs. Email settings are
// deliberately not checked here.
func (c Config) Validate() error {
	if c.PostgresURL == "" {
		return ConfigurationError{Key: "POSTGRES_URL"}
	}
	if c.RedisAddr == "" {
		return ConfigurationError{Key: "REDIS_ADDR"}
	}
	return nil
}

func readDurationSeconds(key string, fallback int) time.Duration {
	return time.Duration(readInt(key, fallback)) * time.Second
}

func readInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
