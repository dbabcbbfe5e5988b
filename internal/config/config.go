package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config aggregates runtime configuration for the PrepMate API.
type Config struct {
	Environment    string
	HTTPPort       int
	DatabaseURL    string
	DataStore      string
	LogLevel       string
	AllowedOrigins []string

	// Identity provider service account.
	FirebaseProjectID   string
	FirebaseClientEmail string
	FirebasePrivateKey  string

	// Generative model host.
	GeminiAPIKey string
	GeminiModel  string
}

// Load reads configuration from environment variables with sensible defaults for local development.
func Load() (Config, error) {
	databaseURL, err := getEnvOrFile("DATABASE_URL", "/run/secrets/prepmate_database_url")
	if err != nil {
		return Config{}, err
	}

	privateKey, err := getEnvOrFile("FIREBASE_PRIVATE_KEY", "/run/secrets/prepmate_firebase_private_key")
	if err != nil {
		return Config{}, err
	}

	geminiKey, err := getEnvOrFile("GEMINI_API_KEY", "/run/secrets/prepmate_gemini_api_key")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Environment:    getEnv("APP_ENV", "development"),
		DatabaseURL:    databaseURL,
		DataStore:      strings.ToLower(getEnv("DATA_STORE", "memory")),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", "info")),
		AllowedOrigins: parseCSV(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:8080")),

		FirebaseProjectID:   strings.TrimSpace(os.Getenv("FIREBASE_PROJECT_ID")),
		FirebaseClientEmail: strings.TrimSpace(os.Getenv("FIREBASE_CLIENT_EMAIL")),
		// Private keys pasted into env vars arrive with literal \n sequences.
		FirebasePrivateKey: strings.ReplaceAll(privateKey, `\n`, "\n"),

		GeminiAPIKey: strings.TrimSpace(geminiKey),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.0-flash-001"),
	}

	portValue := getEnv("PORT", getEnv("HTTP_PORT", "8080"))
	port, err := strconv.Atoi(portValue)
	if err != nil {
		return Config{}, fmt.Errorf("invalid port %q: %w", portValue, err)
	}
	cfg.HTTPPort = port

	if cfg.DataStore == "postgres" && cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATA_STORE is postgres but DATABASE_URL is not set")
	}

	for _, required := range []struct {
		name  string
		value string
	}{
		{"FIREBASE_PROJECT_ID", cfg.FirebaseProjectID},
		{"FIREBASE_CLIENT_EMAIL", cfg.FirebaseClientEmail},
		{"FIREBASE_PRIVATE_KEY", cfg.FirebasePrivateKey},
	} {
		if required.value == "" {
			return Config{}, fmt.Errorf("missing environment variable: %s", required.name)
		}
	}

	if cfg.GeminiAPIKey == "" && !cfg.IsDevelopment() {
		return Config{}, fmt.Errorf("GEMINI_API_KEY is required outside development")
	}

	return cfg, nil
}

// HTTPAddress returns the address the HTTP server should bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// UseInMemoryStore returns true if the in-memory repositories should be used.
func (c Config) UseInMemoryStore() bool {
	return c.DataStore == "memory"
}

// IsDevelopment reports whether the service runs in the development environment.
func (c Config) IsDevelopment() bool {
	return strings.EqualFold(c.Environment, "development")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnvOrFile(key, defaultPath string) (string, error) {
	if value := os.Getenv(key); value != "" {
		return value, nil
	}

	fileKey := key + "_FILE"
	if path := os.Getenv(fileKey); path != "" {
		return readSecret(path, fileKey)
	}

	if defaultPath != "" {
		return readSecret(defaultPath, key)
	}

	return "", nil
}

func readSecret(path, name string) (string, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("config: reading %s (%s): %w", name, path, err)
	}

	value := strings.TrimSpace(string(contents))
	if value == "" {
		return "", fmt.Errorf("config: %s (%s) is empty", name, path)
	}
	return value, nil
}
