package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	DefaultEvidenceSubDir  = "evidence"
	DefaultDocumentsSubDir = "personnel-documents"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const (
	defaultPort               = "8080"
	defaultJWTExpirationHours = 24
)

type Config struct {
	AppName string
	Port    string

	// database settings; DatabasePath is used by sqlite, DatabaseDSN by postgres
	DatabaseDriver string
	DatabasePath   string
	DatabaseDSN    string

	// attachment storage
	StoragePath     string // absolute root for stored files
	EvidenceSubDir  string // case evidence files, relative to StoragePath
	DocumentsSubDir string // personnel documents, relative to StoragePath

	// session tokens
	JWTSecret          string
	JWTExpirationHours int

	AllowedOrigins []string

	LogLevel  string
	LogFormat string // "json" or "console"

	// Warnings collects settings that were ignored in favour of a default.
	// They are reported once the logger exists.
	Warnings []string
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func (c *Config) getEnvIntOrDefault(envVar string, defaultVal int) int {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		c.Warnings = append(c.Warnings,
			fmt.Sprintf("invalid integer %q in %s, using default %d", valStr, envVar, defaultVal))
		return defaultVal
	}
	return val
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func LoadConfig() (Config, error) {
	driver := strings.ToLower(getEnvOrDefault("DATABASE_DRIVER", DriverSQLite))
	if driver != DriverSQLite && driver != DriverPostgres {
		return Config{}, fmt.Errorf("unsupported DATABASE_DRIVER '%s' (want %s or %s)", driver, DriverSQLite, DriverPostgres)
	}

	dsn := os.Getenv("DATABASE_DSN")
	if driver == DriverPostgres && dsn == "" {
		return Config{}, fmt.Errorf("DATABASE_DSN is required when DATABASE_DRIVER is %s", DriverPostgres)
	}

	storage := getEnvOrDefault("STORAGE_PATH", filepath.Join(".", "storage"))
	absStorage, err := filepath.Abs(storage)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute path for storage '%s': %w", storage, err)
	}

	cfg := Config{
		AppName:         getEnvOrDefault("APP_NAME", "Police Portal"),
		Port:            getEnvOrDefault("PORT", defaultPort),
		DatabaseDriver:  driver,
		DatabasePath:    getEnvOrDefault("DATABASE_PATH", "policeportal.db"),
		DatabaseDSN:     dsn,
		StoragePath:     absStorage,
		EvidenceSubDir:  getEnvOrDefault("EVIDENCE_SUBDIR", DefaultEvidenceSubDir),
		DocumentsSubDir: getEnvOrDefault("DOCUMENTS_SUBDIR", DefaultDocumentsSubDir),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		AllowedOrigins:  splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
		LogLevel:        getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       getEnvOrDefault("LOG_FORMAT", "json"),
	}
	cfg.JWTExpirationHours = cfg.getEnvIntOrDefault("JWT_EXPIRATION_HOURS", defaultJWTExpirationHours)

	return cfg, nil
}

// RequireJWTSecret reports an error when no signing secret is configured.
// Only commands that issue or verify sessions need one.
func (c Config) RequireJWTSecret() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}
	return nil
}
