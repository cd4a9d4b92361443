package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultPoolSize = 3
	defaultHTTPAddr = ":8000"
	defaultLogDir   = "./logs"
)

type Config struct {
	DBName     string
	DBHost     string
	DBUser     string
	DBPassword string
	DBPort     string
	DBSSLMode  string
	DBSchema   string
	DBPoolSize int
	HTTPAddr   string
	LogDir     string
}

// ConfigurationError lists every required variable that is missing or invalid.
type ConfigurationError struct {
	Missing []string
	Invalid []string
}

func (e *ConfigurationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid "+strings.Join(e.Invalid, ", "))
	}
	return "configuration error: " + strings.Join(parts, "; ")
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "failed to read .env file:", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() Config {
	return Config{
		DBName:     getEnv("DATABASE_NAME", ""),
		DBHost:     getEnv("DATABASE_HOST_NAME", ""),
		DBUser:     getEnv("DATABASE_USER", ""),
		DBPassword: getEnv("DATABASE_PASSWORD", ""),
		DBPort:     getEnv("DATABASE_PORT", ""),
		DBSSLMode:  getEnv("DATABASE_SSL_MODE", ""),
		DBSchema:   getEnv("DATABASE_SCHEMA", ""),
		DBPoolSize: getEnvInt("DATABASE_POOL_SIZE", defaultPoolSize),
		HTTPAddr:   getEnv("HTTP_ADDR", defaultHTTPAddr),
		LogDir:     getEnv("LOG_DIR", defaultLogDir),
	}
}

// Validate reports every required setting that is absent. The SSL mode and
// schema are optional.
func (c Config) Validate() error {
	cerr := &ConfigurationError{}
	required := []struct {
		name  string
		value string
	}{
		{"DATABASE_NAME", c.DBName},
		{"DATABASE_HOST_NAME", c.DBHost},
		{"DATABASE_USER", c.DBUser},
		{"DATABASE_PASSWORD", c.DBPassword},
		{"DATABASE_PORT", c.DBPort},
	}
	for _, r := range required {
		if r.value == "" {
			cerr.Missing = append(cerr.Missing, r.name)
		}
	}
	if c.DBPort != "" {
		if port, err := strconv.Atoi(c.DBPort); err != nil || port <= 0 || port > 65535 {
			cerr.Invalid = append(cerr.Invalid, "DATABASE_PORT")
		}
	}
	if c.DBPoolSize <= 0 {
		cerr.Invalid = append(cerr.Invalid, "DATABASE_POOL_SIZE")
	}
	if len(cerr.Missing) > 0 || len(cerr.Invalid) > 0 {
		return cerr
	}
	return nil
}

// BuildConnectionString concatenates the database settings into a postgres
// URI. Absent values leave empty segments; the driver reports the failure.
func (c Config) BuildConnectionString() string {
	return c.connectionURL().String()
}

// RedactedConnectionString is the connection URI with the password masked.
// It is the only form that may be logged.
func (c Config) RedactedConnectionString() string {
	return c.connectionURL().Redacted()
}

func (c Config) connectionURL() *url.URL {
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Host:   c.DBHost + ":" + c.DBPort,
		Path:   "/" + c.DBName,
	}
	if c.DBSSLMode != "" {
		u.RawQuery = url.Values{"sslmode": []string{c.DBSSLMode}}.Encode()
	}
	return u
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		// Validate rejects it.
		return -1
	}
	return n
}
