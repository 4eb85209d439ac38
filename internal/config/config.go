// Package config reads the configuration of the backend from the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

type Config struct {
	// HTTP Server
	APIURL           string
	Port             string
	LogFormat        string
	CORSAllowOrigins []string
	EnablePprof      bool

	// Database, PostgreSQL is used when DBHost is set
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	SQLitePath string

	// Authentication
	JWTSecret string
	JWTIssuer string

	// AMQP, events are only published when AMQPURL is set
	AMQPURL      string
	AMQPExchange string

	// Locale for amounts in the dashboard
	Locale string
}

func Load() *Config {
	cfg := &Config{
		APIURL:           getEnv("API_URL", ""),
		Port:             getEnv("PORT", "8080"),
		LogFormat:        getEnv("LOG_FORMAT", ""),
		CORSAllowOrigins: getEnvList("CORS_ALLOW_ORIGINS"),
		EnablePprof:      getEnvBool("ENABLE_PPROF", false),

		DBHost:     getEnv("DB_HOST", ""),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "finansmart"),
		SQLitePath: getEnv("SQLITE_PATH", "data/finansmart.db"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTIssuer: getEnv("JWT_ISSUER", ""),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "finansmart"),

		Locale: getEnv("LOCALE", "es-CO"),
	}

	return cfg
}

// UsePostgres reports whether a PostgreSQL database is configured.
func (c *Config) UsePostgres() bool {
	return c.DBHost != ""
}

// PostgresDSN returns the connection string for the PostgreSQL database.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

// LocaleTag returns the parsed locale. Invalid locales are reported by Validate.
func (c *Config) LocaleTag() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.Und
	}
	return tag
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if c.APIURL == "" {
		errors = append(errors, "API_URL must be set")
	} else if u, err := url.Parse(c.APIURL); err != nil || u.Scheme == "" || u.Host == "" {
		errors = append(errors, fmt.Sprintf("invalid API URL '%s': must be an absolute URL", c.APIURL))
	}

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.LogFormat != "" && c.LogFormat != "human" && c.LogFormat != "json" {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be 'human' or 'json'", c.LogFormat))
	}

	if c.UsePostgres() {
		if _, err := strconv.Atoi(c.DBPort); err != nil {
			errors = append(errors, fmt.Sprintf("invalid database port '%s': must be a number", c.DBPort))
		}
		if c.DBName == "" {
			errors = append(errors, "database name cannot be empty when DB_HOST is set")
		}
	} else if c.SQLitePath == "" {
		errors = append(errors, "SQLite database path cannot be empty when DB_HOST is not set")
	}

	if c.JWTSecret == "" {
		errors = append(errors, "JWT_SECRET must be set")
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}

		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
	}

	if _, err := language.Parse(c.Locale); err != nil {
		errors = append(errors, fmt.Sprintf("invalid locale '%s': %v", c.Locale, err))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvList splits a comma separated variable, dropping empty entries.
func getEnvList(key string) []string {
	list := []string{}
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			list = append(list, v)
		}
	}
	return list
}
