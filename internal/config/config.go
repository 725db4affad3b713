package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config is everything the server binary needs, sourced from the
// environment with workable local-dev defaults.
type Config struct {
	HTTPAddr string

	DBHost string
	DBPort string
	DBUser string
	DBPass string
	DBName string

	RedisHost string
	RedisPort string
	RedisPass string

	// WorkbookDir is where the xlsx spreadsheet source looks for files.
	WorkbookDir string

	IntakeGroup    string
	QualifiedGroup string
	RowCap         int

	Debug bool
}

func Load() *Config {
	return &Config{
		HTTPAddr: env("HTTP_ADDR", "127.0.0.1:8000"),

		DBHost: env("DB_HOST", "localhost"),
		DBPort: env("DB_PORT", "5432"),
		DBUser: env("DB_USER", "postgres"),
		DBPass: env("DB_PASS", "changeme"),
		DBName: env("DB_NAME", "vestogestao"),

		RedisHost: env("REDIS_HOST", "localhost"),
		RedisPort: env("REDIS_PORT", "6379"),
		RedisPass: env("REDIS_PASS", ""),

		WorkbookDir: env("WORKBOOK_DIR", "./data"),

		IntakeGroup:    env("INTAKE_GROUP", "New"),
		QualifiedGroup: env("QUALIFIED_GROUP", "Qualified"),
		RowCap:         envInt("ROW_CAP", 1000),

		Debug: env("DEBUG", "") != "",
	}
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPass, c.DBName)
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
