package store

import (
	"fmt"
	"os"
)

type Config struct {
	User     string
	Password string
	Host     string
	Port     string
	DB       string
}

// ConfigFromEnv reads the POSTGRES_* variables.
func ConfigFromEnv() Config {
	return Config{
		User:     os.Getenv("POSTGRES_USER"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
		Host:     os.Getenv("POSTGRES_SERVICE_HOST"),
		Port:     os.Getenv("POSTGRES_SERVICE_PORT"),
		DB:       os.Getenv("POSTGRES_DB"),
	}
}

// Configured reports whether enough is set to reach a database.
func (c Config) Configured() bool {
	return c.User != "" && c.Host != "" && c.DB != ""
}

// ConnString is the keyword/value form used by pgxpool.
func (c Config) ConnString() string {
	s := fmt.Sprintf("user=%s dbname=%s sslmode=disable host=%s", c.User, c.DB, c.Host)
	if c.Password != "" {
		s += " password=" + c.Password
	}
	if c.Port != "" {
		s += " port=" + c.Port
	}
	return s
}

// URL is the postgres:// form used by lib/pq for migrations.
func (c Config) URL() string {
	port := c.Port
	if port == "" {
		port = "5432"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", c.User, c.Password, c.Host, port, c.DB)
}
