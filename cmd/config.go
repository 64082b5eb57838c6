package cmd

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	LogLevel string
	TimeZone *time.Location

	AssignmentCron    string
	AssignmentTimeout time.Duration

	RateLimit          float64
	RateLimitBurst     int
	RateLimitExpiresIn time.Duration
}

// LoadConfig reads the environment, after loading envFile if it exists.
// Every malformed value is reported. ASSIGNMENT_CRON set to an empty string
// disables the daily assignment job.
func LoadConfig(envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	var failures []error
	collect := func(err error) {
		if err != nil {
			failures = append(failures, err)
		}
	}

	cfg := Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", "password"),
		DBName:         getEnv("DB_NAME", "dispatch"),
		DBSslMode:      getEnv("DB_SSLMODE", "disable"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}

	cfg.AssignmentCron = "0 0 7 * * *"
	if spec, ok := os.LookupEnv("ASSIGNMENT_CRON"); ok {
		cfg.AssignmentCron = spec
	}

	var err error
	cfg.TimeZone, err = getEnvParsed("ASSIGNMENT_TIMEZONE", time.UTC, time.LoadLocation)
	collect(err)
	cfg.AssignmentTimeout, err = getEnvParsed("ASSIGNMENT_TIMEOUT", time.Minute, time.ParseDuration)
	collect(err)
	cfg.RateLimit, err = getEnvParsed("RATE_LIMIT_RPS", 10.0, func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
	collect(err)
	cfg.RateLimitBurst, err = getEnvParsed("RATE_LIMIT_BURST", 0, strconv.Atoi)
	collect(err)
	cfg.RateLimitExpiresIn, err = getEnvParsed("RATE_LIMIT_EXPIRES", time.Second, time.ParseDuration)
	collect(err)

	if len(failures) > 0 {
		return Config{}, errors.Join(failures...)
	}
	return cfg, nil
}

// DSN is the PostgreSQL connection string in URL form.
func (c Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.DBSslMode}}.Encode(),
	}
	return u.String()
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvParsed[T any](key string, fallback T, parse func(string) (T, error)) (T, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback, nil
	}

	value, err := parse(raw)
	if err != nil {
		return fallback, fmt.Errorf("environment variable %s=%q: %w", key, raw, err)
	}
	return value, nil
}
