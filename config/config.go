package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rajkumar-bhange/api-testing-demo/fixtures"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	TransportHTTP       = "http"
	TransportPlaywright = "playwright"

	ciRetries = 2
)

type Config struct {
	JSONPlaceholderURL string `validate:"required,url"`
	RestCountriesURL   string `validate:"required,url"`
	HTTPBinURL         string `validate:"required,url"`
	Transport          string `validate:"required,oneof=http playwright"`
	Retries            int    `validate:"gte=0,lte=10"`
	CI                 bool
	ReportDir          string `validate:"required"`
	ResultsDir         string `validate:"required"`
	RequestTimeoutMS   int    `validate:"gt=0"`
	IgnoreHTTPSErrors  bool

	// Workers is how many suites may run at once. Zero means all of them.
	Workers int `validate:"gte=0"`
}

// Load reads configuration from the environment, after loading any of the given .env
// files (or ".env" if none are given) that exist. Variables already set in the environment
// take precedence over the files.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			if err := godotenv.Load(f); err != nil {
				return nil, fmt.Errorf("could not read %s: %w", f, err)
			}
		}
	}

	ci := getEnvBool("CI")
	cfg := &Config{
		JSONPlaceholderURL: getEnv("JSONPLACEHOLDER_URL", fixtures.JSONPlaceholderBaseURL),
		RestCountriesURL:   getEnv("RESTCOUNTRIES_URL", fixtures.RestCountriesBaseURL),
		HTTPBinURL:         getEnv("HTTPBIN_URL", fixtures.HTTPBinBaseURL),
		Transport:          getEnv("API_TRANSPORT", TransportHTTP),
		CI:                 ci,
		ReportDir:          getEnv("REPORT_DIR", "allure-report"),
		ResultsDir:         getEnv("RESULTS_DIR", "allure-results"),
		IgnoreHTTPSErrors:  getEnvBool("API_IGNORE_HTTPS_ERRORS"),
	}

	var err error
	if cfg.Retries, err = getEnvInt("TEST_RETRIES", defaultRetries(ci)); err != nil {
		return nil, err
	}
	if cfg.RequestTimeoutMS, err = getEnvInt("REQUEST_TIMEOUT_MS", 30000); err != nil {
		return nil, err
	}
	if cfg.Workers, err = getEnvInt("TEST_WORKERS", defaultWorkers(ci)); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every field has a usable value. Callers that change fields after
// Load, such as from command-line flags, should call it again.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}

func defaultRetries(ci bool) int {
	if ci {
		return ciRetries
	}
	return 0
}

// CI runs suites one at a time.
func defaultWorkers(ci bool) int {
	if ci {
		return 1
	}
	return 0
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, value)
	}
	return n, nil
}

func getEnvBool(key string) bool {
	switch os.Getenv(key) {
	case "", "0", "false", "FALSE", "False":
		return false
	}
	return true
}
