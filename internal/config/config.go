package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the auction CLI.
type Config struct {
	LogLevel    string
	LogFormat   string
	PricingRule string
}

// Load reads configuration from environment variables, applies defaults,
// and validates values. Variables may also come from a .env file in the
// working directory; real environment variables take precedence.
func Load() (*Config, error) {
	return LoadWithEnvFile(".env")
}

// LoadWithEnvFile is Load with an explicit .env path. A missing file is
// not an error.
func LoadWithEnvFile(path string) (*Config, error) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	logLevel := getStr("LOG_LEVEL", "info")
	if !isValidLogLevel(logLevel) {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %q, must be one of: debug, info, warn, error", logLevel)
	}

	logFormat := getStr("LOG_FORMAT", "console")
	if logFormat != "console" && logFormat != "json" {
		return nil, fmt.Errorf("invalid LOG_FORMAT: %q, must be one of: console, json", logFormat)
	}

	pricingRule := getStr("PRICING_RULE", "midpoint")
	if !isValidPricingRule(pricingRule) {
		return nil, fmt.Errorf("invalid PRICING_RULE: %q, must be one of: midpoint, midpoint-half-up, seller, buyer", pricingRule)
	}

	return &Config{
		LogLevel:    logLevel,
		LogFormat:   logFormat,
		PricingRule: pricingRule,
	}, nil
}

func getStr(key, defaultVal string) string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

func isValidPricingRule(rule string) bool {
	switch rule {
	case "midpoint", "midpoint-half-up", "seller", "buyer":
		return true
	}
	return false
}
