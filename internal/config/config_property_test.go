package config

import (
	"os"
	"path/filepath"
	"testing"

	"pgregory.net/rapid"
)

var (
	validLogLevels    = []string{"debug", "info", "warn", "error"}
	validLogFormats   = []string{"console", "json"}
	validPricingRules = []string{"midpoint", "midpoint-half-up", "seller", "buyer"}
	allEnvKeys        = []string{"LOG_LEVEL", "LOG_FORMAT", "PRICING_RULE"}
)

func unsetAllConfigEnv() {
	for _, key := range allEnvKeys {
		os.Unsetenv(key)
	}
}

func TestProperty_ValidConfigParsing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.env")

	rapid.Check(t, func(t *rapid.T) {
		unsetAllConfigEnv()
		defer unsetAllConfigEnv()

		// Empty string means "use default" (env var not set).
		values := map[string]string{
			"LOG_LEVEL":    rapid.OneOf(rapid.Just(""), rapid.SampledFrom(validLogLevels)).Draw(t, "logLevel"),
			"LOG_FORMAT":   rapid.OneOf(rapid.Just(""), rapid.SampledFrom(validLogFormats)).Draw(t, "logFormat"),
			"PRICING_RULE": rapid.OneOf(rapid.Just(""), rapid.SampledFrom(validPricingRules)).Draw(t, "pricingRule"),
		}
		for key, v := range values {
			if v != "" {
				os.Setenv(key, v)
			}
		}

		cfg, err := LoadWithEnvFile(missing)
		if err != nil {
			t.Fatalf("LoadWithEnvFile() returned error for valid inputs: %v", err)
		}

		check := func(key, got, def string) {
			want := values[key]
			if want == "" {
				want = def
			}
			if got != want {
				t.Fatalf("%s = %q, want %q", key, got, want)
			}
		}
		check("LOG_LEVEL", cfg.LogLevel, "info")
		check("LOG_FORMAT", cfg.LogFormat, "console")
		check("PRICING_RULE", cfg.PricingRule, "midpoint")
	})
}

func TestProperty_InvalidPricingRuleReturnsError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.env")

	rapid.Check(t, func(t *rapid.T) {
		unsetAllConfigEnv()
		defer unsetAllConfigEnv()

		invalid := rapid.StringMatching(`[a-z-]{1,20}`).Filter(func(s string) bool {
			for _, v := range validPricingRules {
				if s == v {
					return false
				}
			}
			return s != ""
		}).Draw(t, "invalidRule")

		os.Setenv("PRICING_RULE", invalid)

		if _, err := LoadWithEnvFile(missing); err == nil {
			t.Fatalf("LoadWithEnvFile() should return error for invalid PRICING_RULE %q", invalid)
		}
	})
}
