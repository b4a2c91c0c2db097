package config

import (
	"fmt"
	"os"
	"strconv"
)

// BrowserConfig holds configuration for driving the storefront browser
type BrowserConfig struct {
	BaseURL   string
	Headless  bool
	TimeoutMs float64
}

// LoadBrowserConfig loads browser configuration from environment variables
func LoadBrowserConfig() (*BrowserConfig, error) {
	config := BrowserConfig{
		BaseURL:   os.Getenv("STOREFRONT_BASE_URL"),
		Headless:  os.Getenv("HEADLESS") != "false",
		TimeoutMs: 15000,
	}

	if config.BaseURL == "" {
		return nil, fmt.Errorf("STOREFRONT_BASE_URL is required")
	}

	if raw := os.Getenv("STOREFRONT_TIMEOUT_MS"); raw != "" {
		timeout, err := strconv.ParseFloat(raw, 64)
		if err != nil || timeout <= 0 {
			return nil, fmt.Errorf("STOREFRONT_TIMEOUT_MS must be a positive number, got %q", raw)
		}
		config.TimeoutMs = timeout
	}

	return &config, nil
}
