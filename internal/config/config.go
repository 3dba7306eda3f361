package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration parsed from environment variables.
type Config struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
	PixelID         string
	Shopify         Shopify
	SMTP            SMTP
}

// Shopify holds storefront API credentials. Domain and Token are mandatory;
// the service refuses to start without them.
type Shopify struct {
	Domain     string
	Token      string
	APIVersion string
}

// SMTP holds the transactional mail transport settings. All fields optional;
// an unconfigured transport turns the mail endpoint into a 503.
type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

// FromEnv builds Config with defaults, overridden by environment variables.
func FromEnv() Config {
	return Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT_SECONDS", 10*time.Second),
		AllowedOrigins:  splitOrigins(os.Getenv("ALLOWED_ORIGINS")),
		PixelID:         os.Getenv("META_PIXEL_ID"),
		Shopify: Shopify{
			Domain:     os.Getenv("SHOPIFY_STORE_DOMAIN"),
			Token:      os.Getenv("SHOPIFY_STOREFRONT_TOKEN"),
			APIVersion: envOrDefault("SHOPIFY_API_VERSION", "2024-07"),
		},
		SMTP: SMTP{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     envInt("SMTP_PORT", 587),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("MAIL_FROM"),
			To:       os.Getenv("MAIL_TO"),
		},
	}
}

// Validate fails fast on configuration the service cannot run without.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Shopify.Domain) == "" {
		return errors.New("SHOPIFY_STORE_DOMAIN is required")
	}
	if strings.TrimSpace(c.Shopify.Token) == "" {
		return errors.New("SHOPIFY_STOREFRONT_TOKEN is required")
	}
	return nil
}

// Configured reports whether the mail transport has enough settings to dial.
func (s SMTP) Configured() bool {
	return s.Host != "" && s.From != "" && s.To != ""
}

func splitOrigins(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		seconds, err := strconv.Atoi(v)
		if err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return def
}
