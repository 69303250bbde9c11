package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/noah-isme/bouquet-order/internal/pricing"
)

// Relay modes.
const (
	RelayModeFormSubmit = "formsubmit"
	RelayModeStub       = "stub"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv             string
	Port               string
	CORSAllowedOrigins []string

	RelayMode               string
	RelayEndpoint           string
	RelayTimeout            time.Duration
	RelaySubject            string
	RelayThankYouURL        string
	RelayBreakerMinRequests int
	RelayBreakerRatio       float64
	RelayBreakerOpenFor     time.Duration

	RedisURL        string
	IdempotencyTTL  time.Duration
	RateLimitWindow time.Duration
	RateLimitMax    int
	BodyLimitBytes  int64
	SecurityHeaders bool

	Pricing pricing.Tables
}

// Load reads configuration from environment variables and an optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:             valueOrDefault(k.String("APP_ENV"), "development"),
		Port:               valueOrDefault(k.String("PORT"), "8080"),
		CORSAllowedOrigins: splitAndTrim(k.String("CORS_ALLOWED_ORIGINS")),

		RelayMode:               strings.ToLower(valueOrDefault(k.String("RELAY_MODE"), RelayModeStub)),
		RelayEndpoint:           strings.TrimSpace(k.String("RELAY_ENDPOINT")),
		RelayTimeout:            parseDuration(k.String("RELAY_TIMEOUT"), "10s"),
		RelaySubject:            valueOrDefault(k.String("RELAY_SUBJECT"), "New bouquet order"),
		RelayThankYouURL:        strings.TrimSpace(k.String("RELAY_THANK_YOU_URL")),
		RelayBreakerMinRequests: parseInt(k.String("RELAY_BREAKER_MIN_REQUESTS"), 5),
		RelayBreakerRatio:       parseFloat(k.String("RELAY_BREAKER_FAILURE_RATIO"), 0.5),
		RelayBreakerOpenFor:     parseDuration(k.String("RELAY_BREAKER_OPEN_FOR"), "30s"),

		RedisURL:        strings.TrimSpace(k.String("REDIS_URL")),
		IdempotencyTTL:  parseDuration(k.String("IDEMPOTENCY_TTL"), "24h"),
		RateLimitWindow: parseDuration(k.String("RATE_LIMIT_WINDOW"), "1m"),
		RateLimitMax:    parseInt(k.String("RATE_LIMIT_MAX"), 10),
		BodyLimitBytes:  int64(parseInt(k.String("BODY_LIMIT_BYTES"), 64<<10)),
		SecurityHeaders: parseBool(k.String("SECURITY_HEADERS_ENABLED"), true),
	}

	switch cfg.RelayMode {
	case RelayModeStub:
	case RelayModeFormSubmit:
		if cfg.RelayEndpoint == "" {
			return nil, errors.New("RELAY_ENDPOINT is required when RELAY_MODE=formsubmit")
		}
	default:
		return nil, fmt.Errorf("unsupported RELAY_MODE %q", cfg.RelayMode)
	}

	tables, err := loadPricing(k)
	if err != nil {
		return nil, err
	}
	cfg.Pricing = tables
	return cfg, nil
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

// loadPricing starts from the published prices and applies PRICING_* overrides.
func loadPricing(k *koanf.Koanf) (pricing.Tables, error) {
	tables := pricing.DefaultTables()

	if raw := strings.TrimSpace(k.String("PRICING_SIZES")); raw != "" {
		sizes, prices, err := parseSizeTable(raw)
		if err != nil {
			return pricing.Tables{}, err
		}
		tables.Sizes = sizes
		tables.SizePrices = prices
	}

	overrides := []struct {
		key    string
		target *pricing.Money
	}{
		{"PRICING_CROWN", &tables.AddOns.Crown},
		{"PRICING_BUTTERFLY", &tables.AddOns.Butterfly},
		{"PRICING_WRITING", &tables.AddOns.Writing},
		{"PRICING_GLITTER", &tables.AddOns.Glitter},
		{"PRICING_GEMS", &tables.AddOns.Gems},
		{"PRICING_DAHLIA", &tables.AddOns.Dahlia},
		{"PRICING_PLUMERIA", &tables.AddOns.Plumeria},
	}
	for _, o := range overrides {
		raw := strings.TrimSpace(k.String(o.key))
		if raw == "" {
			continue
		}
		price, err := pricing.ParseMoney(raw)
		if err != nil {
			return pricing.Tables{}, fmt.Errorf("%s: %w", o.key, err)
		}
		*o.target = price
	}

	if err := tables.Validate(); err != nil {
		return pricing.Tables{}, err
	}
	return tables, nil
}

// parseSizeTable reads "7:15,9:20,12:25.50" into an ordered size list and a
// price map.
func parseSizeTable(raw string) ([]int, map[int]pricing.Money, error) {
	sizes := make([]int, 0, 8)
	prices := make(map[int]pricing.Money, 8)
	for _, entry := range splitAndTrim(raw) {
		countStr, priceStr, ok := strings.Cut(entry, ":")
		if !ok {
			return nil, nil, fmt.Errorf("PRICING_SIZES: entry %q must look like flowers:price", entry)
		}
		count, err := strconv.Atoi(strings.TrimSpace(countStr))
		if err != nil || count <= 0 {
			return nil, nil, fmt.Errorf("PRICING_SIZES: invalid flower count in %q", entry)
		}
		if _, dup := prices[count]; dup {
			return nil, nil, fmt.Errorf("PRICING_SIZES: duplicate size %d", count)
		}
		price, err := pricing.ParseMoney(priceStr)
		if err != nil {
			return nil, nil, fmt.Errorf("PRICING_SIZES: %w", err)
		}
		sizes = append(sizes, count)
		prices[count] = price
	}
	return sizes, prices, nil
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func valueOrDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	d, err := time.ParseDuration(valueOrDefault(value, fallback))
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func parseInt(value string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func parseFloat(value string, fallback float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fallback
	}
	return f
}

func parseBool(value string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "t", "true", "yes", "on":
		return true
	case "0", "f", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

// LoadForTests allows tests to override environment variables without touching the real environment.
func LoadForTests(env map[string]string) (*Config, error) {
	original := make(map[string]*string, len(env))
	for key := range env {
		if prev, ok := os.LookupEnv(key); ok {
			original[key] = &prev
		} else {
			original[key] = nil
		}
		if err := setEnvVar(key, env[key]); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return nil, err
	}
	return cfg, restoreErr
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]*string) error {
	var errs []error
	for key, value := range values {
		var err error
		if value == nil {
			err = os.Unsetenv(key)
		} else {
			err = os.Setenv(key, *value)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}
