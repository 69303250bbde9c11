package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/bouquet-order/internal/pricing"
)

func baseEnv() map[string]string {
	return map[string]string{
		"APP_ENV":          "",
		"PORT":             "",
		"RELAY_MODE":       "",
		"RELAY_ENDPOINT":   "",
		"RELAY_TIMEOUT":    "",
		"PRICING_SIZES":    "",
		"PRICING_GLITTER":  "",
		"PRICING_DAHLIA":   "",
		"RATE_LIMIT_MAX":   "",
		"REDIS_URL":        "",
		"BODY_LIMIT_BYTES": "",
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadForTests(baseEnv())
	require.NoError(t, err)
	require.Equal(t, "development", cfg.AppEnv)
	require.Equal(t, ":8080", cfg.HTTPAddr())
	require.Equal(t, RelayModeStub, cfg.RelayMode)
	require.Equal(t, 10*time.Second, cfg.RelayTimeout)
	require.Equal(t, 10, cfg.RateLimitMax)
	require.Equal(t, int64(64<<10), cfg.BodyLimitBytes)
	require.Equal(t, pricing.DefaultTables(), cfg.Pricing)
}

func TestLoadPricingOverrides(t *testing.T) {
	env := baseEnv()
	env["PRICING_SIZES"] = "6:12, 10:19.99"
	env["PRICING_GLITTER"] = "1.25"
	env["PRICING_DAHLIA"] = "$6"
	cfg, err := LoadForTests(env)
	require.NoError(t, err)
	require.Equal(t, []int{6, 10}, cfg.Pricing.Sizes)
	require.Equal(t, map[int]pricing.Money{6: 1200, 10: 1999}, cfg.Pricing.SizePrices)
	require.Equal(t, pricing.Money(125), cfg.Pricing.AddOns.Glitter)
	require.Equal(t, pricing.Money(600), cfg.Pricing.AddOns.Dahlia)
	require.Equal(t, pricing.Money(300), cfg.Pricing.AddOns.Crown)
}

func TestLoadRejectsBadPricing(t *testing.T) {
	for _, sizes := range []string{"7", "x:15", "7:15,7:20", "0:15", "7:1.234"} {
		env := baseEnv()
		env["PRICING_SIZES"] = sizes
		_, err := LoadForTests(env)
		require.Error(t, err, sizes)
	}
	env := baseEnv()
	env["PRICING_GLITTER"] = "cheap"
	_, err := LoadForTests(env)
	require.Error(t, err)
}

func TestLoadRelayModes(t *testing.T) {
	env := baseEnv()
	env["RELAY_MODE"] = "formsubmit"
	_, err := LoadForTests(env)
	require.Error(t, err, "formsubmit needs an endpoint")

	env["RELAY_ENDPOINT"] = "https://formsubmit.co/ajax/orders@example.com"
	env["RELAY_TIMEOUT"] = "3s"
	cfg, err := LoadForTests(env)
	require.NoError(t, err)
	require.Equal(t, RelayModeFormSubmit, cfg.RelayMode)
	require.Equal(t, 3*time.Second, cfg.RelayTimeout)

	env["RELAY_MODE"] = "carrier-pigeon"
	_, err = LoadForTests(env)
	require.Error(t, err)
}
