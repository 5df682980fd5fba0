// Package config holds the process configuration for the adapter.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Config is built once at startup and injected into the components that
// need it. It is never mutated after FromEnv returns.
type Config struct {
	// UpstreamURL is the base URL of the Fava instance, without a
	// trailing slash.
	UpstreamURL string

	// ListenAddr is the address the adapter's own HTTP server binds to.
	ListenAddr string

	// CurrencyCode is the unit substring stripped from ledger amounts
	// before numeric parsing, e.g. "CNY".
	CurrencyCode string
}

const (
	defaultListenAddr   = ":8080"
	defaultCurrencyCode = "CNY"
)

// FromEnv reads configuration from environment variables. A missing
// UPSTREAM_URL is a startup failure; everything else has a default.
func FromEnv() (Config, error) {
	upstream := os.Getenv("UPSTREAM_URL")
	if upstream == "" {
		return Config{}, fmt.Errorf("UPSTREAM_URL is not set")
	}

	cfg := Config{
		UpstreamURL:  strings.TrimRight(upstream, "/"),
		ListenAddr:   defaultListenAddr,
		CurrencyCode: defaultCurrencyCode,
	}
	if addr := os.Getenv("LISTEN_ADDR"); addr != "" {
		cfg.ListenAddr = addr
	}
	if cur := os.Getenv("CURRENCY_CODE"); cur != "" {
		cfg.CurrencyCode = cur
	}
	return cfg, nil
}
