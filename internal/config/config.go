// Package config loads runtime configuration from the environment.
package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the service. The heuristics the
// classifier depends on (receipt-voucher skipping, transfer-origin state)
// are configuration, not law: they describe one organization's export
// format.
type Config struct {
	Addr      string `envconfig:"ADDR" default:":8080"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	// DatabaseURL selects the postgres store; empty means in-memory.
	DatabaseURL string `envconfig:"DATABASE_URL"`

	// RulesFile points to an optional YAML file of user rules loaded at boot.
	RulesFile string `envconfig:"RULES_FILE"`

	Currency string `envconfig:"CURRENCY" default:"INR"`

	SkipReceiptVouchers bool   `envconfig:"SKIP_RECEIPT_VOUCHERS" default:"true"`
	TransferOriginState string `envconfig:"TRANSFER_ORIGIN_STATE" default:"UP"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
