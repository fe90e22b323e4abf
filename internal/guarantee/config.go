package guarantee

import (
	"fmt"
	"sync/atomic"

	"github.com/parlakisik/buildex-matching/internal/model"
	"github.com/shopspring/decimal"
)

var (
	DefaultFeePercentage     = decimal.NewFromInt(10)
	DefaultMaxCoverageAmount = decimal.NewFromInt(5000)
)

// ConfigProvider hands out the process-wide guarantee configuration.
// Readers always see a complete snapshot; Publish swaps in a new one.
type ConfigProvider struct {
	current atomic.Pointer[model.GuaranteeConfig]
}

func NewConfigProvider(cfg model.GuaranteeConfig) (*ConfigProvider, error) {
	p := &ConfigProvider{}
	if err := p.Publish(cfg); err != nil {
		return nil, err
	}
	return p, nil
}

// Get returns a copy of the current snapshot.
func (p *ConfigProvider) Get() model.GuaranteeConfig {
	return *p.current.Load()
}

// Publish validates cfg and replaces the current snapshot atomically.
func (p *ConfigProvider) Publish(cfg model.GuaranteeConfig) error {
	if err := ValidateConfig(cfg); err != nil {
		return err
	}
	snapshot := cfg
	p.current.Store(&snapshot)
	return nil
}

func ValidateConfig(cfg model.GuaranteeConfig) error {
	if cfg.FeePercentage.IsNegative() {
		return fmt.Errorf("%w: guarantee fee percentage must be >= 0, got %s", model.ErrInvalidInput, cfg.FeePercentage)
	}
	if !cfg.MaxCoverageAmount.IsPositive() {
		return fmt.Errorf("%w: guarantee max coverage amount must be > 0, got %s", model.ErrInvalidInput, cfg.MaxCoverageAmount)
	}
	return nil
}
