// Package guarantee prices the optional rental guarantee and files claims
// against it. Claims are validated and recorded here; adjudication and payout
// belong to the review process.
package guarantee

import (
	"fmt"

	"github.com/parlakisik/buildex-matching/internal/model"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type Calculator struct {
	config *ConfigProvider
}

func NewCalculator(config *ConfigProvider) *Calculator {
	return &Calculator{config: config}
}

func (c *Calculator) GetConfig() model.GuaranteeConfig {
	return c.config.Get()
}

// CalculateGuaranteeFee returns round(price * feePercentage / 100, 2).
func (c *Calculator) CalculateGuaranteeFee(price decimal.Decimal) (decimal.Decimal, error) {
	if !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: price must be positive, got %s", model.ErrInvalidInput, price)
	}
	cfg := c.config.Get()
	return price.Mul(cfg.FeePercentage).Div(hundred).Round(2), nil
}

// MaxPayable caps amount at the coverage limit of cfg.
func MaxPayable(amount decimal.Decimal, cfg model.GuaranteeConfig) decimal.Decimal {
	return decimal.Min(amount, cfg.MaxCoverageAmount)
}
