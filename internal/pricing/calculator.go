// Package pricing derives the provider payout and platform fee for a base price.
package pricing

import (
	"fmt"

	"github.com/parlakisik/buildex-matching/internal/model"
	"github.com/shopspring/decimal"
)

// DefaultCommissionRate is the marketplace commission deducted from the provider payout.
var DefaultCommissionRate = decimal.RequireFromString("0.05")

type Calculator struct {
	commissionRate decimal.Decimal
}

func NewCalculator(commissionRate decimal.Decimal) (*Calculator, error) {
	if commissionRate.IsNegative() || commissionRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("%w: commission rate must be in [0, 1), got %s", model.ErrInvalidInput, commissionRate)
	}
	return &Calculator{commissionRate: commissionRate}, nil
}

// NewDefaultCalculator uses DefaultCommissionRate.
func NewDefaultCalculator() *Calculator {
	return &Calculator{commissionRate: DefaultCommissionRate}
}

func (c *Calculator) CommissionRate() decimal.Decimal {
	return c.commissionRate
}

// CalculatePricing splits basePrice into platform fee and provider payout.
// The requester pays basePrice; the commission comes out of the payout.
func (c *Calculator) CalculatePricing(basePrice decimal.Decimal) (model.PricingBreakdown, error) {
	if err := requirePositive(basePrice); err != nil {
		return model.PricingBreakdown{}, err
	}

	platformFee := basePrice.Mul(c.commissionRate).Round(2)
	netToProvider := basePrice.Sub(platformFee)

	return model.PricingBreakdown{
		BasePrice:        basePrice,
		CommissionRate:   c.commissionRate,
		PlatformFeeTotal: platformFee,
		NetToProvider:    netToProvider,
		FinalPrice:       basePrice,
	}, nil
}

// GetFinalPrice returns the requester-facing price, which is basePrice unchanged.
func (c *Calculator) GetFinalPrice(basePrice decimal.Decimal) (decimal.Decimal, error) {
	if err := requirePositive(basePrice); err != nil {
		return decimal.Zero, err
	}
	return basePrice, nil
}

func requirePositive(basePrice decimal.Decimal) error {
	if !basePrice.IsPositive() {
		return fmt.Errorf("%w: base price must be positive, got %s", model.ErrInvalidInput, basePrice)
	}
	return nil
}
