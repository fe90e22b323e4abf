package booking

import (
	"github.com/parlakisik/buildex-matching/internal/guarantee"
	"github.com/parlakisik/buildex-matching/internal/model"
	"github.com/parlakisik/buildex-matching/internal/pricing"
	"github.com/shopspring/decimal"
)

// Assembler combines commission pricing and the optional guarantee fee into
// the price shown on the booking form.
type Assembler struct {
	pricing   *pricing.Calculator
	guarantee *guarantee.Calculator
}

func NewAssembler(p *pricing.Calculator, g *guarantee.Calculator) *Assembler {
	return &Assembler{pricing: p, guarantee: g}
}

// Assemble returns finalPrice = getFinalPrice(base) + guaranteeFee, where the
// fee is charged on the requester-facing price and is zero when disabled.
func (a *Assembler) Assemble(basePrice decimal.Decimal, guaranteeEnabled bool) (model.BookingPrice, error) {
	breakdown, err := a.pricing.CalculatePricing(basePrice)
	if err != nil {
		return model.BookingPrice{}, err
	}
	price, err := a.pricing.GetFinalPrice(basePrice)
	if err != nil {
		return model.BookingPrice{}, err
	}

	fee := decimal.Zero
	if guaranteeEnabled {
		fee, err = a.guarantee.CalculateGuaranteeFee(price)
		if err != nil {
			return model.BookingPrice{}, err
		}
	}

	return model.BookingPrice{
		BasePrice:        basePrice,
		GuaranteeEnabled: guaranteeEnabled,
		GuaranteeFee:     fee,
		FinalPrice:       price.Add(fee),
		Breakdown:        breakdown,
	}, nil
}
