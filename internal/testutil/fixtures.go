package testutil

import (
	"github.com/parlakisik/buildex-matching/internal/model"
	"github.com/shopspring/decimal"
)

// CandidateFixture builds candidate providers for tests.
type CandidateFixture struct {
	c model.CandidateProvider
}

func NewCandidateFixture() CandidateFixture {
	return CandidateFixture{c: model.CandidateProvider{
		ID:           "prov_test_001",
		Name:         "Test Excavation Co",
		Category:     model.ResourceMachinery,
		Distance:     5,
		Rating:       4,
		BasePrice:    decimal.NewFromInt(500),
		Availability: model.AvailabilityAvailable,
	}}
}

func (f CandidateFixture) WithID(id string) CandidateFixture {
	f.c.ID = id
	return f
}

func (f CandidateFixture) WithCategory(rt model.ResourceType) CandidateFixture {
	f.c.Category = rt
	return f
}

func (f CandidateFixture) WithDistance(km float64) CandidateFixture {
	f.c.Distance = km
	return f
}

func (f CandidateFixture) WithRating(r float64) CandidateFixture {
	f.c.Rating = r
	return f
}

func (f CandidateFixture) WithBasePrice(price string) CandidateFixture {
	f.c.BasePrice = decimal.RequireFromString(price)
	return f
}

func (f CandidateFixture) Busy() CandidateFixture {
	f.c.Availability = model.AvailabilityBusy
	return f
}

func (f CandidateFixture) Build() model.CandidateProvider {
	return f.c
}

// NewClaimRequestFixture returns a claim request that passes validation.
func NewClaimRequestFixture() model.ClaimRequest {
	return model.ClaimRequest{
		BookingID:    "booking_test_001",
		ContractorID: "contractor_test_001",
		RenterID:     "renter_test_001",
		Reason:       "Generator returned with a seized engine",
		ClaimAmount:  decimal.NewFromInt(1500),
		PhotoURL:     "https://photos.example.com/claims/gen-001.jpg",
	}
}
