package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type ResourceType string

const (
	ResourceLabor     ResourceType = "labor"
	ResourceMachinery ResourceType = "machinery"
	ResourceMaterials ResourceType = "materials"
)

// ParseResourceType normalizes s and reports whether it names a known resource type.
func ParseResourceType(s string) (ResourceType, bool) {
	rt := ResourceType(strings.ToLower(strings.TrimSpace(s)))
	switch rt {
	case ResourceLabor, ResourceMachinery, ResourceMaterials:
		return rt, true
	}
	return "", false
}

type Availability string

const (
	AvailabilityAvailable Availability = "Available"
	AvailabilityBusy      Availability = "Busy"
)

// ResourceRequest is created per search and never persisted.
type ResourceRequest struct {
	ResourceType ResourceType    `json:"resource_type"`
	Location     string          `json:"location"`
	Budget       decimal.Decimal `json:"budget"`
}

// CandidateProvider is owned by whichever collaborator supplies the candidate pool.
type CandidateProvider struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Category     ResourceType    `json:"category"`
	Distance     float64         `json:"distance"` // km
	Rating       float64         `json:"rating"`   // 0..5
	BasePrice    decimal.Decimal `json:"base_price"`
	Availability Availability    `json:"availability"`
}

type ScoredProvider struct {
	CandidateProvider
	EstimatedPrice decimal.Decimal `json:"estimated_price"`
	Score          float64         `json:"score"`
}

type DisqualifiedCandidate struct {
	ProviderID string `json:"provider_id"`
	Reason     string `json:"reason"`
}

// Ranking is the outcome of one ranking call. Providers holds at most the
// configured top-N entries, best first.
type Ranking struct {
	ID              string                  `json:"id,omitempty"`
	ResourceType    ResourceType            `json:"resource_type"`
	Location        string                  `json:"location"`
	Budget          decimal.Decimal         `json:"budget"`
	TotalCandidates int                     `json:"total_candidates"`
	Matched         int                     `json:"matched"`
	Providers       []ScoredProvider        `json:"providers"`
	Disqualified    []DisqualifiedCandidate `json:"disqualified,omitempty"`
	RankedAt        time.Time               `json:"ranked_at"`
}

// PricingBreakdown holds netToProvider + platformFeeTotal == basePrice and
// finalPrice == basePrice.
type PricingBreakdown struct {
	BasePrice        decimal.Decimal `json:"base_price"`
	CommissionRate   decimal.Decimal `json:"commission_rate"`
	PlatformFeeTotal decimal.Decimal `json:"platform_fee_total"`
	NetToProvider    decimal.Decimal `json:"net_to_provider"`
	FinalPrice       decimal.Decimal `json:"final_price"`
}

type BookingPrice struct {
	QuoteID          string           `json:"quote_id,omitempty"`
	BasePrice        decimal.Decimal  `json:"base_price"`
	GuaranteeEnabled bool             `json:"guarantee_enabled"`
	GuaranteeFee     decimal.Decimal  `json:"guarantee_fee"`
	FinalPrice       decimal.Decimal  `json:"final_price"`
	Breakdown        PricingBreakdown `json:"breakdown"`
}

// GuaranteeConfig is published as an immutable snapshot; never mutate a
// value obtained from a provider.
type GuaranteeConfig struct {
	FeePercentage     decimal.Decimal `json:"fee_percentage"`
	MaxCoverageAmount decimal.Decimal `json:"max_coverage_amount"`
}

type ClaimStatus string

const (
	ClaimStatusPending  ClaimStatus = "pending"
	ClaimStatusApproved ClaimStatus = "approved"
	ClaimStatusRejected ClaimStatus = "rejected"
	ClaimStatusPaid     ClaimStatus = "paid"
)

// Resolved reports whether the review process has closed the claim.
func (s ClaimStatus) Resolved() bool {
	switch s {
	case ClaimStatusApproved, ClaimStatusRejected, ClaimStatusPaid:
		return true
	}
	return false
}

type ClaimRequest struct {
	BookingID    string          `json:"booking_id" validate:"required"`
	ContractorID string          `json:"contractor_id" validate:"required"`
	RenterID     string          `json:"renter_id" validate:"required"`
	Reason       string          `json:"reason" validate:"required"`
	ClaimAmount  decimal.Decimal `json:"claim_amount" validate:"gt=0"`
	PhotoURL     string          `json:"photo_url,omitempty" validate:"omitempty,url"`
}

type GuaranteeClaim struct {
	ID           string          `json:"id"`
	BookingID    string          `json:"booking_id"`
	ContractorID string          `json:"contractor_id"`
	RenterID     string          `json:"renter_id"`
	Reason       string          `json:"reason"`
	ClaimAmount  decimal.Decimal `json:"claim_amount"`
	PhotoURL     string          `json:"photo_url,omitempty"`
	Status       ClaimStatus     `json:"status"`

	// MaxPayable is the ceiling for the review process: min(ClaimAmount, MaxCoverageAmount)
	// taken from the config snapshot at filing time.
	MaxPayable   decimal.Decimal `json:"max_payable"`
	OverCoverage bool            `json:"over_coverage"`

	CreatedAt time.Time `json:"created_at"`
}
