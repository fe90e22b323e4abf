package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// Envelope wraps every event the engine emits.
type Envelope struct {
	EventID        string    `json:"event_id"`
	EventType      string    `json:"event_type"`
	SchemaVersion  string    `json:"schema_version"`
	IdempotencyKey string    `json:"idempotency_key"`
	Timestamp      time.Time `json:"timestamp"`
	Source         string    `json:"source"`
	Data           any       `json:"data"`
}

// Matching events
type ProvidersRankedData struct {
	ResourceType    string          `json:"resource_type"`
	Location        string          `json:"location"`
	Budget          decimal.Decimal `json:"budget"`
	TotalCandidates int             `json:"total_candidates"`
	Matched         int             `json:"matched"`
	Disqualified    int             `json:"disqualified"`
	Ranked          []RankedEntry   `json:"ranked"`
}

type RankedEntry struct {
	ProviderID     string          `json:"provider_id"`
	Rank           int             `json:"rank"`
	Score          float64         `json:"score"`
	EstimatedPrice decimal.Decimal `json:"estimated_price"`
}

// Booking events
type BookingQuotedData struct {
	BasePrice        decimal.Decimal `json:"base_price"`
	GuaranteeEnabled bool            `json:"guarantee_enabled"`
	GuaranteeFee     decimal.Decimal `json:"guarantee_fee"`
	PlatformFee      decimal.Decimal `json:"platform_fee"`
	FinalPrice       decimal.Decimal `json:"final_price"`
}

// Guarantee events
type ClaimFiledData struct {
	ClaimID      string          `json:"claim_id"`
	BookingID    string          `json:"booking_id"`
	ContractorID string          `json:"contractor_id"`
	RenterID     string          `json:"renter_id"`
	ClaimAmount  decimal.Decimal `json:"claim_amount"`
	MaxPayable   decimal.Decimal `json:"max_payable"`
	OverCoverage bool            `json:"over_coverage"`
	FiledAt      time.Time       `json:"filed_at"`
}

// Event type constants
const (
	EventProvidersRanked     = "providers.ranked"
	EventBookingQuoted       = "booking.quoted"
	EventGuaranteeClaimFiled = "guarantee.claim_filed"
)
