package store

import (
	"fmt"
	"time"

	"github.com/parlakisik/buildex-matching/internal/model"
	"github.com/shopspring/decimal"
)

// claimDocument is the stored form of a claim. Amounts are kept as decimal
// strings so no precision is lost in either backend.
type claimDocument struct {
	ID           string    `bson:"_id" firestore:"id"`
	BookingID    string    `bson:"booking_id" firestore:"booking_id"`
	ContractorID string    `bson:"contractor_id" firestore:"contractor_id"`
	RenterID     string    `bson:"renter_id" firestore:"renter_id"`
	Reason       string    `bson:"reason" firestore:"reason"`
	ClaimAmount  string    `bson:"claim_amount" firestore:"claim_amount"`
	PhotoURL     string    `bson:"photo_url,omitempty" firestore:"photo_url,omitempty"`
	Status       string    `bson:"status" firestore:"status"`
	MaxPayable   string    `bson:"max_payable" firestore:"max_payable"`
	OverCoverage bool      `bson:"over_coverage" firestore:"over_coverage"`
	CreatedAt    time.Time `bson:"created_at" firestore:"created_at"`
}

func toDocument(c model.GuaranteeClaim) claimDocument {
	return claimDocument{
		ID:           c.ID,
		BookingID:    c.BookingID,
		ContractorID: c.ContractorID,
		RenterID:     c.RenterID,
		Reason:       c.Reason,
		ClaimAmount:  c.ClaimAmount.String(),
		PhotoURL:     c.PhotoURL,
		Status:       string(c.Status),
		MaxPayable:   c.MaxPayable.String(),
		OverCoverage: c.OverCoverage,
		CreatedAt:    c.CreatedAt,
	}
}

func (d claimDocument) toClaim() (model.GuaranteeClaim, error) {
	amount, err := decimal.NewFromString(d.ClaimAmount)
	if err != nil {
		return model.GuaranteeClaim{}, fmt.Errorf("decode claim %s: claim_amount: %w", d.ID, err)
	}
	maxPayable, err := decimal.NewFromString(d.MaxPayable)
	if err != nil {
		return model.GuaranteeClaim{}, fmt.Errorf("decode claim %s: max_payable: %w", d.ID, err)
	}
	return model.GuaranteeClaim{
		ID:           d.ID,
		BookingID:    d.BookingID,
		ContractorID: d.ContractorID,
		RenterID:     d.RenterID,
		Reason:       d.Reason,
		ClaimAmount:  amount,
		PhotoURL:     d.PhotoURL,
		Status:       model.ClaimStatus(d.Status),
		MaxPayable:   maxPayable,
		OverCoverage: d.OverCoverage,
		CreatedAt:    d.CreatedAt.UTC(),
	}, nil
}

func fromDocuments(docs []claimDocument) ([]model.GuaranteeClaim, error) {
	claims := make([]model.GuaranteeClaim, 0, len(docs))
	for _, d := range docs {
		c, err := d.toClaim()
		if err != nil {
			return nil, err
		}
		claims = append(claims, c)
	}
	return claims, nil
}
