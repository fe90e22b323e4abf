package store

import (
	"context"

	"github.com/parlakisik/buildex-matching/internal/model"
)

// ClaimStore persists guarantee claims. CreateClaim is a single atomic create;
// a claim is either fully written or not at all.
type ClaimStore interface {
	CreateClaim(ctx context.Context, claim model.GuaranteeClaim) error
	GetClaim(ctx context.Context, claimID string) (model.GuaranteeClaim, error)
	ListClaimsByBooking(ctx context.Context, bookingID string) ([]model.GuaranteeClaim, error)
	ListClaimsByContractor(ctx context.Context, contractorID string, limit int) ([]model.GuaranteeClaim, error)

	Close() error
}
