package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/parlakisik/buildex-matching/internal/model"
)

// MemoryStore implements ClaimStore using in-memory storage
type MemoryStore struct {
	mu     sync.RWMutex
	claims map[string]model.GuaranteeClaim
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		claims: make(map[string]model.GuaranteeClaim),
	}
}

func (s *MemoryStore) CreateClaim(ctx context.Context, claim model.GuaranteeClaim) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.claims[claim.ID]; exists {
		return fmt.Errorf("claim already exists: %s", claim.ID)
	}
	s.claims[claim.ID] = claim
	return nil
}

func (s *MemoryStore) GetClaim(ctx context.Context, claimID string) (model.GuaranteeClaim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	claim, ok := s.claims[claimID]
	if !ok {
		return model.GuaranteeClaim{}, fmt.Errorf("%w: %s", model.ErrClaimNotFound, claimID)
	}
	return claim, nil
}

func (s *MemoryStore) ListClaimsByBooking(ctx context.Context, bookingID string) ([]model.GuaranteeClaim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []model.GuaranteeClaim
	for _, claim := range s.claims {
		if claim.BookingID == bookingID {
			result = append(result, claim)
		}
	}
	sortNewestFirst(result)
	return result, nil
}

func (s *MemoryStore) ListClaimsByContractor(ctx context.Context, contractorID string, limit int) ([]model.GuaranteeClaim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []model.GuaranteeClaim
	for _, claim := range s.claims {
		if claim.ContractorID == contractorID {
			result = append(result, claim)
		}
	}
	sortNewestFirst(result)
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (s *MemoryStore) Close() error {
	return nil
}

func sortNewestFirst(claims []model.GuaranteeClaim) {
	sort.SliceStable(claims, func(i, j int) bool {
		if claims[i].CreatedAt.Equal(claims[j].CreatedAt) {
			return claims[i].ID < claims[j].ID
		}
		return claims[i].CreatedAt.After(claims[j].CreatedAt)
	})
}
