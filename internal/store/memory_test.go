package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/parlakisik/buildex-matching/internal/model"
	"github.com/shopspring/decimal"
)

func testClaim(id, booking, contractor string, at time.Time) model.GuaranteeClaim {
	return model.GuaranteeClaim{
		ID:           id,
		BookingID:    booking,
		ContractorID: contractor,
		RenterID:     "renter_1",
		Reason:       "damaged equipment",
		ClaimAmount:  decimal.NewFromInt(250),
		Status:       model.ClaimStatusPending,
		MaxPayable:   decimal.NewFromInt(250),
		CreatedAt:    at,
	}
}

func TestMemoryStore_CreateAndGet(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	now := time.Now().UTC()

	if err := st.CreateClaim(ctx, testClaim("claim_1", "b1", "c1", now)); err != nil {
		t.Fatalf("CreateClaim() error = %v", err)
	}
	if err := st.CreateClaim(ctx, testClaim("claim_1", "b1", "c1", now)); err == nil {
		t.Error("CreateClaim() duplicate id should fail")
	}

	got, err := st.GetClaim(ctx, "claim_1")
	if err != nil {
		t.Fatalf("GetClaim() error = %v", err)
	}
	if !got.ClaimAmount.Equal(decimal.NewFromInt(250)) {
		t.Errorf("ClaimAmount = %s, want 250", got.ClaimAmount)
	}

	_, err = st.GetClaim(ctx, "claim_404")
	if !errors.Is(err, model.ErrClaimNotFound) {
		t.Errorf("GetClaim(missing) error = %v, want ErrClaimNotFound", err)
	}
}

func TestMemoryStore_Lists(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	claims := []model.GuaranteeClaim{
		testClaim("claim_a", "b1", "c1", base),
		testClaim("claim_b", "b1", "c1", base.Add(time.Hour)),
		testClaim("claim_c", "b2", "c1", base.Add(2*time.Hour)),
		testClaim("claim_d", "b2", "c2", base.Add(3*time.Hour)),
	}
	for _, c := range claims {
		if err := st.CreateClaim(ctx, c); err != nil {
			t.Fatalf("CreateClaim(%s) error = %v", c.ID, err)
		}
	}

	tests := []struct {
		name    string
		list    func() ([]model.GuaranteeClaim, error)
		wantIDs []string
	}{
		{
			name:    "by booking newest first",
			list:    func() ([]model.GuaranteeClaim, error) { return st.ListClaimsByBooking(ctx, "b1") },
			wantIDs: []string{"claim_b", "claim_a"},
		},
		{
			name:    "by contractor unlimited",
			list:    func() ([]model.GuaranteeClaim, error) { return st.ListClaimsByContractor(ctx, "c1", 0) },
			wantIDs: []string{"claim_c", "claim_b", "claim_a"},
		},
		{
			name:    "by contractor limited",
			list:    func() ([]model.GuaranteeClaim, error) { return st.ListClaimsByContractor(ctx, "c1", 2) },
			wantIDs: []string{"claim_c", "claim_b"},
		},
		{
			name:    "unknown booking",
			list:    func() ([]model.GuaranteeClaim, error) { return st.ListClaimsByBooking(ctx, "nope") },
			wantIDs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.list()
			if err != nil {
				t.Fatalf("list error = %v", err)
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Errorf("[%d] = %s, want %s", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestMemoryStore_ConcurrentCreate(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	now := time.Now().UTC()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = st.CreateClaim(ctx, testClaim(fmt.Sprintf("claim_%d", i), "b1", "c1", now))
		}(i)
	}
	wg.Wait()

	got, err := st.ListClaimsByBooking(ctx, "b1")
	if err != nil {
		t.Fatalf("ListClaimsByBooking() error = %v", err)
	}
	if len(got) != 100 {
		t.Errorf("len = %d, want 100", len(got))
	}
}

func TestClaimDocumentRoundTrip(t *testing.T) {
	claim := testClaim("claim_x", "b1", "c1", time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC))
	claim.ClaimAmount = decimal.RequireFromString("7250.75")
	claim.MaxPayable = decimal.NewFromInt(5000)
	claim.OverCoverage = true

	doc := toDocument(claim)
	if doc.ClaimAmount != "7250.75" {
		t.Errorf("document claim_amount = %q, want 7250.75", doc.ClaimAmount)
	}

	back, err := doc.toClaim()
	if err != nil {
		t.Fatalf("toClaim() error = %v", err)
	}
	if !back.ClaimAmount.Equal(claim.ClaimAmount) || !back.MaxPayable.Equal(claim.MaxPayable) {
		t.Errorf("amounts changed: got %s/%s", back.ClaimAmount, back.MaxPayable)
	}
	if !back.OverCoverage || back.Status != model.ClaimStatusPending {
		t.Errorf("flags changed: %+v", back)
	}

	doc.MaxPayable = "garbage"
	if _, err := doc.toClaim(); err == nil {
		t.Error("toClaim() with corrupt amount should fail")
	}
}
