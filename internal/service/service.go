package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/parlakisik/buildex-matching/internal/booking"
	"github.com/parlakisik/buildex-matching/internal/clients"
	"github.com/parlakisik/buildex-matching/internal/events"
	"github.com/parlakisik/buildex-matching/internal/guarantee"
	"github.com/parlakisik/buildex-matching/internal/matching"
	"github.com/parlakisik/buildex-matching/internal/model"
	"github.com/parlakisik/buildex-matching/internal/pricing"
	"github.com/shopspring/decimal"
)

// Deps are the collaborators a Service is built from.
type Deps struct {
	Source    clients.CandidateSource
	Ranking   *matching.RankingService
	Pricing   *pricing.Calculator
	Guarantee *guarantee.Calculator
	Claims    *guarantee.Claims
	Events    *events.Publisher

	// SearchDelay simulates discovery latency before ranking. Zero disables it.
	SearchDelay time.Duration
}

type Service struct {
	source      clients.CandidateSource
	ranking     *matching.RankingService
	pricing     *pricing.Calculator
	guarantee   *guarantee.Calculator
	claims      *guarantee.Claims
	assembler   *booking.Assembler
	events      *events.Publisher
	searchDelay time.Duration
}

func New(d Deps) (*Service, error) {
	switch {
	case d.Source == nil:
		return nil, errors.New("candidate source is required")
	case d.Ranking == nil:
		return nil, errors.New("ranking service is required")
	case d.Pricing == nil, d.Guarantee == nil:
		return nil, errors.New("pricing and guarantee calculators are required")
	case d.Claims == nil:
		return nil, errors.New("claims filer is required")
	}
	if d.Events == nil {
		d.Events = events.NewPublisher("buildex-matching")
	}
	return &Service{
		source:      d.Source,
		ranking:     d.Ranking,
		pricing:     d.Pricing,
		guarantee:   d.Guarantee,
		claims:      d.Claims,
		assembler:   booking.NewAssembler(d.Pricing, d.Guarantee),
		events:      d.Events,
		searchDelay: d.SearchDelay,
	}, nil
}

// Search ranks providers for req. When pool is nil the configured candidate
// source is queried. The simulated search delay is honoured here, never in
// the ranking itself, and ends early with ctx.Err() on cancellation.
func (s *Service) Search(ctx context.Context, req model.ResourceRequest, pool []model.CandidateProvider) (model.Ranking, error) {
	rt, ok := model.ParseResourceType(string(req.ResourceType))
	if !ok {
		return model.Ranking{}, fmt.Errorf("%w: unknown resource type %q", model.ErrInvalidInput, req.ResourceType)
	}
	req.ResourceType = rt
	if !req.Budget.IsPositive() {
		return model.Ranking{}, fmt.Errorf("%w: budget must be positive, got %s", model.ErrInvalidInput, req.Budget)
	}

	if pool == nil {
		fetched, err := s.source.Candidates(ctx, req)
		if err != nil {
			if ctx.Err() != nil {
				return model.Ranking{}, ctx.Err()
			}
			return model.Ranking{}, fmt.Errorf("%w: fetch candidates: %w", model.ErrUpstream, err)
		}
		pool = fetched
	}

	if err := wait(ctx, s.searchDelay); err != nil {
		return model.Ranking{}, err
	}

	ranking, err := s.ranking.Rank(req, pool)
	if err != nil {
		return model.Ranking{}, err
	}
	ranking.ID = "rank_" + uuid.NewString()

	slog.InfoContext(ctx, "providers_ranked",
		"ranking_id", ranking.ID,
		"resource_type", ranking.ResourceType,
		"location", ranking.Location,
		"candidates", ranking.TotalCandidates,
		"matched", ranking.Matched,
		"ranked", len(ranking.Providers),
		"disqualified", len(ranking.Disqualified),
	)

	entries := make([]events.RankedEntry, 0, len(ranking.Providers))
	for i, p := range ranking.Providers {
		entries = append(entries, events.RankedEntry{
			ProviderID:     p.ID,
			Rank:           i + 1,
			Score:          p.Score,
			EstimatedPrice: p.EstimatedPrice,
		})
	}
	_ = s.events.Publish(ctx, events.EventProvidersRanked, ranking.ID, events.ProvidersRankedData{
		ResourceType:    string(ranking.ResourceType),
		Location:        ranking.Location,
		Budget:          ranking.Budget,
		TotalCandidates: ranking.TotalCandidates,
		Matched:         ranking.Matched,
		Disqualified:    len(ranking.Disqualified),
		Ranked:          entries,
	})

	return ranking, nil
}

// Quote assembles the booking price for a selected provider.
func (s *Service) Quote(ctx context.Context, basePrice decimal.Decimal, guaranteeEnabled bool) (model.BookingPrice, error) {
	price, err := s.assembler.Assemble(basePrice, guaranteeEnabled)
	if err != nil {
		return model.BookingPrice{}, err
	}
	price.QuoteID = "quote_" + uuid.NewString()

	slog.InfoContext(ctx, "booking_quoted",
		"quote_id", price.QuoteID,
		"base_price", price.BasePrice.String(),
		"guarantee_enabled", price.GuaranteeEnabled,
		"final_price", price.FinalPrice.String(),
	)
	_ = s.events.Publish(ctx, events.EventBookingQuoted, price.QuoteID, events.BookingQuotedData{
		BasePrice:        price.BasePrice,
		GuaranteeEnabled: price.GuaranteeEnabled,
		GuaranteeFee:     price.GuaranteeFee,
		PlatformFee:      price.Breakdown.PlatformFeeTotal,
		FinalPrice:       price.FinalPrice,
	})
	return price, nil
}

func (s *Service) PricingBreakdown(basePrice decimal.Decimal) (model.PricingBreakdown, error) {
	return s.pricing.CalculatePricing(basePrice)
}

func (s *Service) GuaranteeConfig() model.GuaranteeConfig {
	return s.guarantee.GetConfig()
}

// GuaranteeFee returns the fee for price together with the config it was computed from.
func (s *Service) GuaranteeFee(price decimal.Decimal) (decimal.Decimal, model.GuaranteeConfig, error) {
	cfg := s.guarantee.GetConfig()
	fee, err := s.guarantee.CalculateGuaranteeFee(price)
	if err != nil {
		return decimal.Zero, cfg, err
	}
	return fee, cfg, nil
}

func (s *Service) FileClaim(ctx context.Context, req model.ClaimRequest) (model.GuaranteeClaim, error) {
	claim, err := s.claims.FileClaim(ctx, req)
	if err != nil {
		if errors.Is(err, model.ErrPersistence) {
			slog.ErrorContext(ctx, "claim_persist_failed", "booking_id", req.BookingID, "error", err)
		}
		return model.GuaranteeClaim{}, err
	}

	slog.InfoContext(ctx, "guarantee_claim_filed",
		"claim_id", claim.ID,
		"booking_id", claim.BookingID,
		"contractor_id", claim.ContractorID,
		"claim_amount", claim.ClaimAmount.String(),
		"max_payable", claim.MaxPayable.String(),
		"over_coverage", claim.OverCoverage,
	)
	_ = s.events.Publish(ctx, events.EventGuaranteeClaimFiled, claim.ID, events.ClaimFiledData{
		ClaimID:      claim.ID,
		BookingID:    claim.BookingID,
		ContractorID: claim.ContractorID,
		RenterID:     claim.RenterID,
		ClaimAmount:  claim.ClaimAmount,
		MaxPayable:   claim.MaxPayable,
		OverCoverage: claim.OverCoverage,
		FiledAt:      claim.CreatedAt,
	})
	return claim, nil
}

func (s *Service) GetClaim(ctx context.Context, claimID string) (model.GuaranteeClaim, error) {
	return s.claims.GetClaim(ctx, claimID)
}

func (s *Service) ListClaimsByBooking(ctx context.Context, bookingID string) ([]model.GuaranteeClaim, error) {
	return s.claims.ListByBooking(ctx, bookingID)
}

func (s *Service) ListClaimsByContractor(ctx context.Context, contractorID string, limit int) ([]model.GuaranteeClaim, error) {
	return s.claims.ListByContractor(ctx, contractorID, limit)
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
