// Package matching scores candidate providers against a resource request and
// ranks them.
package matching

import (
	"fmt"
	"math"

	"github.com/parlakisik/buildex-matching/internal/model"
	"github.com/shopspring/decimal"
)

const (
	DistanceWeight = 0.4
	BudgetWeight   = 0.3
	RatingWeight   = 0.3

	// MinDistanceKm is the floor applied to distance before inverting it.
	MinDistanceKm = 0.1
	MaxRating     = 5.0

	// DefaultVarianceBand models quote variability of ±20% around base price.
	DefaultVarianceBand = 0.2
)

// minEstimatedPrice keeps the budget ratio finite when a tiny base price
// rounds down to zero.
var minEstimatedPrice = decimal.RequireFromString("0.01")

// PriceEstimator derives a quoted price from a provider's base price.
type PriceEstimator struct {
	band float64
	rnd  RandomSource
}

func NewPriceEstimator(band float64, rnd RandomSource) (*PriceEstimator, error) {
	if math.IsNaN(band) || band < 0 || band >= 1 {
		return nil, fmt.Errorf("%w: variance band must be in [0, 1), got %v", model.ErrInvalidInput, band)
	}
	if rnd == nil {
		rnd = DefaultRandom()
	}
	return &PriceEstimator{band: band, rnd: rnd}, nil
}

func (e *PriceEstimator) VarianceBand() float64 { return e.band }

// Estimate returns round(basePrice * (1 - band + U*2*band)) for one draw U.
func (e *PriceEstimator) Estimate(basePrice decimal.Decimal) decimal.Decimal {
	factor := 1 - e.band + e.rnd.Float64()*2*e.band
	est := basePrice.Mul(decimal.NewFromFloat(factor)).Round(0)
	if est.LessThan(minEstimatedPrice) {
		return minEstimatedPrice
	}
	return est
}

// Scorer computes the composite match score. Availability does not take part
// in scoring.
type Scorer struct {
	estimator *PriceEstimator
}

func NewScorer(estimator *PriceEstimator) *Scorer {
	return &Scorer{estimator: estimator}
}

// Score estimates the candidate's price once and scores it against budget.
func (s *Scorer) Score(candidate model.CandidateProvider, budget decimal.Decimal) (model.ScoredProvider, error) {
	if !budget.IsPositive() {
		return model.ScoredProvider{}, fmt.Errorf("%w: budget must be positive, got %s", model.ErrInvalidInput, budget)
	}
	if reason := checkCandidate(candidate); reason != "" {
		return model.ScoredProvider{}, fmt.Errorf("%w: provider %s: %s", model.ErrInvalidInput, candidate.ID, reason)
	}

	est := s.estimator.Estimate(candidate.BasePrice)
	return model.ScoredProvider{
		CandidateProvider: candidate,
		EstimatedPrice:    est,
		Score:             CompositeScore(candidate.Distance, candidate.Rating, budget, est),
	}, nil
}

// CompositeScore is (1/distance)*0.4 + (budget/estimatedPrice)*0.3 + (rating/5)*0.3
// with distance clamped to MinDistanceKm.
func CompositeScore(distance, rating float64, budget, estimatedPrice decimal.Decimal) float64 {
	d := math.Max(distance, MinDistanceKm)
	budgetFit := budget.Div(estimatedPrice).InexactFloat64()
	return (1/d)*DistanceWeight + budgetFit*BudgetWeight + (rating/MaxRating)*RatingWeight
}

// checkCandidate returns a non-empty reason when the candidate cannot be scored.
func checkCandidate(c model.CandidateProvider) string {
	switch {
	case math.IsNaN(c.Distance) || math.IsInf(c.Distance, 0):
		return "distance is not a finite number"
	case c.Distance < 0:
		return "distance is negative"
	case math.IsNaN(c.Rating) || c.Rating < 0 || c.Rating > MaxRating:
		return "rating outside 0..5"
	case !c.BasePrice.IsPositive():
		return "base price must be positive"
	}
	return ""
}
