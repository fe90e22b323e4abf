package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/parlakisik/buildex-matching/internal/booking"
	"github.com/parlakisik/buildex-matching/internal/guarantee"
	"github.com/parlakisik/buildex-matching/internal/matching"
	"github.com/parlakisik/buildex-matching/internal/model"
	"github.com/parlakisik/buildex-matching/internal/pricing"
)

// settings are the engine parameters resolved from flags, config file and env.
type settings struct {
	CommissionRate    decimal.Decimal
	FeePercentage     decimal.Decimal
	MaxCoverageAmount decimal.Decimal
	TopN              int
	VarianceBand      float64
}

func loadSettings() (settings, error) {
	var s settings
	var err error
	if s.CommissionRate, err = decimal.NewFromString(viper.GetString("commission_rate")); err != nil {
		return s, fmt.Errorf("commission rate: %w", err)
	}
	if s.FeePercentage, err = decimal.NewFromString(viper.GetString("guarantee.fee_percentage")); err != nil {
		return s, fmt.Errorf("guarantee fee percentage: %w", err)
	}
	if s.MaxCoverageAmount, err = decimal.NewFromString(viper.GetString("guarantee.max_coverage")); err != nil {
		return s, fmt.Errorf("guarantee max coverage: %w", err)
	}
	s.TopN = viper.GetInt("ranking.top_n")
	s.VarianceBand = viper.GetFloat64("ranking.variance_band")
	return s, nil
}

func (s settings) guaranteeCalculator() (*guarantee.Calculator, error) {
	cp, err := guarantee.NewConfigProvider(model.GuaranteeConfig{
		FeePercentage:     s.FeePercentage,
		MaxCoverageAmount: s.MaxCoverageAmount,
	})
	if err != nil {
		return nil, err
	}
	return guarantee.NewCalculator(cp), nil
}

func (s settings) assembler() (*booking.Assembler, error) {
	p, err := pricing.NewCalculator(s.CommissionRate)
	if err != nil {
		return nil, err
	}
	g, err := s.guaranteeCalculator()
	if err != nil {
		return nil, err
	}
	return booking.NewAssembler(p, g), nil
}

// rankingService uses a seeded source when seed is non-zero so runs can be
// reproduced.
func (s settings) rankingService(seed uint64) (*matching.RankingService, error) {
	rnd := matching.DefaultRandom()
	if seed != 0 {
		rnd = matching.NewSeededSource(seed)
	}
	est, err := matching.NewPriceEstimator(s.VarianceBand, rnd)
	if err != nil {
		return nil, err
	}
	return matching.NewRankingService(matching.NewScorer(est), s.TopN)
}

func readPool(path string) ([]model.CandidateProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pool: %w", err)
	}
	var pool []model.CandidateProvider
	if err := json.Unmarshal(data, &pool); err != nil {
		return nil, fmt.Errorf("parse pool %s: %w", path, err)
	}
	return pool, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
