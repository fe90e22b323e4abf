package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/parlakisik/buildex-matching/internal/guarantee"
	"github.com/parlakisik/buildex-matching/internal/matching"
	"github.com/parlakisik/buildex-matching/internal/model"
	"github.com/parlakisik/buildex-matching/internal/pricing"
	"github.com/shopspring/decimal"
)

const (
	StoreMemory    = "memory"
	StoreMongo     = "mongo"
	StoreFirestore = "firestore"
)

type Config struct {
	Port        string
	Environment string

	StoreType                 string
	MongoURI                  string
	MongoDB                   string
	MongoCollectionClaims     string
	FirestoreProjectID        string
	FirestoreCollectionClaims string

	CommissionRate             decimal.Decimal
	GuaranteeFeePercentage     decimal.Decimal
	GuaranteeMaxCoverageAmount decimal.Decimal

	RankingTopN  int
	VarianceBand float64
	SearchDelay  time.Duration

	ProviderDiscoveryURL string
	DiscoveryTimeout     time.Duration
	ClaimWebhookURL      string

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:                      getEnv("PORT", "8080"),
		Environment:               getEnv("ENVIRONMENT", "development"),
		StoreType:                 getEnv("STORE_TYPE", StoreMemory),
		MongoURI:                  getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:                   getEnv("MONGO_DB", "buildex"),
		MongoCollectionClaims:     getEnv("MONGO_COLLECTION_CLAIMS", "guarantee_claims"),
		FirestoreProjectID:        getEnv("FIRESTORE_PROJECT_ID", ""),
		FirestoreCollectionClaims: getEnv("FIRESTORE_COLLECTION_CLAIMS", "guarantee_claims"),
		ProviderDiscoveryURL:      getEnv("PROVIDER_DISCOVERY_URL", ""),
		ClaimWebhookURL:           getEnv("CLAIM_WEBHOOK_URL", ""),
	}

	var err error
	if cfg.CommissionRate, err = getDecimal("COMMISSION_RATE", pricing.DefaultCommissionRate); err != nil {
		return nil, err
	}
	if cfg.GuaranteeFeePercentage, err = getDecimal("GUARANTEE_FEE_PERCENTAGE", guarantee.DefaultFeePercentage); err != nil {
		return nil, err
	}
	if cfg.GuaranteeMaxCoverageAmount, err = getDecimal("GUARANTEE_MAX_COVERAGE_AMOUNT", guarantee.DefaultMaxCoverageAmount); err != nil {
		return nil, err
	}
	if cfg.RankingTopN, err = getInt("RANKING_TOP_N", matching.DefaultTopN); err != nil {
		return nil, err
	}
	if cfg.VarianceBand, err = getFloat("PRICE_VARIANCE_BAND", matching.DefaultVarianceBand); err != nil {
		return nil, err
	}
	if cfg.SearchDelay, err = getDuration("SEARCH_DELAY", 0); err != nil {
		return nil, err
	}
	if cfg.DiscoveryTimeout, err = getDuration("DISCOVERY_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.ReadTimeout, err = getDuration("READ_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.WriteTimeout, err = getDuration("WRITE_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.IdleTimeout, err = getDuration("IDLE_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) GuaranteeConfig() model.GuaranteeConfig {
	return model.GuaranteeConfig{
		FeePercentage:     c.GuaranteeFeePercentage,
		MaxCoverageAmount: c.GuaranteeMaxCoverageAmount,
	}
}

func (c *Config) validate() error {
	switch c.StoreType {
	case StoreMemory, StoreMongo:
	case StoreFirestore:
		if c.FirestoreProjectID == "" {
			return fmt.Errorf("FIRESTORE_PROJECT_ID is required when STORE_TYPE=firestore")
		}
	default:
		return fmt.Errorf("STORE_TYPE must be one of memory, mongo, firestore, got %q", c.StoreType)
	}
	if c.RankingTopN <= 0 {
		return fmt.Errorf("RANKING_TOP_N must be positive, got %d", c.RankingTopN)
	}
	if c.SearchDelay < 0 {
		return fmt.Errorf("SEARCH_DELAY must not be negative, got %s", c.SearchDelay)
	}
	if err := guarantee.ValidateConfig(c.GuaranteeConfig()); err != nil {
		return err
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDecimal(key string, def decimal.Decimal) (decimal.Decimal, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: invalid decimal %q: %w", key, v, err)
	}
	return d, nil
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q: %w", key, v, err)
	}
	return n, nil
}

func getFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid number %q: %w", key, v, err)
	}
	return f, nil
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", key, v, err)
	}
	return d, nil
}
