package guarantee

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/parlakisik/buildex-matching/internal/model"
	"github.com/parlakisik/buildex-matching/internal/store"
	"github.com/shopspring/decimal"
)

// NewValidator returns a validator that understands decimal amounts, so tags
// such as gt=0 apply to decimal.Decimal fields.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// Claims files guarantee claims against the configured store. It holds no
// per-request state and is safe for concurrent use.
type Claims struct {
	store    store.ClaimStore
	config   *ConfigProvider
	validate *validator.Validate
	now      func() time.Time
}

func NewClaims(st store.ClaimStore, config *ConfigProvider) *Claims {
	return &Claims{
		store:    st,
		config:   config,
		validate: NewValidator(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// FileClaim validates req and records a pending claim. Amounts above the
// coverage limit are accepted; MaxPayable carries the cap for review.
// Nothing is written when validation fails, and store failures are returned
// as ErrPersistence without retrying.
func (c *Claims) FileClaim(ctx context.Context, req model.ClaimRequest) (model.GuaranteeClaim, error) {
	req = normalizeClaimRequest(req)
	if err := c.validate.Struct(req); err != nil {
		return model.GuaranteeClaim{}, fmt.Errorf("%w: %s", model.ErrValidation, describeValidation(err))
	}

	cfg := c.config.Get()
	claim := model.GuaranteeClaim{
		ID:           "claim_" + uuid.NewString(),
		BookingID:    req.BookingID,
		ContractorID: req.ContractorID,
		RenterID:     req.RenterID,
		Reason:       req.Reason,
		ClaimAmount:  req.ClaimAmount,
		PhotoURL:     req.PhotoURL,
		Status:       model.ClaimStatusPending,
		MaxPayable:   MaxPayable(req.ClaimAmount, cfg),
		OverCoverage: req.ClaimAmount.GreaterThan(cfg.MaxCoverageAmount),
		CreatedAt:    c.now(),
	}

	if err := c.store.CreateClaim(ctx, claim); err != nil {
		return model.GuaranteeClaim{}, fmt.Errorf("%w: %w", model.ErrPersistence, err)
	}
	return claim, nil
}

func (c *Claims) GetClaim(ctx context.Context, claimID string) (model.GuaranteeClaim, error) {
	claimID = strings.TrimSpace(claimID)
	if claimID == "" {
		return model.GuaranteeClaim{}, fmt.Errorf("%w: claim id is required", model.ErrInvalidInput)
	}
	claim, err := c.store.GetClaim(ctx, claimID)
	if err != nil {
		return model.GuaranteeClaim{}, storeError(err)
	}
	return claim, nil
}

func (c *Claims) ListByBooking(ctx context.Context, bookingID string) ([]model.GuaranteeClaim, error) {
	bookingID = strings.TrimSpace(bookingID)
	if bookingID == "" {
		return nil, fmt.Errorf("%w: booking id is required", model.ErrInvalidInput)
	}
	claims, err := c.store.ListClaimsByBooking(ctx, bookingID)
	if err != nil {
		return nil, storeError(err)
	}
	return claims, nil
}

func (c *Claims) ListByContractor(ctx context.Context, contractorID string, limit int) ([]model.GuaranteeClaim, error) {
	contractorID = strings.TrimSpace(contractorID)
	if contractorID == "" {
		return nil, fmt.Errorf("%w: contractor id is required", model.ErrInvalidInput)
	}
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must be >= 0, got %d", model.ErrInvalidInput, limit)
	}
	claims, err := c.store.ListClaimsByContractor(ctx, contractorID, limit)
	if err != nil {
		return nil, storeError(err)
	}
	return claims, nil
}

func normalizeClaimRequest(req model.ClaimRequest) model.ClaimRequest {
	req.BookingID = strings.TrimSpace(req.BookingID)
	req.ContractorID = strings.TrimSpace(req.ContractorID)
	req.RenterID = strings.TrimSpace(req.RenterID)
	req.Reason = strings.TrimSpace(req.Reason)
	req.PhotoURL = strings.TrimSpace(req.PhotoURL)
	return req
}

func describeValidation(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return strings.Join(msgs, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "gt":
		return field + " must be greater than " + fe.Param()
	case "url":
		return field + " must be a valid URL"
	}
	return fmt.Sprintf("%s failed %s", field, fe.Tag())
}

// storeError keeps not-found visible to callers and wraps everything else
// as a persistence failure.
func storeError(err error) error {
	if errors.Is(err, model.ErrClaimNotFound) {
		return err
	}
	return fmt.Errorf("%w: %w", model.ErrPersistence, err)
}
