package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/parlakisik/buildex-matching/internal/guarantee"
	"github.com/parlakisik/buildex-matching/internal/model"
	"github.com/parlakisik/buildex-matching/internal/service"
	"github.com/shopspring/decimal"
)

const (
	maxBodyBytes      = 1 << 20
	defaultClaimLimit = 50
	maxClaimLimit     = 500
)

type Handlers struct {
	svc      *service.Service
	validate *validator.Validate
}

func NewHandlers(svc *service.Service) *Handlers {
	return &Handlers{svc: svc, validate: guarantee.NewValidator()}
}

type searchRequest struct {
	ResourceType string                    `json:"resource_type" validate:"required"`
	Location     string                    `json:"location" validate:"required"`
	Budget       decimal.Decimal           `json:"budget"`
	Candidates   []model.CandidateProvider `json:"candidates,omitempty" validate:"omitempty,max=5000"`
}

type quoteRequest struct {
	BasePrice        decimal.Decimal `json:"base_price"`
	GuaranteeEnabled bool            `json:"guarantee_enabled"`
}

type guaranteeFeeResponse struct {
	Price         decimal.Decimal `json:"price"`
	FeePercentage decimal.Decimal `json:"fee_percentage"`
	GuaranteeFee  decimal.Decimal `json:"guarantee_fee"`
}

type claimListResponse struct {
	Claims []model.GuaranteeClaim `json:"claims"`
	Count  int                    `json:"count"`
}

// SearchProviders ranks providers for a resource request
// POST /v1/providers/search
func (h *Handlers) SearchProviders(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	ranking, err := h.svc.Search(r.Context(), model.ResourceRequest{
		ResourceType: model.ResourceType(req.ResourceType),
		Location:     strings.TrimSpace(req.Location),
		Budget:       req.Budget,
	}, req.Candidates)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, ranking)
}

// QuoteBooking assembles the booking price
// POST /v1/bookings/quote
func (h *Handlers) QuoteBooking(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	price, err := h.svc.Quote(r.Context(), req.BasePrice, req.GuaranteeEnabled)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, price)
}

// GetPricingBreakdown
// GET /v1/pricing/breakdown?base_price={amount}
func (h *Handlers) GetPricingBreakdown(w http.ResponseWriter, r *http.Request) {
	base, err := decimalQuery(r, "base_price")
	if err != nil {
		writeError(w, r, err)
		return
	}
	breakdown, err := h.svc.PricingBreakdown(base)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, breakdown)
}

// GET /v1/guarantee/config
func (h *Handlers) GetGuaranteeConfig(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.GuaranteeConfig())
}

// GetGuaranteeFee
// GET /v1/guarantee/fee?price={amount}
func (h *Handlers) GetGuaranteeFee(w http.ResponseWriter, r *http.Request) {
	price, err := decimalQuery(r, "price")
	if err != nil {
		writeError(w, r, err)
		return
	}
	fee, cfg, err := h.svc.GuaranteeFee(price)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, guaranteeFeeResponse{
		Price:         price,
		FeePercentage: cfg.FeePercentage,
		GuaranteeFee:  fee,
	})
}

// FileClaim records a guarantee claim
// POST /v1/guarantee/claims
func (h *Handlers) FileClaim(w http.ResponseWriter, r *http.Request) {
	var req model.ClaimRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	claim, err := h.svc.FileClaim(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/v1/guarantee/claims/"+claim.ID)
	respondJSON(w, http.StatusCreated, claim)
}

// GET /v1/guarantee/claims/{id}
func (h *Handlers) GetClaim(w http.ResponseWriter, r *http.Request) {
	claim, err := h.svc.GetClaim(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, claim)
}

// ListClaims lists claims for one booking or one contractor
// GET /v1/guarantee/claims?booking_id={id} | ?contractor_id={id}&limit={n}
func (h *Handlers) ListClaims(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	bookingID := strings.TrimSpace(q.Get("booking_id"))
	contractorID := strings.TrimSpace(q.Get("contractor_id"))

	var (
		claims []model.GuaranteeClaim
		err    error
	)
	switch {
	case bookingID != "" && contractorID != "":
		err = fmt.Errorf("%w: use either booking_id or contractor_id, not both", model.ErrInvalidInput)
	case bookingID != "":
		claims, err = h.svc.ListClaimsByBooking(r.Context(), bookingID)
	case contractorID != "":
		limit := defaultClaimLimit
		if s := q.Get("limit"); s != "" {
			limit, err = strconv.Atoi(s)
			if err != nil || limit <= 0 || limit > maxClaimLimit {
				writeError(w, r, fmt.Errorf("%w: limit must be between 1 and %d", model.ErrInvalidInput, maxClaimLimit))
				return
			}
		}
		claims, err = h.svc.ListClaimsByContractor(r.Context(), contractorID, limit)
	default:
		err = fmt.Errorf("%w: booking_id or contractor_id is required", model.ErrInvalidInput)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	if claims == nil {
		claims = []model.GuaranteeClaim{}
	}
	respondJSON(w, http.StatusOK, claimListResponse{Claims: claims, Count: len(claims)})
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// decode reads a JSON body and validates request-shape tags. Shape problems
// are invalid input, not claim validation failures.
func (h *Handlers) decode(r *http.Request, v any) error {
	if err := decodeBody(r, v); err != nil {
		return err
	}
	if err := h.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s failed on %s", model.ErrInvalidInput, fe.Field(), fe.Tag())
		}
		return fmt.Errorf("%w: %v", model.ErrInvalidInput, err)
	}
	return nil
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", model.ErrInvalidInput, err)
	}
	return nil
}

func decimalQuery(r *http.Request, key string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return decimal.Zero, fmt.Errorf("%w: %s is required", model.ErrInvalidInput, key)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s must be a decimal, got %q", model.ErrInvalidInput, key, raw)
	}
	return d, nil
}
