package httpapi

import (
	"net/http"

	"github.com/parlakisik/buildex-matching/internal/service"
)

func NewRouter(svc *service.Service) http.Handler {
	h := NewHandlers(svc)
	mux := http.NewServeMux()

	// Matching and pricing
	mux.HandleFunc("POST /v1/providers/search", h.SearchProviders)
	mux.HandleFunc("POST /v1/bookings/quote", h.QuoteBooking)
	mux.HandleFunc("GET /v1/pricing/breakdown", h.GetPricingBreakdown)

	// Guarantee
	mux.HandleFunc("GET /v1/guarantee/config", h.GetGuaranteeConfig)
	mux.HandleFunc("GET /v1/guarantee/fee", h.GetGuaranteeFee)
	mux.HandleFunc("POST /v1/guarantee/claims", h.FileClaim)
	mux.HandleFunc("GET /v1/guarantee/claims", h.ListClaims)
	mux.HandleFunc("GET /v1/guarantee/claims/{id}", h.GetClaim)

	mux.HandleFunc("GET /health", h.Health)

	return applyMiddleware(mux,
		RequestID,
		Logging,
		Recovery,
	)
}
