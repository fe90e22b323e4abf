package integration

import (
	"context"
	"net/http"
	"time"

	"github.com/parlakisik/buildex-matching/internal/httpclient"
	"github.com/parlakisik/buildex-matching/internal/model"
)

// DefaultLocalURL is the matching service in the local docker-compose setup
const DefaultLocalURL = "http://localhost:8080"

// Client drives a running matching service over HTTP
type Client struct {
	baseURL string
	http    *httpclient.Client
}

// NewClient creates a client that never retries, so a failed POST is never
// replayed against the service under test.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http: httpclient.NewClientWithRetry("integration", 30*time.Second, httpclient.RetryConfig{
			MaxRetries: 0,
		}),
	}
}

type SearchRequest struct {
	ResourceType string                    `json:"resource_type"`
	Location     string                    `json:"location"`
	Budget       string                    `json:"budget"`
	Candidates   []model.CandidateProvider `json:"candidates,omitempty"`
}

type QuoteRequest struct {
	BasePrice        string `json:"base_price"`
	GuaranteeEnabled bool   `json:"guarantee_enabled"`
}

type ClaimList struct {
	Claims []model.GuaranteeClaim `json:"claims"`
	Count  int                    `json:"count"`
}

func (c *Client) HealthCheck(ctx context.Context) error {
	var out map[string]string
	return httpclient.NewRequest(http.MethodGet, c.baseURL).
		Path("/health").
		Context(ctx).
		ExecuteJSON(c.http, &out)
}

func (c *Client) Search(ctx context.Context, req SearchRequest) (*model.Ranking, error) {
	var out model.Ranking
	err := httpclient.NewRequest(http.MethodPost, c.baseURL).
		Path("/v1/providers/search").
		JSON(req).
		Context(ctx).
		ExecuteJSON(c.http, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Quote(ctx context.Context, req QuoteRequest) (*model.BookingPrice, error) {
	var out model.BookingPrice
	err := httpclient.NewRequest(http.MethodPost, c.baseURL).
		Path("/v1/bookings/quote").
		JSON(req).
		Context(ctx).
		ExecuteJSON(c.http, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) FileClaim(ctx context.Context, req model.ClaimRequest) (*model.GuaranteeClaim, error) {
	var out model.GuaranteeClaim
	err := httpclient.NewRequest(http.MethodPost, c.baseURL).
		Path("/v1/guarantee/claims").
		JSON(req).
		Context(ctx).
		ExecuteJSON(c.http, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetClaim(ctx context.Context, id string) (*model.GuaranteeClaim, error) {
	var out model.GuaranteeClaim
	err := httpclient.NewRequest(http.MethodGet, c.baseURL).
		Path("/v1/guarantee/claims/" + id).
		Context(ctx).
		ExecuteJSON(c.http, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListClaimsByBooking(ctx context.Context, bookingID string) (*ClaimList, error) {
	var out ClaimList
	err := httpclient.NewRequest(http.MethodGet, c.baseURL).
		Path("/v1/guarantee/claims").
		Query("booking_id", bookingID).
		Context(ctx).
		ExecuteJSON(c.http, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
