package clients

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/parlakisik/buildex-matching/internal/httpclient"
	"github.com/parlakisik/buildex-matching/internal/model"
)

type ProviderDiscoveryClient struct {
	baseURL string
	client  *httpclient.Client
}

func NewProviderDiscoveryClient(baseURL string, timeout time.Duration) *ProviderDiscoveryClient {
	return &ProviderDiscoveryClient{
		baseURL: baseURL,
		client:  httpclient.NewClient("provider-discovery", timeout),
	}
}

// Candidates returns providers near req.Location offering req.ResourceType.
func (c *ProviderDiscoveryClient) Candidates(ctx context.Context, req model.ResourceRequest) ([]model.CandidateProvider, error) {
	var result struct {
		Category  string                    `json:"category"`
		Location  string                    `json:"location"`
		Providers []model.CandidateProvider `json:"providers"`
		Count     int                       `json:"count"`
	}

	err := httpclient.NewRequest(http.MethodGet, c.baseURL).
		Path("/v1/providers").
		Query("category", string(req.ResourceType)).
		Query("location", req.Location).
		Context(ctx).
		ExecuteJSON(c.client, &result)
	if err != nil {
		return nil, fmt.Errorf("provider discovery: %w", err)
	}

	return result.Providers, nil
}
