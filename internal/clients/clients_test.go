package clients

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/parlakisik/buildex-matching/internal/httpclient"
	"github.com/parlakisik/buildex-matching/internal/model"
	"github.com/shopspring/decimal"
)

func TestProviderDiscoveryClient_Candidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/providers" {
			t.Errorf("path = %s, want /v1/providers", r.URL.Path)
		}
		if got := r.URL.Query().Get("category"); got != "machinery" {
			t.Errorf("category = %q, want machinery", got)
		}
		if got := r.URL.Query().Get("location"); got != "Denver, CO" {
			t.Errorf("location = %q, want Denver, CO", got)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"category": "machinery",
			"providers": []map[string]any{
				{"id": "prov_1", "name": "Granite Excavators", "category": "machinery", "distance": 4.5, "rating": 4.6, "base_price": "800", "availability": "Available"},
				{"id": "prov_2", "name": "Hilltop Cranes", "category": "machinery", "distance": 12, "rating": 4.9, "base_price": "3100.50", "availability": "Busy"},
			},
			"count": 2,
		})
	}))
	defer server.Close()

	c := NewProviderDiscoveryClient(server.URL, 5*time.Second)
	got, err := c.Candidates(context.Background(), model.ResourceRequest{
		ResourceType: model.ResourceMachinery,
		Location:     "Denver, CO",
		Budget:       decimal.NewFromInt(1000),
	})
	if err != nil {
		t.Fatalf("Candidates() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if !got[1].BasePrice.Equal(decimal.RequireFromString("3100.50")) {
		t.Errorf("BasePrice = %s, want 3100.50", got[1].BasePrice)
	}
	if got[1].Availability != model.AvailabilityBusy {
		t.Errorf("Availability = %s, want Busy", got[1].Availability)
	}
}

func TestProviderDiscoveryClient_Error(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	c := NewProviderDiscoveryClient(server.URL, 5*time.Second)
	_, err := c.Candidates(context.Background(), model.ResourceRequest{ResourceType: model.ResourceLabor})

	var httpErr *httpclient.HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusForbidden {
		t.Errorf("Candidates() error = %v, want HTTP 403", err)
	}
}

func TestStaticCatalog(t *testing.T) {
	cat := NewDefaultCatalog()

	got, err := cat.Candidates(context.Background(), model.ResourceRequest{ResourceType: model.ResourceLabor})
	if err != nil {
		t.Fatalf("Candidates() error = %v", err)
	}
	if len(got) != len(DefaultCatalog()) {
		t.Fatalf("len = %d, want %d", len(got), len(DefaultCatalog()))
	}

	perType := map[model.ResourceType]int{}
	for _, c := range got {
		perType[c.Category]++
		if !c.BasePrice.IsPositive() || c.Rating < 0 || c.Rating > 5 || c.Distance < 0 {
			t.Errorf("catalog entry %s has invalid attributes", c.ID)
		}
	}
	for _, rt := range []model.ResourceType{model.ResourceLabor, model.ResourceMachinery, model.ResourceMaterials} {
		if perType[rt] < 4 {
			t.Errorf("catalog has %d %s providers, want at least 4", perType[rt], rt)
		}
	}

	// callers get their own copy
	got[0].Name = "mutated"
	again, _ := cat.Candidates(context.Background(), model.ResourceRequest{})
	if again[0].Name == "mutated" {
		t.Error("Candidates() exposed the catalog's backing slice")
	}
}

func TestStaticCatalog_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewDefaultCatalog().Candidates(ctx, model.ResourceRequest{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Candidates() error = %v, want context.Canceled", err)
	}
}
