package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func fastRetry() RetryConfig {
	cfg := DefaultRetryConfig()
	cfg.InitialBackoff = time.Millisecond
	cfg.MaxBackoff = 5 * time.Millisecond
	return cfg
}

func TestNewClient(t *testing.T) {
	client := NewClient("test-service", 10*time.Second)

	if client.serviceName != "test-service" {
		t.Errorf("NewClient() serviceName = %v, want test-service", client.serviceName)
	}
	if client.httpClient.Timeout != 10*time.Second {
		t.Errorf("NewClient() timeout = %v, want %v", client.httpClient.Timeout, 10*time.Second)
	}
}

func TestDefaultRetryConfig(t *testing.T) {
	config := DefaultRetryConfig()

	if config.MaxRetries != 3 {
		t.Errorf("DefaultRetryConfig() MaxRetries = %v, want 3", config.MaxRetries)
	}
	if config.InitialBackoff != 100*time.Millisecond {
		t.Errorf("DefaultRetryConfig() InitialBackoff = %v, want 100ms", config.InitialBackoff)
	}
	if config.MaxBackoff != 5*time.Second {
		t.Errorf("DefaultRetryConfig() MaxBackoff = %v, want 5s", config.MaxBackoff)
	}
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name      string
		builder   *RequestBuilder
		wantURL   string
		wantCType string
	}{
		{
			name:    "trailing slash on base",
			builder: NewRequest(http.MethodGet, "http://example.com/").Path("/v1/providers"),
			wantURL: "http://example.com/v1/providers",
		},
		{
			name:    "query params skip empty values",
			builder: NewRequest(http.MethodGet, "http://example.com").Path("/v1/providers").Query("category", "labor").Query("location", ""),
			wantURL: "http://example.com/v1/providers?category=labor",
		},
		{
			name:      "json body sets content type",
			builder:   NewRequest(http.MethodPost, "http://example.com").JSON(map[string]string{"key": "value"}),
			wantURL:   "http://example.com",
			wantCType: "application/json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := tt.builder.Build()
			if err != nil {
				t.Fatalf("Build() unexpected error: %v", err)
			}
			if req.URL.String() != tt.wantURL {
				t.Errorf("Build() url = %v, want %v", req.URL.String(), tt.wantURL)
			}
			if got := req.Header.Get("Content-Type"); got != tt.wantCType {
				t.Errorf("Build() Content-Type = %q, want %q", got, tt.wantCType)
			}
		})
	}
}

func TestExecuteJSON_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("category") != "machinery" {
			t.Errorf("category = %q, want machinery", r.URL.Query().Get("category"))
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"id": "prov_1", "name": "Lone Star Cranes"})
	}))
	defer server.Close()

	client := NewClient("test", 5*time.Second)

	var result map[string]any
	err := NewRequest(http.MethodGet, server.URL).Query("category", "machinery").ExecuteJSON(client, &result)
	if err != nil {
		t.Fatalf("ExecuteJSON() error: %v", err)
	}
	if result["id"] != "prov_1" {
		t.Errorf("ExecuteJSON() id = %v, want prov_1", result["id"])
	}
}

func TestExecuteJSON_ErrorResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("not found"))
	}))
	defer server.Close()

	client := NewClient("test", 5*time.Second)

	var result map[string]any
	err := NewRequest(http.MethodGet, server.URL).ExecuteJSON(client, &result)

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("ExecuteJSON() error type = %T, want *HTTPError", err)
	}
	if httpErr.StatusCode != http.StatusNotFound {
		t.Errorf("HTTPError StatusCode = %v, want %v", httpErr.StatusCode, http.StatusNotFound)
	}
	if string(httpErr.Body) != "not found" {
		t.Errorf("HTTPError Body = %q, want not found", httpErr.Body)
	}
}

func TestRetry_Success(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("[]"))
	}))
	defer server.Close()

	client := NewClientWithRetry("test", 5*time.Second, fastRetry())

	var out []any
	if err := client.GetJSON(context.Background(), server.URL, &out); err != nil {
		t.Fatalf("GetJSON() error after retry: %v", err)
	}
	if attempts.Load() != 2 {
		t.Errorf("attempts = %v, want 2", attempts.Load())
	}
}

func TestRetry_ReplaysBody(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"budget":"100"}` {
			t.Errorf("attempt %d body = %q", attempts.Load()+1, body)
		}
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	client := NewClientWithRetry("test", 5*time.Second, fastRetry())
	err := NewRequest(http.MethodPost, server.URL).JSON(map[string]string{"budget": "100"}).ExecuteJSON(client, nil)
	if err != nil {
		t.Fatalf("ExecuteJSON() error: %v", err)
	}
	if attempts.Load() != 3 {
		t.Errorf("attempts = %v, want 3", attempts.Load())
	}
}

func TestRetry_MaxAttempts(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClientWithRetry("test", 5*time.Second, fastRetry())
	_, err := NewRequest(http.MethodGet, server.URL).Execute(client)
	if err == nil {
		t.Error("Execute() expected error after max retries, got nil")
	}
	// initial attempt + 3 retries
	if attempts.Load() != 4 {
		t.Errorf("attempts = %v, want 4", attempts.Load())
	}
}

func TestRetry_NonRetryableStatus(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClientWithRetry("test", 5*time.Second, fastRetry())
	err := client.GetJSON(context.Background(), server.URL, nil)
	if err == nil {
		t.Fatal("GetJSON() expected error for 400")
	}
	if attempts.Load() != 1 {
		t.Errorf("attempts = %v, want 1", attempts.Load())
	}
}

func TestRetry_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	cfg := DefaultRetryConfig()
	cfg.InitialBackoff = time.Second
	client := NewClientWithRetry("test", 5*time.Second, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := client.GetJSON(ctx, server.URL, nil)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("GetJSON() error = %v, want context.DeadlineExceeded", err)
	}
}
