package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// countingTransport counts outgoing requests so tests can assert that no
// network call was made.
type countingTransport struct {
	calls int
	next  http.RoundTripper
}

func (c *countingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	c.calls++
	return c.next.RoundTrip(r)
}

func testConfig(apiKey, baseURL string, client *http.Client) *Config {
	cfg := DefaultConfig()
	cfg.APIKey = apiKey
	cfg.BaseURL = baseURL
	cfg.HTTPClient = client
	return cfg
}

func TestCompleteWithoutCredentialMakesNoNetworkCall(t *testing.T) {
	transport := &countingTransport{next: http.DefaultTransport}
	provider := NewOpenAIProvider(testConfig("", "http://localhost:1/v1", &http.Client{Transport: transport}))

	_, err := provider.Complete(context.Background(), "hello", nil)
	if err == nil {
		t.Fatalf("expected configuration error")
	}
	if !IsConfigError(err) {
		t.Errorf("expected CONFIG error, got %v", err)
	}
	if transport.calls != 0 {
		t.Errorf("expected 0 network calls, got %d", transport.calls)
	}
}

func TestCompleteReturnsFirstChoice(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Your vitals look stable."}}]}`))
	}))
	defer ts.Close()

	provider := NewOpenAIProvider(testConfig("test-key", ts.URL+"/v1", nil))
	reply, err := provider.Complete(context.Background(), "Check my vitals", []PromptMessage{
		{Role: RoleUser, Content: "Good morning"},
		{Role: RoleAssistant, Content: "Good morning to you!"},
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if reply != "Your vitals look stable." {
		t.Errorf("unexpected reply %q", reply)
	}
}

func TestCompleteFallsBackOnEmptyChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer ts.Close()

	provider := NewOpenAIProvider(testConfig("test-key", ts.URL+"/v1", nil))
	reply, err := provider.Complete(context.Background(), "hello", nil)
	if err != nil {
		t.Fatalf("expected fallback, got error: %v", err)
	}
	if reply != FallbackReply {
		t.Errorf("expected fallback reply, got %q", reply)
	}
}

func TestCompleteMapsServiceError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited","type":"rate_limit_error"}}`))
	}))
	defer ts.Close()

	provider := NewOpenAIProvider(testConfig("test-key", ts.URL+"/v1", nil))
	_, err := provider.Complete(context.Background(), "hello", nil)
	if err == nil {
		t.Fatalf("expected service error")
	}
	if IsConfigError(err) {
		t.Errorf("expected PROVIDER error, got CONFIG")
	}
	if !strings.Contains(UserMessage(err), "rate limited") {
		t.Errorf("expected error to carry the service message, got %q", UserMessage(err))
	}
}

func TestCompleteMapsTransportFailure(t *testing.T) {
	// Nothing listens on this port.
	provider := NewOpenAIProvider(testConfig("test-key", "http://127.0.0.1:1/v1", nil))

	_, err := provider.Complete(context.Background(), "hello", nil)
	if err == nil {
		t.Fatalf("expected transport failure to surface")
	}
	if IsConfigError(err) {
		t.Errorf("expected PROVIDER error, got CONFIG")
	}
}
