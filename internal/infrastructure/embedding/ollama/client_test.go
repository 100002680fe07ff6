package ollama

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bujinkan-tools/densho/internal/core/domain"
	"github.com/bujinkan-tools/densho/internal/infrastructure/resilience"
)

func testExecutor(attempts int) *resilience.Executor {
	return resilience.NewExecutor(resilience.Config{
		RetryMaxAttempts:    attempts,
		RetryInitialBackoff: time.Millisecond,
		RetryMaxBackoff:     2 * time.Millisecond,
		RetryMultiplier:     2,
		BreakerEnabled:      false,
	})
}

func embedServer(t *testing.T, embeddings [][]float32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/embed" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req struct {
			Model string   `json:"model"`
			Input []string `json:"input"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode embed request: %v", err)
		}
		if req.Model != "all-minilm" {
			t.Errorf("unexpected model %q", req.Model)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"embeddings": embeddings})
	}))
}

func TestEmbedNormalizesVectors(t *testing.T) {
	srv := embedServer(t, [][]float32{{3, 4}, {0, 5}})
	defer srv.Close()

	client := New(srv.URL, "all-minilm", 2, testExecutor(1))
	vectors, err := client.Embed(context.Background(), []string{"omote gyaku", "ura gyaku"})
	if err != nil {
		t.Fatalf("embed: %v", err)
	}
	if len(vectors) != 2 {
		t.Fatalf("expected 2 vectors, got %d", len(vectors))
	}

	want := [][]float32{{0.6, 0.8}, {0, 1}}
	for i := range want {
		for j := range want[i] {
			if diff := math.Abs(float64(vectors[i][j] - want[i][j])); diff > 1e-6 {
				t.Errorf("vector[%d][%d] = %f, want %f", i, j, vectors[i][j], want[i][j])
			}
		}
	}
}

func TestEmbedQueryReturnsSingleVector(t *testing.T) {
	srv := embedServer(t, [][]float32{{1, 0}})
	defer srv.Close()

	client := New(srv.URL, "all-minilm", 2, testExecutor(1))
	vector, err := client.EmbedQuery(context.Background(), "what is kamae")
	if err != nil {
		t.Fatalf("embed query: %v", err)
	}
	if len(vector) != 2 || vector[0] != 1 {
		t.Fatalf("unexpected vector %v", vector)
	}
}

func TestEmbedRetriesServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "model loading", http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"embeddings": [][]float32{{1, 0}}})
	}))
	defer srv.Close()

	client := New(srv.URL, "all-minilm", 2, testExecutor(3))
	if _, err := client.Embed(context.Background(), []string{"kihon happo"}); err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
}

func TestEmbedDoesNotRetryClientError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"error":"unknown model"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	client := New(srv.URL, "all-minilm", 2, testExecutor(3))
	_, err := client.Embed(context.Background(), []string{"kihon happo"})
	if err == nil {
		t.Fatal("expected error")
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected 1 call, got %d", got)
	}
	if !domain.IsKind(err, domain.ErrEmbedding) {
		t.Errorf("expected ErrEmbedding, got %v", err)
	}
	if domain.IsKind(err, domain.ErrTemporary) {
		t.Errorf("client error must not be temporary: %v", err)
	}
}

func TestEmbedExhaustedRetriesAreTemporary(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := New(srv.URL, "all-minilm", 2, testExecutor(2))
	_, err := client.Embed(context.Background(), []string{"kihon happo"})
	if !domain.IsKind(err, domain.ErrTemporary) {
		t.Fatalf("expected ErrTemporary, got %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
}

func TestEmbedRejectsBadInput(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	client := New(srv.URL, "all-minilm", 2, testExecutor(1))

	cases := map[string][]string{
		"no texts":  nil,
		"blank":     {"   "},
		"oversized": {strings.Repeat("a", maxInputRunes+1)},
	}
	for name, texts := range cases {
		if _, err := client.Embed(context.Background(), texts); !domain.IsKind(err, domain.ErrInvalidInput) {
			t.Errorf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}
	if got := calls.Load(); got != 0 {
		t.Fatalf("invalid input must not reach the backend, got %d calls", got)
	}
}

func TestEmbedRejectsCountMismatch(t *testing.T) {
	srv := embedServer(t, [][]float32{{1, 0}})
	defer srv.Close()

	client := New(srv.URL, "all-minilm", 2, testExecutor(1))
	_, err := client.Embed(context.Background(), []string{"one", "two"})
	if !domain.IsKind(err, domain.ErrEmbedding) {
		t.Fatalf("expected ErrEmbedding on count mismatch, got %v", err)
	}
}

func TestEmbedRejectsDimensionMismatch(t *testing.T) {
	srv := embedServer(t, [][]float32{{1, 0, 0}})
	defer srv.Close()

	client := New(srv.URL, "all-minilm", 2, testExecutor(1))
	_, err := client.Embed(context.Background(), []string{"one"})
	if !domain.IsKind(err, domain.ErrEmbedding) {
		t.Fatalf("expected ErrEmbedding on dimension mismatch, got %v", err)
	}
}
