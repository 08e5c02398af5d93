package httpclient

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBreakerClient(t *testing.T, cbCfg CircuitBreakerConfig) *CircuitBreakerClient {
	t.Helper()
	client := New(Config{
		Timeout:         5 * time.Second,
		MaxRetries:      0,
		MaxConnsPerHost: 10,
	})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewCircuitBreakerClient(client, cbCfg, logger)
}

func TestCircuitBreaker_ClosedState_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cb := newBreakerClient(t, DefaultCircuitBreakerConfig("test-closed"))

	resp, err := cb.Get(context.Background(), server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestCircuitBreaker_TripsOnFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cbCfg := CircuitBreakerConfig{
		Name:         "test-trips",
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Minute,
		FailureRatio: 0.5,
		MinRequests:  3,
	}
	cb := newBreakerClient(t, cbCfg)

	for i := 0; i < 3; i++ {
		_, err := cb.Get(context.Background(), server.URL)
		require.Error(t, err)
	}

	assert.Equal(t, gobreaker.StateOpen, cb.State())

	_, err := cb.Get(context.Background(), server.URL)
	assert.ErrorIs(t, err, ErrCircuitOpen)
}

func TestCircuitBreaker_4xxNotCountedAsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	cbCfg := CircuitBreakerConfig{
		Name:         "test-4xx",
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Minute,
		FailureRatio: 0.5,
		MinRequests:  3,
	}
	cb := newBreakerClient(t, cbCfg)

	for i := 0; i < 5; i++ {
		resp, err := cb.Get(context.Background(), server.URL)
		require.NoError(t, err)
		resp.Body.Close()
	}

	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestCircuitBreaker_WithFallback_InvokedWhenOpen(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cbCfg := CircuitBreakerConfig{
		Name:         "test-fallback",
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Minute,
		FailureRatio: 0.5,
		MinRequests:  2,
	}
	cb := newBreakerClient(t, cbCfg).WithFallback(func(ctx context.Context, err error) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(`{"data":{"products":{"edges":[]}}}`)),
			Header:     http.Header{"Content-Type": []string{"application/json"}},
		}, nil
	})

	for i := 0; i < 2; i++ {
		_, err := cb.Get(context.Background(), server.URL)
		require.Error(t, err)
	}
	require.Equal(t, gobreaker.StateOpen, cb.State())

	resp, err := cb.Get(context.Background(), server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "edges")
}

func TestCircuitBreaker_Post(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cb := newBreakerClient(t, DefaultCircuitBreakerConfig("test-post"))

	resp, err := cb.Post(context.Background(), server.URL, "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
