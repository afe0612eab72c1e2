package infra

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchRate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v4/latest/AED", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"base":"AED","rates":{"USD":0.272,"EUR":0.25}}`))
	}))
	defer srv.Close()

	client := NewRateClient(srv.URL)
	rate, err := client.FetchRate(context.Background(), "USD")
	require.NoError(t, err)
	assert.InDelta(t, 0.272, rate, 1e-9)

	_, err = client.FetchRate(context.Background(), "XXX")
	assert.Error(t, err)
}

func TestRateClientBreakerTrips(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewRateClient(srv.URL)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := client.FetchRate(ctx, "USD")
		require.Error(t, err)
	}
	assert.Equal(t, CBOpen, client.BreakerState())

	// While open, calls fast-fail without touching the provider.
	_, err := client.FetchRate(ctx, "USD")
	assert.ErrorIs(t, err, ErrCircuitOpen)
}

func TestCircuitBreakerRecovers(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 2,
		SuccessThreshold: 1,
		OpenTimeout:      10 * time.Millisecond,
	})

	failing := func() error { return assert.AnError }
	require.Error(t, cb.Execute(failing))
	require.Error(t, cb.Execute(failing))
	assert.Equal(t, CBOpen, cb.State())

	time.Sleep(15 * time.Millisecond)
	assert.Equal(t, CBHalfOpen, cb.State())

	require.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, CBClosed, cb.State())
}
