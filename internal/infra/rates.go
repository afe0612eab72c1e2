package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hc2580411/vwms/internal/currency"
)

// RateClient fetches a live exchange rate for a display currency, quoted
// against the canonical currency. The lookup is strictly best-effort and
// sits outside the data engine: a failure here never blocks a business
// operation, callers fall back to the stored rate.
type RateClient struct {
	baseURL string
	client  *http.Client
	cb      *CircuitBreaker
}

func NewRateClient(baseURL string) *RateClient {
	return &RateClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
		cb:      NewCircuitBreaker(CircuitBreakerConfig{}),
	}
}

// FetchRate returns the rate for converting canonical amounts into the given
// display currency.
func (r *RateClient) FetchRate(ctx context.Context, code string) (float64, error) {
	var rate float64
	err := r.cb.Execute(func() error {
		url := fmt.Sprintf("%s/v4/latest/%s", r.baseURL, currency.CanonicalCode)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := r.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("rate provider returned %d", resp.StatusCode)
		}

		var body struct {
			Rates map[string]float64 `json:"rates"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return err
		}
		v, ok := body.Rates[code]
		if !ok {
			return fmt.Errorf("no rate for %s", code)
		}
		rate = v
		return nil
	})
	return rate, err
}

// BreakerState is exposed for the health endpoint.
func (r *RateClient) BreakerState() CBState { return r.cb.State() }
