package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToDisplay(t *testing.T) {
	assert.Equal(t, 100.0, ToDisplay(100, 1))
	assert.InDelta(t, 27.2, ToDisplay(100, 0.272), 1e-9)
}

func TestRoundTrip(t *testing.T) {
	rates := []float64{1, 0.272, 3.6725, 83.12}
	amounts := []float64{0, 0.01, 12.5, 999999.99}
	for _, rate := range rates {
		for _, amount := range amounts {
			back := ToCanonical(ToDisplay(amount, rate), rate)
			assert.InDelta(t, amount, back, 1e-6, "rate %v amount %v", rate, amount)
		}
	}
}
