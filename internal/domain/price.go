package domain

import (
	"fmt"
	"math"
	"time"
)

type AssetPrice struct {
	Symbol string
	Price  float64
	Date   time.Time
}

// PriceSeries is a chronological list of closing prices, one per
// trading day in the requested range
type PriceSeries []float64

func (p PriceSeries) Len() int {
	return len(p)
}

// Last returns the most recent close. panics on an empty series,
// same as indexing would
func (p PriceSeries) Last() float64 {
	return p[len(p)-1]
}

// Validate checks the invariants the calculators rely on: at least two
// points, every price finite and positive
func (p PriceSeries) Validate() error {
	if len(p) < 2 {
		return fmt.Errorf("%w: price series needs at least 2 points, got %d", ErrInsufficientData, len(p))
	}
	for i, price := range p {
		if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
			return fmt.Errorf("invalid price %f at index %d", price, i)
		}
	}
	return nil
}

func PriceSeriesFromAssetPrices(prices []AssetPrice) PriceSeries {
	out := make(PriceSeries, 0, len(prices))
	for _, p := range prices {
		out = append(out, p.Price)
	}
	return out
}
