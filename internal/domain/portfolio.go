package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Allocation maps a company identifier to its weight in [0,1]
type Allocation map[string]float64

// Keys returns the identifiers in sorted order
func (a Allocation) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (a Allocation) Sum() float64 {
	sum := 0.0
	for _, k := range a.Keys() {
		sum += a[k]
	}
	return sum
}

// PortfolioHolding maps company name to the number of shares bought at
// the start of a simulation
type PortfolioHolding map[string]decimal.Decimal

// PortfolioEntry is one line of a user-defined portfolio file
type PortfolioEntry struct {
	Symbol string
	Name   string
	Weight float64
}

// Weights returns the portfolio as name -> weight
func Weights(entries []PortfolioEntry) map[string]float64 {
	out := map[string]float64{}
	for _, e := range entries {
		out[e.Name] = e.Weight
	}
	return out
}
