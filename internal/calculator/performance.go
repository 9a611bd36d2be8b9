package calculator

import (
	"fmt"
	"sort"

	"meanrevert/internal/domain"

	"github.com/shopspring/decimal"
)

// SimulateReference buys as many shares as capital allows at the first
// price and holds them
func SimulateReference(prices []float64, capital float64) ([]float64, error) {
	if len(prices) == 0 {
		return nil, fmt.Errorf("%w: cannot simulate reference performance", domain.ErrEmptyPriceSeries)
	}

	sharesOwned := decimal.NewFromFloat(capital).Div(decimal.NewFromFloat(prices[0]))

	out := make([]float64, len(prices))
	for i, price := range prices {
		out[i] = sharesOwned.Mul(decimal.NewFromFloat(price)).InexactFloat64()
	}

	return out, nil
}

// Holdings computes the fixed share count of every company in the
// allocation, bought with capital*weight at the company's first price
func Holdings(allocations map[string]float64, companyPrices map[string][]float64, capital float64) (domain.PortfolioHolding, error) {
	holdings := domain.PortfolioHolding{}
	total := decimal.NewFromFloat(capital)
	for name, weight := range allocations {
		prices, ok := companyPrices[name]
		if !ok || len(prices) == 0 {
			return nil, fmt.Errorf("%w: no prices for %s", domain.ErrEmptyPriceSeries, name)
		}
		holdings[name] = total.
			Mul(decimal.NewFromFloat(weight)).
			Div(decimal.NewFromFloat(prices[0]))
	}
	return holdings, nil
}

// SimulatePortfolio returns n portfolio values, each the sum over
// companies of shares held times that day's price. every company in the
// allocation must have at least n prices; align the series first
func SimulatePortfolio(allocations map[string]float64, companyPrices map[string][]float64, capital float64, n int) ([]float64, error) {
	if n < 0 {
		return nil, fmt.Errorf("number of points must be non-negative, got %d", n)
	}
	holdings, err := Holdings(allocations, companyPrices, capital)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(holdings))
	for name := range holdings {
		if len(companyPrices[name]) < n {
			return nil, fmt.Errorf("price series for %s has %d points, need %d", name, len(companyPrices[name]), n)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		value := decimal.Zero
		for _, name := range names {
			value = value.Add(holdings[name].Mul(decimal.NewFromFloat(companyPrices[name][i])))
		}
		out[i] = value.InexactFloat64()
	}

	return out, nil
}
