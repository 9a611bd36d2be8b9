package domain

import "fmt"

// Company is a security whose prices have been retrieved but which has
// not been fit to an OU process yet
type Company struct {
	Name   string
	Symbol string
	Prices PriceSeries
}

func (c Company) CurrentPrice() float64 {
	return c.Prices.Last()
}

// Identifier is the key used in allocation maps, "SYMBOL Name"
func (c Company) Identifier() string {
	return fmt.Sprintf("%s %s", c.Symbol, c.Name)
}

type Direction string

const (
	Long  Direction = "long"
	Short Direction = "short"
)

// ClassifiedCompany is a mean-reverting company with its fitted long-run
// mean and the z-score of its current price
type ClassifiedCompany struct {
	Company
	Mu     float64
	ZScore float64
}

// Direction is long when the current price sits below the estimated
// mean (expect reversion upward), short otherwise
func (c ClassifiedCompany) Direction() Direction {
	if c.ZScore < 0 {
		return Long
	}
	return Short
}
