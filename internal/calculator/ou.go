package calculator

import (
	"fmt"
	"math"

	"meanrevert/internal/domain"

	"github.com/montanaflynn/stats"
	gonumstat "gonum.org/v1/gonum/stat"
)

// FitOU estimates the long-run mean of a mean-reverting price series and
// the z-score of its latest price.
//
// the OU process is discretised on daily log prices: regressing
// dX = X[t+1]-X[t] on X[t] gives dX = a*X + b, so the level the process
// reverts to is -b/a in log space. the z-score uses the population
// standard deviation of the raw prices
func FitOU(prices []float64) (mu float64, zScore float64, err error) {
	if len(prices) < 2 {
		return 0, 0, fmt.Errorf("%w: OU fit needs at least 2 prices, got %d", domain.ErrInsufficientData, len(prices))
	}

	logPrices := make([]float64, len(prices))
	for i, p := range prices {
		if p <= 0 || math.IsNaN(p) {
			return 0, 0, fmt.Errorf("%w: cannot take log of price %f at index %d", domain.ErrDegenerateFit, p, i)
		}
		logPrices[i] = math.Log(p)
	}

	x := logPrices[:len(logPrices)-1]
	dx := make([]float64, len(x))
	for i := range dx {
		dx[i] = logPrices[i+1] - logPrices[i]
	}

	intercept, slope := gonumstat.LinearRegression(x, dx, nil, false)
	if slope == 0 || math.IsNaN(slope) {
		return 0, 0, fmt.Errorf("%w: regression slope is %f", domain.ErrDegenerateFit, slope)
	}

	mu = math.Exp(-intercept / slope)
	if math.IsInf(mu, 0) || math.IsNaN(mu) || mu == 0 {
		return 0, 0, fmt.Errorf("%w: estimated mean is %f", domain.ErrDegenerateFit, mu)
	}

	stdev, err := stats.StandardDeviationPopulation(prices)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to calculate stdev: %w", err)
	}
	if stdev == 0 {
		return 0, 0, fmt.Errorf("%w: prices have zero standard deviation", domain.ErrDegenerateFit)
	}

	zScore = (prices[len(prices)-1] - mu) / stdev

	return mu, zScore, nil
}

// Classify fits the OU model to a company's prices and returns the
// classified company. the input is not modified
func Classify(company domain.Company) (domain.ClassifiedCompany, error) {
	mu, zScore, err := FitOU(company.Prices)
	if err != nil {
		return domain.ClassifiedCompany{}, fmt.Errorf("failed to fit OU model for %s: %w", company.Symbol, err)
	}

	return domain.ClassifiedCompany{
		Company: company,
		Mu:      mu,
		ZScore:  zScore,
	}, nil
}
