package calculator

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
)

type CalculateMetricsResult struct {
	AnnualizedStdev  float64
	AnnualizedReturn float64
	SharpeRatio      float64
	MaxDrawdown      float64
}

// CalculateMetrics summarises a daily value series spanning the given
// number of years. stdev is of daily returns, annualized over 252
// trading days
func CalculateMetrics(values []float64, years float64) (*CalculateMetricsResult, error) {
	returns, err := calculateReturns(values)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate returns: %w", err)
	}
	if years <= 0 {
		return nil, fmt.Errorf("cannot annualize over %f years", years)
	}

	stdev, err := stats.StandardDeviationSample(returns)
	if err != nil {
		return nil, err
	}
	annualizedStdev := stdev * math.Sqrt(252)

	startValue := values[0]
	endValue := values[len(values)-1]
	annualizedReturn := math.Pow((endValue/startValue), 1/years) - 1

	sharpeRatio := 0.0
	if annualizedStdev != 0 {
		sharpeRatio = annualizedReturn / annualizedStdev
	}

	return &CalculateMetricsResult{
		AnnualizedStdev:  annualizedStdev,
		AnnualizedReturn: annualizedReturn,
		SharpeRatio:      sharpeRatio,
		MaxDrawdown:      maxDrawdown(values),
	}, nil
}

func calculateReturns(values []float64) ([]float64, error) {
	if len(values) < 3 {
		return nil, fmt.Errorf("cannot calculate metrics on < 3 values")
	}

	returns := make([]float64, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		if values[i-1] == 0 {
			return nil, fmt.Errorf("zero value at index %d", i-1)
		}
		returns = append(returns, (values[i]-values[i-1])/values[i-1])
	}

	return returns, nil
}

// maxDrawdown is the largest peak to trough drop, as a positive fraction
func maxDrawdown(values []float64) float64 {
	peak := math.Inf(-1)
	worst := 0.0
	for _, v := range values {
		if v > peak {
			peak = v
		}
		if peak > 0 {
			if dd := (peak - v) / peak; dd > worst {
				worst = dd
			}
		}
	}
	return worst
}
