package calculator

import (
	"fmt"
	"time"

	"meanrevert/internal/domain"
)

// BuildTimeAxis spreads n points evenly across the years of the date
// range and lists every year in between for tick marks. the axis is
// linear in years, not calendar accurate
func BuildTimeAxis(start, end string, n int) ([]float64, []int, error) {
	startYear, endYear, err := yearRange(start, end)
	if err != nil {
		return nil, nil, err
	}

	axis, err := linspace(float64(startYear), float64(endYear), n)
	if err != nil {
		return nil, nil, err
	}

	ticks := []int{}
	for year := startYear; year <= endYear; year++ {
		ticks = append(ticks, year)
	}

	return axis, ticks, nil
}

// ValidateDateRange checks the range without building anything, so
// callers can fail before fetching data
func ValidateDateRange(start, end string) error {
	_, _, err := yearRange(start, end)
	return err
}

func yearRange(start, end string) (int, int, error) {
	startDate, err := time.Parse(time.DateOnly, start)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: invalid start date %q: %w", domain.ErrInvalidDateRange, start, err)
	}
	endDate, err := time.Parse(time.DateOnly, end)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: invalid end date %q: %w", domain.ErrInvalidDateRange, end, err)
	}
	if startDate.Year() == endDate.Year() {
		return 0, 0, fmt.Errorf(
			"%w: End and start years cannot be the same (%d). Ensure lookback period is longer than one year.",
			domain.ErrInvalidDateRange,
			startDate.Year(),
		)
	}
	return startDate.Year(), endDate.Year(), nil
}

func linspace(start, end float64, n int) ([]float64, error) {
	if n < 0 {
		return nil, fmt.Errorf("number of points must be non-negative, got %d", n)
	}
	out := make([]float64, n)
	if n == 0 {
		return out, nil
	}
	if n == 1 {
		out[0] = start
		return out, nil
	}
	step := (end - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = end
	return out, nil
}
