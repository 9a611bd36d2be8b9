package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"meanrevert/internal/domain"
)

// PriceRepository retrieves daily closing prices for a symbol
type PriceRepository interface {
	List(ctx context.Context, symbol string, start, end time.Time) ([]domain.AssetPrice, error)
}

// GetCloseSeries returns the chronological closes for a symbol between
// start and end. any failure, including an empty result, wraps
// domain.ErrDataUnavailable
func GetCloseSeries(ctx context.Context, repo PriceRepository, symbol string, start, end time.Time) (domain.PriceSeries, error) {
	prices, err := repo.List(ctx, symbol, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get prices for %s: %w", domain.ErrDataUnavailable, symbol, err)
	}
	if len(prices) == 0 {
		return nil, fmt.Errorf("%w: no prices found for %s between %s and %s", domain.ErrDataUnavailable, symbol, start.Format(time.DateOnly), end.Format(time.DateOnly))
	}

	sort.SliceStable(prices, func(i, j int) bool {
		return prices[i].Date.Before(prices[j].Date)
	})

	return domain.PriceSeriesFromAssetPrices(prices), nil
}

func truncateToDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
