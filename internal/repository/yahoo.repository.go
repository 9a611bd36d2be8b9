package repository

import (
	"context"
	"fmt"
	"time"

	"meanrevert/internal/domain"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"golang.org/x/time/rate"
)

type yahooPriceRepositoryHandler struct {
	Limiter *rate.Limiter
}

// NewYahooPriceRepository pulls daily adjusted closes from Yahoo
// Finance. requests are throttled, yahoo starts returning 429s quickly
// when a whole company list is fetched at once
func NewYahooPriceRepository(requestsPerSecond float64) PriceRepository {
	return yahooPriceRepositoryHandler{
		Limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

func (h yahooPriceRepositoryHandler) List(ctx context.Context, symbol string, start, end time.Time) ([]domain.AssetPrice, error) {
	if err := h.Limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := &chart.Params{
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Symbol:   symbol,
		Interval: datetime.OneDay,
	}
	iter := chart.Get(params)

	out := []domain.AssetPrice{}
	for iter.Next() {
		bar := iter.Bar()
		out = append(out, domain.AssetPrice{
			Symbol: symbol,
			Date:   truncateToDate(time.Unix(int64(bar.Timestamp), 0)),
			Price:  bar.AdjClose.InexactFloat64(),
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to get yahoo chart for %s: %w", symbol, err)
	}

	return out, nil
}
