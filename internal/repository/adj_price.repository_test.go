package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"meanrevert/internal/domain"
	mock_repository "meanrevert/internal/repository/mocks"
	"meanrevert/internal/util"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func Test_covers(t *testing.T) {
	start := util.NewDate(2020, 1, 1)
	end := util.NewDate(2021, 1, 1)
	now := util.NewDate(2024, 1, 1)

	prices := func(dates ...time.Time) []domain.AssetPrice {
		out := []domain.AssetPrice{}
		for _, d := range dates {
			out = append(out, domain.AssetPrice{Date: d, Price: 1})
		}
		return out
	}

	t.Run("empty", func(t *testing.T) {
		require.False(t, covers(nil, start, end, now))
	})
	t.Run("weekend edges are fine", func(t *testing.T) {
		require.True(t, covers(prices(util.NewDate(2020, 1, 2), util.NewDate(2020, 12, 31)), start, end, now))
	})
	t.Run("missing the start", func(t *testing.T) {
		require.False(t, covers(prices(util.NewDate(2020, 3, 1), util.NewDate(2020, 12, 31)), start, end, now))
	})
	t.Run("missing the end", func(t *testing.T) {
		require.False(t, covers(prices(util.NewDate(2020, 1, 2), util.NewDate(2020, 10, 1)), start, end, now))
	})
	t.Run("end in the future is capped at now", func(t *testing.T) {
		require.True(t, covers(prices(util.NewDate(2020, 1, 2), util.NewDate(2020, 6, 29)), start, end, util.NewDate(2020, 7, 1)))
	})
	t.Run("daily rows with weekends", func(t *testing.T) {
		dates := []time.Time{}
		for d := util.NewDate(2020, 1, 2); !d.After(util.NewDate(2020, 12, 31)); d = d.AddDate(0, 0, 1) {
			if d.Weekday() != time.Saturday && d.Weekday() != time.Sunday {
				dates = append(dates, d)
			}
		}
		require.True(t, covers(prices(dates...), start, end, now))
	})
	t.Run("hole in the middle", func(t *testing.T) {
		stored := prices(
			util.NewDate(2015, 1, 2),
			util.NewDate(2015, 12, 31),
			util.NewDate(2019, 1, 2),
			util.NewDate(2019, 12, 31),
		)
		require.False(t, covers(stored, util.NewDate(2015, 1, 1), util.NewDate(2020, 1, 1), now))
	})
}

func TestAdjustedPriceRepositoryHandler_List(t *testing.T) {
	t.Run("served from memory without touching db or source", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		source := mock_repository.NewMockPriceRepository(ctrl)

		start := util.NewDate(2020, 1, 1)
		end := util.NewDate(2021, 1, 1)
		cached := []domain.AssetPrice{{Symbol: "AAPL", Date: start, Price: 10}}

		h := AdjustedPriceRepositoryHandler{
			Source: source,
			Cache: map[cacheKey][]domain.AssetPrice{
				{symbol: "AAPL", start: "2020-01-01", end: "2021-01-01"}: cached,
			},
			ReadMutex: &sync.RWMutex{},
			Now:       time.Now,
		}

		out, err := h.List(context.Background(), "AAPL", start, end)
		require.NoError(t, err)
		require.Equal(t, cached, out)
	})
	t.Run("stored rows with a hole fall back to the source", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		source := mock_repository.NewMockPriceRepository(ctrl)

		start := util.NewDate(2015, 1, 1)
		end := util.NewDate(2020, 1, 1)
		stored := []domain.AssetPrice{
			{Symbol: "AAPL", Date: util.NewDate(2015, 1, 2), Price: 1},
			{Symbol: "AAPL", Date: util.NewDate(2019, 12, 31), Price: 2},
		}
		fetched := []domain.AssetPrice{
			{Symbol: "AAPL", Date: util.NewDate(2015, 1, 2), Price: 1},
			{Symbol: "AAPL", Date: util.NewDate(2017, 6, 1), Price: 1.5},
			{Symbol: "AAPL", Date: util.NewDate(2019, 12, 31), Price: 2},
		}
		source.EXPECT().List(gomock.Any(), "AAPL", start, end).Return(fetched, nil)

		var wrote []domain.AssetPrice
		h := AdjustedPriceRepositoryHandler{
			Source:    source,
			Cache:     map[cacheKey][]domain.AssetPrice{},
			ReadMutex: &sync.RWMutex{},
			Now:       time.Now,
			store: func(ctx context.Context, symbol string, start, end time.Time) ([]domain.AssetPrice, error) {
				return stored, nil
			},
			write: func(ctx context.Context, prices []domain.AssetPrice) error {
				wrote = prices
				return nil
			},
		}

		out, err := h.List(context.Background(), "AAPL", start, end)
		require.NoError(t, err)
		require.Equal(t, fetched, out)
		require.Equal(t, fetched, wrote)
	})
}
