package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"meanrevert/internal/domain"
	mock_repository "meanrevert/internal/repository/mocks"
	"meanrevert/internal/util"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestGetCloseSeries(t *testing.T) {
	ctx := context.Background()
	start := util.NewDate(2020, 1, 1)
	end := util.NewDate(2021, 1, 1)

	t.Run("sorted closes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_repository.NewMockPriceRepository(ctrl)
		repo.EXPECT().List(ctx, "AAPL", start, end).Return([]domain.AssetPrice{
			{Symbol: "AAPL", Date: util.NewDate(2020, 1, 3), Price: 3},
			{Symbol: "AAPL", Date: util.NewDate(2020, 1, 1), Price: 1},
			{Symbol: "AAPL", Date: util.NewDate(2020, 1, 2), Price: 2},
		}, nil)

		series, err := GetCloseSeries(ctx, repo, "AAPL", start, end)
		require.NoError(t, err)
		require.Equal(t, domain.PriceSeries{1, 2, 3}, series)
	})

	t.Run("source error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_repository.NewMockPriceRepository(ctrl)
		repo.EXPECT().List(ctx, "NOPE", start, end).Return(nil, errors.New("404"))

		_, err := GetCloseSeries(ctx, repo, "NOPE", start, end)
		require.True(t, errors.Is(err, domain.ErrDataUnavailable))
		require.Contains(t, err.Error(), "404")
	})

	t.Run("no prices", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_repository.NewMockPriceRepository(ctrl)
		repo.EXPECT().List(ctx, "EMPTY", start, end).Return([]domain.AssetPrice{}, nil)

		_, err := GetCloseSeries(ctx, repo, "EMPTY", start, end)
		require.True(t, errors.Is(err, domain.ErrDataUnavailable))
	})
}

func Test_truncateToDate(t *testing.T) {
	ts := time.Date(2021, 3, 4, 21, 30, 0, 0, time.UTC)
	require.Equal(t, util.NewDate(2021, 3, 4), truncateToDate(ts))
}
