package repository

import (
	"context"
	"fmt"
	"time"

	"meanrevert/internal/domain"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
)

type alpacaPriceRepositoryHandler struct {
	MdClient *marketdata.Client
}

// NewAlpacaPriceRepository reads split and dividend adjusted daily bars
// from alpaca market data. alpaca has no index tickers, callers should
// benchmark against ETFs instead
func NewAlpacaPriceRepository(apiKey, apiSecret, endpoint string) PriceRepository {
	mdClient := marketdata.NewClient(marketdata.ClientOpts{
		BaseURL:   endpoint,
		APIKey:    apiKey,
		APISecret: apiSecret,
	})

	return alpacaPriceRepositoryHandler{
		MdClient: mdClient,
	}
}

func (h alpacaPriceRepositoryHandler) List(ctx context.Context, symbol string, start, end time.Time) ([]domain.AssetPrice, error) {
	bars, err := h.MdClient.GetBars(symbol, marketdata.GetBarsRequest{
		TimeFrame:  marketdata.OneDay,
		Adjustment: marketdata.All,
		Start:      start,
		End:        end,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get alpaca bars for %s: %w", symbol, err)
	}

	out := make([]domain.AssetPrice, 0, len(bars))
	for _, bar := range bars {
		out = append(out, domain.AssetPrice{
			Symbol: symbol,
			Date:   truncateToDate(bar.Timestamp),
			Price:  bar.Close,
		})
	}

	return out, nil
}
