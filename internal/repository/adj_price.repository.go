package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"meanrevert/internal/db/models/postgres/public/model"
	. "meanrevert/internal/db/models/postgres/public/table"
	"meanrevert/internal/domain"
	"meanrevert/internal/logger"

	. "github.com/go-jet/jet/v2/postgres"
)

// stored history is accepted when it starts and ends within this many
// days of the requested range and no two stored days are further apart.
// covers weekends and long holidays
const coverageSlack = 7 * 24 * time.Hour

type cacheKey struct {
	symbol string
	start  string
	end    string
}

type AdjustedPriceRepositoryHandler struct {
	Db     *sql.DB
	Source PriceRepository

	Cache     map[cacheKey][]domain.AssetPrice
	ReadMutex *sync.RWMutex
	Now       func() time.Time

	// table access, the jet queries below unless overridden in tests
	store func(ctx context.Context, symbol string, start, end time.Time) ([]domain.AssetPrice, error)
	write func(ctx context.Context, prices []domain.AssetPrice) error
}

// NewAdjustedPriceRepository reads prices from the adjusted_price table,
// falling back to source when the table does not cover the range and
// writing what source returns back to the table
func NewAdjustedPriceRepository(db *sql.DB, source PriceRepository) PriceRepository {
	return &AdjustedPriceRepositoryHandler{
		Db:        db,
		Source:    source,
		Cache:     map[cacheKey][]domain.AssetPrice{},
		ReadMutex: &sync.RWMutex{},
		Now:       time.Now,
	}
}

func (h AdjustedPriceRepositoryHandler) getFromCache(key cacheKey) ([]domain.AssetPrice, bool) {
	h.ReadMutex.RLock()
	defer h.ReadMutex.RUnlock()
	prices, ok := h.Cache[key]
	return prices, ok
}

func (h AdjustedPriceRepositoryHandler) addToCache(key cacheKey, prices []domain.AssetPrice) {
	h.ReadMutex.Lock()
	h.Cache[key] = prices
	h.ReadMutex.Unlock()
}

func (h AdjustedPriceRepositoryHandler) List(ctx context.Context, symbol string, start, end time.Time) ([]domain.AssetPrice, error) {
	log := logger.FromContext(ctx)
	key := cacheKey{
		symbol: symbol,
		start:  start.Format(time.DateOnly),
		end:    end.Format(time.DateOnly),
	}
	if prices, ok := h.getFromCache(key); ok {
		return prices, nil
	}

	store, write := h.listStored, h.add
	if h.store != nil {
		store = h.store
	}
	if h.write != nil {
		write = h.write
	}

	stored, err := store(ctx, symbol, start, end)
	if err != nil {
		return nil, err
	}
	if covers(stored, start, end, h.Now()) {
		h.addToCache(key, stored)
		return stored, nil
	}

	log.Debugw("adjusted price miss, fetching from source", "symbol", symbol, "stored", len(stored))
	fetched, err := h.Source.List(ctx, symbol, start, end)
	if err != nil {
		return nil, err
	}

	if err := write(ctx, fetched); err != nil {
		// the fetched prices are still good, only the write back failed
		log.Warnw("failed to store adjusted prices", "symbol", symbol, "error", err)
	}

	h.addToCache(key, fetched)
	return fetched, nil
}

func (h AdjustedPriceRepositoryHandler) listStored(ctx context.Context, symbol string, start, end time.Time) ([]domain.AssetPrice, error) {
	query := AdjustedPrice.
		SELECT(AdjustedPrice.AllColumns).
		WHERE(
			AND(
				AdjustedPrice.Symbol.EQ(String(symbol)),
				AdjustedPrice.Date.BETWEEN(DateT(start), DateT(end)),
			),
		).
		ORDER_BY(AdjustedPrice.Date.ASC())

	result := []model.AdjustedPrice{}
	err := query.QueryContext(ctx, h.Db, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to list prices for %s: %w", symbol, err)
	}

	out := make([]domain.AssetPrice, 0, len(result))
	for _, p := range result {
		out = append(out, domain.AssetPrice{
			Symbol: p.Symbol,
			Date:   p.Date,
			Price:  p.Price,
		})
	}

	return out, nil
}

func (h AdjustedPriceRepositoryHandler) add(ctx context.Context, prices []domain.AssetPrice) error {
	if len(prices) == 0 {
		return nil
	}

	now := h.Now().UTC()
	models := make([]model.AdjustedPrice, 0, len(prices))
	for _, p := range prices {
		models = append(models, model.AdjustedPrice{
			Symbol:    p.Symbol,
			Date:      p.Date,
			Price:     p.Price,
			CreatedAt: now,
		})
	}

	query := AdjustedPrice.
		INSERT(AdjustedPrice.MutableColumns).
		MODELS(models).
		ON_CONFLICT(
			AdjustedPrice.Symbol, AdjustedPrice.Date,
		).DO_UPDATE(
		SET(
			AdjustedPrice.Price.SET(AdjustedPrice.EXCLUDED.Price),
		),
	)

	_, err := query.ExecContext(ctx, h.Db)
	if err != nil {
		return fmt.Errorf("failed to add adjusted prices to db: %w", err)
	}

	return nil
}

// covers reports whether stored prices span the requested range with no
// holes. rows left by separate earlier fetches can reach both ends while
// missing years in between, so consecutive dates are checked too. the end
// is capped at now since there is nothing to fetch for future dates
func covers(prices []domain.AssetPrice, start, end, now time.Time) bool {
	if len(prices) == 0 {
		return false
	}
	if now.Before(end) {
		end = now
	}
	first := prices[0].Date
	last := prices[len(prices)-1].Date
	if first.After(start.Add(coverageSlack)) || last.Before(end.Add(-coverageSlack)) {
		return false
	}
	for i := 1; i < len(prices); i++ {
		if prices[i].Date.Sub(prices[i-1].Date) > coverageSlack {
			return false
		}
	}
	return true
}
