package service

import (
	"context"
	"fmt"
	"time"

	"meanrevert/internal/calculator"
	"meanrevert/internal/domain"
	"meanrevert/internal/logger"
	"meanrevert/internal/repository"
	"meanrevert/internal/util"

	"golang.org/x/sync/errgroup"
)

type Reference struct {
	Symbol string
	Name   string
}

var (
	// yahoo index tickers
	IndexReferences = []Reference{
		{Symbol: "^GSPC", Name: "S&P 500"},
		{Symbol: "^IXIC", Name: "NASDAQ"},
	}
	// for providers without index data
	EtfReferences = []Reference{
		{Symbol: "SPY", Name: "S&P 500"},
		{Symbol: "QQQ", Name: "NASDAQ"},
	}
)

type PerformanceService interface {
	Compare(ctx context.Context, in CompareInput) (*CompareResult, error)
}

type CompareInput struct {
	Portfolio []domain.PortfolioEntry
	// yyyy-mm-dd
	Start   string
	End     string
	Capital float64
}

type ReferenceSeries struct {
	Reference
	Values  []float64
	Metrics *calculator.CalculateMetricsResult
}

type CompareResult struct {
	Axis       []float64
	Ticks      []int
	References []ReferenceSeries

	Portfolio        []float64
	PortfolioMetrics *calculator.CalculateMetricsResult
	Holdings         domain.PortfolioHolding
	Capital          float64
}

type performanceServiceHandler struct {
	PriceRepository  repository.PriceRepository
	References       []Reference
	FetchConcurrency int
}

func NewPerformanceService(priceRepository repository.PriceRepository, references []Reference, fetchConcurrency int) PerformanceService {
	if fetchConcurrency <= 0 {
		fetchConcurrency = 1
	}
	return performanceServiceHandler{
		PriceRepository:  priceRepository,
		References:       references,
		FetchConcurrency: fetchConcurrency,
	}
}

// Compare simulates buy and hold of the portfolio and of each reference
// index over the same aligned window
func (h performanceServiceHandler) Compare(ctx context.Context, in CompareInput) (*CompareResult, error) {
	log := logger.FromContext(ctx)

	// fail on a bad range before fetching anything
	if err := calculator.ValidateDateRange(in.Start, in.End); err != nil {
		return nil, err
	}
	start, err := util.ParseDate(in.Start)
	if err != nil {
		return nil, err
	}
	end, err := util.ParseDate(in.End)
	if err != nil {
		return nil, err
	}
	if in.Capital <= 0 {
		return nil, fmt.Errorf("capital must be positive, got %f", in.Capital)
	}
	portfolio := dedupeByName(in.Portfolio)
	if len(portfolio) == 0 {
		return nil, fmt.Errorf("%w: portfolio has no companies", domain.ErrEmptyPortfolio)
	}

	symbols := []string{}
	for _, r := range h.References {
		symbols = append(symbols, r.Symbol)
	}
	for _, e := range portfolio {
		symbols = append(symbols, e.Symbol)
	}

	fetched, err := h.fetchAll(ctx, symbols, start, end)
	if err != nil {
		return nil, err
	}

	aligned := calculator.AlignSeries(fetched...)
	n := len(aligned[0])
	log.Infow("aligned price series", "points", n, "series", len(aligned))

	axis, ticks, err := calculator.BuildTimeAxis(in.Start, in.End, n)
	if err != nil {
		return nil, err
	}
	years := end.Sub(start).Hours() / (365 * 24)

	result := &CompareResult{
		Axis:       axis,
		Ticks:      ticks,
		References: []ReferenceSeries{},
		Capital:    in.Capital,
	}

	for i, ref := range h.References {
		values, err := calculator.SimulateReference(aligned[i], in.Capital)
		if err != nil {
			return nil, fmt.Errorf("failed to simulate %s: %w", ref.Name, err)
		}
		result.References = append(result.References, ReferenceSeries{
			Reference: ref,
			Values:    values,
			Metrics:   metricsOrNil(ctx, ref.Name, values, years),
		})
	}

	companyPrices := map[string][]float64{}
	for i, e := range portfolio {
		companyPrices[e.Name] = aligned[len(h.References)+i]
	}
	weights := domain.Weights(portfolio)

	result.Holdings, err = calculator.Holdings(weights, companyPrices, in.Capital)
	if err != nil {
		return nil, err
	}
	result.Portfolio, err = calculator.SimulatePortfolio(weights, companyPrices, in.Capital, n)
	if err != nil {
		return nil, fmt.Errorf("failed to simulate portfolio: %w", err)
	}
	result.PortfolioMetrics = metricsOrNil(ctx, "portfolio", result.Portfolio, years)

	return result, nil
}

// fetchAll gets closes for every symbol, in order. unlike the screen a
// missing series aborts, the comparison would be wrong without it
func (h performanceServiceHandler) fetchAll(ctx context.Context, symbols []string, start, end time.Time) ([][]float64, error) {
	out := make([][]float64, len(symbols))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.FetchConcurrency)
	for i, symbol := range symbols {
		g.Go(func() error {
			prices, err := repository.GetCloseSeries(gctx, h.PriceRepository, symbol, start, end)
			if err != nil {
				return err
			}
			out[i] = prices
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

func metricsOrNil(ctx context.Context, name string, values []float64, years float64) *calculator.CalculateMetricsResult {
	metrics, err := calculator.CalculateMetrics(values, years)
	if err != nil {
		logger.FromContext(ctx).Debugw("skipping metrics", "series", name, "error", err)
		return nil
	}
	return metrics
}

// first entry for a name wins, same as the portfolio file parser
func dedupeByName(entries []domain.PortfolioEntry) []domain.PortfolioEntry {
	visited := map[string]bool{}
	out := []domain.PortfolioEntry{}
	for _, e := range entries {
		if visited[e.Name] {
			continue
		}
		visited[e.Name] = true
		out = append(out, e)
	}
	return out
}
