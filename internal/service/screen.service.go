package service

import (
	"context"
	"fmt"
	"time"

	"meanrevert/internal/calculator"
	"meanrevert/internal/domain"
	"meanrevert/internal/logger"
	"meanrevert/internal/repository"

	"golang.org/x/sync/errgroup"
)

type MeanReversionService interface {
	Screen(ctx context.Context, in ScreenInput) (*ScreenResult, error)
}

type ScreenInput struct {
	Companies []repository.CompanyListing
	Start     time.Time
	End       time.Time
	// ADF significance level
	Threshold float64
}

type ScreenResult struct {
	// companies requested vs companies with usable price data
	Total int
	Read  int

	NonReverting []domain.Company
	Reverting    []domain.Company
	Long         []domain.ClassifiedCompany
	Short        []domain.ClassifiedCompany
	// nil when nothing is mean reverting
	Allocation domain.Allocation
}

type meanReversionServiceHandler struct {
	PriceRepository  repository.PriceRepository
	FetchConcurrency int
}

func NewMeanReversionService(priceRepository repository.PriceRepository, fetchConcurrency int) MeanReversionService {
	if fetchConcurrency <= 0 {
		fetchConcurrency = 1
	}
	return meanReversionServiceHandler{
		PriceRepository:  priceRepository,
		FetchConcurrency: fetchConcurrency,
	}
}

// Screen fetches prices for every company, keeps the ones that pass the
// ADF test, fits them to an OU process and allocates across the long and
// short buckets by z-score
func (h meanReversionServiceHandler) Screen(ctx context.Context, in ScreenInput) (*ScreenResult, error) {
	log := logger.FromContext(ctx)

	if in.Threshold <= 0 || in.Threshold >= 1 {
		return nil, fmt.Errorf("ADF threshold must be between 0 and 1, got %f", in.Threshold)
	}
	if !in.Start.Before(in.End) {
		return nil, fmt.Errorf("%w: start %s is not before end %s", domain.ErrInvalidDateRange, in.Start.Format(time.DateOnly), in.End.Format(time.DateOnly))
	}

	companies, err := h.loadCompanies(ctx, dedupeBySymbol(in.Companies), in.Start, in.End)
	if err != nil {
		return nil, err
	}
	log.Infof("%d companies read out of %d", len(companies), len(in.Companies))

	result := &ScreenResult{
		Total:        len(in.Companies),
		Read:         len(companies),
		NonReverting: []domain.Company{},
		Reverting:    []domain.Company{},
	}

	for _, c := range companies {
		ok, err := calculator.IsMeanReverting(c.Prices, in.Threshold)
		if err != nil {
			log.Warnw("stationarity test failed, treating as non-reverting", "symbol", c.Symbol, "error", err)
		}
		if ok {
			result.Reverting = append(result.Reverting, c)
		} else {
			result.NonReverting = append(result.NonReverting, c)
		}
	}

	classified := make([]domain.ClassifiedCompany, 0, len(result.Reverting))
	for _, c := range result.Reverting {
		cc, err := calculator.Classify(c)
		if err != nil {
			return nil, err
		}
		classified = append(classified, cc)
	}

	result.Long, result.Short = calculator.Partition(classified)

	if len(classified) == 0 {
		log.Info("no mean-reverting companies, skipping allocation")
		return result, nil
	}

	// long first, then short, so the weights line up with the buckets
	ordered := append(append([]domain.ClassifiedCompany{}, result.Long...), result.Short...)
	allocation, err := calculator.Allocate(ordered)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate portfolio: %w", err)
	}
	result.Allocation = allocation

	return result, nil
}

// loadCompanies fetches every listing concurrently. a listing whose
// prices cannot be retrieved or are unusable is dropped, the rest keep
// their input order
func (h meanReversionServiceHandler) loadCompanies(ctx context.Context, listings []repository.CompanyListing, start, end time.Time) ([]domain.Company, error) {
	log := logger.FromContext(ctx)

	loaded := make([]*domain.Company, len(listings))

	var g errgroup.Group
	g.SetLimit(h.FetchConcurrency)
	for i, listing := range listings {
		g.Go(func() error {
			prices, err := repository.GetCloseSeries(ctx, h.PriceRepository, listing.Symbol, start, end)
			if err != nil {
				log.Warnw("excluding company", "symbol", listing.Symbol, "error", err)
				return nil
			}
			if err := prices.Validate(); err != nil {
				log.Warnw("excluding company", "symbol", listing.Symbol, "error", err)
				return nil
			}
			loaded[i] = &domain.Company{
				Name:   listing.Name,
				Symbol: listing.Symbol,
				Prices: prices,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("screen cancelled: %w", err)
	}

	out := []domain.Company{}
	for _, c := range loaded {
		if c != nil {
			out = append(out, *c)
		}
	}

	return out, nil
}

// first listing for a symbol wins, same as the company list parser
func dedupeBySymbol(listings []repository.CompanyListing) []repository.CompanyListing {
	visited := map[string]bool{}
	out := []repository.CompanyListing{}
	for _, l := range listings {
		if visited[l.Symbol] {
			continue
		}
		visited[l.Symbol] = true
		out = append(out, l)
	}
	return out
}
