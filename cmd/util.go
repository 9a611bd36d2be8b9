package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"meanrevert/api"
	"meanrevert/internal/repository"
	"meanrevert/internal/service"
	"meanrevert/internal/util"

	_ "github.com/lib/pq"
)

type Dependencies struct {
	Secrets              *util.Secrets
	Db                   *sql.DB
	PriceRepository      repository.PriceRepository
	MeanReversionService service.MeanReversionService
	PerformanceService   service.PerformanceService
	ApiHandler           *api.ApiHandler
}

func CloseDependencies(deps *Dependencies) {
	if deps.Db == nil {
		return
	}
	if err := deps.Db.Close(); err != nil {
		log.Fatalf("failed to close db: %v", err)
	}
}

func InitializeDependencies() (*Dependencies, error) {
	secrets, err := util.LoadSecrets()
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}
	return NewDependencies(secrets)
}

func NewDependencies(secrets *util.Secrets) (*Dependencies, error) {
	deps := &Dependencies{Secrets: secrets}

	var references []service.Reference
	switch secrets.Provider {
	case util.ProviderAlpaca:
		deps.PriceRepository = repository.NewAlpacaPriceRepository(
			secrets.Alpaca.ApiKey,
			secrets.Alpaca.ApiSecret,
			secrets.Alpaca.Endpoint,
		)
		references = service.EtfReferences
	default:
		deps.PriceRepository = repository.NewYahooPriceRepository(secrets.RequestsPerSecond)
		references = service.IndexReferences
	}

	if secrets.Db != nil {
		dbConn, err := sql.Open("postgres", secrets.Db.ToConnectionStr())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to db: %w", err)
		}
		deps.Db = dbConn
		deps.PriceRepository = repository.NewAdjustedPriceRepository(dbConn, deps.PriceRepository)
	}

	deps.MeanReversionService = service.NewMeanReversionService(deps.PriceRepository, secrets.FetchConcurrency)
	deps.PerformanceService = service.NewPerformanceService(deps.PriceRepository, references, secrets.FetchConcurrency)
	deps.ApiHandler = api.NewApiHandler(deps.MeanReversionService, deps.PerformanceService)

	return deps, nil
}

// NewMailer returns nil when no SES sender is configured
func NewMailer(ctx context.Context, secrets *util.Secrets) (repository.EmailRepository, error) {
	if secrets.SES == nil {
		return nil, nil
	}
	mailer, err := repository.NewEmailRepository(ctx, secrets.SES.Region, secrets.SES.FromEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to create email repository: %w", err)
	}
	return mailer, nil
}
