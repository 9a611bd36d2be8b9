package domain

import "errors"

var (
	// series too short for a statistical test
	ErrInsufficientData = errors.New("insufficient data")
	// OU regression slope is zero, or a price is not positive
	ErrDegenerateFit = errors.New("degenerate OU fit")
	// nothing to allocate across, or every z-score is zero
	ErrEmptyPortfolio   = errors.New("empty portfolio")
	ErrEmptyPriceSeries = errors.New("empty price series")
	// upstream market data retrieval failed
	ErrDataUnavailable  = errors.New("data unavailable")
	ErrInvalidDateRange = errors.New("invalid date range")
)
