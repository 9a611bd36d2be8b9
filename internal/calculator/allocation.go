package calculator

import (
	"fmt"
	"math"

	"meanrevert/internal/domain"
)

// Allocate weights each company by the size of its z-score relative to
// the others: w = |z| / sum(|z|)
func Allocate(companies []domain.ClassifiedCompany) (domain.Allocation, error) {
	if len(companies) == 0 {
		return nil, fmt.Errorf("%w: no companies to allocate across", domain.ErrEmptyPortfolio)
	}

	sumZ := 0.0
	for _, c := range companies {
		if math.IsNaN(c.ZScore) {
			return nil, fmt.Errorf("invalid z-score NaN for %s", c.Symbol)
		}
		sumZ += math.Abs(c.ZScore)
	}
	if sumZ == 0 {
		return nil, fmt.Errorf("%w: every z-score is zero", domain.ErrEmptyPortfolio)
	}

	allocation := domain.Allocation{}
	for _, c := range companies {
		allocation[c.Identifier()] += math.Abs(c.ZScore) / sumZ
	}

	return allocation, nil
}

// Partition splits companies into long (z < 0) and short (z >= 0)
// buckets, keeping input order
func Partition(companies []domain.ClassifiedCompany) (long, short []domain.ClassifiedCompany) {
	long = []domain.ClassifiedCompany{}
	short = []domain.ClassifiedCompany{}
	for _, c := range companies {
		if c.Direction() == domain.Long {
			long = append(long, c)
		} else {
			short = append(short, c)
		}
	}
	return long, short
}
