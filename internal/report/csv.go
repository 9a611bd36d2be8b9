package report

import (
	"fmt"
	"io"

	"meanrevert/internal/service"

	"github.com/gocarina/gocsv"
)

const (
	ClassNonReverting = "non_reverting"
	ClassLong         = "long"
	ClassShort        = "short"
)

type ScreenRow struct {
	Symbol string  `csv:"symbol"`
	Name   string  `csv:"name"`
	Class  string  `csv:"class"`
	Mu     float64 `csv:"mu"`
	ZScore float64 `csv:"z_score"`
	Weight float64 `csv:"weight"`
}

// ScreenRows flattens a screen into one row per company read. mu, z
// and weight are zero for non-reverting companies
func ScreenRows(result *service.ScreenResult) []ScreenRow {
	rows := []ScreenRow{}
	for _, c := range result.NonReverting {
		rows = append(rows, ScreenRow{
			Symbol: c.Symbol,
			Name:   c.Name,
			Class:  ClassNonReverting,
		})
	}
	for _, c := range result.Long {
		rows = append(rows, ScreenRow{
			Symbol: c.Symbol,
			Name:   c.Name,
			Class:  ClassLong,
			Mu:     c.Mu,
			ZScore: c.ZScore,
			Weight: result.Allocation[c.Identifier()],
		})
	}
	for _, c := range result.Short {
		rows = append(rows, ScreenRow{
			Symbol: c.Symbol,
			Name:   c.Name,
			Class:  ClassShort,
			Mu:     c.Mu,
			ZScore: c.ZScore,
			Weight: result.Allocation[c.Identifier()],
		})
	}
	return rows
}

func WriteScreenCSV(w io.Writer, result *service.ScreenResult) error {
	if err := gocsv.Marshal(ScreenRows(result), w); err != nil {
		return fmt.Errorf("failed to write screen csv: %w", err)
	}
	return nil
}

// ComparisonRow is one point of one series, long format so any number
// of references fits
type ComparisonRow struct {
	Index  int     `csv:"index"`
	Year   float64 `csv:"year"`
	Series string  `csv:"series"`
	Value  float64 `csv:"value"`
}

const PortfolioSeries = "portfolio"

func ComparisonRows(result *service.CompareResult) []ComparisonRow {
	rows := []ComparisonRow{}
	for i, year := range result.Axis {
		rows = append(rows, ComparisonRow{
			Index:  i,
			Year:   year,
			Series: PortfolioSeries,
			Value:  result.Portfolio[i],
		})
		for _, ref := range result.References {
			rows = append(rows, ComparisonRow{
				Index:  i,
				Year:   year,
				Series: ref.Name,
				Value:  ref.Values[i],
			})
		}
	}
	return rows
}

func WriteComparisonCSV(w io.Writer, result *service.CompareResult) error {
	if err := gocsv.Marshal(ComparisonRows(result), w); err != nil {
		return fmt.Errorf("failed to write comparison csv: %w", err)
	}
	return nil
}
