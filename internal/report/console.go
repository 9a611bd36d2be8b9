package report

import (
	"fmt"
	"io"

	"meanrevert/internal/calculator"
	"meanrevert/internal/service"
)

func PrintScreen(w io.Writer, result *service.ScreenResult) {
	fmt.Fprintf(w, "\n%d companies read out of %d\n", result.Read, result.Total)

	fmt.Fprintf(w, "\nNON-MEAN-REVERTING COMPANIES (%d TOTAL)\n", len(result.NonReverting))
	for _, c := range result.NonReverting {
		fmt.Fprintln(w, c.Identifier())
	}
	fmt.Fprintf(w, "\nMEAN-REVERTING COMPANIES (%d TOTAL)\n", len(result.Reverting))
	for _, c := range result.Reverting {
		fmt.Fprintln(w, c.Identifier())
	}

	fmt.Fprintf(w, "\nLONG COMPANIES & Z-SCORES (%d TOTAL)\n", len(result.Long))
	for _, c := range result.Long {
		fmt.Fprintf(w, "%s %f\n", c.Identifier(), c.ZScore)
	}
	fmt.Fprintf(w, "\nSHORT COMPANIES & Z-SCORES (%d TOTAL)\n", len(result.Short))
	for _, c := range result.Short {
		fmt.Fprintf(w, "%s %f\n", c.Identifier(), c.ZScore)
	}

	fmt.Fprintln(w, "\nPORTFOLIO WEIGHTS")
	for _, id := range result.Allocation.Keys() {
		fmt.Fprintf(w, "%s %f\n", id, result.Allocation[id])
	}
}

func PrintComparison(w io.Writer, result *service.CompareResult) {
	fmt.Fprintf(w, "\nValue of $%.2f from %d to %d (%d points)\n",
		result.Capital, result.Ticks[0], result.Ticks[len(result.Ticks)-1], len(result.Axis))

	fmt.Fprintf(w, "\n%-24s %14s %10s %10s %8s %10s\n", "SERIES", "FINAL VALUE", "ANN. RET", "ANN. VOL", "SHARPE", "MAX DD")
	printRow(w, fmt.Sprintf("Our portfolio (%d companies)", len(result.Holdings)), result.Portfolio, result.PortfolioMetrics)
	for _, ref := range result.References {
		printRow(w, ref.Name, ref.Values, ref.Metrics)
	}
}

func printRow(w io.Writer, name string, values []float64, metrics *calculator.CalculateMetricsResult) {
	final := 0.0
	if len(values) > 0 {
		final = values[len(values)-1]
	}
	if metrics == nil {
		fmt.Fprintf(w, "%-24s %14.2f %10s %10s %8s %10s\n", name, final, "-", "-", "-", "-")
		return
	}
	fmt.Fprintf(w, "%-24s %14.2f %9.2f%% %9.2f%% %8.2f %9.2f%%\n",
		name,
		final,
		metrics.AnnualizedReturn*100,
		metrics.AnnualizedStdev*100,
		metrics.SharpeRatio,
		metrics.MaxDrawdown*100,
	)
}
