package calculator

// AlignSeries truncates every series to the shortest one's length,
// keeping the earliest points. this is positional, not date matched:
// series from venues with different holiday calendars will drift apart
// by a few days, which is accepted
func AlignSeries(series ...[]float64) [][]float64 {
	out := make([][]float64, len(series))
	if len(series) == 0 {
		return out
	}

	minLength := len(series[0])
	for _, s := range series[1:] {
		if len(s) < minLength {
			minLength = len(s)
		}
	}

	for i, s := range series {
		truncated := make([]float64, minLength)
		copy(truncated, s[:minLength])
		out[i] = truncated
	}

	return out
}
