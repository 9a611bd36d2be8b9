package calculator

import (
	"errors"
	"math/rand"
	"testing"

	"meanrevert/internal/domain"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func ar1Series(n int, phi, level float64, seed int64) []float64 {
	r := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	x := 0.0
	for i := range out {
		x = phi*x + r.NormFloat64()
		out[i] = level + x
	}
	return out
}

func randomWalkWithDrift(n int, drift float64, seed int64) []float64 {
	r := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	x := 100.0
	for i := range out {
		x += drift + r.NormFloat64()
		out[i] = x
	}
	return out
}

func TestADFTest(t *testing.T) {
	t.Run("too short", func(t *testing.T) {
		_, err := ADFTest([]float64{1, 2, 3, 4, 5})
		require.Error(t, err)
		require.True(t, errors.Is(err, domain.ErrInsufficientData))

		_, err = IsMeanReverting(make([]float64, MinADFObservations-1), 0.05)
		require.True(t, errors.Is(err, domain.ErrInsufficientData))
	})

	t.Run("stationary series rejects unit root", func(t *testing.T) {
		series := ar1Series(300, 0.5, 100, 7)
		result, err := ADFTest(series)
		require.NoError(t, err)
		require.Less(t, result.Statistic, -5.0)
		require.Less(t, result.PValue, 0.01)
		require.True(t, result.Rejects(0.05))

		ok, err := IsMeanReverting(series, 0.05)
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("trending random walk does not", func(t *testing.T) {
		series := randomWalkWithDrift(300, 1, 11)
		result, err := ADFTest(series)
		require.NoError(t, err)
		require.Greater(t, result.PValue, 0.05)

		ok, err := IsMeanReverting(series, 0.05)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("lag and sample bookkeeping", func(t *testing.T) {
		series := ar1Series(100, 0.3, 50, 3)
		result, err := ADFTest(series)
		require.NoError(t, err)
		// maxlag for 100 points is 12
		require.GreaterOrEqual(t, result.UsedLag, 0)
		require.LessOrEqual(t, result.UsedLag, 12)
		require.Equal(t, len(series)-1-result.UsedLag, result.NObs)
	})
}

func Test_levelStatistic(t *testing.T) {
	t.Run("no residual variance", func(t *testing.T) {
		fit := &olsFit{
			beta:   mat.NewVecDense(2, []float64{0, 1}),
			xtxInv: mat.NewDense(2, 2, []float64{1, 0, 0, 1}),
			ssr:    0,
			nobs:   10,
			k:      2,
		}
		_, err := levelStatistic(fit)
		require.True(t, errors.Is(err, domain.ErrInsufficientData))
	})

	t.Run("t-value of the level", func(t *testing.T) {
		fit := &olsFit{
			beta:   mat.NewVecDense(2, []float64{-0.5, 1}),
			xtxInv: mat.NewDense(2, 2, []float64{0.01, 0, 0, 1}),
			ssr:    8,
			nobs:   10,
			k:      2,
		}
		stat, err := levelStatistic(fit)
		require.NoError(t, err)
		require.InDelta(t, -5, stat, 1e-12)
	})
}

func TestADFResult_Rejects(t *testing.T) {
	require.True(t, ADFResult{PValue: 0.049}.Rejects(0.05))
	require.False(t, ADFResult{PValue: 0.05}.Rejects(0.05))
	require.False(t, ADFResult{PValue: 0.2}.Rejects(0.05))
}

func Test_mackinnonPValue(t *testing.T) {
	t.Run("critical values", func(t *testing.T) {
		require.InDelta(t, 0.05, mackinnonPValue(-2.86), 0.003)
		require.InDelta(t, 0.01, mackinnonPValue(-3.43), 0.002)
	})
	t.Run("bounds", func(t *testing.T) {
		require.Equal(t, float64(1), mackinnonPValue(3))
		require.Equal(t, float64(0), mackinnonPValue(-20))
	})
	t.Run("continuous at the switch point", func(t *testing.T) {
		below := mackinnonPValue(tauStarC)
		above := mackinnonPValue(tauStarC + 1e-9)
		require.InDelta(t, below, above, 0.001)
	})
	t.Run("monotonic", func(t *testing.T) {
		last := 0.0
		for stat := -18.0; stat < 2.7; stat += 0.1 {
			p := mackinnonPValue(stat)
			require.GreaterOrEqual(t, p, last)
			last = p
		}
	})
}

func Test_polyval(t *testing.T) {
	require.Equal(t, float64(1+2*3+3*9), polyval([]float64{1, 2, 3}, 3))
}
