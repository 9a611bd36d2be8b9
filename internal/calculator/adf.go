package calculator

import (
	"fmt"
	"math"

	"meanrevert/internal/domain"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// below this the lag search leaves too few observations for the
// regression to mean anything
const MinADFObservations = 20

type ADFResult struct {
	Statistic float64
	PValue    float64
	UsedLag   int
	NObs      int
}

// Rejects reports whether the unit root hypothesis is rejected at the
// given significance level. strict, a p-value equal to the threshold
// does not reject
func (r ADFResult) Rejects(threshold float64) bool {
	return r.PValue < threshold
}

// IsMeanReverting runs an ADF test on the series and reports whether it
// looks stationary at the given threshold
func IsMeanReverting(series []float64, threshold float64) (bool, error) {
	result, err := ADFTest(series)
	if err != nil {
		return false, err
	}
	return result.Rejects(threshold), nil
}

// ADFTest runs an Augmented Dickey-Fuller test with a constant term.
// the number of lagged differences is chosen by AIC over 0..maxLag on a
// common sample, then the chosen model is refit on every observation
// it can use
func ADFTest(series []float64) (*ADFResult, error) {
	n := len(series)
	if n < MinADFObservations {
		return nil, fmt.Errorf("%w: ADF test needs at least %d points, got %d", domain.ErrInsufficientData, MinADFObservations, n)
	}

	maxLag := int(math.Ceil(12 * math.Pow(float64(n)/100, 0.25)))
	// one trend term (the constant)
	if limit := n/2 - 2; limit < maxLag {
		maxLag = limit
	}
	if maxLag < 0 {
		return nil, fmt.Errorf("%w: sample of %d is too short for the ADF regression", domain.ErrInsufficientData, n)
	}

	diffs := make([]float64, n-1)
	for i := 1; i < n; i++ {
		diffs[i-1] = series[i] - series[i-1]
	}

	bestLag := 0
	bestAIC := math.Inf(1)
	for lag := 0; lag <= maxLag; lag++ {
		x, y := adfDesign(series, diffs, maxLag, lag)
		fit, err := ols(x, y)
		if err != nil {
			return nil, fmt.Errorf("failed to fit ADF regression with %d lags: %w", lag, err)
		}
		if fit.aic() < bestAIC {
			bestAIC = fit.aic()
			bestLag = lag
		}
	}

	x, y := adfDesign(series, diffs, bestLag, bestLag)
	fit, err := ols(x, y)
	if err != nil {
		return nil, fmt.Errorf("failed to fit ADF regression with %d lags: %w", bestLag, err)
	}

	stat, err := levelStatistic(fit)
	if err != nil {
		return nil, err
	}

	return &ADFResult{
		Statistic: stat,
		PValue:    mackinnonPValue(stat),
		UsedLag:   bestLag,
		NObs:      y.Len(),
	}, nil
}

// adfDesign builds the regression of diffs[t] on the lagged level, the
// previous `lags` differences and a constant. the first `sampleLag`
// differences are dropped so models with different lag counts can be
// compared on the same rows
func adfDesign(series, diffs []float64, sampleLag, lags int) (*mat.Dense, *mat.VecDense) {
	nobs := len(diffs) - sampleLag
	k := lags + 2

	x := mat.NewDense(nobs, k, nil)
	y := mat.NewVecDense(nobs, nil)
	for row := 0; row < nobs; row++ {
		t := sampleLag + row
		y.SetVec(row, diffs[t])
		x.Set(row, 0, series[t])
		for l := 1; l <= lags; l++ {
			x.Set(row, l, diffs[t-l])
		}
		x.Set(row, k-1, 1)
	}

	return x, y
}

type olsFit struct {
	beta   *mat.VecDense
	xtxInv *mat.Dense
	ssr    float64
	nobs   int
	k      int
}

func ols(x *mat.Dense, y *mat.VecDense) (*olsFit, error) {
	nobs, k := x.Dims()
	if nobs <= k {
		return nil, fmt.Errorf("%w: %d observations for %d regressors", domain.ErrInsufficientData, nobs, k)
	}

	beta := mat.NewVecDense(k, nil)
	if err := beta.SolveVec(x, y); err != nil {
		return nil, fmt.Errorf("failed to solve least squares: %w", err)
	}

	var fitted, resid mat.VecDense
	fitted.MulVec(x, beta)
	resid.SubVec(y, &fitted)

	var xtx, xtxInv mat.Dense
	xtx.Mul(x.T(), x)
	if err := xtxInv.Inverse(&xtx); err != nil {
		return nil, fmt.Errorf("failed to invert design matrix: %w", err)
	}

	return &olsFit{
		beta:   beta,
		xtxInv: &xtxInv,
		ssr:    mat.Dot(&resid, &resid),
		nobs:   nobs,
		k:      k,
	}, nil
}

// aic of a gaussian linear model, -2*llf + 2k
func (f olsFit) aic() float64 {
	n := float64(f.nobs)
	llf := -n / 2 * (math.Log(2*math.Pi) + math.Log(f.ssr/n) + 1)
	return -2*llf + 2*float64(f.k)
}

func (f olsFit) tValue(i int) float64 {
	sigma2 := f.ssr / float64(f.nobs-f.k)
	stdErr := math.Sqrt(sigma2 * f.xtxInv.At(i, i))
	return f.beta.AtVec(i) / stdErr
}

// levelStatistic is the t-value of the lagged level, the ADF statistic
func levelStatistic(f *olsFit) (float64, error) {
	stat := f.tValue(0)
	if math.IsNaN(stat) {
		return 0, fmt.Errorf("%w: ADF statistic is undefined, series has no residual variance", domain.ErrInsufficientData)
	}
	return stat, nil
}

// MacKinnon (1994) response surface for the constant-only, single series
// case
const (
	tauMaxC  = 2.74
	tauMinC  = -18.83
	tauStarC = -1.61
)

var (
	tauSmallPC = []float64{2.1659, 1.4412, 3.8269e-2}
	tauLargePC = []float64{1.7339, 9.3202e-1, -1.2745e-1, -1.0368e-2}
)

func mackinnonPValue(stat float64) float64 {
	if stat > tauMaxC {
		return 1
	}
	if stat < tauMinC {
		return 0
	}

	coef := tauLargePC
	if stat <= tauStarC {
		coef = tauSmallPC
	}

	return distuv.UnitNormal.CDF(polyval(coef, stat))
}

// polyval evaluates coef[0] + coef[1]*x + coef[2]*x^2 + ...
func polyval(coef []float64, x float64) float64 {
	out := 0.0
	for i := len(coef) - 1; i >= 0; i-- {
		out = out*x + coef[i]
	}
	return out
}
