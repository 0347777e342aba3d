// Package regression fits linear and log-linear trend models to numeric
// series and selects the better fit under a goodness-of-fit threshold.
package regression

import (
	"math"

	"github.com/halloran-travel/salesdash-tui/internal/models"
)

// DefaultThreshold is the minimum R-squared for a fit to qualify as a trend.
const DefaultThreshold = 0.95

// Slopes below this x-variance are degenerate (constant x) and unstable.
const varianceEpsilon = 1e-10

// LinearFit runs ordinary least squares y = a + b*x. Pairs with a non-finite
// y are excluded from the fit; fewer than 2 valid pairs or degenerate x
// variance yields nil. PredictedValues covers every original x, including
// points filtered out of the fit.
func LinearFit(xs, ys []float64) *models.RegressionResult {
	valid := func(y float64) bool { return !math.IsNaN(y) && !math.IsInf(y, 0) }
	slope, intercept, ok := leastSquares(xs, ys, valid, func(y float64) float64 { return y })
	if !ok {
		return nil
	}

	predict := func(x float64) float64 { return intercept + slope*x }
	predicted := make([]float64, len(xs))
	for i, x := range xs {
		predicted[i] = predict(x)
	}

	return &models.RegressionResult{
		Type:            models.RegressionLinear,
		Slope:           slope,
		Intercept:       intercept,
		RSquared:        rSquared(xs, ys, valid, predict),
		PredictedValues: predicted,
	}
}

// LogLinearFit fits y = a*e^(b*x) by linearizing to ln(y) = ln(a) + b*x.
// Only strictly positive y values are usable, since ln is undefined
// otherwise. R-squared is computed on the original scale against a*e^(b*x)
// so it is comparable with LinearFit.
func LogLinearFit(xs, ys []float64) *models.RegressionResult {
	valid := func(y float64) bool {
		return y > 0 && !math.IsNaN(y) && !math.IsInf(y, 0)
	}
	slope, lnIntercept, ok := leastSquares(xs, ys, valid, math.Log)
	if !ok {
		return nil
	}

	a := math.Exp(lnIntercept)
	predict := func(x float64) float64 { return a * math.Exp(slope*x) }
	predicted := make([]float64, len(xs))
	for i, x := range xs {
		predicted[i] = predict(x)
	}

	return &models.RegressionResult{
		Type:            models.RegressionLogLinear,
		Slope:           slope,
		Intercept:       a,
		RSquared:        rSquared(xs, ys, valid, predict),
		PredictedValues: predicted,
	}
}

// SelectBest fits both models and returns the one to render as a trend line.
// A model qualifies when it fit at all and its R-squared meets the threshold.
// When both qualify the higher R-squared wins, with log-linear taking ties.
// Nil means no trend line should be drawn.
func SelectBest(xs, ys []float64, threshold float64) *models.RegressionResult {
	linear := LinearFit(xs, ys)
	logLinear := LogLinearFit(xs, ys)

	linearOK := linear != nil && linear.RSquared >= threshold
	logOK := logLinear != nil && logLinear.RSquared >= threshold

	switch {
	case linearOK && logOK:
		if logLinear.RSquared >= linear.RSquared {
			return logLinear
		}
		return linear
	case logOK:
		return logLinear
	case linearOK:
		return linear
	default:
		return nil
	}
}

// leastSquares runs OLS over the (x, transform(y)) pairs where valid(y).
func leastSquares(xs, ys []float64, valid func(float64) bool, transform func(float64) float64) (slope, intercept float64, ok bool) {
	n := 0
	var sumX, sumY, sumXY, sumXX float64
	for i := range xs {
		if i >= len(ys) || !valid(ys[i]) {
			continue
		}
		x, y := xs[i], transform(ys[i])
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
		n++
	}
	if n < 2 {
		return 0, 0, false
	}

	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if math.Abs(denom) < varianceEpsilon {
		return 0, 0, false
	}

	slope = (fn*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / fn
	return slope, intercept, true
}

// rSquared computes 1 - SSres/SStot over the valid pairs on the original
// scale. A zero total sum of squares yields 0 rather than a divide-by-zero.
func rSquared(xs, ys []float64, valid func(float64) bool, predict func(float64) float64) float64 {
	n := 0
	var sumY float64
	for i := range xs {
		if i >= len(ys) || !valid(ys[i]) {
			continue
		}
		sumY += ys[i]
		n++
	}
	if n == 0 {
		return 0
	}
	mean := sumY / float64(n)

	var ssRes, ssTot float64
	for i := range xs {
		if i >= len(ys) || !valid(ys[i]) {
			continue
		}
		resid := ys[i] - predict(xs[i])
		ssRes += resid * resid
		dev := ys[i] - mean
		ssTot += dev * dev
	}
	if ssTot == 0 {
		return 0
	}
	return 1 - ssRes/ssTot
}
