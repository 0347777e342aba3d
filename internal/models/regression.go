// Package models defines data structures and domain types.
package models

// RegressionType identifies the fitted model family.
type RegressionType string

const (
	// RegressionLinear is an ordinary least-squares line y = a + b*x.
	RegressionLinear RegressionType = "linear"
	// RegressionLogLinear is an exponential fit y = a*e^(b*x).
	RegressionLogLinear RegressionType = "loglinear"
)

// RegressionResult holds a fitted trend model. PredictedValues is aligned
// index-for-index with the original x input, including points that were
// filtered out of the fit itself.
type RegressionResult struct {
	Type            RegressionType
	Slope           float64
	Intercept       float64
	RSquared        float64
	PredictedValues []float64
}
