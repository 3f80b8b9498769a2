// Package ssoe estimates linear Gaussian single-source-of-error state-space
// models and forecasts with them.
//
// A model is a set of components grouped in order blocks, each block
// running at its own lag. For every observation the lagged state vector v
// gives the fitted value wᵀv, the one-step error e = y - wᵀv, and the next
// state F·v + g·e. Exponential smoothing and the generalized univariate
// model are both special cases; see the es and gum packages.
//
// # Estimation
//
// Fit assembles a parameter vector from the blocks that are not provided,
// minimizes the configured cost with a two-phase optimizer (a bounded
// pattern search refined by Nelder-Mead) and scores the result with an
// information criterion:
//
//	cfg := ssoe.DefaultConfig()
//	cfg.Orders = []int{1, 1}
//	cfg.Lags = []int{1, 12}
//	cfg.Intervals = ssoe.IntervalParametric
//	res, err := ssoe.Fit(series, cfg, ssoe.WithLogger(logger))
//
// Multiplicative models are estimated on the log scale. Costs that are not
// finite, or points whose discount matrix is unstable under admissible
// bounds, evaluate to Sentinel.
//
// # Intermittent Demand
//
// For series with zeros, Config.Intermittent selects an occurrence model.
// IntermittentAuto fits the magnitude model under each of the six variants
// and keeps the one with the lowest criterion.
//
// # Short Samples
//
// When the sample cannot support the parameter count, Fit falls back to a
// level-only model and flags the Result.
package ssoe
