// Package gosmooth provides state space forecasting models with a single
// source of error.
//
// Every model in the library shares one engine: a state vector updated by
// a transition matrix and corrected by the one-step-ahead error through a
// persistence vector. Exponential smoothing and the generalized univariate
// model are two ways of restricting that engine.
//
// # Features
//
//   - Any number of components per lag (ETS, seasonal GUM, multiple seasonalities)
//   - Additive and log-multiplicative errors
//   - Multi-step cost functions (MSEh, TMSE, GTMSE, MSCE)
//   - Optimal, backcasted or provided initial states
//   - Exogenous regressors with fixed or evolving coefficients
//   - Intermittent demand with automatic occurrence model selection
//   - Parametric, semiparametric and nonparametric prediction intervals
//   - Fallback to simpler models on short samples
//
// # Quick Start
//
// Fit an exponential smoothing model:
//
//	series := timeseries.NewWithFrequency(values, 12)
//	cfg, _ := es.Parse("AAA", 12)
//	model, _ := es.New(cfg)
//	model.Fit(series)
//	forecasts, _ := model.Predict(10)
//
// Fit any structure directly with the engine:
//
//	cfg := ssoe.DefaultConfig()
//	cfg.Orders = []int{1, 1}
//	cfg.Lags = []int{1, 12}
//	cfg.Intermittent = ssoe.IntermittentAuto
//	result, _ := ssoe.Fit(series, cfg)
//
// # Packages
//
// The library is organized into the following packages:
//
//   - ssoe: The state space engine (estimation, selection, forecasting)
//   - es: Exponential smoothing by model code
//   - gum: Generalized univariate models
//   - stats: Information criteria, accuracy measures and residual diagnostics
//   - timeseries: Time series data structures and CSV loading
//
// # References
//
//   - Hyndman, R.J., Koehler, A.B., Ord, J.K., & Snyder, R.D. (2008). Forecasting with Exponential Smoothing
//   - Svetunkov, I. (2023). Forecasting and Analytics with the Augmented Dynamic Adaptive Model
package gosmooth
