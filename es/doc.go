// Package es provides exponential smoothing (ETS) models on top of the
// single source of error engine in package ssoe.
//
// A model is named by a three letter code: error, trend and season. The
// error is additive (A) or multiplicative (M); trend and season are either
// absent (N) or take the letter of the error. Multiplicative models are
// estimated on the log scale, where a multiplicative trend or season
// becomes additive, so MAN or AMN have no representation.
//
// # Basic Usage
//
//	cfg, err := es.Parse("AAA", 12)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	model, _ := es.New(cfg)
//	model.Settings.Horizon = 12
//	model.Settings.Intervals = ssoe.IntervalParametric
//
//	if err := model.Fit(series); err != nil {
//	    log.Fatal(err)
//	}
//	res := model.Result()
//	fmt.Println(res.Name, res.IC.AICc, res.Forecast)
//
// The measurement vector is fixed at ones and the transition matrix at the
// ETS structure, so only the smoothing parameters and the initial states
// enter the parameter count.
package es
