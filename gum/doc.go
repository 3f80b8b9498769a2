// Package gum implements the Generalized Univariate Model, a state space
// model where every block of the single source of error form is estimated.
//
// A GUM is described by its orders and lags: GUM(2[1],1[12]) has two
// components updated every period and one seasonal component with lag 12.
// Unlike ETS, no structure is imposed on the measurement vector or on the
// transition matrix; the admissibility check keeps the estimated model
// forecastable.
//
//	model, err := gum.New([]int{2, 1}, []int{1, 12})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	model.Settings.Horizon = 24
//	if err := model.Fit(series); err != nil {
//	    log.Fatal(err)
//	}
//	forecasts, _ := model.Predict(12)
package gum
