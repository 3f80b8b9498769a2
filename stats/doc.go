// Package stats provides the information-criterion calculator, holdout
// accuracy measures and residual diagnostics used by the estimation engine.
//
// # Information Criteria
//
//	ic := stats.CalculateIC(logLik, nObs, nParams)
//	fmt.Printf("AIC=%.2f AICc=%.2f BIC=%.2f BICc=%.2f\n", ic.AIC, ic.AICc, ic.BIC, ic.BICc)
//
// AICc and BICc are +Inf when n - k - 1 <= 0. Use CheckBudget to reject
// such a configuration before estimating anything.
//
// # Accuracy
//
// Compare a forecast with a holdout sample:
//
//	acc, err := stats.MeasureAccuracy(holdout, forecast, insample)
//	if errors.Is(err, stats.ErrLengthMismatch) {
//	    // lengths must agree
//	}
//
// # Residual Diagnostics
//
//	lb := stats.LjungBox(residuals, 10, nParams)
//	if lb != nil && lb.PValue > 0.05 {
//	    // no evidence of autocorrelation left in the residuals
//	}
package stats
