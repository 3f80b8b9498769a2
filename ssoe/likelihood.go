package ssoe

import "math"

// LogLikelihood converts a minimized cost into the concentrated
// log-likelihood of nObs counted observations.
func LogLikelihood(cost float64, kind CostKind, nObs, horizon int) float64 {
	n, h := float64(nObs), float64(horizon)
	switch kind {
	case MAE:
		return -n * (math.Log(2) + 1 + math.Log(cost))
	case HAM:
		return -2 * n * (math.Log(2*math.E) + math.Log(cost))
	case TMSE:
		return -n / 2 * h * (math.Log(2*math.Pi*math.E) + math.Log(cost/h))
	case GTMSE:
		return -n / 2 * (h*math.Log(2*math.Pi*math.E) + cost)
	default:
		return -n / 2 * (math.Log(2*math.Pi) + 1 + math.Log(cost))
	}
}

// bernoulliLogLik is the log-likelihood of the occurrence indicator under
// probabilities p. Missing periods are skipped.
func bernoulliLogLik(values, p []float64) float64 {
	ll := 0.0
	for t, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if v != 0 {
			ll += math.Log(clampProb(p[t]))
		} else {
			ll += math.Log(1 - clampProb(p[t]))
		}
	}
	return ll
}

const probEpsilon = 1e-10

func clampProb(p float64) float64 {
	switch {
	case math.IsNaN(p):
		return 0.5
	case p < probEpsilon:
		return probEpsilon
	case p > 1-probEpsilon:
		return 1 - probEpsilon
	}
	return p
}
