package ssoe

import (
	"fmt"
	"math"
)

const (
	occurrenceAlphaGuess = 0.1
	logisticClip         = 0.01
	logisticInitBound    = 10
)

// OccurrenceModel is the fitted probability that a period has non-zero
// demand.
type OccurrenceModel struct {
	Variant     Intermittency
	Probability []float64 // one value per period plus the one-step forecast
	Alpha       float64 // smoothing parameter, 0 for fixed and none
	Initial     float64 // starting probability, interval or logit level
	NParam      int
	LogLik      float64 // Bernoulli log-likelihood of the indicator
}

// Last returns the forecast probability for the periods after the sample.
func (o *OccurrenceModel) Last() float64 {
	return o.Probability[len(o.Probability)-1]
}

// fitOccurrence estimates the occurrence variant on the raw values. Missing
// values are skipped; zeros are non-occurrences.
func fitOccurrence(variant Intermittency, values []float64, driver *Driver) (*OccurrenceModel, error) {
	T := len(values)
	observed, nonzero := 0, 0
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		observed++
		if v != 0 {
			nonzero++
		}
	}
	pFixed := 1.0
	if observed > 0 {
		pFixed = float64(nonzero) / float64(observed)
	}

	// Closed forms
	switch variant {
	case IntermittentNone:
		return &OccurrenceModel{Variant: variant, Probability: filled(T+1, 1)}, nil
	case IntermittentFixed:
		p := filled(T+1, pFixed)
		return &OccurrenceModel{
			Variant:     variant,
			Probability: p,
			Initial:     pFixed,
			NParam:      1,
			LogLik:      bernoulliLogLik(values, p),
		}, nil
	case IntermittentInterval, IntermittentProbability, IntermittentSBA, IntermittentLogistic:
	default:
		return nil, fmt.Errorf("%w: cannot fit occurrence variant %s", ErrInvalidConfig, variant)
	}

	// Smoothed variants: alpha in [0, 1] plus a variant-specific start
	x0 := []float64{occurrenceAlphaGuess, 0}
	box := BoundsSpec{Lower: []float64{0, 0}, Upper: []float64{1, 0}}
	switch variant {
	case IntermittentProbability:
		x0[1] = pFixed
		box.Lower[1], box.Upper[1] = probEpsilon, 1
	case IntermittentInterval, IntermittentSBA:
		x0[1] = 1 / math.Max(pFixed, 1/float64(max(T, 1)))
		box.Lower[1], box.Upper[1] = 1, math.Max(float64(T), 1)
	case IntermittentLogistic:
		x0[1] = math.Max(math.Min(logit(pFixed), logisticInitBound), -logisticInitBound)
		box.Lower[1], box.Upper[1] = -logisticInitBound, logisticInitBound
	}

	// Minimize the negative Bernoulli log-likelihood
	nll := func(x []float64) float64 {
		ll := bernoulliLogLik(values, occurrencePath(variant, x[0], x[1], values))
		if math.IsNaN(ll) || math.IsInf(ll, 0) {
			return Sentinel
		}
		return -ll
	}
	sol, err := driver.Minimize(nll, x0, box)
	if err != nil {
		return nil, fmt.Errorf("occurrence %s: %w", variant, err)
	}

	p := occurrencePath(variant, sol.X[0], sol.X[1], values)
	return &OccurrenceModel{
		Variant:     variant,
		Probability: p,
		Alpha:       sol.X[0],
		Initial:     sol.X[1],
		NParam:      2,
		LogLik:      bernoulliLogLik(values, p),
	}, nil
}

// occurrencePath returns the occurrence probability of every period and of
// the period after the sample.
func occurrencePath(variant Intermittency, alpha, initial float64, values []float64) []float64 {
	T := len(values)
	p := make([]float64, T+1)
	switch variant {
	case IntermittentProbability:
		level := initial
		for t, v := range values {
			p[t] = level
			if !math.IsNaN(v) {
				level += alpha * (indicator(v) - level)
			}
		}
		p[T] = level
	case IntermittentInterval, IntermittentSBA:
		correction := 1.0
		if variant == IntermittentSBA {
			correction = 1 - alpha/2
		}
		interval, since := initial, 0
		for t, v := range values {
			p[t] = math.Min(correction/interval, 1)
			if math.IsNaN(v) {
				continue
			}
			// the interval counts periods since the previous demand
			since++
			if v != 0 {
				interval += alpha * (float64(since) - interval)
				since = 0
			}
		}
		p[T] = math.Min(correction/interval, 1)
	case IntermittentLogistic:
		high := logit(1 - logisticClip)
		a := initial
		for t, v := range values {
			p[t] = 1 / (1 + math.Exp(-a))
			if math.IsNaN(v) {
				continue
			}
			// pull the logit towards a clipped 0 or 1
			target := -high
			if v != 0 {
				target = high
			}
			a += alpha * (target - a)
		}
		p[T] = 1 / (1 + math.Exp(-a))
	}
	return p
}

func indicator(v float64) float64 {
	if v != 0 {
		return 1
	}
	return 0
}

func logit(p float64) float64 {
	p = clampProb(p)
	return math.Log(p / (1 - p))
}
