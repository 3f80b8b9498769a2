package stats

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
)

var ErrLengthMismatch = errors.New("actual and forecast lengths differ")

// Accuracy holds error measures of a forecast against a holdout.
type Accuracy struct {
	ME    float64
	MAE   float64
	MSE   float64
	RMSE  float64
	MPE   float64
	MAPE  float64
	SMAPE float64
	MASE  float64 // Scaled by the in-sample mean absolute first difference
	SMAE  float64 // Scaled by the in-sample mean absolute value
	SMSE  float64 // Scaled by the squared in-sample mean absolute value
}

// MeasureAccuracy compares forecast against actual. insample is used for
// the scaled measures and may be nil, in which case they are NaN.
func MeasureAccuracy(actual, forecast, insample []float64) (*Accuracy, error) {
	if len(actual) != len(forecast) {
		return nil, ErrLengthMismatch
	}
	if len(actual) == 0 {
		return nil, errors.New("empty holdout")
	}

	errs := make([]float64, len(actual))
	floats.SubTo(errs, actual, forecast)
	n := float64(len(errs))

	var absSum, sqSum, pctSum, absPctSum, symSum float64
	for i, e := range errs {
		absSum += math.Abs(e)
		sqSum += e * e
		pctSum += e / actual[i]
		absPctSum += math.Abs(e / actual[i])
		symSum += 2 * math.Abs(e) / (math.Abs(actual[i]) + math.Abs(forecast[i]))
	}

	acc := &Accuracy{
		ME:    floats.Sum(errs) / n,
		MAE:   absSum / n,
		MSE:   sqSum / n,
		MPE:   100 * pctSum / n,
		MAPE:  100 * absPctSum / n,
		SMAPE: 100 * symSum / n,
		MASE:  math.NaN(),
		SMAE:  math.NaN(),
		SMSE:  math.NaN(),
	}
	acc.RMSE = math.Sqrt(acc.MSE)

	if scale := meanAbsDiff(insample); scale > 0 {
		acc.MASE = acc.MAE / scale
	}
	if level := meanAbs(insample); level > 0 {
		acc.SMAE = acc.MAE / level
		acc.SMSE = acc.MSE / (level * level)
	}

	return acc, nil
}

func meanAbsDiff(values []float64) float64 {
	sum, n := 0.0, 0
	for i := 1; i < len(values); i++ {
		d := values[i] - values[i-1]
		if math.IsNaN(d) {
			continue
		}
		sum += math.Abs(d)
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func meanAbs(values []float64) float64 {
	sum, n := 0.0, 0
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		sum += math.Abs(v)
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
