package stats

import (
	"errors"
	"fmt"
	"math"
)

// ErrParameterBudget is returned when the sample is too small for the
// small-sample corrections, i.e. n - k - 1 <= 0.
var ErrParameterBudget = errors.New("not enough observations for the number of parameters")

// InformationCriteria holds the log-likelihood and the four criteria
// derived from it.
type InformationCriteria struct {
	LogLik float64
	AIC    float64
	AICc   float64 // AIC with the small-sample correction
	BIC    float64
	BICc   float64 // BIC with the sample-size adjustment
}

// CriterionKind selects one of the information criteria.
type CriterionKind int

const (
	AIC CriterionKind = iota
	AICc
	BIC
	BICc
)

var criterionNames = [...]string{"AIC", "AICc", "BIC", "BICc"}

func (k CriterionKind) String() string {
	if k < 0 || int(k) >= len(criterionNames) {
		return fmt.Sprintf("CriterionKind(%d)", int(k))
	}
	return criterionNames[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k CriterionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *CriterionKind) UnmarshalText(text []byte) error {
	parsed, err := ParseCriterion(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseCriterion maps a criterion name to its kind.
func ParseCriterion(s string) (CriterionKind, error) {
	for i, name := range criterionNames {
		if name == s {
			return CriterionKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown information criterion %q", s)
}

// Select returns the value of the requested criterion.
func (ic *InformationCriteria) Select(kind CriterionKind) float64 {
	switch kind {
	case AICc:
		return ic.AICc
	case BIC:
		return ic.BIC
	case BICc:
		return ic.BICc
	default:
		return ic.AIC
	}
}

// CheckBudget reports ErrParameterBudget when n - k - 1 <= 0.
func CheckBudget(nObs, nParams int) error {
	if nObs-nParams-1 <= 0 {
		return fmt.Errorf("%w: n=%d, k=%d", ErrParameterBudget, nObs, nParams)
	}
	return nil
}

// CorrectedAIC calculates the corrected Akaike Information Criterion.
// AICc = AIC + 2k(k+1)/(n-k-1). Returns +Inf when the denominator is not positive.
func CorrectedAIC(aic float64, nObs int, nParams int) float64 {
	k := float64(nParams)
	n := float64(nObs)

	if n-k-1 <= 0 {
		return math.Inf(1)
	}
	return aic + 2*k*(k+1)/(n-k-1)
}

// CalculateIC calculates all information criteria.
// logLik is the log-likelihood, nObs the number of in-sample observations and
// nParams the number of estimated parameters, variance included.
func CalculateIC(logLik float64, nObs int, nParams int) *InformationCriteria {
	k := float64(nParams)
	n := float64(nObs)

	aic := -2*logLik + 2*k
	bic := -2*logLik + k*math.Log(n)

	bicc := math.Inf(1)
	if n-k-1 > 0 {
		bicc = -2*logLik + k*math.Log(n)*n/(n-k-1)
	}

	return &InformationCriteria{
		LogLik: logLik,
		AIC:    aic,
		AICc:   CorrectedAIC(aic, nObs, nParams),
		BIC:    bic,
		BICc:   bicc,
	}
}
