package ssoe

import (
	"fmt"
	"strings"
)

// ErrorType selects how the single error term enters the model.
type ErrorType int

const (
	// Additive models add the error to the one-step forecast.
	Additive ErrorType = iota
	// Multiplicative models are estimated on the log scale.
	Multiplicative
)

// BoundsMode selects the parameter restrictions applied during estimation.
type BoundsMode int

const (
	// BoundsNone leaves every parameter free.
	BoundsNone BoundsMode = iota
	// BoundsRestricted boxes measurement and transition entries into [0, 1].
	BoundsRestricted
	// BoundsAdmissible rejects points whose discount matrix has a spectral
	// radius above StabilityThreshold.
	BoundsAdmissible
)

// InitialKind selects how the initial state window is obtained.
type InitialKind int

const (
	InitialOptimal     InitialKind = iota // estimated with the other parameters
	InitialBackcasting                    // refined by forward and backward passes
	InitialProvided                       // taken from Config.InitialValues
)

// CostKind selects the loss minimized by the optimizer.
type CostKind int

const (
	MSE   CostKind = iota // mean squared one-step error
	MAE                   // mean absolute one-step error
	HAM                   // mean of sqrt(|e|)
	MSEh                  // mean squared h-step-ahead error
	TMSE                  // sum over steps 1..h of the mean squared error
	GTMSE                 // sum over steps 1..h of the log mean squared error
	MSCE                  // mean squared cumulative h-step error
)

// IntervalKind selects how prediction intervals are produced.
type IntervalKind int

const (
	IntervalNone           IntervalKind = iota // point forecasts only
	IntervalParametric                         // normal quantiles of the impulse-response variance
	IntervalSemiparametric                     // normal quantiles of the multi-step error variance
	IntervalNonparametric                      // empirical quantiles of the multi-step errors
)

// Intermittency selects the occurrence submodel. The first six values are
// also the fixed trial order of the automatic selection.
type Intermittency int

const (
	IntermittentNone Intermittency = iota
	IntermittentFixed
	IntermittentInterval
	IntermittentProbability
	IntermittentSBA
	IntermittentLogistic
	IntermittentAuto
)

var (
	errorTypeNames     = []string{"additive", "multiplicative"}
	boundsModeNames    = []string{"none", "restricted", "admissible"}
	initialKindNames   = []string{"optimal", "backcasting", "provided"}
	costKindNames      = []string{"MSE", "MAE", "HAM", "MSEh", "TMSE", "GTMSE", "MSCE"}
	intervalKindNames  = []string{"none", "parametric", "semiparametric", "nonparametric"}
	intermittencyNames = []string{"none", "fixed", "interval", "probability", "sba", "logistic", "auto"}
)

func enumName(names []string, v int, what string) string {
	if v < 0 || v >= len(names) {
		return fmt.Sprintf("%s(%d)", what, v)
	}
	return names[v]
}

func parseEnum(names []string, s, what string) (int, error) {
	for i, name := range names {
		if name == s {
			return i, nil
		}
	}
	for i, name := range names {
		if strings.EqualFold(name, s) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown %s %q", ErrInvalidConfig, what, s)
}

func (t ErrorType) String() string     { return enumName(errorTypeNames, int(t), "ErrorType") }
func (b BoundsMode) String() string    { return enumName(boundsModeNames, int(b), "BoundsMode") }
func (k InitialKind) String() string   { return enumName(initialKindNames, int(k), "InitialKind") }
func (k CostKind) String() string      { return enumName(costKindNames, int(k), "CostKind") }
func (k IntervalKind) String() string  { return enumName(intervalKindNames, int(k), "IntervalKind") }
func (v Intermittency) String() string { return enumName(intermittencyNames, int(v), "Intermittency") }

// MultiStep reports whether the cost needs the h-step error matrix.
func (k CostKind) MultiStep() bool {
	switch k {
	case MSEh, TMSE, GTMSE, MSCE:
		return true
	}
	return false
}

func (t ErrorType) MarshalText() ([]byte, error)     { return []byte(t.String()), nil }
func (b BoundsMode) MarshalText() ([]byte, error)    { return []byte(b.String()), nil }
func (k InitialKind) MarshalText() ([]byte, error)   { return []byte(k.String()), nil }
func (k CostKind) MarshalText() ([]byte, error)      { return []byte(k.String()), nil }
func (k IntervalKind) MarshalText() ([]byte, error)  { return []byte(k.String()), nil }
func (v Intermittency) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

func (t *ErrorType) UnmarshalText(text []byte) error {
	v, err := parseEnum(errorTypeNames, string(text), "error type")
	*t = ErrorType(v)
	return err
}

func (b *BoundsMode) UnmarshalText(text []byte) error {
	v, err := parseEnum(boundsModeNames, string(text), "bounds mode")
	*b = BoundsMode(v)
	return err
}

func (k *InitialKind) UnmarshalText(text []byte) error {
	v, err := parseEnum(initialKindNames, string(text), "initial kind")
	*k = InitialKind(v)
	return err
}

func (k *CostKind) UnmarshalText(text []byte) error {
	v, err := parseEnum(costKindNames, string(text), "cost function")
	*k = CostKind(v)
	return err
}

func (k *IntervalKind) UnmarshalText(text []byte) error {
	v, err := parseEnum(intervalKindNames, string(text), "interval kind")
	*k = IntervalKind(v)
	return err
}

func (v *Intermittency) UnmarshalText(text []byte) error {
	i, err := parseEnum(intermittencyNames, string(text), "intermittency")
	*v = Intermittency(i)
	return err
}
