package ssoe

import (
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/sartorproj/gosmooth/stats"
)

// Config holds the model structure and estimation settings.
//
// Provided blocks (Measurement, Transition, Persistence, InitialValues) are
// given in component order after the blocks are sorted by lag. A non-nil
// provided block is kept fixed during estimation.
type Config struct {
	Name                 string              `yaml:"name"`                 // Model name reported in the Result
	Orders               []int               `yaml:"orders"`               // Components per lag block (default: [1])
	Lags                 []int               `yaml:"lags"`                 // Lag of each block (default: [1])
	Type                 ErrorType           `yaml:"type"`                 // additive or multiplicative
	Initial              InitialKind         `yaml:"initial"`              // optimal, backcasting or provided
	CostFunction         CostKind            `yaml:"costFunction"`         // Loss minimized (default: MSE)
	InformationCriterion stats.CriterionKind `yaml:"informationCriterion"` // Criterion used for selection (default: AICc)
	Horizon              int                 `yaml:"horizon"`              // Forecast horizon (default: 10)
	Holdout              bool                `yaml:"holdout"`              // Keep the last Horizon observations out of the fit
	Cumulative           bool                `yaml:"cumulative"`           // Forecast the sum over the horizon
	Intervals            IntervalKind        `yaml:"intervals"`            // Prediction interval kind (default: none)
	Level                float64             `yaml:"level"`                // Interval coverage (default: 0.95)
	Intermittent         Intermittency       `yaml:"intermittent"`         // Occurrence model (default: none)
	Bounds               BoundsMode          `yaml:"bounds"`               // Parameter restrictions (default: admissible)
	ExogenousUpdate      bool                `yaml:"exogenousUpdate"`      // Let regressor coefficients evolve over time
	MaxEval              int                 `yaml:"maxeval"`              // Evaluation budget of the global phase (default: 5000)
	XtolRel              float64             `yaml:"xtolRel"`              // Relative step tolerance (default: 1e-8)
	Parallel             bool                `yaml:"parallel"`             // Run intermittency trials concurrently

	EstimateTransition bool      `yaml:"estimateTransition"` // Estimate every transition entry
	Measurement        []float64 `yaml:"measurement"`        // Fixed measurement vector (n)
	Transition         []float64 `yaml:"transition"`         // Fixed transition matrix (n×n, row-major)
	Persistence        []float64 `yaml:"persistence"`        // Fixed persistence vector (n)
	InitialValues      []float64 `yaml:"initialValues"`      // Initial window when Initial is provided

	PreviousFit *PreviousFit `yaml:"-"`
}

// DefaultConfig returns a level-only additive model with an MSE cost.
func DefaultConfig() *Config {
	return &Config{
		Orders:               []int{1},
		Lags:                 []int{1},
		Type:                 Additive,
		Initial:              InitialOptimal,
		CostFunction:         MSE,
		InformationCriterion: stats.AICc,
		Horizon:              10,
		Intervals:            IntervalNone,
		Level:                0.95,
		Intermittent:         IntermittentNone,
		Bounds:               BoundsAdmissible,
		MaxEval:              5000,
		XtolRel:              1e-8,
	}
}

// Spec returns the model structure described by the configuration.
func (c *Config) Spec() ModelSpec {
	return ModelSpec{Orders: c.Orders, Lags: c.Lags, ErrorType: c.Type, Bounds: c.Bounds}
}

// Validate checks the configuration before any estimation work is done.
func (c *Config) Validate() error {
	spec, err := c.Spec().Normalize()
	if err != nil {
		return err
	}
	if c.Horizon < 1 {
		return fmt.Errorf("%w: horizon %d must be at least 1", ErrInvalidConfig, c.Horizon)
	}
	if c.Intervals != IntervalNone && (c.Level <= 0 || c.Level >= 1) {
		return fmt.Errorf("%w: level %g outside (0, 1)", ErrInvalidConfig, c.Level)
	}
	if c.MaxEval < 1 {
		return fmt.Errorf("%w: maxeval must be positive", ErrInvalidConfig)
	}
	if c.XtolRel <= 0 {
		return fmt.Errorf("%w: xtolRel must be positive", ErrInvalidConfig)
	}
	if c.Intermittent < IntermittentNone || c.Intermittent > IntermittentAuto {
		return fmt.Errorf("%w: unknown intermittency %d", ErrInvalidConfig, c.Intermittent)
	}
	if c.CostFunction < MSE || c.CostFunction > MSCE {
		return fmt.Errorf("%w: unknown cost function %d", ErrInvalidConfig, c.CostFunction)
	}

	lay := spec.layout()
	checks := []struct {
		name string
		got  []float64
		want int
	}{
		{"measurement", c.Measurement, lay.n},
		{"transition", c.Transition, lay.n * lay.n},
		{"persistence", c.Persistence, lay.n},
	}
	for _, chk := range checks {
		if chk.got != nil && len(chk.got) != chk.want {
			return fmt.Errorf("%w: %s has %d values, want %d", ErrInvalidConfig, chk.name, len(chk.got), chk.want)
		}
	}
	if c.Initial == InitialProvided && len(c.InitialValues) != lay.initialLen {
		return fmt.Errorf("%w: initialValues has %d values, want %d", ErrInvalidConfig, len(c.InitialValues), lay.initialLen)
	}
	return nil
}

// Option configures the collaborators of a fit.
type Option func(*fitOptions)

type fitOptions struct {
	logger *zap.Logger
	xreg   *mat.Dense
	global BoundedMinimizer
	local  BoundedMinimizer
}

func defaultFitOptions() *fitOptions {
	return &fitOptions{
		logger: zap.NewNop(),
		global: PatternSearch{},
		local:  NelderMead{},
	}
}

// WithLogger sets the logger used for estimation diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(o *fitOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithXreg adds exogenous regressors. The matrix needs at least one row per
// in-sample observation; missing future rows repeat the last row.
func WithXreg(x *mat.Dense) Option {
	return func(o *fitOptions) {
		o.xreg = x
	}
}

// WithMinimizers replaces the two optimizer phases. A nil local phase
// disables the refinement.
func WithMinimizers(global, local BoundedMinimizer) Option {
	return func(o *fitOptions) {
		if global != nil {
			o.global = global
		}
		o.local = local
	}
}
