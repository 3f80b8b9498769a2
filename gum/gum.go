package gum

import (
	"errors"
	"fmt"

	"github.com/sartorproj/gosmooth/ssoe"
	"github.com/sartorproj/gosmooth/timeseries"
)

// Model is a generalized univariate model: orders[i] components share the
// lag lags[i], and the measurement vector, the transition matrix and the
// persistence vector are all estimated.
type Model struct {
	Spec ssoe.ModelSpec
	// Settings holds the estimation settings. Orders, lags and the
	// structural blocks are overwritten on every fit.
	Settings *ssoe.Config

	result *ssoe.Result
}

// New creates a GUM with the given component orders per lag.
func New(orders, lags []int) (*Model, error) {
	spec, err := ssoe.ModelSpec{Orders: orders, Lags: lags}.Normalize()
	if err != nil {
		return nil, err
	}
	return &Model{Spec: spec, Settings: ssoe.DefaultConfig()}, nil
}

// Name returns the model name, e.g. GUM(1[1],1[12]).
func (m *Model) Name() string {
	return "GUM(" + m.Spec.String() + ")"
}

// Fit estimates the model on series.
func (m *Model) Fit(series *timeseries.Series, opts ...ssoe.Option) error {
	cfg := *m.Settings
	cfg.Name = m.Name()
	cfg.Orders = append([]int(nil), m.Spec.Orders...)
	cfg.Lags = append([]int(nil), m.Spec.Lags...)
	cfg.EstimateTransition = true
	cfg.Measurement = nil
	cfg.Transition = nil
	cfg.Persistence = nil

	res, err := ssoe.Fit(series, &cfg, opts...)
	if err != nil {
		return err
	}
	m.result = res
	return nil
}

// Result returns the last fit, or nil before Fit.
func (m *Model) Result() *ssoe.Result {
	return m.result
}

// Predict returns the first steps point forecasts of the last fit.
func (m *Model) Predict(steps int) ([]float64, error) {
	if m.result == nil {
		return nil, errors.New("model not fitted")
	}
	if steps < 1 || steps > len(m.result.Forecast) {
		return nil, fmt.Errorf("steps must be between 1 and %d", len(m.result.Forecast))
	}
	return append([]float64(nil), m.result.Forecast[:steps]...), nil
}
