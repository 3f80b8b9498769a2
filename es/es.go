package es

import (
	"errors"
	"fmt"

	"github.com/sartorproj/gosmooth/ssoe"
	"github.com/sartorproj/gosmooth/timeseries"
)

// Config selects the components of an exponential smoothing model.
type Config struct {
	Error    ssoe.ErrorType `yaml:"error"`    // additive or multiplicative
	Trend    bool           `yaml:"trend"`    // additive trend (multiplicative on the log scale)
	Seasonal bool           `yaml:"seasonal"` // seasonal component
	Period   int            `yaml:"period"`   // Season length; 0 uses the series frequency
}

// Parse reads a three letter model code such as "ANN", "AAN" or "MMM".
// The first letter is the error type (A or M), the second the trend and
// the third the season. Components are absent (N) or share the error type:
// a multiplicative model is additive on the log scale, so its trend and
// season are multiplicative.
func Parse(code string, period int) (Config, error) {
	if len(code) != 3 {
		return Config{}, fmt.Errorf("%w: model code %q must have three letters", ssoe.ErrInvalidConfig, code)
	}
	var cfg Config
	switch code[0] {
	case 'A':
		cfg.Error = ssoe.Additive
	case 'M':
		cfg.Error = ssoe.Multiplicative
	default:
		return Config{}, fmt.Errorf("%w: unknown error type %q", ssoe.ErrInvalidConfig, code[0])
	}

	var err error
	if cfg.Trend, err = component(code[1], cfg.Error); err != nil {
		return Config{}, fmt.Errorf("trend: %w", err)
	}
	if cfg.Seasonal, err = component(code[2], cfg.Error); err != nil {
		return Config{}, fmt.Errorf("season: %w", err)
	}
	cfg.Period = period
	return cfg, nil
}

func component(c byte, typ ssoe.ErrorType) (bool, error) {
	switch c {
	case 'N':
		return false, nil
	case 'A':
		if typ == ssoe.Multiplicative {
			return false, fmt.Errorf("%w: additive component with multiplicative error", ssoe.ErrInvalidConfig)
		}
		return true, nil
	case 'M':
		if typ != ssoe.Multiplicative {
			return false, fmt.Errorf("%w: multiplicative component with additive error", ssoe.ErrInvalidConfig)
		}
		return true, nil
	}
	return false, fmt.Errorf("%w: unknown component %q", ssoe.ErrInvalidConfig, c)
}

// Code returns the three letter model code.
func (c Config) Code() string {
	letter := func(on bool) byte {
		switch {
		case !on:
			return 'N'
		case c.Error == ssoe.Multiplicative:
			return 'M'
		}
		return 'A'
	}
	code := []byte{'A', letter(c.Trend), letter(c.Seasonal)}
	if c.Error == ssoe.Multiplicative {
		code[0] = 'M'
	}
	return string(code)
}

// Name returns the model name, e.g. ETS(AAN).
func (c Config) Name() string {
	return "ETS(" + c.Code() + ")"
}

// Model is an exponential smoothing model. Measurement and transition
// follow the ETS structure; persistence and initial states are estimated.
type Model struct {
	Config
	// Settings holds the estimation settings (cost, horizon, intervals...).
	// Its structural fields are overwritten on every fit.
	Settings *ssoe.Config

	result *ssoe.Result
}

// New creates an exponential smoothing model with default settings.
func New(cfg Config) (*Model, error) {
	if cfg.Period < 0 {
		return nil, fmt.Errorf("%w: negative period %d", ssoe.ErrInvalidConfig, cfg.Period)
	}
	if cfg.Seasonal && cfg.Period == 1 {
		return nil, fmt.Errorf("%w: seasonal model needs a period above 1", ssoe.ErrInvalidConfig)
	}
	return &Model{Config: cfg, Settings: ssoe.DefaultConfig()}, nil
}

// Fit estimates the model on series.
func (m *Model) Fit(series *timeseries.Series, opts ...ssoe.Option) error {
	if series == nil {
		return ssoe.ErrEmptySeries
	}
	cfg, err := m.estimation(series.Frequency)
	if err != nil {
		return err
	}
	res, err := ssoe.Fit(series, cfg, opts...)
	if err != nil {
		return err
	}
	m.result = res
	return nil
}

// estimation turns the component selection into an engine configuration.
func (m *Model) estimation(frequency int) (*ssoe.Config, error) {
	cfg := *m.Settings
	cfg.Name = m.Name()
	cfg.Type = m.Error
	cfg.Orders = []int{1}
	cfg.Lags = []int{1}
	if m.Trend {
		cfg.Orders[0] = 2
	}
	if m.Seasonal {
		period := m.Period
		if period == 0 {
			period = frequency
		}
		if period < 2 {
			return nil, fmt.Errorf("%w: seasonal model needs a period above 1, got %d", ssoe.ErrInvalidConfig, period)
		}
		cfg.Orders = append(cfg.Orders, 1)
		cfg.Lags = append(cfg.Lags, period)
	}

	n := 0
	for _, o := range cfg.Orders {
		n += o
	}
	cfg.Measurement = make([]float64, n)
	for i := range cfg.Measurement {
		cfg.Measurement[i] = 1
	}
	cfg.Transition = nil
	cfg.EstimateTransition = false
	return &cfg, nil
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
