package ssoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/sartorproj/gosmooth/stats"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		orders     []int
		lags       []int
		wantOrders []int
		wantLags   []int
		wantErr    bool
	}{
		{"already sorted", []int{1, 1}, []int{1, 12}, []int{1, 1}, []int{1, 12}, false},
		{"sorted by lag", []int{1, 2}, []int{12, 1}, []int{2, 1}, []int{1, 12}, false},
		{"zero order dropped", []int{1, 0}, []int{1, 4}, []int{1}, []int{1}, false},
		{"length mismatch", []int{1}, []int{1, 12}, nil, nil, true},
		{"non-positive lag", []int{1}, []int{0}, nil, nil, true},
		{"negative order", []int{-1}, []int{1}, nil, nil, true},
		{"no components", []int{0}, []int{1}, nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := ModelSpec{Orders: tt.orders, Lags: tt.lags}.Normalize()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOrders, spec.Orders)
			assert.Equal(t, tt.wantLags, spec.Lags)
		})
	}
}

func TestLayout(t *testing.T) {
	spec, err := ModelSpec{Orders: []int{1, 2}, Lags: []int{12, 1}}.Normalize()
	require.NoError(t, err)

	lay := spec.layout()
	assert.Equal(t, 3, lay.n)
	assert.Equal(t, []int{1, 1, 12}, lay.lags)
	assert.Equal(t, []int{0, 1, 0}, lay.position)
	assert.Equal(t, 12, lay.maxLag)
	assert.Equal(t, 14, lay.initialLen)
	assert.Equal(t, 2, lay.initialOffset(2))
	assert.True(t, lay.hasLevel())
	assert.Equal(t, "2[1],1[12]", spec.String())
}

func TestEnumParsing(t *testing.T) {
	var cost CostKind
	require.NoError(t, cost.UnmarshalText([]byte("GTMSE")))
	assert.Equal(t, GTMSE, cost)
	require.NoError(t, cost.UnmarshalText([]byte("mseh")))
	assert.Equal(t, MSEh, cost)

	var v Intermittency
	require.NoError(t, v.UnmarshalText([]byte("sba")))
	assert.Equal(t, IntermittentSBA, v)

	var b BoundsMode
	assert.ErrorIs(t, b.UnmarshalText([]byte("loose")), ErrInvalidConfig)

	text, err := Multiplicative.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "multiplicative", string(text))
	assert.Equal(t, "CostKind(42)", CostKind(42).String())

	assert.True(t, TMSE.MultiStep())
	assert.False(t, HAM.MultiStep())
}

func TestConfigYAML(t *testing.T) {
	doc := `
orders: [1, 1]
lags: [1, 12]
type: multiplicative
costFunction: TMSE
informationCriterion: BIC
intermittent: auto
intervals: semiparametric
horizon: 12
`
	cfg := DefaultConfig()
	require.NoError(t, yaml.Unmarshal([]byte(doc), cfg))

	assert.Equal(t, []int{1, 12}, cfg.Lags)
	assert.Equal(t, Multiplicative, cfg.Type)
	assert.Equal(t, TMSE, cfg.CostFunction)
	assert.Equal(t, stats.BIC, cfg.InformationCriterion)
	assert.Equal(t, IntermittentAuto, cfg.Intermittent)
	assert.Equal(t, IntervalSemiparametric, cfg.Intervals)
	assert.Equal(t, 12, cfg.Horizon)
	assert.Equal(t, 5000, cfg.MaxEval, "unset fields keep their defaults")
	assert.NoError(t, cfg.Validate())

	assert.Error(t, yaml.Unmarshal([]byte("costFunction: MAPE\n"), DefaultConfig()))
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"orders and lags differ", func(c *Config) { c.Lags = []int{1, 12} }},
		{"zero horizon", func(c *Config) { c.Horizon = 0 }},
		{"level outside (0,1)", func(c *Config) { c.Intervals = IntervalParametric; c.Level = 1.5 }},
		{"no evaluations", func(c *Config) { c.MaxEval = 0 }},
		{"non-positive tolerance", func(c *Config) { c.XtolRel = 0 }},
		{"measurement length", func(c *Config) { c.Measurement = []float64{1, 1} }},
		{"transition length", func(c *Config) { c.Transition = []float64{1, 0} }},
		{"missing initial values", func(c *Config) { c.Initial = InitialProvided }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	assert.NoError(t, DefaultConfig().Validate())
}
