// Package timeseries provides the series type consumed by the estimation engine.
package timeseries

import (
	"errors"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrLengthMismatch  = errors.New("timestamps and values must have the same length")
	ErrHoldoutTooLarge = errors.New("holdout leaves no in-sample observations")
)

// Series represents a time series with timestamps, values and a seasonal
// frequency. Missing observations are stored as NaN.
type Series struct {
	Timestamps []time.Time
	Values     []float64
	Name       string
	Frequency  int // Observations per seasonal cycle (1 = non-seasonal)
}

// New creates a non-seasonal series from values.
func New(values []float64) *Series {
	return NewWithFrequency(values, 1)
}

// NewWithFrequency creates a series with the given seasonal frequency.
// Timestamps are synthesized at hourly spacing from the zero time so that
// identical inputs always produce identical series.
func NewWithFrequency(values []float64, frequency int) *Series {
	if frequency < 1 {
		frequency = 1
	}
	timestamps := make([]time.Time, len(values))
	base := time.Unix(0, 0).UTC()
	for i := range timestamps {
		timestamps[i] = base.Add(time.Duration(i) * time.Hour)
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Frequency:  frequency,
	}
}

// NewWithTimestamps creates a time series with explicit timestamps.
func NewWithTimestamps(timestamps []time.Time, values []float64, frequency int) (*Series, error) {
	if len(timestamps) != len(values) {
		return nil, ErrLengthMismatch
	}
	if frequency < 1 {
		frequency = 1
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Frequency:  frequency,
	}, nil
}

// Len returns the length of the series, missing values included.
func (s *Series) Len() int {
	return len(s.Values)
}

// Observed returns the number of non-missing observations.
func (s *Series) Observed() int {
	n := 0
	for _, v := range s.Values {
		if !math.IsNaN(v) {
			n++
		}
	}
	return n
}

// NonZero returns the number of non-missing, non-zero observations.
func (s *Series) NonZero() int {
	n := 0
	for _, v := range s.Values {
		if !math.IsNaN(v) && v != 0 {
			n++
		}
	}
	return n
}

// HasZeros reports whether any observed value is exactly zero.
func (s *Series) HasZeros() bool {
	return s.NonZero() < s.Observed()
}

// observedValues returns the non-missing values in order.
func (s *Series) observedValues() []float64 {
	out := make([]float64, 0, len(s.Values))
	for _, v := range s.Values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// Mean calculates the arithmetic mean of the observed values.
func (s *Series) Mean() float64 {
	obs := s.observedValues()
	if len(obs) == 0 {
		return 0
	}
	return stat.Mean(obs, nil)
}

// Variance calculates the unbiased variance of the observed values.
func (s *Series) Variance() float64 {
	obs := s.observedValues()
	if len(obs) < 2 {
		return 0
	}
	return stat.Variance(obs, nil)
}

// Std calculates the standard deviation of the observed values.
func (s *Series) Std() float64 {
	return math.Sqrt(s.Variance())
}

// Min returns the minimum observed value.
func (s *Series) Min() float64 {
	obs := s.observedValues()
	if len(obs) == 0 {
		return math.NaN()
	}
	return floats.Min(obs)
}

// Max returns the maximum observed value.
func (s *Series) Max() float64 {
	obs := s.observedValues()
	if len(obs) == 0 {
		return math.NaN()
	}
	return floats.Max(obs)
}

// Slice returns a copy of the series from start to end (exclusive).
func (s *Series) Slice(start, end int) *Series {
	if start < 0 {
		start = 0
	}
	if end > len(s.Values) {
		end = len(s.Values)
	}
	if start >= end {
		return &Series{Values: []float64{}, Name: s.Name, Frequency: s.Frequency}
	}

	values := make([]float64, end-start)
	copy(values, s.Values[start:end])

	timestamps := make([]time.Time, len(values))
	if len(s.Timestamps) >= end {
		copy(timestamps, s.Timestamps[start:end])
	}

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
		Frequency:  s.Frequency,
	}
}

// Split separates the last holdout observations from the in-sample part.
func (s *Series) Split(holdout int) (train, test *Series, err error) {
	if holdout <= 0 {
		return s.Copy(), &Series{Values: []float64{}, Name: s.Name, Frequency: s.Frequency}, nil
	}
	if holdout >= s.Len() {
		return nil, nil, ErrHoldoutTooLarge
	}
	cut := s.Len() - holdout
	return s.Slice(0, cut), s.Slice(cut, s.Len()), nil
}

// Copy creates a deep copy of the series.
func (s *Series) Copy() *Series {
	values := make([]float64, len(s.Values))
	copy(values, s.Values)

	timestamps := make([]time.Time, len(s.Timestamps))
	copy(timestamps, s.Timestamps)

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
		Frequency:  s.Frequency,
	}
}
