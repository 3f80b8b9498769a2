package ssoe

import "errors"

// Errors returned by Fit and the configuration checks. Wrapped errors carry
// the offending value; test with errors.Is.
var (
	ErrInvalidConfig = errors.New("invalid model configuration")
	ErrVectorLength  = errors.New("parameter vector length does not match the estimated blocks")
	ErrEmptySeries   = errors.New("series has no observations")
	ErrNonPositive   = errors.New("multiplicative model requires positive observations")
	ErrXregRows      = errors.New("exogenous matrix has fewer rows than the sample")
)
