package bodycomp

import (
	"errors"
	"math"
)

var (
	// ErrNotComputable is returned when a required input is missing or non-positive.
	ErrNotComputable = errors.New("not computable")

	// ErrBodyFatUnavailable is returned when the circumference inputs the
	// estimator needs for the given gender are absent.
	ErrBodyFatUnavailable = errors.New("body fat unavailable")

	ErrUnknownActivityLevel = errors.New("unknown activity level")
)

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func ptr[T any](v T) *T {
	return &v
}
