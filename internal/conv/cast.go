package conv

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNotFinite is returned when a float is NaN or infinite.
	ErrNotFinite = errors.New("value is not finite")

	// ErrNotIntegral is returned when a float has a fractional part.
	ErrNotIntegral = errors.New("value is not integral")

	// ErrOutOfRange is returned when a value does not fit the target type.
	ErrOutOfRange = errors.New("value out of range")
)

// maxExactInt64 is the first float64 that no longer fits in int64 (2^63).
const maxExactInt64 = float64(1 << 63)

// Float64ToInt64 converts an integral float64 to int64 safely.
func Float64ToInt64(v float64) (int64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %v", ErrNotFinite, v)
	}
	if v != math.Trunc(v) {
		return 0, fmt.Errorf("%w: %v", ErrNotIntegral, v)
	}
	if v >= maxExactInt64 || v < -maxExactInt64 {
		return 0, fmt.Errorf("%w: %v cannot be converted to int64", ErrOutOfRange, v)
	}
	return int64(v), nil
}

// Int64ToUint converts int64 to uint safely.
func Int64ToUint(v int64) (uint, error) {
	if v < 0 {
		return 0, fmt.Errorf("%w: %d cannot be converted to uint (negative)", ErrOutOfRange, v)
	}
	if uint64(v) > uint64(math.MaxUint) {
		return 0, fmt.Errorf("%w: %d cannot be converted to uint (too large)", ErrOutOfRange, v)
	}
	return uint(v), nil
}

// IntToUint32 converts int to uint32 safely.
func IntToUint32(v int) (uint32, error) {
	if v < 0 {
		return 0, fmt.Errorf("%w: %d cannot be converted to uint32 (negative)", ErrOutOfRange, v)
	}
	// On 64-bit systems, int can exceed uint32 max; on 32-bit, this is always false
	if uint64(v) > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %d cannot be converted to uint32 (too large)", ErrOutOfRange, v)
	}
	return uint32(v), nil
}

// SaturatingAdd returns a+b, clamped to math.MaxUint64 on overflow.
func SaturatingAdd(a, b uint64) uint64 {
	if s := a + b; s >= a {
		return s
	}
	return math.MaxUint64
}
