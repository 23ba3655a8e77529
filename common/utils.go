package common

// Coalesce returns the first non-zero value from the provided arguments.
// If all values are zero, it returns the zero value of type T.
//
// Parameters:
//   - values: variadic list of values to check
//
// Returns:
//   - T: the first non-zero value, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// ClampUnit restricts v to [-1, 1].
func ClampUnit(v float32) float32 {
	return Clamp(v, -1, 1)
}

// RemoveFirst returns s without the first element equal to v, preserving order.
// The input slice is modified in place.
//
// Parameters:
//   - s: the slice to search
//   - v: the value to remove
//
// Returns:
//   - []T: the shortened slice, or s unchanged if v is absent
//   - bool: true if an element was removed
func RemoveFirst[T comparable](s []T, v T) ([]T, bool) {
	for i, e := range s {
		if e == v {
			return append(s[:i], s[i+1:]...), true
		}
	}
	return s, false
}
