// Package ptr provides small generic helpers for optional (pointer) fields.
package ptr

// To creates a pointer to the given value.
func To[T any](v T) *T {
	return &v
}

// Int creates a pointer to the given int value.
func Int(i int) *int {
	return &i
}

// Bool creates a pointer to the given bool value.
func Bool(b bool) *bool {
	return &b
}

// Float64 creates a pointer to the given float64 value.
func Float64(f float64) *float64 {
	return &f
}

// Clone returns a new pointer holding a copy of *p, or nil.
func Clone[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Deref returns *p, or def when p is nil.
func Deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
