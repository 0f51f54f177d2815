// Package types provides the shared data model and small functional helpers for emojify.
package types

import "fmt"

// Result carries either a value or the error that prevented producing it.
type Result[T any] struct {
	value T
	err   error
}

// Ok creates a successful Result containing the given value.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Err creates a failed Result containing the given error.
func Err[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// TryFrom converts a standard Go (value, error) pair to a Result.
func TryFrom[T any](value T, err error) Result[T] {
	if err != nil {
		return Err[T](err)
	}
	return Ok(value)
}

// IsOk returns true if the Result represents success.
func (r Result[T]) IsOk() bool {
	return r.err == nil
}

// IsErr returns true if the Result represents an error.
func (r Result[T]) IsErr() bool {
	return r.err != nil
}

// Unwrap returns the contained value, panicking on an Err.
// Only call it after checking IsOk.
func (r Result[T]) Unwrap() T {
	if r.err != nil {
		panic(fmt.Sprintf("called Unwrap on an Err value: %v", r.err))
	}
	return r.value
}

// Error returns the contained error, or nil if successful.
func (r Result[T]) Error() error {
	return r.err
}

// Value returns the contained value and error for standard Go error handling.
func (r Result[T]) Value() (T, error) {
	return r.value, r.err
}

// String implements fmt.Stringer for debugging.
func (r Result[T]) String() string {
	if r.err != nil {
		return fmt.Sprintf("Err(%v)", r.err)
	}
	return fmt.Sprintf("Ok(%v)", r.value)
}
