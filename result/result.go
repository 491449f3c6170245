// Package result provides a two-case success-or-error container used by the
// parser and font table for fallible operations.
package result

import (
	"errors"
	"fmt"
)

// ErrNilError is stored when Err is called with a nil error, so that a
// Result never holds neither alternative.
var ErrNilError = errors.New("result: error alternative constructed from nil")

// AccessError is the panic value raised when the wrong alternative is read.
type AccessError struct {
	Want string // alternative that was requested
	Held error  // held error, if the Result is a failure
}

func (e *AccessError) Error() string {
	if e.Held != nil {
		return fmt.Sprintf("result: %s requested on failure: %v", e.Want, e.Held)
	}
	return fmt.Sprintf("result: %s requested on success", e.Want)
}

func (e *AccessError) Unwrap() error { return e.Held }

// Result holds either a value of type T or an error, never both.
// The zero Result is a failure holding ErrNilError.
type Result[T any] struct {
	value T
	err   error
	ok    bool
}

// Ok wraps a success value.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v, ok: true}
}

// Err wraps an error.
func Err[T any](err error) Result[T] {
	if err == nil {
		err = ErrNilError
	}
	return Result[T]{err: err}
}

// Errorf is shorthand for Err(fmt.Errorf(format, args...)).
func Errorf[T any](format string, args ...any) Result[T] {
	return Err[T](fmt.Errorf(format, args...))
}

// From converts a Go (value, error) pair into a Result.
func From[T any](v T, err error) Result[T] {
	if err != nil {
		return Err[T](err)
	}
	return Ok(v)
}

// IsOk reports whether r holds a success value.
func (r Result[T]) IsOk() bool { return r.ok }

// Value returns the success value. It panics with *AccessError on a failure.
func (r Result[T]) Value() T {
	if !r.ok {
		panic(&AccessError{Want: "value", Held: r.failure()})
	}
	return r.value
}

// Err returns the held error. It panics with *AccessError on a success.
func (r Result[T]) Err() error {
	if r.ok {
		panic(&AccessError{Want: "error"})
	}
	return r.failure()
}

// Unpack returns the Result in the usual (value, error) form.
func (r Result[T]) Unpack() (T, error) {
	if r.ok {
		return r.value, nil
	}
	var zero T
	return zero, r.failure()
}

// Must returns the success value or panics with the held error.
func (r Result[T]) Must() T {
	if !r.ok {
		panic(r.failure())
	}
	return r.value
}

// Match calls exactly one of onOk or onErr.
func (r Result[T]) Match(onOk func(T), onErr func(error)) {
	if r.ok {
		onOk(r.value)
		return
	}
	onErr(r.failure())
}

// OrElse returns the success value, or fallback on failure.
func (r Result[T]) OrElse(fallback T) T {
	if r.ok {
		return r.value
	}
	return fallback
}

func (r Result[T]) failure() error {
	if r.err == nil {
		return ErrNilError
	}
	return r.err
}

// Bind applies f to the success value of r. A failure is forwarded unchanged.
func Bind[T, U any](r Result[T], f func(T) Result[U]) Result[U] {
	if !r.ok {
		return Err[U](r.failure())
	}
	return f(r.value)
}

// Map transforms the success value of r.
func Map[T, U any](r Result[T], f func(T) U) Result[U] {
	if !r.ok {
		return Err[U](r.failure())
	}
	return Ok(f(r.value))
}
