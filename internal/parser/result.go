package parser

import (
	"errors"
	"fmt"
)

// ArgumentError marks a structural failure: the caller handed over no usable
// argument at all, as opposed to content that merely failed validation.
type ArgumentError struct {
	Param  string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s: %s", e.Param, e.Reason)
}

// IsArgumentError reports whether err wraps an *ArgumentError.
func IsArgumentError(err error) bool {
	var argErr *ArgumentError
	return errors.As(err, &argErr)
}

var errUnknownFailure = errors.New("unknown failure")

// Result holds either a success value or the error that prevented one.
type Result[T any] struct {
	value T
	err   error
}

func Success[T any](value T) Result[T] {
	return Result[T]{value: value}
}

func Failure[T any](err error) Result[T] {
	if err == nil {
		err = errUnknownFailure
	}
	return Result[T]{err: err}
}

func (r Result[T]) IsSuccess() bool {
	return r.err == nil
}

func (r Result[T]) Err() error {
	return r.err
}

func (r Result[T]) Unwrap() (T, error) {
	return r.value, r.err
}

// Match calls exactly one of failure or success.
func (r Result[T]) Match(failure func(error), success func(T)) {
	if r.err != nil {
		failure(r.err)
		return
	}
	success(r.value)
}

// Map transforms the success value and passes failures through untouched.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	if r.err != nil {
		return Failure[U](r.err)
	}
	return Success(fn(r.value))
}

// Bind chains a step that may itself fail.
func Bind[T, U any](r Result[T], fn func(T) Result[U]) Result[U] {
	if r.err != nil {
		return Failure[U](r.err)
	}
	return fn(r.value)
}
