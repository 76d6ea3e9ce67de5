// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors provides a set of error handling helpers,
// extending the standard library errors package.
// Errors are logged through [log/slog] rather than printed,
// so that they respect the user's verbosity level.
package errors

import (
	"errors"
	"log/slog"
	"runtime"
	"strconv"
)

// New is the same as [errors.New].
func New(text string) error {
	return errors.New(text)
}

// Is is the same as [errors.Is].
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is the same as [errors.As].
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Unwrap is the same as [errors.Unwrap].
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// Join is the same as [errors.Join].
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// Log takes the given error and logs it if it is non-nil.
// The intended usage is:
//
//	return errors.Log(MyFunc(v))
//	// or
//	if errors.Log(MyFunc(v)) != nil {
//		// do something
//	}
func Log(err error) error {
	if err != nil {
		slog.Error(err.Error() + " | " + CallerInfo())
	}
	return err
}

// Log1 takes the given value and error and returns the value if
// the error is nil, and logs the error and returns a zero value
// if the error is non-nil. The intended usage is:
//
//	a := errors.Log1(MyFunc(v))
func Log1[T any](v T, err error) T {
	if err != nil {
		slog.Error(err.Error() + " | " + CallerInfo())
	}
	return v
}

// Ignore1 ignores an error return value for a function returning
// a value and an error, allowing direct usage of the value.
// The intended usage is:
//
//	a := errors.Ignore1(MyFunc(v))
func Ignore1[T any](v T, err error) T {
	return v
}

// Must takes the given error and panics if it is non-nil.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}

// Innermost returns the root cause of the given error, following
// the [errors.Unwrap] chain until it ends. Joined errors are not
// descended into; the joined error itself is returned.
// It returns nil if err is nil.
func Innermost(err error) error {
	for err != nil {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
	return nil
}

// FromPanic converts a recovered panic value into an error.
// It returns nil if r is nil.
func FromPanic(r any) error {
	switch x := r.(type) {
	case nil:
		return nil
	case error:
		return x
	case string:
		return errors.New(x)
	default:
		return errors.New("panic: " + slog.AnyValue(x).String())
	}
}

// CallerInfo returns string information about the caller
// of the function that called CallerInfo.
func CallerInfo() string {
	pc, file, line, _ := runtime.Caller(2)
	return runtime.FuncForPC(pc).Name() + " " + file + ":" + strconv.Itoa(line)
}
