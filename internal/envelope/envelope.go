// Package envelope defines the uniform result shape returned by every store
// operation. Callers always receive a Result, never a raw error: failure is a
// value, so the "never throws past its own boundary" contract is enforced by
// the type system.
package envelope

import (
	domainerrors "beacon/internal/domain/errors"
)

// Result is the `{success, data?, message?}` envelope the UI layer consumes.
// Exactly one of Data or Message carries information: Message is set only on
// failure, and is always a non-empty human-readable string. Data may be the
// zero value even on success (delete operations).
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// Failed reports whether the result failed, along with its message.
func (r Result[T]) Failed() (bool, string) {
	return !r.Success, r.Message
}

// Ok returns a successful result carrying data.
func Ok[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

// OkEmpty returns a successful result with no payload, for operations whose
// success has no body (deletes, fire-and-report calls).
func OkEmpty[T any]() Result[T] {
	return Result[T]{Success: true}
}

// Err returns a failed result with an explicit message.
func Err[T any](message string) Result[T] {
	if message == "" {
		message = "something went wrong, please try again"
	}

	return Result[T]{Success: false, Message: message}
}

// Failure converts an operation error into a failed result. Resolution order
// for the message: the server's detail string, else the first message of the
// first field key, else the transport error's own text, else the supplied
// per-operation fallback.
func Failure[T any](err error, fallback string) Result[T] {
	if err == nil {
		return Err[T](fallback)
	}

	if apiErr, ok := domainerrors.AsAPIError(err); ok {
		if msg := apiErr.Message(); msg != "" {
			return Err[T](msg)
		}
	}

	if msg := err.Error(); msg != "" {
		return Err[T](msg)
	}

	return Err[T](fallback)
}
