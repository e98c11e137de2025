// Package provider holds what the Kakao and Naver clients share: typed
// failures, the circuit breaker and the JSON GET helper.
package provider

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Kind classifies a failed provider call.
type Kind string

const (
	KindNotFound  Kind = "not_found"
	KindTimeout   Kind = "timeout"
	KindTransport Kind = "transport"
	KindProvider  Kind = "provider"
)

// ErrNotFound matches any *Error of KindNotFound through errors.Is.
var ErrNotFound = errors.New("provider: not found")

// Error is the failure result of an outbound call.
type Error struct {
	Kind   Kind
	Op     string
	Status int
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrNotFound) match not-found results.
func (e *Error) Is(target error) bool {
	return target == ErrNotFound && e.Kind == KindNotFound
}

// NotFound builds a not-found result for op.
func NotFound(op string) *Error {
	return &Error{Kind: KindNotFound, Op: op}
}

// KindOf returns the kind of err, or "" when err is nil. Unclassified errors
// count as transport failures.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindTransport
}

// classify wraps a transport level error with the matching kind. Breaker
// rejections land in KindTransport.
func classify(op string, err error) *Error {
	var pe *Error
	if errors.As(err, &pe) {
		return pe
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Op: op, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Kind: KindTimeout, Op: op, Err: err}
	}
	return &Error{Kind: KindTransport, Op: op, Err: err}
}
