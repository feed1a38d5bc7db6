package rtnl

import (
	"errors"

	"golang.org/x/sys/unix"
)

// Status is the acknowledged outcome of an rtnetlink request.
type Status struct {
	err error
}

// NewStatus wraps the result of a request round trip.
func NewStatus(err error) Status {
	return Status{err: err}
}

// OK reports whether the kernel acknowledged the request without error.
func (s Status) OK() bool {
	return s.err == nil
}

// Exists reports whether the kernel rejected the request with EEXIST,
// meaning the requested state is already in place.
func (s Status) Exists() bool {
	return errors.Is(s.err, unix.EEXIST)
}

// Err returns the underlying error, or nil on success.
func (s Status) Err() error {
	return s.err
}

// String returns "ok", "exists", or the error text.
func (s Status) String() string {
	switch {
	case s.err == nil:
		return "ok"
	case s.Exists():
		return "exists"
	default:
		return s.err.Error()
	}
}
