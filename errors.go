package hll

import (
	"github.com/pkg/errors"
)

// The five error kinds are distinct, exhaustive sentinel values.  Callers
// should compare against them with errors.Is rather than string matching;
// deserialization failures wrap one of these with additional context via
// errors.Wrapf so the underlying cause is still visible in the error
// message.
var (
	// ErrInvalidPrecision is returned when b falls outside [4, 18], either
	// at construction or while parsing an Envelope.
	ErrInvalidPrecision = errors.New("hll: precision b must be in [4, 18]")

	// ErrInvalidMode is returned when an Envelope's mode byte is neither 0
	// (Dense) nor 1 (Sparse).
	ErrInvalidMode = errors.New("hll: mode flag must be 0 (dense) or 1 (sparse)")

	// ErrMalformed covers every other structural problem with a serialized
	// blob: bad magic, truncated payload, a length field inconsistent with
	// the declared layout, an out-of-range register value, a duplicate
	// sparse index, or an index >= m.
	ErrMalformed = errors.New("hll: malformed envelope")

	// ErrIncompatiblePrecision is returned by Merge when the two
	// Estimators were built with different precision.
	ErrIncompatiblePrecision = errors.New("hll: cannot merge estimators with different precision")

	// ErrInvalidItem is returned when item bytes cannot be produced, e.g.
	// AddString is given a byte sequence that is not valid UTF-8.
	ErrInvalidItem = errors.New("hll: item is not valid UTF-8")
)

// errorf wraps one of the sentinel errors above with formatted context,
// remaining errors.Is(..., sentinel)-true.
func errorf(sentinel error, format string, args ...interface{}) error {
	return errors.Wrapf(sentinel, format, args...)
}
