// Package emuerr defines the error taxonomy shared by the emulator core and
// the loadfile parser. Every fallible operation returns one of these four
// kinds so callers can branch on what went wrong with errors.As instead of
// string-matching.
package emuerr

import "fmt"

// InvalidParam is caller-facing: a malformed address, an out-of-range field,
// an unknown warrior ID, or an invalid bytecode identifier. Callers may retry
// with corrected inputs.
type InvalidParam struct{ Reason string }

func (e *InvalidParam) Error() string { return fmt.Sprintf("invalid param: %s", e.Reason) }

// NewInvalidParam builds an *InvalidParam with a formatted reason.
func NewInvalidParam(format string, args ...any) error {
	return &InvalidParam{Reason: fmt.Sprintf(format, args...)}
}

// UnsupportedFeature is returned when an operation is valid in general but
// this particular emulator variant doesn't implement it, e.g. PSPACE calls
// against an emulator built with pspace_size == 0.
type UnsupportedFeature struct{ Reason string }

func (e *UnsupportedFeature) Error() string { return fmt.Sprintf("unsupported feature: %s", e.Reason) }

// NewUnsupportedFeature builds an *UnsupportedFeature with a formatted reason.
func NewUnsupportedFeature(format string, args ...any) error {
	return &UnsupportedFeature{Reason: fmt.Sprintf(format, args...)}
}

// InternalError marks an invariant violation: a condition the implementation's
// own bookkeeping should have ruled out. Should never be observed in a
// correct build.
type InternalError struct{ Reason string }

func (e *InternalError) Error() string { return fmt.Sprintf("internal error: %s", e.Reason) }

// NewInternalError builds an *InternalError with a formatted reason.
func NewInternalError(format string, args ...any) error {
	return &InternalError{Reason: fmt.Sprintf(format, args...)}
}

// Unimplemented marks scaffolding. Any occurrence in a release build is a
// defect.
type Unimplemented struct{ Reason string }

func (e *Unimplemented) Error() string { return fmt.Sprintf("unimplemented: %s", e.Reason) }

// NewUnimplemented builds an *Unimplemented with a formatted reason.
func NewUnimplemented(format string, args ...any) error {
	return &Unimplemented{Reason: fmt.Sprintf(format, args...)}
}
