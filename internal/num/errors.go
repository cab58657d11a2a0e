package num

import (
	"github.com/roach88/realcalc/internal/bigrat"
	"github.com/roach88/realcalc/internal/interrupt"
)

// Error values surfaced by Real operations.
var (
	// ErrDivideByZero is returned by Div when the divisor is zero.
	ErrDivideByZero = bigrat.ErrDivideByZero

	// ErrInterrupted is returned when the caller's interrupt policy fires.
	ErrInterrupted = interrupt.ErrInterrupted

	// ErrOutOfRange is returned when a valid argument cannot be approximated
	// within the decimal exponent range.
	ErrOutOfRange = bigrat.ErrOutOfRange
)

// ErrorKind classifies an error returned by a Real operation.
type ErrorKind string

const (
	// KindNone means no error.
	KindNone ErrorKind = ""
	// KindDomain is an argument outside an operation's domain.
	KindDomain ErrorKind = "domain"
	// KindDivideByZero is a division by an exact zero.
	KindDivideByZero ErrorKind = "divide_by_zero"
	// KindInterrupted is a cancellation.
	KindInterrupted ErrorKind = "interrupted"
	// KindOutOfRange is a value too large or too small to approximate.
	KindOutOfRange ErrorKind = "out_of_range"
	// KindOther is anything else (for example a formatting failure).
	KindOther ErrorKind = "other"
)

// Classify returns the kind of err.
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case interrupt.IsInterrupted(err):
		return KindInterrupted
	case bigrat.IsDivideByZero(err):
		return KindDivideByZero
	case bigrat.IsDomainError(err):
		return KindDomain
	case bigrat.IsOutOfRange(err):
		return KindOutOfRange
	}
	return KindOther
}
