package bigrat

import (
	"errors"
	"fmt"
)

// ErrDivideByZero is returned by Div when the divisor is exactly zero.
var ErrDivideByZero = errors.New("division by zero")

// ErrOutOfRange is returned when an argument lies inside an operation's domain
// but the argument, the result or an intermediate value exceeds the decimal
// exponent range used for approximation.
var ErrOutOfRange = errors.New("out of range")

// DomainError reports an argument outside the mathematical domain of an
// operation, or a value that cannot be converted as requested.
type DomainError struct {
	// Op names the operation that rejected its argument.
	Op string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

// NewDomainError creates a DomainError for op.
func NewDomainError(op, format string, args ...any) *DomainError {
	return &DomainError{Op: op, Message: fmt.Sprintf(format, args...)}
}

// IsDomainError returns true if err is or wraps a *DomainError.
func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// IsDivideByZero returns true if err is or wraps ErrDivideByZero.
func IsDivideByZero(err error) bool {
	return errors.Is(err, ErrDivideByZero)
}

// IsOutOfRange returns true if err is or wraps ErrOutOfRange.
func IsOutOfRange(err error) bool {
	return errors.Is(err, ErrOutOfRange)
}

// rangeError wraps ErrOutOfRange for op with the underlying cause.
func rangeError(op string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%s: %w", op, ErrOutOfRange)
	}
	return fmt.Errorf("%s: %w: %v", op, ErrOutOfRange, cause)
}
