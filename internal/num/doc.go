// Package num implements Real, the exact/symbolic real number at the core of
// the calculator.
//
// A Real is either an exact rational (Simple) or an exact rational multiple of
// π (PiMultiple). Every operation returns a fresh value and, where exactness
// can be lost, an explicit exactness flag. Collapsing a π multiple to a
// rational happens in one place only (approximate), using π to 18 significant
// digits.
//
// ERROR CHANNELS:
//
// Operations that can only fail by cancellation (Add, Sub, Mul, Sin, Atan,
// Approximate, IntoF64) return errors that always satisfy
// interrupt.IsInterrupted. Other operations may additionally
// return a *bigrat.DomainError or ErrOutOfRange, and Div may return
// ErrDivideByZero. Classify tells the kinds apart.
// Cancellation must abort the whole evaluation; it is never a local failure.
//
// Ordering and equality never fail and ignore the caller's cancellation
// policy: mixed forms are compared after approximating with interrupt.Never.
package num
