// Package bigrat implements the exact-rational primitive underneath the real
// number core.
//
// A BigRat is an immutable, canonical rational of arbitrary precision. Every
// method returns a fresh value; the wrapped *big.Rat is never mutated after
// construction, so BigRat values can be copied and shared freely.
//
// Elementary arithmetic is exact. Transcendental functions are evaluated as
// decimal approximations (github.com/cockroachdb/apd/v3) at a fixed working
// precision and converted back to rationals; they report exactness only where
// the result is provably exact (for example sin(0) or a perfect root).
//
// Every operation that can run unbounded work takes an interrupt.Interrupt
// and polls it once per step (series term, squaring, multiplication, digit).
//
// Errors:
//   - *DomainError: argument outside the function's domain
//   - ErrDivideByZero: division by an exact zero (Div only)
//   - interrupt.ErrInterrupted: the caller's policy fired
package bigrat
