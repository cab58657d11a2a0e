package num

import (
	"github.com/roach88/realcalc/internal/bigrat"
	"github.com/roach88/realcalc/internal/format"
	"github.com/roach88/realcalc/internal/interrupt"
)

// Kind identifies which exact form a Real holds.
type Kind int

const (
	// Simple holds an exact rational r.
	Simple Kind = iota
	// PiMultiple holds an exact rational multiple n·π.
	PiMultiple
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Simple:
		return "simple"
	case PiMultiple:
		return "pi"
	}
	return "unknown"
}

var (
	// piApprox is π to 18 significant digits. Every collapse of a π multiple
	// uses this constant.
	piApprox = bigrat.New(3_141_592_653_589_793_238, 1_000_000_000_000_000_000)

	half = bigrat.New(1, 2)
)

// Real is an immutable exact real: a rational, or a rational multiple of π.
// The zero value is the rational 0.
type Real struct {
	kind   Kind
	factor bigrat.BigRat
}

// FromUint64 returns the rational n.
func FromUint64(n uint64) Real {
	return Real{kind: Simple, factor: bigrat.FromUint64(n)}
}

// FromInt64 returns the rational n.
func FromInt64(n int64) Real {
	return Real{kind: Simple, factor: bigrat.FromInt64(n)}
}

// FromBigRat returns the rational r.
func FromBigRat(r bigrat.BigRat) Real {
	return Real{kind: Simple, factor: r}
}

// Pi returns π.
func Pi() Real {
	return Real{kind: PiMultiple, factor: bigrat.FromInt64(1)}
}

// PiTimes returns n·π.
func PiTimes(n bigrat.BigRat) Real {
	return Real{kind: PiMultiple, factor: n}
}

// Kind reports which exact form x holds.
func (x Real) Kind() Kind {
	return x.kind
}

// Factor returns the stored rational: r for Simple, n for PiMultiple.
func (x Real) Factor() bigrat.BigRat {
	return x.factor
}

// String renders the symbolic form, e.g. "3/4" or "1/2pi".
func (x Real) String() string {
	if x.kind == PiMultiple {
		return x.factor.String() + "pi"
	}
	return x.factor.String()
}

// isZero reports whether x denotes zero. Both forms are zero exactly when
// their factor is, so no approximation is needed.
func (x Real) isZero() bool {
	return x.factor.IsZero()
}

// approximate collapses x to a rational. It is the only place where the
// symbolic π factor is discarded, and it fails only if intr fires.
func (x Real) approximate(intr interrupt.Interrupt) (bigrat.BigRat, error) {
	switch x.kind {
	case PiMultiple:
		return x.factor.Mul(piApprox, intr)
	default:
		return x.factor, nil
	}
}

// Approximate returns x as a rational, substituting the fixed π constant for
// a π multiple.
func (x Real) Approximate(intr interrupt.Interrupt) (bigrat.BigRat, error) {
	return x.approximate(intr)
}

// Neg returns -x. It is always exact.
func (x Real) Neg() Real {
	return Real{kind: x.kind, factor: x.factor.Neg()}
}

// Cmp compares x and y and returns -1, 0 or +1.
//
// Values of the same form compare by factor. Mixed forms are approximated
// first, with a policy that never fires, so ordering always succeeds.
func (x Real) Cmp(y Real) int {
	if x.kind == y.kind {
		return x.factor.Cmp(y.factor)
	}
	// approximation only fails by interruption, and Never cannot fire.
	a, _ := x.approximate(interrupt.Never{})
	b, _ := y.approximate(interrupt.Never{})
	return a.Cmp(b)
}

// Equal reports whether x and y denote the same value. Pi(0) equals 0.
func (x Real) Equal(y Real) bool {
	return x.Cmp(y) == 0
}

// TryAsUint converts x to an unsigned integer. A nonzero π multiple is never
// an integer.
func (x Real) TryAsUint(intr interrupt.Interrupt) (uint, error) {
	switch x.kind {
	case PiMultiple:
		if x.factor.IsZero() {
			return 0, nil
		}
		return 0, bigrat.NewDomainError("integer", "number cannot be converted to an integer")
	default:
		return x.factor.TryAsUint(intr)
	}
}

// IntoF64 returns the nearest float64 to the approximated value.
func (x Real) IntoF64(intr interrupt.Interrupt) (float64, error) {
	a, err := x.approximate(intr)
	if err != nil {
		return 0, err
	}
	return a.IntoF64(intr)
}

// FromF64 returns the exact rational value of f.
func FromF64(f float64, intr interrupt.Interrupt) (Real, error) {
	r, err := bigrat.FromF64(f, intr)
	if err != nil {
		return Real{}, err
	}
	return FromBigRat(r), nil
}

// Add returns x + y and whether the sum is exact.
//
// Adding zero returns the other operand unchanged. Same forms add their
// factors exactly; mixed forms collapse to an approximate rational.
// Add fails only if intr fires.
func (x Real) Add(y Real, intr interrupt.Interrupt) (Real, bool, error) {
	if x.isZero() {
		return y, true, nil
	}
	if y.isZero() {
		return x, true, nil
	}
	if x.kind == y.kind {
		f, err := x.factor.Add(y.factor, intr)
		if err != nil {
			return Real{}, false, err
		}
		return Real{kind: x.kind, factor: f}, true, nil
	}
	a, b, err := approximateBoth(x, y, intr)
	if err != nil {
		return Real{}, false, err
	}
	sum, err := a.Add(b, intr)
	if err != nil {
		return Real{}, false, err
	}
	return FromBigRat(sum), false, nil
}

// Sub returns x - y and whether the difference is exact. It mirrors Add;
// subtracting from zero returns -y. Sub fails only if intr fires.
func (x Real) Sub(y Real, intr interrupt.Interrupt) (Real, bool, error) {
	if y.isZero() {
		return x, true, nil
	}
	if x.isZero() {
		return y.Neg(), true, nil
	}
	if x.kind == y.kind {
		f, err := x.factor.Sub(y.factor, intr)
		if err != nil {
			return Real{}, false, err
		}
		return Real{kind: x.kind, factor: f}, true, nil
	}
	a, b, err := approximateBoth(x, y, intr)
	if err != nil {
		return Real{}, false, err
	}
	diff, err := a.Sub(b, intr)
	if err != nil {
		return Real{}, false, err
	}
	return FromBigRat(diff), false, nil
}

// Mul returns x · y and whether the product is exact.
//
// A π multiple times a rational stays an exact π multiple. π² cannot be
// represented, so the right π factor is approximated. Mul fails only if intr
// fires.
func (x Real) Mul(y Real, intr interrupt.Interrupt) (Real, bool, error) {
	switch {
	case x.kind == Simple && y.kind == Simple:
		f, err := x.factor.Mul(y.factor, intr)
		if err != nil {
			return Real{}, false, err
		}
		return FromBigRat(f), true, nil
	case x.kind == PiMultiple && y.kind == PiMultiple:
		b, err := y.approximate(intr)
		if err != nil {
			return Real{}, false, err
		}
		f, err := x.factor.Mul(b, intr)
		if err != nil {
			return Real{}, false, err
		}
		return PiTimes(f), false, nil
	default:
		f, err := x.factor.Mul(y.factor, intr)
		if err != nil {
			return Real{}, false, err
		}
		return PiTimes(f), true, nil
	}
}

// Div returns x / y and whether the quotient is exact. Dividing two π
// multiples cancels π exactly. Div fails with bigrat.ErrDivideByZero when y
// is zero, whatever its form.
func (x Real) Div(y Real, intr interrupt.Interrupt) (Real, bool, error) {
	switch {
	case x.kind == Simple && y.kind == Simple, x.kind == PiMultiple && y.kind == PiMultiple:
		f, err := x.factor.Div(y.factor, intr)
		if err != nil {
			return Real{}, false, err
		}
		return FromBigRat(f), true, nil
	case x.kind == PiMultiple:
		f, err := x.factor.Div(y.factor, intr)
		if err != nil {
			return Real{}, false, err
		}
		return PiTimes(f), true, nil
	default:
		if y.isZero() {
			return Real{}, false, bigrat.ErrDivideByZero
		}
		b, err := y.approximate(intr)
		if err != nil {
			return Real{}, false, err
		}
		f, err := x.factor.Div(b, intr)
		if err != nil {
			return Real{}, false, err
		}
		return FromBigRat(f), false, nil
	}
}

// Pow returns x raised to y and whether the result is exact. Only rational
// bases with rational exponents can be exact.
func (x Real) Pow(y Real, intr interrupt.Interrupt) (Real, bool, error) {
	if x.kind == Simple && y.kind == Simple {
		res, exact, err := x.factor.Pow(y.factor, intr)
		if err != nil {
			return Real{}, false, err
		}
		return FromBigRat(res), exact, nil
	}
	a, b, err := approximateBoth(x, y, intr)
	if err != nil {
		return Real{}, false, err
	}
	res, _, err := a.Pow(b, intr)
	if err != nil {
		return Real{}, false, err
	}
	return FromBigRat(res), false, nil
}

// RootN returns the n-th root of x and whether it is exact.
func (x Real) RootN(n Real, intr interrupt.Interrupt) (Real, bool, error) {
	if x.kind == Simple && n.kind == Simple {
		res, exact, err := x.factor.RootN(n.factor, intr)
		if err != nil {
			return Real{}, false, err
		}
		return FromBigRat(res), exact, nil
	}
	a, b, err := approximateBoth(x, n, intr)
	if err != nil {
		return Real{}, false, err
	}
	res, _, err := a.RootN(b, intr)
	if err != nil {
		return Real{}, false, err
	}
	return FromBigRat(res), false, nil
}

func approximateBoth(x, y Real, intr interrupt.Interrupt) (bigrat.BigRat, bigrat.BigRat, error) {
	a, err := x.approximate(intr)
	if err != nil {
		return bigrat.BigRat{}, bigrat.BigRat{}, err
	}
	b, err := y.approximate(intr)
	if err != nil {
		return bigrat.BigRat{}, bigrat.BigRat{}, err
	}
	return a, b, nil
}

// Format renders x and reports whether the rendering is exact.
//
// Auto renders π multiples as ApproxFloat(10) and rationals as an exact float
// falling back to a fraction.
func (x Real) Format(base format.Base, style format.Style, imag, useParensIfFraction bool, intr interrupt.Interrupt) (string, bool, error) {
	if style.Kind == format.Auto {
		if x.kind == PiMultiple {
			style = format.Approx(10)
		} else {
			style = format.StyleExactOrFraction
		}
	}
	a, err := x.approximate(intr)
	if err != nil {
		return "", false, err
	}
	out, err := a.Format(base, style, imag, useParensIfFraction, intr)
	if err != nil {
		return "", false, err
	}
	return out.Text, out.Exact, nil
}
