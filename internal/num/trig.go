package num

import (
	"github.com/roach88/realcalc/internal/bigrat"
	"github.com/roach88/realcalc/internal/interrupt"
)

// Sin returns sin(x) and whether the result is exact.
//
// Multiples of π/2 resolve exactly to 0, 1 or -1. Other π multiples are
// approximated; rationals are forwarded to the primitive.
func (x Real) Sin(intr interrupt.Interrupt) (Real, bool, error) {
	if x.kind == Simple {
		res, exact, err := x.factor.Sin(intr)
		if err != nil {
			return Real{}, false, err
		}
		return FromBigRat(res), exact, nil
	}

	n := x.factor
	if n.Sign() < 0 {
		// sin(-x) = -sin(x)
		res, exact, err := x.Neg().Sin(intr)
		if err != nil {
			return Real{}, false, err
		}
		return res.Neg(), exact, nil
	}

	twice, err := n.Mul(bigrat.FromInt64(2), intr)
	if err != nil {
		return Real{}, false, err
	}
	if k, err := twice.TryAsUint(intr); err == nil {
		switch {
		case k%2 == 0:
			return FromInt64(0), true, nil
		case k%4 == 1:
			return FromInt64(1), true, nil
		default:
			return FromInt64(-1), true, nil
		}
	} else if interrupt.IsInterrupted(err) {
		return Real{}, false, err
	} else if twice.IsInt() {
		// 2n is an integer too large for uint; only its parity mod 4 matters.
		return sinQuarterTurns(twice), true, nil
	}

	a, err := x.approximate(intr)
	if err != nil {
		return Real{}, false, err
	}
	res, _, err := a.Sin(intr)
	if err != nil {
		return Real{}, false, err
	}
	return FromBigRat(res), false, nil
}

// sinQuarterTurns returns sin(k·π/2) for a nonnegative integer k.
func sinQuarterTurns(k bigrat.BigRat) Real {
	num := k.Num()
	switch {
	case num.Bit(0) == 0:
		return FromInt64(0)
	case num.Bit(1) == 0:
		return FromInt64(1)
	default:
		return FromInt64(-1)
	}
}

// Cos returns cos(x) and whether the result is exact, computed as
// sin(x + π/2) so that π multiples keep their exact values.
func (x Real) Cos(intr interrupt.Interrupt) (Real, bool, error) {
	if x.kind == Simple && !x.isZero() {
		res, exact, err := x.factor.Cos(intr)
		if err != nil {
			return Real{}, false, err
		}
		return FromBigRat(res), exact, nil
	}
	shifted, addExact, err := x.Add(PiTimes(half), intr)
	if err != nil {
		return Real{}, false, err
	}
	res, sinExact, err := shifted.Sin(intr)
	if err != nil {
		return Real{}, false, err
	}
	return res, addExact && sinExact, nil
}

// Tan returns tan(x) and whether the result is exact. It is undefined where
// the cosine is zero.
func (x Real) Tan(intr interrupt.Interrupt) (Real, bool, error) {
	s, sinExact, err := x.Sin(intr)
	if err != nil {
		return Real{}, false, err
	}
	c, cosExact, err := x.Cos(intr)
	if err != nil {
		return Real{}, false, err
	}
	if c.isZero() {
		return Real{}, false, bigrat.NewDomainError("tan", "tangent is undefined at odd multiples of pi/2")
	}
	res, divExact, err := s.Div(c, intr)
	if err != nil {
		return Real{}, false, err
	}
	return res, sinExact && cosExact && divExact, nil
}

type approxFunc func(bigrat.BigRat, interrupt.Interrupt) (bigrat.BigRat, error)

// forward approximates x and applies f, wrapping the result as a rational.
func (x Real) forward(f approxFunc, intr interrupt.Interrupt) (Real, error) {
	a, err := x.approximate(intr)
	if err != nil {
		return Real{}, err
	}
	res, err := f(a, intr)
	if err != nil {
		return Real{}, err
	}
	return FromBigRat(res), nil
}

// Asin returns asin(x) for x in [-1, 1].
func (x Real) Asin(intr interrupt.Interrupt) (Real, error) {
	return x.forward(bigrat.BigRat.Asin, intr)
}

// Acos returns acos(x) for x in [-1, 1].
func (x Real) Acos(intr interrupt.Interrupt) (Real, error) {
	return x.forward(bigrat.BigRat.Acos, intr)
}

// Atan returns atan(x). It is defined for every real, so it fails only if
// intr fires.
func (x Real) Atan(intr interrupt.Interrupt) (Real, error) {
	return x.forward(bigrat.BigRat.Atan, intr)
}

// Sinh returns sinh(x).
func (x Real) Sinh(intr interrupt.Interrupt) (Real, error) {
	return x.forward(bigrat.BigRat.Sinh, intr)
}

// Cosh returns cosh(x).
func (x Real) Cosh(intr interrupt.Interrupt) (Real, error) {
	return x.forward(bigrat.BigRat.Cosh, intr)
}

// Tanh returns tanh(x).
func (x Real) Tanh(intr interrupt.Interrupt) (Real, error) {
	return x.forward(bigrat.BigRat.Tanh, intr)
}

// Asinh returns asinh(x).
func (x Real) Asinh(intr interrupt.Interrupt) (Real, error) {
	return x.forward(bigrat.BigRat.Asinh, intr)
}

// Acosh returns acosh(x) for x >= 1.
func (x Real) Acosh(intr interrupt.Interrupt) (Real, error) {
	return x.forward(bigrat.BigRat.Acosh, intr)
}

// Atanh returns atanh(x) for x in (-1, 1).
func (x Real) Atanh(intr interrupt.Interrupt) (Real, error) {
	return x.forward(bigrat.BigRat.Atanh, intr)
}

// Ln returns the natural logarithm of x > 0.
func (x Real) Ln(intr interrupt.Interrupt) (Real, error) {
	return x.forward(bigrat.BigRat.Ln, intr)
}

// Log2 returns the base-2 logarithm of x > 0.
func (x Real) Log2(intr interrupt.Interrupt) (Real, error) {
	return x.forward(bigrat.BigRat.Log2, intr)
}

// Log10 returns the base-10 logarithm of x > 0.
func (x Real) Log10(intr interrupt.Interrupt) (Real, error) {
	return x.forward(bigrat.BigRat.Log10, intr)
}

// Factorial returns x! for a nonnegative integer x.
func (x Real) Factorial(intr interrupt.Interrupt) (Real, error) {
	return x.forward(bigrat.BigRat.Factorial, intr)
}

// Exp returns e^x and whether the result is exact (only e^0 is).
func (x Real) Exp(intr interrupt.Interrupt) (Real, bool, error) {
	a, err := x.approximate(intr)
	if err != nil {
		return Real{}, false, err
	}
	res, exact, err := a.Exp(intr)
	if err != nil {
		return Real{}, false, err
	}
	return FromBigRat(res), exact, nil
}
