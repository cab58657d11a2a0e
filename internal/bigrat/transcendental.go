package bigrat

import (
	"fmt"
	"math"
	"math/big"

	"github.com/cockroachdb/apd/v3"

	"github.com/roach88/realcalc/internal/interrupt"
)

// workingPrecision is the number of significant decimal digits carried by
// every transcendental approximation.
const workingPrecision = 40

// piDigits is π to piPlaces decimal places. Range reduction of larger
// arguments computes more places on demand.
const (
	piDigits = "3.1415926535897932384626433832795028841971693993751058209749445923078164062862089986280348253421170679"
	piPlaces = 100
)

// log10of2 converts a bit length into a decimal order of magnitude.
const log10of2 = 0.30102999566398119521

// scaleOrder is the order of magnitude beyond which logarithm arguments are
// split into a mantissa and a power of ten before conversion.
const scaleOrder = 1000

// rangeConditions are the apd conditions that report a value outside the
// decimal exponent range.
const rangeConditions = apd.Overflow | apd.Underflow | apd.Subnormal | apd.SystemOverflow | apd.SystemUnderflow

func newContext() *apd.Context {
	return apd.BaseContext.WithPrecision(workingPrecision + 10)
}

func pow10(n int64) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(n), nil)
}

// order estimates floor(log10 |b|) to within one. Zero has order 0.
func (b BigRat) order() int64 {
	if b.IsZero() {
		return 0
	}
	bits := int64(b.rat().Num().BitLen()) - int64(b.rat().Denom().BitLen())
	return int64(math.Floor(float64(bits) * log10of2))
}

// isTiny reports whether b is so close to zero that f(b) = b to beyond the
// working precision for every f with f(0) = 0 and f'(0) = 1.
func (b BigRat) isTiny() bool {
	return !b.IsZero() && b.order() < -(workingPrecision+2)
}

// toDecimal converts b to a decimal rounded to the context precision. The
// quotient is taken on integers, so operands of any size convert as long as
// the result fits the context's exponent range.
func toDecimal(ctx *apd.Context, b BigRat) (*apd.Decimal, error) {
	if b.IsZero() {
		return new(apd.Decimal), nil
	}
	o := b.order()
	if o > int64(ctx.MaxExponent)+1 || o < int64(ctx.MinExponent)-1 {
		return nil, fmt.Errorf("%w: magnitude 1e%d", ErrOutOfRange, o)
	}
	shift := int64(ctx.Precision) + 5 - o
	n := b.Num()
	d := b.Denom()
	if shift > 0 {
		n.Mul(n, pow10(shift))
	} else if shift < 0 {
		d.Mul(d, pow10(-shift))
	}
	n.Quo(n, d)
	x := apd.NewWithBigInt(new(apd.BigInt).SetMathBigInt(n), int32(-shift))
	if err := ed(ctx.Round(x, x)); err != nil {
		return nil, err
	}
	return x, nil
}

// fromDecimal converts a finite decimal back to an exact rational, rounded to
// the working precision first.
func fromDecimal(op string, d *apd.Decimal) (BigRat, error) {
	if d.Form != apd.Finite {
		return BigRat{}, rangeError(op, fmt.Errorf("result is not a finite number"))
	}
	rounded := new(apd.Decimal)
	if err := ed(apd.BaseContext.WithPrecision(workingPrecision).Round(rounded, d)); err != nil {
		return BigRat{}, failure(op, err)
	}
	r, ok := new(big.Rat).SetString(rounded.Text('f'))
	if !ok {
		return BigRat{}, NewDomainError(op, "cannot convert %s to a rational", rounded.Text('g'))
	}
	return BigRat{r: r}, nil
}

func mustDecimal(s string) *apd.Decimal {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func mustRat(s string) *big.Rat {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		panic("bigrat: bad constant " + s)
	}
	return r
}

var (
	decPi   = mustDecimal(piDigits)
	decOne  = apd.New(1, 0)
	decTwo  = apd.New(2, 0)
	decTen  = apd.New(10, 0)
	decHalf = apd.New(5, -1)

	// ratPi is shared; callers must not modify it.
	ratPi = mustRat(piDigits)
)

// failure labels an error raised while evaluating op. Cancellation and domain
// errors pass through; range conditions wrap ErrOutOfRange; anything else
// apd rejects is a domain error.
func failure(op string, err error) error {
	switch {
	case interrupt.IsInterrupted(err), IsDomainError(err):
		return err
	case IsOutOfRange(err):
		return fmt.Errorf("%s: %w", op, err)
	}
	return NewDomainError(op, "%v", err)
}

// unary evaluates f on b's decimal form and converts the result back.
func unary(op string, b BigRat, intr interrupt.Interrupt, f func(ctx *apd.Context, d, x *apd.Decimal) error) (BigRat, error) {
	if err := interrupt.Check(intr); err != nil {
		return BigRat{}, err
	}
	ctx := newContext()
	x, err := toDecimal(ctx, b)
	if err != nil {
		return BigRat{}, failure(op, err)
	}
	d := new(apd.Decimal)
	if err := f(ctx, d, x); err != nil {
		return BigRat{}, failure(op, err)
	}
	return fromDecimal(op, d)
}

// exactly returns v unless intr fires.
func exactly(v BigRat, intr interrupt.Interrupt) (BigRat, error) {
	if err := interrupt.Check(intr); err != nil {
		return BigRat{}, err
	}
	return v, nil
}

// ed checks the outcome of a context operation. Range conditions are
// reported as ErrOutOfRange whether or not the context traps them.
func ed(c apd.Condition, err error) error {
	if c&rangeConditions != 0 {
		return fmt.Errorf("%w: %s", ErrOutOfRange, c)
	}
	return err
}

// decimalPow returns x^y for x > 0.
func decimalPow(x, y BigRat, intr interrupt.Interrupt) (BigRat, error) {
	if err := interrupt.Check(intr); err != nil {
		return BigRat{}, err
	}
	ctx := newContext()
	dy, err := toDecimal(ctx, y)
	if err != nil {
		return BigRat{}, failure("pow", err)
	}
	return unary("pow", x, intr, func(ctx *apd.Context, d, dx *apd.Decimal) error {
		if dy.Cmp(decHalf) == 0 {
			return ed(ctx.Sqrt(d, dx))
		}
		return ed(ctx.Pow(d, dx, dy))
	})
}

// piRat returns π accurate to at least places decimal places.
func piRat(places int64, intr interrupt.Interrupt) (*big.Rat, error) {
	if places <= piPlaces {
		return ratPi, nil
	}
	return machinPi(places, intr)
}

// machinPi computes π = 16·atan(1/5) - 4·atan(1/239) in fixed point with ten
// guard digits, polling once per series term.
func machinPi(places int64, intr interrupt.Interrupt) (*big.Rat, error) {
	unity := pow10(places + 10)
	a, err := atanInv(5, unity, intr)
	if err != nil {
		return nil, err
	}
	b, err := atanInv(239, unity, intr)
	if err != nil {
		return nil, err
	}
	pi := a.Mul(a, big.NewInt(16))
	pi.Sub(pi, b.Mul(b, big.NewInt(4)))
	return new(big.Rat).SetFrac(pi, unity), nil
}

// atanInv returns atan(1/n)·unity, truncated.
func atanInv(n int64, unity *big.Int, intr interrupt.Interrupt) (*big.Int, error) {
	x := new(big.Int).Quo(unity, big.NewInt(n))
	n2 := big.NewInt(n * n)
	sum := new(big.Int).Set(x)
	term := new(big.Int)
	for k := int64(1); ; k++ {
		if err := interrupt.Check(intr); err != nil {
			return nil, err
		}
		x.Quo(x, n2)
		if x.Sign() == 0 {
			return sum, nil
		}
		term.Quo(x, big.NewInt(2*k+1))
		if k%2 == 1 {
			sum.Sub(sum, term)
		} else {
			sum.Add(sum, term)
		}
	}
}

// reduceAngle returns r in [-π, π] with r ≡ b + quarterTurns·π/2 (mod 2π).
// The reduction is done on rationals with π carried to as many places as b
// has integer digits plus a margin, so the remainder keeps the working
// precision however large b is.
func (b BigRat) reduceAngle(quarterTurns int64, intr interrupt.Interrupt) (BigRat, error) {
	if err := interrupt.Check(intr); err != nil {
		return BigRat{}, err
	}
	places := int64(workingPrecision + 20)
	if o := b.order(); o > 0 {
		places += o
	}
	pi, err := piRat(places, intr)
	if err != nil {
		return BigRat{}, err
	}

	x := b.Rat()
	if quarterTurns != 0 {
		x.Add(x, new(big.Rat).Mul(pi, big.NewRat(quarterTurns, 2)))
	}
	twoPi := new(big.Rat).Mul(pi, big.NewRat(2, 1))
	t := new(big.Rat).Quo(x, twoPi)

	// k = floor(t + 1/2)
	k := new(big.Int).Lsh(t.Num(), 1)
	k.Add(k, t.Denom())
	k.Div(k, new(big.Int).Lsh(t.Denom(), 1))
	if k.Sign() != 0 {
		x.Sub(x, twoPi.Mul(twoPi, new(big.Rat).SetInt(k)))
	}
	return BigRat{r: x}, nil
}

// Sin returns sin(b) and whether the result is exact. Only sin(0) is exact.
func (b BigRat) Sin(intr interrupt.Interrupt) (BigRat, bool, error) {
	if err := interrupt.Check(intr); err != nil {
		return BigRat{}, false, err
	}
	if b.IsZero() {
		return BigRat{}, true, nil
	}
	res, err := sinShifted("sin", b, 0, intr)
	return res, false, err
}

// Cos returns cos(b). Only cos(0) is exact.
func (b BigRat) Cos(intr interrupt.Interrupt) (BigRat, bool, error) {
	if err := interrupt.Check(intr); err != nil {
		return BigRat{}, false, err
	}
	if b.IsZero() {
		return FromInt64(1), true, nil
	}
	// cos(x) = sin(x + π/2)
	res, err := sinShifted("cos", b, 1, intr)
	return res, false, err
}

// sinShifted evaluates sin(b + quarterTurns·π/2).
func sinShifted(op string, b BigRat, quarterTurns int64, intr interrupt.Interrupt) (BigRat, error) {
	r, err := b.reduceAngle(quarterTurns, intr)
	if err != nil {
		return BigRat{}, err
	}
	if r.isTiny() {
		return r, nil
	}
	return unary(op, r, intr, func(ctx *apd.Context, d, x *apd.Decimal) error {
		return sinSeries(ctx, d, x, intr)
	})
}

// sinSeries evaluates the Taylor series of sin for x in [-π, π].
func sinSeries(ctx *apd.Context, d, x *apd.Decimal, intr interrupt.Interrupt) error {
	x2 := new(apd.Decimal)
	if err := ed(ctx.Mul(x2, x, x)); err != nil {
		return err
	}
	term := new(apd.Decimal).Set(x)
	sum := new(apd.Decimal).Set(x)
	return series(ctx, sum, term, intr, func(n int64) error {
		// term *= -x² / ((2n)(2n+1))
		if err := ed(ctx.Mul(term, term, x2)); err != nil {
			return err
		}
		return ed(ctx.Quo(term, term, apd.New(-(2*n)*(2*n+1), 0)))
	}, d)
}

// series accumulates terms into sum until a term no longer changes it.
// next advances term to the n-th term; intr is polled once per term.
func series(ctx *apd.Context, sum, term *apd.Decimal, intr interrupt.Interrupt, next func(n int64) error, d *apd.Decimal) error {
	eps := apd.New(1, -int32(workingPrecision+5))
	for n := int64(1); ; n++ {
		if err := interrupt.Check(intr); err != nil {
			return err
		}
		if err := next(n); err != nil {
			return err
		}
		if err := ed(ctx.Add(sum, sum, term)); err != nil {
			return err
		}
		abs := new(apd.Decimal).Abs(term)
		if abs.Cmp(eps) < 0 {
			break
		}
	}
	d.Set(sum)
	return nil
}

// atanDecimal computes atan(x) for any x.
func atanDecimal(ctx *apd.Context, d, x *apd.Decimal, intr interrupt.Interrupt) error {
	if x.IsZero() {
		d.SetInt64(0)
		return nil
	}
	y := new(apd.Decimal).Abs(x)
	invert := y.Cmp(decOne) > 0
	if invert {
		if err := ed(ctx.Quo(y, decOne, y)); err != nil {
			return err
		}
	}

	// atan(y) = 2·atan(y / (1 + sqrt(1 + y²))), applied until y is small.
	halvings := int64(0)
	limit := apd.New(1, -1)
	for y.Cmp(limit) > 0 {
		if err := interrupt.Check(intr); err != nil {
			return err
		}
		s := new(apd.Decimal)
		if err := ed(ctx.Mul(s, y, y)); err != nil {
			return err
		}
		if err := ed(ctx.Add(s, s, decOne)); err != nil {
			return err
		}
		if err := ed(ctx.Sqrt(s, s)); err != nil {
			return err
		}
		if err := ed(ctx.Add(s, s, decOne)); err != nil {
			return err
		}
		if err := ed(ctx.Quo(y, y, s)); err != nil {
			return err
		}
		halvings++
	}

	// atan(y) = y - y³/3 + y⁵/5 - ...
	y2 := new(apd.Decimal)
	if err := ed(ctx.Mul(y2, y, y)); err != nil {
		return err
	}
	pow := new(apd.Decimal).Set(y)
	term := new(apd.Decimal)
	sum := new(apd.Decimal).Set(y)
	res := new(apd.Decimal)
	err := series(ctx, sum, term, intr, func(n int64) error {
		if err := ed(ctx.Mul(pow, pow, y2)); err != nil {
			return err
		}
		if err := ed(ctx.Neg(pow, pow)); err != nil {
			return err
		}
		return ed(ctx.Quo(term, pow, apd.New(2*n+1, 0)))
	}, res)
	if err != nil {
		return err
	}

	if err := ed(ctx.Mul(res, res, apd.New(1<<halvings, 0))); err != nil {
		return err
	}
	if invert {
		halfPi := new(apd.Decimal)
		if err := ed(ctx.Mul(halfPi, decPi, decHalf)); err != nil {
			return err
		}
		if err := ed(ctx.Sub(res, halfPi, res)); err != nil {
			return err
		}
	}
	if x.Sign() < 0 {
		if err := ed(ctx.Neg(res, res)); err != nil {
			return err
		}
	}
	d.Set(res)
	return nil
}

// asinDecimal computes asin(x) for |x| <= 1.
func asinDecimal(ctx *apd.Context, d, x *apd.Decimal, intr interrupt.Interrupt) error {
	abs := new(apd.Decimal).Abs(x)
	if abs.Cmp(decOne) == 0 {
		if err := ed(ctx.Mul(d, decPi, decHalf)); err != nil {
			return err
		}
		if x.Sign() < 0 {
			return ed(ctx.Neg(d, d))
		}
		return nil
	}
	// asin(x) = atan(x / sqrt(1 - x²))
	s := new(apd.Decimal)
	if err := ed(ctx.Mul(s, x, x)); err != nil {
		return err
	}
	if err := ed(ctx.Sub(s, decOne, s)); err != nil {
		return err
	}
	if err := ed(ctx.Sqrt(s, s)); err != nil {
		return err
	}
	if err := ed(ctx.Quo(s, x, s)); err != nil {
		return err
	}
	return atanDecimal(ctx, d, s, intr)
}

func (b BigRat) inUnitInterval(closed bool) bool {
	c := b.Abs().Cmp(FromInt64(1))
	if closed {
		return c <= 0
	}
	return c < 0
}

// Asin returns asin(b) for b in [-1, 1].
func (b BigRat) Asin(intr interrupt.Interrupt) (BigRat, error) {
	if !b.inUnitInterval(true) {
		return BigRat{}, NewDomainError("asin", "value must be between -1 and 1")
	}
	if b.IsZero() {
		return BigRat{}, interrupt.Check(intr)
	}
	if b.isTiny() {
		return exactly(b, intr)
	}
	return unary("asin", b, intr, func(ctx *apd.Context, d, x *apd.Decimal) error {
		return asinDecimal(ctx, d, x, intr)
	})
}

// Acos returns acos(b) for b in [-1, 1].
func (b BigRat) Acos(intr interrupt.Interrupt) (BigRat, error) {
	if !b.inUnitInterval(true) {
		return BigRat{}, NewDomainError("acos", "value must be between -1 and 1")
	}
	if b.Equal(FromInt64(1)) {
		return BigRat{}, interrupt.Check(intr)
	}
	if b.isTiny() {
		// acos(x) = π/2 - x - x³/6 - ...
		halfPi := new(big.Rat).Mul(ratPi, big.NewRat(1, 2))
		return exactly(BigRat{r: halfPi.Sub(halfPi, b.rat())}, intr)
	}
	return unary("acos", b, intr, func(ctx *apd.Context, d, x *apd.Decimal) error {
		// acos(x) = π/2 - asin(x)
		if err := asinDecimal(ctx, d, x, intr); err != nil {
			return err
		}
		halfPi := new(apd.Decimal)
		if err := ed(ctx.Mul(halfPi, decPi, decHalf)); err != nil {
			return err
		}
		return ed(ctx.Sub(d, halfPi, d))
	})
}

// Atan returns atan(b). It is defined for every rational and fails only if
// intr fires.
func (b BigRat) Atan(intr interrupt.Interrupt) (BigRat, error) {
	if b.IsZero() {
		return BigRat{}, interrupt.Check(intr)
	}
	if b.isTiny() {
		return exactly(b, intr)
	}
	if b.order() > workingPrecision+2 {
		// atan(x) = ±π/2 - 1/x + ...
		halfPi := new(big.Rat).Mul(ratPi, big.NewRat(int64(b.Sign()), 2))
		return exactly(BigRat{r: halfPi}, intr)
	}
	return unary("atan", b, intr, func(ctx *apd.Context, d, x *apd.Decimal) error {
		return atanDecimal(ctx, d, x, intr)
	})
}

// expParts sets ep = e^x and em = e^-x.
func expParts(ctx *apd.Context, ep, em, x *apd.Decimal) error {
	if err := ed(ctx.Exp(ep, x)); err != nil {
		return err
	}
	return ed(ctx.Quo(em, decOne, ep))
}

// Exp returns e^b. Only e^0 is exact, and it is reported as exact.
func (b BigRat) Exp(intr interrupt.Interrupt) (BigRat, bool, error) {
	if b.IsZero() {
		if err := interrupt.Check(intr); err != nil {
			return BigRat{}, false, err
		}
		return FromInt64(1), true, nil
	}
	if b.isTiny() {
		// e^x = 1 + x + x²/2 + ...
		res, err := FromInt64(1).Add(b, intr)
		return res, false, err
	}
	res, err := unary("exp", b, intr, func(ctx *apd.Context, d, x *apd.Decimal) error {
		return ed(ctx.Exp(d, x))
	})
	return res, false, err
}

// Sinh returns sinh(b).
func (b BigRat) Sinh(intr interrupt.Interrupt) (BigRat, error) {
	if b.IsZero() {
		return BigRat{}, interrupt.Check(intr)
	}
	if b.isTiny() {
		return exactly(b, intr)
	}
	return unary("sinh", b, intr, func(ctx *apd.Context, d, x *apd.Decimal) error {
		ep, em := new(apd.Decimal), new(apd.Decimal)
		if err := expParts(ctx, ep, em, x); err != nil {
			return err
		}
		if err := ed(ctx.Sub(d, ep, em)); err != nil {
			return err
		}
		return ed(ctx.Mul(d, d, decHalf))
	})
}

// Cosh returns cosh(b).
func (b BigRat) Cosh(intr interrupt.Interrupt) (BigRat, error) {
	if b.IsZero() || b.isTiny() {
		// cosh(x) = 1 + x²/2 + ...
		return exactly(FromInt64(1), intr)
	}
	return unary("cosh", b, intr, func(ctx *apd.Context, d, x *apd.Decimal) error {
		ep, em := new(apd.Decimal), new(apd.Decimal)
		if err := expParts(ctx, ep, em, x); err != nil {
			return err
		}
		if err := ed(ctx.Add(d, ep, em)); err != nil {
			return err
		}
		return ed(ctx.Mul(d, d, decHalf))
	})
}

// Tanh returns tanh(b).
func (b BigRat) Tanh(intr interrupt.Interrupt) (BigRat, error) {
	if b.IsZero() {
		return BigRat{}, interrupt.Check(intr)
	}
	if b.isTiny() {
		return exactly(b, intr)
	}
	if b.Abs().Cmp(FromInt64(100)) > 0 {
		// 1 - tanh(100) is below 1e-86.
		return exactly(FromInt64(int64(b.Sign())), intr)
	}
	return unary("tanh", b, intr, func(ctx *apd.Context, d, x *apd.Decimal) error {
		// tanh(x) = (e^2x - 1) / (e^2x + 1), on |x| with the sign restored.
		ax := new(apd.Decimal).Abs(x)
		e2 := new(apd.Decimal)
		if err := ed(ctx.Mul(e2, ax, decTwo)); err != nil {
			return err
		}
		if err := ed(ctx.Exp(e2, e2)); err != nil {
			return err
		}
		num, den := new(apd.Decimal), new(apd.Decimal)
		if err := ed(ctx.Sub(num, e2, decOne)); err != nil {
			return err
		}
		if err := ed(ctx.Add(den, e2, decOne)); err != nil {
			return err
		}
		if err := ed(ctx.Quo(d, num, den)); err != nil {
			return err
		}
		if x.Sign() < 0 {
			return ed(ctx.Neg(d, d))
		}
		return nil
	})
}

// Asinh returns asinh(b).
func (b BigRat) Asinh(intr interrupt.Interrupt) (BigRat, error) {
	if b.IsZero() {
		return BigRat{}, interrupt.Check(intr)
	}
	if b.Sign() < 0 {
		res, err := b.Neg().Asinh(intr)
		return res.Neg(), err
	}
	if b.isTiny() {
		return exactly(b, intr)
	}
	if b.order() > workingPrecision/2+2 {
		// asinh(x) = ln(2x) + 1/(4x²) - ...
		return b.lnTwice(intr)
	}
	return unary("asinh", b, intr, func(ctx *apd.Context, d, x *apd.Decimal) error {
		// ln(x + sqrt(x² + 1))
		s := new(apd.Decimal)
		if err := ed(ctx.Mul(s, x, x)); err != nil {
			return err
		}
		if err := ed(ctx.Add(s, s, decOne)); err != nil {
			return err
		}
		if err := ed(ctx.Sqrt(s, s)); err != nil {
			return err
		}
		if err := ed(ctx.Add(s, s, x)); err != nil {
			return err
		}
		return ed(ctx.Ln(d, s))
	})
}

// Acosh returns acosh(b) for b >= 1.
func (b BigRat) Acosh(intr interrupt.Interrupt) (BigRat, error) {
	if b.Cmp(FromInt64(1)) < 0 {
		return BigRat{}, NewDomainError("acosh", "value must be greater than or equal to 1")
	}
	if b.Equal(FromInt64(1)) {
		return BigRat{}, interrupt.Check(intr)
	}
	if b.order() > workingPrecision/2+2 {
		// acosh(x) = ln(2x) - 1/(4x²) - ...
		return b.lnTwice(intr)
	}
	return unary("acosh", b, intr, func(ctx *apd.Context, d, x *apd.Decimal) error {
		// ln(x + sqrt(x² - 1))
		s := new(apd.Decimal)
		if err := ed(ctx.Mul(s, x, x)); err != nil {
			return err
		}
		if err := ed(ctx.Sub(s, s, decOne)); err != nil {
			return err
		}
		if err := ed(ctx.Sqrt(s, s)); err != nil {
			return err
		}
		if err := ed(ctx.Add(s, s, x)); err != nil {
			return err
		}
		return ed(ctx.Ln(d, s))
	})
}

// Atanh returns atanh(b) for b in (-1, 1).
func (b BigRat) Atanh(intr interrupt.Interrupt) (BigRat, error) {
	if !b.inUnitInterval(false) {
		return BigRat{}, NewDomainError("atanh", "value must be between -1 and 1 (exclusive)")
	}
	if b.IsZero() {
		return BigRat{}, interrupt.Check(intr)
	}
	if b.isTiny() {
		return exactly(b, intr)
	}
	return unary("atanh", b, intr, func(ctx *apd.Context, d, x *apd.Decimal) error {
		// ln((1 + x) / (1 - x)) / 2
		num, den := new(apd.Decimal), new(apd.Decimal)
		if err := ed(ctx.Add(num, decOne, x)); err != nil {
			return err
		}
		if err := ed(ctx.Sub(den, decOne, x)); err != nil {
			return err
		}
		if err := ed(ctx.Quo(d, num, den)); err != nil {
			return err
		}
		if err := ed(ctx.Ln(d, d)); err != nil {
			return err
		}
		return ed(ctx.Mul(d, d, decHalf))
	})
}

func (b BigRat) checkPositive(op string) error {
	if b.Sign() <= 0 {
		return NewDomainError(op, "value must be greater than 0")
	}
	return nil
}

// Ln returns the natural logarithm of b > 0.
func (b BigRat) Ln(intr interrupt.Interrupt) (BigRat, error) {
	if err := b.checkPositive("ln"); err != nil {
		return BigRat{}, err
	}
	if b.Equal(FromInt64(1)) {
		return BigRat{}, interrupt.Check(intr)
	}
	return logScaled("ln", b, intr, lnDecimal, func(ctx *apd.Context, u *apd.Decimal) error {
		return ed(ctx.Ln(u, decTen))
	})
}

func lnDecimal(ctx *apd.Context, d, x *apd.Decimal) error {
	return ed(ctx.Ln(d, x))
}

// lnTwice returns ln(2b) for b > 0.
func (b BigRat) lnTwice(intr interrupt.Interrupt) (BigRat, error) {
	twice, err := b.Add(b, intr)
	if err != nil {
		return BigRat{}, err
	}
	return twice.Ln(intr)
}

// decimalScale splits b > 0 into m·10^e with m near 1, so that arguments far
// outside the decimal exponent range still convert. Arguments of ordinary
// size are returned unchanged with e = 0.
func (b BigRat) decimalScale() (BigRat, int64) {
	e := b.order()
	if e > -scaleOrder && e < scaleOrder {
		return b, 0
	}
	num, den := b.Num(), b.Denom()
	if e > 0 {
		den.Mul(den, pow10(e))
	} else {
		num.Mul(num, pow10(-e))
	}
	return BigRat{r: new(big.Rat).SetFrac(num, den)}, e
}

// logScaled evaluates a logarithm of b = m·10^e as f(m) + e·unit, where unit
// sets the logarithm of ten in the same base.
func logScaled(op string, b BigRat, intr interrupt.Interrupt, f func(ctx *apd.Context, d, x *apd.Decimal) error, unit func(ctx *apd.Context, u *apd.Decimal) error) (BigRat, error) {
	m, e := b.decimalScale()
	return unary(op, m, intr, func(ctx *apd.Context, d, x *apd.Decimal) error {
		if err := f(ctx, d, x); err != nil {
			return err
		}
		if e == 0 {
			return nil
		}
		u := new(apd.Decimal)
		if err := unit(ctx, u); err != nil {
			return err
		}
		if err := ed(ctx.Mul(u, u, apd.New(e, 0))); err != nil {
			return err
		}
		return ed(ctx.Add(d, d, u))
	})
}

// Log2 returns the base-2 logarithm of b > 0. Integer powers of two are
// returned exactly.
func (b BigRat) Log2(intr interrupt.Interrupt) (BigRat, error) {
	if err := b.checkPositive("log2"); err != nil {
		return BigRat{}, err
	}
	if e, ok := b.exactLog(2); ok {
		return exactly(e, intr)
	}
	// log2(x) = ln(x) / ln(2), and log2(10) for the scaled exponent.
	perLn2 := func(ctx *apd.Context, d, x *apd.Decimal) error {
		ln2 := new(apd.Decimal)
		if err := ed(ctx.Ln(ln2, decTwo)); err != nil {
			return err
		}
		if err := ed(ctx.Ln(d, x)); err != nil {
			return err
		}
		return ed(ctx.Quo(d, d, ln2))
	}
	return logScaled("log2", b, intr, perLn2, func(ctx *apd.Context, u *apd.Decimal) error {
		return perLn2(ctx, u, decTen)
	})
}

// Log10 returns the base-10 logarithm of b > 0. Integer powers of ten are
// returned exactly.
func (b BigRat) Log10(intr interrupt.Interrupt) (BigRat, error) {
	if err := b.checkPositive("log10"); err != nil {
		return BigRat{}, err
	}
	if e, ok := b.exactLog(10); ok {
		return exactly(e, intr)
	}
	return logScaled("log10", b, intr, func(ctx *apd.Context, d, x *apd.Decimal) error {
		return ed(ctx.Log10(d, x))
	}, func(_ *apd.Context, u *apd.Decimal) error {
		u.Set(decOne)
		return nil
	})
}

// exactLog returns e when b == base^e for an integer e.
func (b BigRat) exactLog(base int64) (BigRat, bool) {
	num, den := b.rat().Num(), b.rat().Denom()
	one := big.NewInt(1)
	x, sign := num, int64(1)
	if num.Cmp(one) == 0 {
		x, sign = den, -1
	} else if den.Cmp(one) != 0 {
		return BigRat{}, false
	}
	// Only exponents next to the bit length estimate can match.
	guess := int64(float64(x.BitLen()-1) / math.Log2(float64(base)))
	bb := big.NewInt(base)
	for e := max(guess-1, 0); e <= guess+1; e++ {
		if new(big.Int).Exp(bb, big.NewInt(e), nil).Cmp(x) == 0 {
			return FromInt64(sign * e), true
		}
	}
	return BigRat{}, false
}
