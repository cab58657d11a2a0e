package bigrat

import (
	"math"
	"math/big"

	"github.com/roach88/realcalc/internal/interrupt"
)

// maxExactPowBits bounds the estimated size of an exact integer power.
// Larger powers are approximated instead of materialized.
const maxExactPowBits = 1 << 22

// BigRat is an immutable canonical rational. The zero value is 0.
type BigRat struct {
	r *big.Rat
}

var zeroRat = new(big.Rat)

// FromInt64 returns n as a BigRat.
func FromInt64(n int64) BigRat {
	return BigRat{r: new(big.Rat).SetInt64(n)}
}

// FromUint64 returns n as a BigRat.
func FromUint64(n uint64) BigRat {
	return BigRat{r: new(big.Rat).SetUint64(n)}
}

// FromBigInt returns n as a BigRat. n is copied.
func FromBigInt(n *big.Int) BigRat {
	return BigRat{r: new(big.Rat).SetInt(n)}
}

// FromRat returns a copy of r as a BigRat.
func FromRat(r *big.Rat) BigRat {
	return BigRat{r: new(big.Rat).Set(r)}
}

// New returns num/den in lowest terms. Panics if den is zero.
func New(num, den int64) BigRat {
	if den == 0 {
		panic("bigrat: zero denominator")
	}
	return BigRat{r: big.NewRat(num, den)}
}

// Parse parses a rational literal in any form accepted by big.Rat.SetString,
// e.g. "3", "-3/4", "1.25" or "1e-3".
func Parse(s string) (BigRat, error) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return BigRat{}, NewDomainError("parse", "invalid number %q", s)
	}
	return BigRat{r: r}, nil
}

func (b BigRat) rat() *big.Rat {
	if b.r == nil {
		return zeroRat
	}
	return b.r
}

// Rat returns a copy of the value as a *big.Rat.
func (b BigRat) Rat() *big.Rat {
	return new(big.Rat).Set(b.rat())
}

// Num returns a copy of the numerator. Its sign is the sign of b.
func (b BigRat) Num() *big.Int {
	return new(big.Int).Set(b.rat().Num())
}

// Denom returns a copy of the (positive) denominator.
func (b BigRat) Denom() *big.Int {
	return new(big.Int).Set(b.rat().Denom())
}

// String renders b as "n" or "n/d".
func (b BigRat) String() string {
	return b.rat().RatString()
}

// Sign returns -1, 0 or +1.
func (b BigRat) Sign() int {
	return b.rat().Sign()
}

// IsZero reports whether b == 0.
func (b BigRat) IsZero() bool {
	return b.Sign() == 0
}

// IsInt reports whether b is an integer.
func (b BigRat) IsInt() bool {
	return b.rat().IsInt()
}

// Cmp compares b and o and returns -1, 0 or +1.
func (b BigRat) Cmp(o BigRat) int {
	return b.rat().Cmp(o.rat())
}

// Equal reports whether b == o.
func (b BigRat) Equal(o BigRat) bool {
	return b.Cmp(o) == 0
}

// Neg returns -b.
func (b BigRat) Neg() BigRat {
	return BigRat{r: new(big.Rat).Neg(b.rat())}
}

// Abs returns |b|.
func (b BigRat) Abs() BigRat {
	return BigRat{r: new(big.Rat).Abs(b.rat())}
}

// Add returns b + o. It fails only if intr fires.
func (b BigRat) Add(o BigRat, intr interrupt.Interrupt) (BigRat, error) {
	if err := interrupt.Check(intr); err != nil {
		return BigRat{}, err
	}
	return BigRat{r: new(big.Rat).Add(b.rat(), o.rat())}, nil
}

// Sub returns b - o. It fails only if intr fires.
func (b BigRat) Sub(o BigRat, intr interrupt.Interrupt) (BigRat, error) {
	if err := interrupt.Check(intr); err != nil {
		return BigRat{}, err
	}
	return BigRat{r: new(big.Rat).Sub(b.rat(), o.rat())}, nil
}

// Mul returns b * o. It fails only if intr fires.
func (b BigRat) Mul(o BigRat, intr interrupt.Interrupt) (BigRat, error) {
	if err := interrupt.Check(intr); err != nil {
		return BigRat{}, err
	}
	return BigRat{r: new(big.Rat).Mul(b.rat(), o.rat())}, nil
}

// Div returns b / o, or ErrDivideByZero when o is zero.
func (b BigRat) Div(o BigRat, intr interrupt.Interrupt) (BigRat, error) {
	if o.IsZero() {
		return BigRat{}, ErrDivideByZero
	}
	if err := interrupt.Check(intr); err != nil {
		return BigRat{}, err
	}
	return BigRat{r: new(big.Rat).Quo(b.rat(), o.rat())}, nil
}

// TryAsUint converts b to a uint. It fails with a DomainError unless b is a
// nonnegative integer that fits.
func (b BigRat) TryAsUint(intr interrupt.Interrupt) (uint, error) {
	if err := interrupt.Check(intr); err != nil {
		return 0, err
	}
	r := b.rat()
	if !r.IsInt() {
		return 0, NewDomainError("integer", "%s is not an integer", b)
	}
	n := r.Num()
	if n.Sign() < 0 {
		return 0, NewDomainError("integer", "negative numbers are not supported: %s", b)
	}
	if !n.IsUint64() || n.Uint64() > uint64(^uint(0)) {
		return 0, NewDomainError("integer", "number is too large: %s", b)
	}
	return uint(n.Uint64()), nil
}

// IntoF64 returns the nearest float64. Overflow yields ±Inf.
func (b BigRat) IntoF64(intr interrupt.Interrupt) (float64, error) {
	if err := interrupt.Check(intr); err != nil {
		return 0, err
	}
	f, _ := b.rat().Float64()
	return f, nil
}

// FromF64 returns the exact rational value of f. NaN and infinities are
// rejected with a DomainError.
func FromF64(f float64, intr interrupt.Interrupt) (BigRat, error) {
	if err := interrupt.Check(intr); err != nil {
		return BigRat{}, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return BigRat{}, NewDomainError("from_f64", "cannot represent %v as a rational", f)
	}
	return BigRat{r: new(big.Rat).SetFloat64(f)}, nil
}

// Factorial returns b! for a nonnegative integer b. The result is exact.
func (b BigRat) Factorial(intr interrupt.Interrupt) (BigRat, error) {
	if err := interrupt.Check(intr); err != nil {
		return BigRat{}, err
	}
	if !b.IsInt() || b.Sign() < 0 {
		return BigRat{}, NewDomainError("factorial", "factorial is only supported for nonnegative integers")
	}
	n, err := b.TryAsUint(intr)
	if err != nil {
		return BigRat{}, err
	}
	res := big.NewInt(1)
	k := new(big.Int)
	for i := uint(2); i <= n; i++ {
		if err := interrupt.Check(intr); err != nil {
			return BigRat{}, err
		}
		res.Mul(res, k.SetUint64(uint64(i)))
	}
	return FromBigInt(res), nil
}

// Pow returns b raised to exp and whether the result is exact.
//
// Integer exponents are exact unless the result would be unreasonably large.
// A rational exponent p/q is exact when b has an exact q-th root. Even roots of
// negative numbers are rejected.
func (b BigRat) Pow(exp BigRat, intr interrupt.Interrupt) (BigRat, bool, error) {
	if err := interrupt.Check(intr); err != nil {
		return BigRat{}, false, err
	}
	if b.IsZero() {
		switch exp.Sign() {
		case 0:
			return FromInt64(1), true, nil
		case -1:
			return BigRat{}, false, NewDomainError("pow", "cannot raise zero to a negative power")
		}
		return BigRat{}, true, nil
	}
	if exp.IsInt() {
		return b.powInt(exp.Num(), intr)
	}

	p := exp.Num()
	q := FromBigInt(exp.Denom())
	root, exact, err := b.RootN(q, intr)
	if err != nil {
		return BigRat{}, false, err
	}
	if exact {
		return root.powInt(p, intr)
	}

	// |b|^(p/q), then restore the sign of an odd root raised to an odd power.
	res, err := decimalPow(b.Abs(), exp, intr)
	if err != nil {
		return BigRat{}, false, err
	}
	if b.Sign() < 0 && p.Bit(0) == 1 {
		res = res.Neg()
	}
	return res, false, nil
}

func (b BigRat) powInt(e *big.Int, intr interrupt.Interrupt) (BigRat, bool, error) {
	num := b.Num()
	den := b.Denom()
	neg := e.Sign() < 0
	e = new(big.Int).Abs(e)

	if one := big.NewInt(1); new(big.Int).Abs(num).Cmp(one) == 0 && den.Cmp(one) == 0 {
		// ±1 to any power
		if num.Sign() < 0 && e.Bit(0) == 1 {
			return FromInt64(-1), true, nil
		}
		return FromInt64(1), true, nil
	}

	bits := num.BitLen()
	if den.BitLen() > bits {
		bits = den.BitLen()
	}
	if !e.IsInt64() || e.Int64() > maxExactPowBits/int64(bits) {
		res, err := decimalPow(b.Abs(), FromBigInt(e), intr)
		if err != nil {
			return BigRat{}, false, err
		}
		if b.Sign() < 0 && e.Bit(0) == 1 {
			res = res.Neg()
		}
		if neg {
			res, err = FromInt64(1).Div(res, intr)
			if err != nil {
				return BigRat{}, false, err
			}
		}
		return res, false, nil
	}

	n, err := intPow(num, e, intr)
	if err != nil {
		return BigRat{}, false, err
	}
	d, err := intPow(den, e, intr)
	if err != nil {
		return BigRat{}, false, err
	}
	if neg {
		n, d = d, n
	}
	return BigRat{r: new(big.Rat).SetFrac(n, d)}, true, nil
}

// intPow computes x^e by repeated squaring, polling once per bit of e.
func intPow(x, e *big.Int, intr interrupt.Interrupt) (*big.Int, error) {
	res := big.NewInt(1)
	sq := new(big.Int).Set(x)
	for i := 0; i < e.BitLen(); i++ {
		if err := interrupt.Check(intr); err != nil {
			return nil, err
		}
		if e.Bit(i) == 1 {
			res.Mul(res, sq)
		}
		if i+1 < e.BitLen() {
			sq.Mul(sq, sq)
		}
	}
	return res, nil
}

// RootN returns the n-th root of b and whether it is exact. n must be a
// positive integer; even roots of negative numbers are rejected.
func (b BigRat) RootN(n BigRat, intr interrupt.Interrupt) (BigRat, bool, error) {
	if err := interrupt.Check(intr); err != nil {
		return BigRat{}, false, err
	}
	if !n.IsInt() || n.Sign() <= 0 {
		return BigRat{}, false, NewDomainError("root", "can only take roots of positive integer degree, got %s", n)
	}
	if b.IsZero() {
		return BigRat{}, true, nil
	}
	deg := n.Num()
	if b.Sign() < 0 {
		if deg.Bit(0) == 0 {
			return BigRat{}, false, NewDomainError("root", "cannot take an even root of a negative number")
		}
		res, exact, err := b.Neg().RootN(n, intr)
		if err != nil {
			return BigRat{}, false, err
		}
		return res.Neg(), exact, nil
	}
	if deg.Cmp(big.NewInt(1)) == 0 {
		return b, true, nil
	}

	if deg.IsUint64() {
		k := uint(deg.Uint64())
		num, numExact, err := intRoot(b.rat().Num(), k, intr)
		if err != nil {
			return BigRat{}, false, err
		}
		if numExact {
			den, denExact, err := intRoot(b.rat().Denom(), k, intr)
			if err != nil {
				return BigRat{}, false, err
			}
			if denExact {
				return BigRat{r: new(big.Rat).SetFrac(num, den)}, true, nil
			}
		}
	}

	inv, err := FromInt64(1).Div(n, intr)
	if err != nil {
		return BigRat{}, false, err
	}
	res, err := decimalPow(b, inv, intr)
	if err != nil {
		return BigRat{}, false, err
	}
	return res, false, nil
}

// intRoot returns floor(a^(1/k)) for a >= 1 and whether the root is exact.
func intRoot(a *big.Int, k uint, intr interrupt.Interrupt) (*big.Int, bool, error) {
	one := big.NewInt(1)
	if a.Cmp(one) == 0 {
		return one, true, nil
	}
	if k >= uint(a.BitLen()) {
		// 1 < a < 2^k, so the root lies strictly between 1 and 2.
		return one, false, nil
	}
	if k == 2 {
		r := new(big.Int).Sqrt(a)
		return r, new(big.Int).Mul(r, r).Cmp(a) == 0, nil
	}

	bk := new(big.Int).SetUint64(uint64(k))
	km1 := new(big.Int).SetUint64(uint64(k - 1))
	x := new(big.Int).Lsh(one, (uint(a.BitLen())+k-1)/k)
	for {
		if err := interrupt.Check(intr); err != nil {
			return nil, false, err
		}
		// y = ((k-1)x + a / x^(k-1)) / k
		p := new(big.Int).Exp(x, km1, nil)
		y := new(big.Int).Quo(a, p)
		y.Add(y, new(big.Int).Mul(km1, x))
		y.Quo(y, bk)
		if y.Cmp(x) >= 0 {
			break
		}
		x = y
	}
	return x, new(big.Int).Exp(x, bk, nil).Cmp(a) == 0, nil
}
