package num

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/realcalc/internal/bigrat"
	"github.com/roach88/realcalc/internal/format"
	"github.com/roach88/realcalc/internal/interrupt"
)

var never = interrupt.Never{}

// always fires on every poll.
var always = interrupt.Func(func() bool { return true })

func rat(t *testing.T, s string) bigrat.BigRat {
	t.Helper()
	r, err := bigrat.Parse(s)
	require.NoError(t, err)
	return r
}

func simple(t *testing.T, s string) Real {
	t.Helper()
	return FromBigRat(rat(t, s))
}

func piTimes(t *testing.T, s string) Real {
	t.Helper()
	return PiTimes(rat(t, s))
}

func toF64(t *testing.T, x Real) float64 {
	t.Helper()
	f, err := x.IntoF64(never)
	require.NoError(t, err)
	return f
}

func TestConstructors(t *testing.T) {
	assert.Equal(t, Simple, FromUint64(7).Kind())
	assert.Equal(t, "7", FromUint64(7).String())
	assert.Equal(t, "-3", FromInt64(-3).String())
	assert.Equal(t, PiMultiple, Pi().Kind())
	assert.Equal(t, "1pi", Pi().String())
	assert.Equal(t, "3/4pi", piTimes(t, "3/4").String())
	assert.True(t, Real{}.Equal(FromInt64(0)))
}

func TestPiArithmeticIsSymbolic(t *testing.T) {
	pairs := [][2]string{
		{"1", "1"},
		{"1/2", "1/3"},
		{"-7/4", "2"},
		{"5", "-5"},
		{"123456789/1000", "-1/1000000"},
	}

	for _, p := range pairs {
		m, n := rat(t, p[0]), rat(t, p[1])
		t.Run(p[0]+"_"+p[1], func(t *testing.T) {
			sum, exact, err := PiTimes(m).Add(PiTimes(n), never)
			require.NoError(t, err)
			assert.True(t, exact)
			assert.Equal(t, PiMultiple, sum.Kind())
			want, _ := m.Add(n, never)
			assert.True(t, want.Equal(sum.Factor()), "got %s", sum)

			diff, exact, err := PiTimes(m).Sub(PiTimes(n), never)
			require.NoError(t, err)
			assert.True(t, exact)
			assert.Equal(t, PiMultiple, diff.Kind())
			want, _ = m.Sub(n, never)
			assert.True(t, want.Equal(diff.Factor()), "got %s", diff)
		})
	}
}

func TestAdd_MixedFormsCollapse(t *testing.T) {
	sum, exact, err := FromInt64(1).Add(Pi(), never)
	require.NoError(t, err)
	assert.False(t, exact)
	assert.Equal(t, Simple, sum.Kind())
	assert.InDelta(t, 4.141592653589793, toF64(t, sum), 1e-12)

	diff, exact, err := Pi().Sub(FromInt64(3), never)
	require.NoError(t, err)
	assert.False(t, exact)
	assert.Equal(t, Simple, diff.Kind())
	assert.True(t, rat(t, "141592653589793238/1000000000000000000").Equal(diff.Factor()))
}

func TestAdd_ZeroFastPathDoesNotApproximate(t *testing.T) {
	values := []Real{
		FromInt64(5),
		simple(t, "-2/3"),
		piTimes(t, "3/4"),
		Pi(),
	}
	zeros := []Real{FromInt64(0), PiTimes(bigrat.FromInt64(0))}

	for _, x := range values {
		for _, zero := range zeros {
			t.Run(x.String()+"+"+zero.String(), func(t *testing.T) {
				got, exact, err := x.Add(zero, always)
				require.NoError(t, err)
				assert.True(t, exact)
				assert.Equal(t, x, got)

				got, exact, err = zero.Add(x, always)
				require.NoError(t, err)
				assert.True(t, exact)
				assert.Equal(t, x, got)

				got, exact, err = x.Sub(zero, always)
				require.NoError(t, err)
				assert.True(t, exact)
				assert.Equal(t, x, got)
			})
		}
	}
}

func TestSub_FromZeroNegates(t *testing.T) {
	got, exact, err := FromInt64(0).Sub(piTimes(t, "2"), always)
	require.NoError(t, err)
	assert.True(t, exact)
	assert.Equal(t, PiMultiple, got.Kind())
	assert.Equal(t, "-2pi", got.String())
}

func TestNeg(t *testing.T) {
	assert.Equal(t, "-1/2pi", piTimes(t, "1/2").Neg().String())
	assert.Equal(t, "3/4", simple(t, "-3/4").Neg().String())
	assert.Equal(t, PiMultiple, Pi().Neg().Kind())
}

func TestMul(t *testing.T) {
	tests := []struct {
		name  string
		x, y  Real
		want  string
		kind  Kind
		exact bool
	}{
		{"simple*simple", simple(t, "2/3"), simple(t, "9/4"), "3/2", Simple, true},
		{"pi*simple", piTimes(t, "2"), FromInt64(3), "6pi", PiMultiple, true},
		{"simple*pi", FromInt64(3), piTimes(t, "1/6"), "1/2pi", PiMultiple, true},
		{"pi*pi", Pi(), Pi(), "1570796326794896619/500000000000000000pi", PiMultiple, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, exact, err := tt.x.Mul(tt.y, never)
			require.NoError(t, err)
			assert.Equal(t, tt.exact, exact)
			assert.Equal(t, tt.kind, got.Kind())
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestDiv_PiCancels(t *testing.T) {
	pairs := [][2]string{{"1", "1"}, {"3", "4"}, {"-1/2", "7/3"}, {"10", "-5"}}

	for _, p := range pairs {
		a, b := rat(t, p[0]), rat(t, p[1])
		got, exact, err := PiTimes(a).Div(PiTimes(b), never)
		require.NoError(t, err)
		assert.True(t, exact)
		assert.Equal(t, Simple, got.Kind())
		want, _ := a.Div(b, never)
		assert.True(t, want.Equal(got.Factor()))
	}
}

func TestDiv_Forms(t *testing.T) {
	got, exact, err := piTimes(t, "3").Div(FromInt64(6), never)
	require.NoError(t, err)
	assert.True(t, exact)
	assert.Equal(t, "1/2pi", got.String())

	got, exact, err = FromInt64(1).Div(Pi(), never)
	require.NoError(t, err)
	assert.False(t, exact)
	assert.Equal(t, Simple, got.Kind())
	assert.InDelta(t, 0.3183098861837907, toF64(t, got), 1e-12)
}

func TestDiv_ByZero(t *testing.T) {
	numerators := []Real{FromInt64(3), Pi(), FromInt64(0), PiTimes(bigrat.FromInt64(0))}
	divisors := []Real{FromInt64(0), PiTimes(bigrat.FromInt64(0))}

	for _, x := range numerators {
		for _, y := range divisors {
			t.Run(x.String()+"/"+y.String(), func(t *testing.T) {
				_, _, err := x.Div(y, never)
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrDivideByZero)
				assert.Equal(t, KindDivideByZero, Classify(err))
			})
		}
	}
}

func TestCmp(t *testing.T) {
	tests := []struct {
		x, y Real
		want int
	}{
		{FromInt64(1), FromInt64(2), -1},
		{piTimes(t, "1/2"), piTimes(t, "1/3"), 1},
		{Pi(), FromInt64(3), 1},
		{Pi(), FromInt64(4), -1},
		{FromInt64(0), PiTimes(bigrat.FromInt64(0)), 0},
		{piTimes(t, "-1"), simple(t, "-3"), -1},
	}

	for _, tt := range tests {
		t.Run(tt.x.String()+"_"+tt.y.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.x.Cmp(tt.y))
			assert.Equal(t, -tt.want, tt.y.Cmp(tt.x))

			a, err := tt.x.Approximate(never)
			require.NoError(t, err)
			b, err := tt.y.Approximate(never)
			require.NoError(t, err)
			assert.Equal(t, a.Cmp(b), tt.x.Cmp(tt.y))
		})
	}
}

func TestCmp_SameFormNeedsNoApproximation(t *testing.T) {
	x, y := piTimes(t, "1/2"), piTimes(t, "3/2")

	// Approximating a π multiple polls, so always makes it fail...
	_, err := x.Approximate(always)
	require.ErrorIs(t, err, ErrInterrupted)

	// ...but ordering never approximates values of the same form.
	assert.Equal(t, -1, x.Cmp(y))
	assert.False(t, x.Equal(y))
	assert.True(t, x.Equal(piTimes(t, "2/4")))
}

func TestEqual_ZeroAcrossForms(t *testing.T) {
	assert.True(t, PiTimes(bigrat.FromInt64(0)).Equal(FromInt64(0)))
	assert.True(t, FromInt64(0).Equal(PiTimes(bigrat.FromInt64(0))))
	assert.False(t, Pi().Equal(FromInt64(3)))
}

func TestApproximate(t *testing.T) {
	a, err := Pi().Approximate(never)
	require.NoError(t, err)
	assert.Equal(t, "1570796326794896619/500000000000000000", a.String())

	a, err = simple(t, "5/7").Approximate(always)
	require.NoError(t, err, "rationals are returned unchanged without polling")
	assert.Equal(t, "5/7", a.String())
}

func TestCancellationPropagates(t *testing.T) {
	t.Run("ln", func(t *testing.T) {
		_, err := FromInt64(2).Ln(always)
		assert.ErrorIs(t, err, ErrInterrupted)
	})
	t.Run("ln of pi", func(t *testing.T) {
		_, err := Pi().Ln(always)
		assert.ErrorIs(t, err, ErrInterrupted)
	})
	t.Run("factorial", func(t *testing.T) {
		_, err := FromInt64(5).Factorial(always)
		assert.ErrorIs(t, err, ErrInterrupted)
	})
	t.Run("approximate pi", func(t *testing.T) {
		_, err := piTimes(t, "3/2").Approximate(always)
		assert.ErrorIs(t, err, ErrInterrupted)
		assert.Equal(t, KindInterrupted, Classify(err))
	})
	t.Run("factorial after quota", func(t *testing.T) {
		_, err := FromInt64(1000).Factorial(interrupt.NewQuota(10))
		assert.ErrorIs(t, err, ErrInterrupted)
	})
}

func TestTryAsUint(t *testing.T) {
	n, err := PiTimes(bigrat.FromInt64(0)).TryAsUint(never)
	require.NoError(t, err)
	assert.Equal(t, uint(0), n)

	for _, s := range []string{"1", "-1", "1/2", "2"} {
		_, err := piTimes(t, s).TryAsUint(never)
		require.Error(t, err, s)
		assert.True(t, bigrat.IsDomainError(err))
		assert.Contains(t, err.Error(), "cannot be converted to an integer")
	}

	n, err = FromInt64(42).TryAsUint(never)
	require.NoError(t, err)
	assert.Equal(t, uint(42), n)

	_, err = simple(t, "7/2").TryAsUint(never)
	assert.Equal(t, KindDomain, Classify(err))
}

func TestPow(t *testing.T) {
	got, exact, err := FromInt64(2).Pow(FromInt64(10), never)
	require.NoError(t, err)
	assert.True(t, exact)
	assert.Equal(t, "1024", got.String())

	got, exact, err = FromInt64(4).Pow(simple(t, "1/2"), never)
	require.NoError(t, err)
	assert.True(t, exact)
	assert.Equal(t, "2", got.String())

	got, exact, err = FromInt64(2).Pow(simple(t, "1/2"), never)
	require.NoError(t, err)
	assert.False(t, exact)
	assert.InDelta(t, 1.4142135623730951, toF64(t, got), 1e-12)

	got, exact, err = Pi().Pow(FromInt64(2), never)
	require.NoError(t, err)
	assert.False(t, exact)
	assert.Equal(t, Simple, got.Kind())
	assert.InDelta(t, 9.869604401089358, toF64(t, got), 1e-12)
}

func TestRootN(t *testing.T) {
	got, exact, err := FromInt64(27).RootN(FromInt64(3), never)
	require.NoError(t, err)
	assert.True(t, exact)
	assert.Equal(t, "3", got.String())

	got, exact, err = Pi().RootN(FromInt64(2), never)
	require.NoError(t, err)
	assert.False(t, exact)
	assert.InDelta(t, 1.7724538509055159, toF64(t, got), 1e-12)

	got, exact, err = FromInt64(8).RootN(Pi(), never)
	require.Error(t, err, "root degree approximated from pi is not an integer")
	assert.True(t, bigrat.IsDomainError(err))
	assert.False(t, exact)
	assert.Equal(t, Real{}, got)
}

func TestFromF64RoundTrip(t *testing.T) {
	x, err := FromF64(0.5, never)
	require.NoError(t, err)
	assert.Equal(t, "1/2", x.String())
	assert.Equal(t, 0.5, toF64(t, x))

	_, err = FromF64(0, never)
	require.NoError(t, err)
}

func TestFormat(t *testing.T) {
	hex, err := format.NewBase(16)
	require.NoError(t, err)
	bin, err := format.NewBase(2)
	require.NoError(t, err)

	tests := []struct {
		name   string
		x      Real
		base   format.Base
		style  format.Style
		imag   bool
		parens bool
		want   string
		exact  bool
	}{
		{"pi auto", Pi(), format.Decimal, format.StyleAuto, false, false, "3.1415926535", false},
		{"zero pi auto", PiTimes(bigrat.FromInt64(0)), format.Decimal, format.StyleAuto, false, false, "0", true},
		{"half auto", simple(t, "1/2"), format.Decimal, format.StyleAuto, false, false, "0.5", true},
		{"third auto", simple(t, "1/3"), format.Decimal, format.StyleAuto, false, false, "1/3", true},
		{"third parens", simple(t, "1/3"), format.Decimal, format.StyleAuto, false, true, "(1/3)", true},
		{"third imag", simple(t, "1/3"), format.Decimal, format.StyleAuto, true, true, "(1/3)i", true},
		{"binary", FromInt64(5), bin, format.StyleAuto, false, false, "101", true},
		{"hex", FromInt64(255), hex, format.StyleAuto, false, false, "ff", true},
		{"pi fraction", Pi(), format.Decimal, format.StyleFraction, false, false, "1570796326794896619/500000000000000000", true},
		{"pi dp2", Pi(), format.Decimal, format.Places(2), false, false, "3.14", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, exact, err := tt.x.Format(tt.base, tt.style, tt.imag, tt.parens, never)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.exact, exact)
		})
	}
}

func TestFormat_Interrupted(t *testing.T) {
	_, _, err := Pi().Format(format.Decimal, format.StyleAuto, false, false, always)
	assert.ErrorIs(t, err, ErrInterrupted)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, KindNone, Classify(nil))
	assert.Equal(t, KindDomain, Classify(bigrat.NewDomainError("ln", "bad")))
	assert.Equal(t, KindOther, Classify(assert.AnError))

	_, err := FromInt64(1000000).Sinh(never)
	assert.Equal(t, KindOutOfRange, Classify(err), "err: %v", err)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = simple(t, "1e200000").Ln(never)
	require.NoError(t, err, "valid arguments outside the decimal range are scaled")
}
