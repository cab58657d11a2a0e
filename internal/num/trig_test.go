package num

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/realcalc/internal/bigrat"
	"github.com/roach88/realcalc/internal/interrupt"
)

func TestSin_ExactTable(t *testing.T) {
	tests := []struct {
		name string
		x    Real
		want string
	}{
		{"0", FromInt64(0), "0"},
		{"0pi", PiTimes(bigrat.FromInt64(0)), "0"},
		{"pi/2", piTimes(t, "1/2"), "1"},
		{"pi", Pi(), "0"},
		{"3pi/2", piTimes(t, "3/2"), "-1"},
		{"2pi", piTimes(t, "2"), "0"},
		{"5pi/2", piTimes(t, "5/2"), "1"},
		{"-pi/2", piTimes(t, "-1/2"), "-1"},
		{"-3pi/2", piTimes(t, "-3/2"), "1"},
		{"-pi", piTimes(t, "-1"), "0"},
		{"huge multiple of pi/2", piTimes(t, "36893488147419103233/2"), "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, exact, err := tt.x.Sin(never)
			require.NoError(t, err)
			assert.True(t, exact)
			assert.Equal(t, Simple, got.Kind())
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestSin_Inexact(t *testing.T) {
	got, exact, err := piTimes(t, "1/4").Sin(never)
	require.NoError(t, err)
	assert.False(t, exact)
	assert.InDelta(t, 0.70710678, toF64(t, got), 1e-8)

	got, exact, err = piTimes(t, "-1/6").Sin(never)
	require.NoError(t, err)
	assert.False(t, exact)
	assert.InDelta(t, -0.5, toF64(t, got), 1e-15)

	got, exact, err = FromInt64(1).Sin(never)
	require.NoError(t, err)
	assert.False(t, exact)
	assert.InDelta(t, 0.8414709848078965, toF64(t, got), 1e-15)

	got, exact, err = simple(t, "1e60").Sin(interrupt.NewQuota(2_000_000))
	require.NoError(t, err)
	assert.False(t, exact)
	assert.InDelta(t, 0.8303897652193427, toF64(t, got), 1e-15, "large arguments keep their precision")
}

func TestSin_Interrupted(t *testing.T) {
	_, _, err := piTimes(t, "1/4").Sin(always)
	assert.ErrorIs(t, err, ErrInterrupted)

	_, _, err = FromInt64(1).Sin(interrupt.NewQuota(3))
	assert.ErrorIs(t, err, ErrInterrupted, "series polls once per term")
}

func TestCos(t *testing.T) {
	tests := []struct {
		name string
		x    Real
		want string
	}{
		{"0", FromInt64(0), "1"},
		{"pi/2", piTimes(t, "1/2"), "0"},
		{"pi", Pi(), "-1"},
		{"3pi/2", piTimes(t, "3/2"), "0"},
		{"2pi", piTimes(t, "2"), "1"},
		{"-pi", piTimes(t, "-1"), "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, exact, err := tt.x.Cos(never)
			require.NoError(t, err)
			assert.True(t, exact)
			assert.Equal(t, tt.want, got.String())
		})
	}

	got, exact, err := piTimes(t, "1/3").Cos(never)
	require.NoError(t, err)
	assert.False(t, exact)
	assert.InDelta(t, 0.5, toF64(t, got), 1e-15)

	got, exact, err = FromInt64(2).Cos(never)
	require.NoError(t, err)
	assert.False(t, exact)
	assert.InDelta(t, -0.4161468365471424, toF64(t, got), 1e-15)
}

func TestTan(t *testing.T) {
	got, exact, err := Pi().Tan(never)
	require.NoError(t, err)
	assert.True(t, exact)
	assert.Equal(t, "0", got.String())

	got, exact, err = piTimes(t, "1/4").Tan(never)
	require.NoError(t, err)
	assert.False(t, exact)
	assert.InDelta(t, 1.0, toF64(t, got), 1e-15)

	_, _, err = piTimes(t, "1/2").Tan(never)
	require.Error(t, err)
	assert.True(t, bigrat.IsDomainError(err))
	assert.NotErrorIs(t, err, ErrDivideByZero)
}

func TestTranscendental_Values(t *testing.T) {
	tests := []struct {
		name string
		f    func(Real, interrupt.Interrupt) (Real, error)
		x    Real
		want float64
	}{
		{"asin", Real.Asin, simple(t, "1/2"), 0.5235987755982989},
		{"acos", Real.Acos, simple(t, "1/2"), 1.0471975511965979},
		{"atan", Real.Atan, FromInt64(1), 0.7853981633974483},
		{"atan of pi", Real.Atan, Pi(), 1.2626272556789118},
		{"sinh", Real.Sinh, FromInt64(1), 1.1752011936438014},
		{"cosh", Real.Cosh, FromInt64(1), 1.5430806348152437},
		{"tanh", Real.Tanh, simple(t, "1/2"), 0.46211715726000974},
		{"asinh", Real.Asinh, FromInt64(1), 0.881373587019543},
		{"acosh", Real.Acosh, FromInt64(2), 1.3169578969248166},
		{"atanh", Real.Atanh, simple(t, "1/2"), 0.5493061443340549},
		{"ln", Real.Ln, FromInt64(10), 2.302585092994046},
		{"ln of pi", Real.Ln, Pi(), 1.1447298858494002},
		{"log2", Real.Log2, FromInt64(10), 3.321928094887362},
		{"log10", Real.Log10, FromInt64(2), 0.3010299956639812},
		{"factorial", Real.Factorial, FromInt64(10), 3628800},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.f(tt.x, never)
			require.NoError(t, err)
			assert.Equal(t, Simple, got.Kind())
			assert.InDelta(t, tt.want, toF64(t, got), 1e-12)
		})
	}
}

func TestTranscendental_DomainErrors(t *testing.T) {
	tests := []struct {
		name string
		f    func(Real, interrupt.Interrupt) (Real, error)
		x    Real
	}{
		{"asin above one", Real.Asin, FromInt64(2)},
		{"acos below minus one", Real.Acos, simple(t, "-3/2")},
		{"asin of pi", Real.Asin, Pi()},
		{"atanh of one", Real.Atanh, FromInt64(1)},
		{"acosh below one", Real.Acosh, simple(t, "1/2")},
		{"ln of zero", Real.Ln, FromInt64(0)},
		{"ln of negative pi", Real.Ln, Pi().Neg()},
		{"log2 of negative", Real.Log2, FromInt64(-4)},
		{"log10 of zero", Real.Log10, PiTimes(bigrat.FromInt64(0))},
		{"factorial of fraction", Real.Factorial, simple(t, "1/2")},
		{"factorial of negative", Real.Factorial, FromInt64(-1)},
		{"factorial of pi", Real.Factorial, Pi()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.f(tt.x, never)
			require.Error(t, err)
			assert.Equal(t, KindDomain, Classify(err), "err: %v", err)
		})
	}
}

func TestExactLogs(t *testing.T) {
	got, err := FromInt64(1024).Log2(never)
	require.NoError(t, err)
	assert.Equal(t, "10", got.String())

	got, err = simple(t, "1/1000").Log10(never)
	require.NoError(t, err)
	assert.Equal(t, "-3", got.String())

	got, err = FromInt64(1).Ln(never)
	require.NoError(t, err)
	assert.Equal(t, "0", got.String())
}

func TestExp(t *testing.T) {
	got, exact, err := FromInt64(0).Exp(never)
	require.NoError(t, err)
	assert.True(t, exact)
	assert.Equal(t, "1", got.String())

	got, exact, err = FromInt64(1).Exp(never)
	require.NoError(t, err)
	assert.False(t, exact)
	assert.InDelta(t, 2.718281828459045, toF64(t, got), 1e-15)
}
