package bigrat

import (
	"math/big"
	"strings"

	"github.com/roach88/realcalc/internal/format"
	"github.com/roach88/realcalc/internal/interrupt"
)

// maxRepetend bounds the digits searched for a repeating expansion.
const maxRepetend = 10000

// Formatted is a rendered rational.
type Formatted struct {
	// Text is the rendered value.
	Text string

	// Exact reports whether Text denotes exactly the rendered value.
	Exact bool
}

// Format renders b in base using style. Auto is treated as
// ExactFloatWithFractionFallback. imag appends an "i" suffix and
// useParensIfFraction wraps fractional output in parentheses.
func (b BigRat) Format(base format.Base, style format.Style, imag, useParensIfFraction bool, intr interrupt.Interrupt) (Formatted, error) {
	if err := interrupt.Check(intr); err != nil {
		return Formatted{}, err
	}
	if style.HasDigits() && style.Digits < 0 {
		return Formatted{}, NewDomainError("format", "digit count must not be negative")
	}
	if style.Kind == format.SignificantFigures && style.Digits == 0 {
		return Formatted{}, NewDomainError("format", "at least one significant figure is required")
	}

	radix := base.Radix()
	var (
		out        Formatted
		isFraction bool
		err        error
	)
	switch style.Kind {
	case format.ImproperFraction:
		out, isFraction = b.fraction(radix, false), !b.IsInt()
	case format.MixedFraction:
		out, isFraction = b.fraction(radix, true), !b.IsInt()
	case format.ExactFloat:
		out, err = b.float(radix, intr)
	case format.Auto, format.ExactFloatWithFractionFallback:
		if b.terminates(radix) {
			out, err = b.float(radix, intr)
		} else {
			out, isFraction = b.fraction(radix, false), true
		}
	case format.DecimalPlaces:
		out, err = b.places(radix, style.Digits, false, intr)
	case format.ApproxFloat:
		out, err = b.places(radix, style.Digits, true, intr)
	case format.SignificantFigures:
		out, err = b.sigFigs(radix, style.Digits, intr)
	default:
		return Formatted{}, NewDomainError("format", "unsupported style %s", style)
	}
	if err != nil {
		return Formatted{}, err
	}

	if isFraction && useParensIfFraction {
		out.Text = "(" + out.Text + ")"
	}
	if imag {
		out.Text += "i"
	}
	return out, nil
}

// terminates reports whether b has a finite expansion in radix, i.e. every
// prime factor of the denominator divides radix.
func (b BigRat) terminates(radix int) bool {
	den := b.Denom()
	r := big.NewInt(int64(radix))
	g := new(big.Int)
	for {
		g.GCD(nil, nil, den, r)
		if g.Cmp(big.NewInt(1)) == 0 {
			break
		}
		den.Quo(den, g)
	}
	return den.Cmp(big.NewInt(1)) == 0
}

func (b BigRat) fraction(radix int, mixed bool) Formatted {
	num, den := b.Num(), b.Denom()
	if den.Cmp(big.NewInt(1)) == 0 {
		return Formatted{Text: num.Text(radix), Exact: true}
	}
	if mixed {
		abs := new(big.Int).Abs(num)
		if abs.Cmp(den) > 0 {
			whole, rem := new(big.Int).QuoRem(abs, den, new(big.Int))
			sign := ""
			if num.Sign() < 0 {
				sign = "-"
			}
			return Formatted{
				Text:  sign + whole.Text(radix) + " " + rem.Text(radix) + "/" + den.Text(radix),
				Exact: true,
			}
		}
	}
	return Formatted{Text: num.Text(radix) + "/" + den.Text(radix), Exact: true}
}

// digitGen yields the fractional digits of rem/den in a radix.
type digitGen struct {
	rem   *big.Int
	den   *big.Int
	radix *big.Int
}

func newDigitGen(b BigRat, radix int) (*big.Int, *digitGen) {
	abs := new(big.Int).Abs(b.rat().Num())
	den := b.Denom()
	whole, rem := new(big.Int).QuoRem(abs, den, new(big.Int))
	return whole, &digitGen{rem: rem, den: den, radix: big.NewInt(int64(radix))}
}

func (g *digitGen) done() bool {
	return g.rem.Sign() == 0
}

func (g *digitGen) next(intr interrupt.Interrupt) (byte, error) {
	if err := interrupt.Check(intr); err != nil {
		return 0, err
	}
	g.rem.Mul(g.rem, g.radix)
	d := new(big.Int)
	d.QuoRem(g.rem, g.den, g.rem)
	return digitChar(int(d.Int64())), nil
}

func digitChar(d int) byte {
	if d < 10 {
		return byte('0' + d)
	}
	return byte('a' + d - 10)
}

func (b BigRat) signPrefix() string {
	if b.Sign() < 0 {
		return "-"
	}
	return ""
}

// float renders the full expansion. A repeating tail is shown in parentheses.
func (b BigRat) float(radix int, intr interrupt.Interrupt) (Formatted, error) {
	whole, g := newDigitGen(b, radix)
	var sb strings.Builder
	sb.WriteString(b.signPrefix())
	sb.WriteString(whole.Text(radix))
	if g.done() {
		return Formatted{Text: sb.String(), Exact: true}, nil
	}

	seen := make(map[string]int)
	var digits []byte
	for len(digits) < maxRepetend {
		if g.done() {
			sb.WriteByte('.')
			sb.Write(digits)
			return Formatted{Text: sb.String(), Exact: true}, nil
		}
		key := g.rem.String()
		if start, ok := seen[key]; ok {
			sb.WriteByte('.')
			sb.Write(digits[:start])
			sb.WriteByte('(')
			sb.Write(digits[start:])
			sb.WriteByte(')')
			return Formatted{Text: sb.String(), Exact: true}, nil
		}
		seen[key] = len(digits)
		d, err := g.next(intr)
		if err != nil {
			return Formatted{}, err
		}
		digits = append(digits, d)
	}
	sb.WriteByte('.')
	sb.Write(digits)
	sb.WriteString("...")
	return Formatted{Text: sb.String(), Exact: false}, nil
}

// places renders up to n fractional digits, truncating. With trim, trailing
// zeros (and a bare point) are removed.
func (b BigRat) places(radix, n int, trim bool, intr interrupt.Interrupt) (Formatted, error) {
	whole, g := newDigitGen(b, radix)
	var digits []byte
	for len(digits) < n && !(trim && g.done()) {
		d, err := g.next(intr)
		if err != nil {
			return Formatted{}, err
		}
		digits = append(digits, d)
	}
	exact := g.done()
	if trim {
		for len(digits) > 0 && digits[len(digits)-1] == '0' {
			digits = digits[:len(digits)-1]
		}
	}

	text := whole.Text(radix)
	if len(digits) > 0 {
		text += "." + string(digits)
	}
	return Formatted{Text: b.nonZeroSign(whole, digits) + text, Exact: exact}, nil
}

// nonZeroSign returns the sign prefix unless every rendered digit is zero.
func (b BigRat) nonZeroSign(whole *big.Int, digits []byte) string {
	if whole.Sign() == 0 && strings.Trim(string(digits), "0") == "" {
		return ""
	}
	return b.signPrefix()
}

// sigFigs renders n significant digits, truncating.
func (b BigRat) sigFigs(radix, n int, intr interrupt.Interrupt) (Formatted, error) {
	if b.IsZero() {
		return Formatted{Text: "0", Exact: true}, nil
	}
	whole, g := newDigitGen(b, radix)

	if whole.Sign() != 0 {
		w := whole.Text(radix)
		if len(w) >= n {
			kept := w[:n]
			dropped := w[n:]
			exact := strings.Trim(dropped, "0") == "" && g.done()
			return Formatted{
				Text:  b.signPrefix() + kept + strings.Repeat("0", len(dropped)),
				Exact: exact,
			}, nil
		}
		return b.places(radix, n-len(w), false, intr)
	}

	// Leading zeros after the point do not count.
	var digits []byte
	significant := 0
	for significant < n {
		d, err := g.next(intr)
		if err != nil {
			return Formatted{}, err
		}
		digits = append(digits, d)
		if significant > 0 || d != '0' {
			significant++
		}
	}
	return Formatted{
		Text:  b.signPrefix() + "0." + string(digits),
		Exact: g.done(),
	}, nil
}
