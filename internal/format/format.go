// Package format holds the display configuration shared by the numeric core
// and its hosts: the numeral base and the rendering style.
package format

import (
	"fmt"
	"strconv"
	"strings"
)

// Base is a numeral base between 2 and 36.
type Base struct {
	radix int
}

// Decimal is base 10.
var Decimal = Base{radix: 10}

// NewBase creates a Base, rejecting radixes outside 2..36.
func NewBase(radix int) (Base, error) {
	if radix < 2 || radix > 36 {
		return Base{}, fmt.Errorf("base must be between 2 and 36, got %d", radix)
	}
	return Base{radix: radix}, nil
}

// Radix returns the numeric base. The zero Base is treated as decimal.
func (b Base) Radix() int {
	if b.radix == 0 {
		return 10
	}
	return b.radix
}

// String implements fmt.Stringer.
func (b Base) String() string {
	return "base " + strconv.Itoa(b.Radix())
}

// StyleKind identifies a rendering style.
type StyleKind int

const (
	// Auto picks a style from the value being rendered.
	Auto StyleKind = iota
	// ImproperFraction renders n/d.
	ImproperFraction
	// MixedFraction renders w n/d.
	MixedFraction
	// ExactFloat renders the full expansion, repeating digits in parentheses.
	ExactFloat
	// ExactFloatWithFractionFallback renders a terminating expansion when one
	// exists and an improper fraction otherwise.
	ExactFloatWithFractionFallback
	// DecimalPlaces renders exactly Digits fractional digits.
	DecimalPlaces
	// SignificantFigures renders Digits significant digits.
	SignificantFigures
	// ApproxFloat renders at most Digits fractional digits, trailing zeros trimmed.
	ApproxFloat
)

var styleNames = map[StyleKind]string{
	Auto:                           "auto",
	ImproperFraction:               "fraction",
	MixedFraction:                  "mixed_fraction",
	ExactFloat:                     "float",
	ExactFloatWithFractionFallback: "exact",
	DecimalPlaces:                  "dp",
	SignificantFigures:             "sf",
	ApproxFloat:                    "approx",
}

// String implements fmt.Stringer.
func (k StyleKind) String() string {
	if name, ok := styleNames[k]; ok {
		return name
	}
	return fmt.Sprintf("StyleKind(%d)", int(k))
}

// Style is a rendering style. Digits is only meaningful for DecimalPlaces,
// SignificantFigures and ApproxFloat.
type Style struct {
	Kind   StyleKind
	Digits int
}

// Styles without a digit count.
var (
	StyleAuto            = Style{Kind: Auto}
	StyleFraction        = Style{Kind: ImproperFraction}
	StyleMixed           = Style{Kind: MixedFraction}
	StyleExact           = Style{Kind: ExactFloat}
	StyleExactOrFraction = Style{Kind: ExactFloatWithFractionFallback}
)

// Places returns a DecimalPlaces style.
func Places(n int) Style { return Style{Kind: DecimalPlaces, Digits: n} }

// SigFigs returns a SignificantFigures style.
func SigFigs(n int) Style { return Style{Kind: SignificantFigures, Digits: n} }

// Approx returns an ApproxFloat style.
func Approx(n int) Style { return Style{Kind: ApproxFloat, Digits: n} }

// HasDigits reports whether the style carries a digit count.
func (s Style) HasDigits() bool {
	switch s.Kind {
	case DecimalPlaces, SignificantFigures, ApproxFloat:
		return true
	}
	return false
}

// String renders the style in the form accepted by ParseStyle.
func (s Style) String() string {
	if s.HasDigits() {
		return s.Kind.String() + ":" + strconv.Itoa(s.Digits)
	}
	return s.Kind.String()
}

// ParseStyle parses a style name such as "auto", "fraction", "dp:3" or "approx:10".
func ParseStyle(text string) (Style, error) {
	name, digits, hasDigits := strings.Cut(strings.ToLower(strings.TrimSpace(text)), ":")
	for kind, n := range styleNames {
		if n != name {
			continue
		}
		s := Style{Kind: kind}
		if !s.HasDigits() {
			if hasDigits {
				return Style{}, fmt.Errorf("style %q does not take a digit count", name)
			}
			return s, nil
		}
		if !hasDigits {
			return Style{}, fmt.Errorf("style %q requires a digit count (e.g. %s:10)", name, name)
		}
		d, err := strconv.Atoi(digits)
		if err != nil || d < 0 {
			return Style{}, fmt.Errorf("invalid digit count %q for style %q", digits, name)
		}
		if kind == SignificantFigures && d == 0 {
			return Style{}, fmt.Errorf("style %q requires at least one digit", name)
		}
		s.Digits = d
		return s, nil
	}
	return Style{}, fmt.Errorf("unknown style %q", text)
}
