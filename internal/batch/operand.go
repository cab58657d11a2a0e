package batch

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/realcalc/internal/bigrat"
	"github.com/roach88/realcalc/internal/num"
)

// piSuffixes mark an operand as a multiple of π.
var piSuffixes = []string{"pi", "π"}

// ParseOperand parses a rational literal, optionally followed by "pi" or "π".
//
// Accepted forms include "3", "-3/4", "1.25", "1e-3", "pi", "-π", "1/2pi" and
// "2*pi". Input is NFC-normalized first so composed and decomposed forms of
// the same text parse alike.
func ParseOperand(text string) (num.Real, error) {
	s := strings.ToLower(strings.TrimSpace(norm.NFC.String(text)))
	if s == "" {
		return num.Real{}, bigrat.NewDomainError("operand", "empty operand")
	}

	isPi := false
	for _, suffix := range piSuffixes {
		if strings.HasSuffix(s, suffix) {
			s = strings.TrimSpace(strings.TrimSuffix(s, suffix))
			s = strings.TrimSpace(strings.TrimSuffix(s, "*"))
			isPi = true
			break
		}
	}

	if isPi {
		switch s {
		case "", "+":
			return num.Pi(), nil
		case "-":
			return num.Pi().Neg(), nil
		}
	}

	factor, err := bigrat.Parse(s)
	if err != nil {
		return num.Real{}, fmt.Errorf("operand %q: %w", text, err)
	}
	if isPi {
		return num.PiTimes(factor), nil
	}
	return num.FromBigRat(factor), nil
}

// ParseOperands parses each text with ParseOperand.
func ParseOperands(texts []string) ([]num.Real, error) {
	out := make([]num.Real, 0, len(texts))
	for _, t := range texts {
		r, err := ParseOperand(t)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
