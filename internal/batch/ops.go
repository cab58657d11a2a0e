package batch

import (
	"fmt"
	"sort"

	"github.com/roach88/realcalc/internal/interrupt"
	"github.com/roach88/realcalc/internal/num"
)

// Op is a named Real operation.
type Op struct {
	// Name is the operation name used on the command line and in batch files.
	Name string

	// Arity is the number of operands the operation takes.
	Arity int

	apply func(args []num.Real, intr interrupt.Interrupt) (num.Real, bool, error)
}

// Apply runs the operation. It returns the result and whether it is exact.
func (o Op) Apply(args []num.Real, intr interrupt.Interrupt) (num.Real, bool, error) {
	if len(args) != o.Arity {
		return num.Real{}, false, fmt.Errorf("%s takes %d operand(s), got %d", o.Name, o.Arity, len(args))
	}
	return o.apply(args, intr)
}

type (
	binaryFunc  func(num.Real, num.Real, interrupt.Interrupt) (num.Real, bool, error)
	flaggedFunc func(num.Real, interrupt.Interrupt) (num.Real, bool, error)
	plainFunc   func(num.Real, interrupt.Interrupt) (num.Real, error)
)

func binary(name string, f binaryFunc) Op {
	return Op{Name: name, Arity: 2, apply: func(args []num.Real, intr interrupt.Interrupt) (num.Real, bool, error) {
		return f(args[0], args[1], intr)
	}}
}

func flagged(name string, f flaggedFunc) Op {
	return Op{Name: name, Arity: 1, apply: func(args []num.Real, intr interrupt.Interrupt) (num.Real, bool, error) {
		return f(args[0], intr)
	}}
}

// plain wraps an operation without an exactness flag. Its results are
// reported with the fixed exactness given.
func plain(name string, exact bool, f plainFunc) Op {
	return Op{Name: name, Arity: 1, apply: func(args []num.Real, intr interrupt.Interrupt) (num.Real, bool, error) {
		res, err := f(args[0], intr)
		if err != nil {
			return num.Real{}, false, err
		}
		return res, exact, nil
	}}
}

var ops = map[string]Op{}

func register(o Op) {
	ops[o.Name] = o
}

func init() {
	register(binary("add", num.Real.Add))
	register(binary("sub", num.Real.Sub))
	register(binary("mul", num.Real.Mul))
	register(binary("div", num.Real.Div))
	register(binary("pow", num.Real.Pow))
	register(binary("root", num.Real.RootN))

	register(flagged("sin", num.Real.Sin))
	register(flagged("cos", num.Real.Cos))
	register(flagged("tan", num.Real.Tan))
	register(flagged("exp", num.Real.Exp))

	register(plain("asin", false, num.Real.Asin))
	register(plain("acos", false, num.Real.Acos))
	register(plain("atan", false, num.Real.Atan))
	register(plain("sinh", false, num.Real.Sinh))
	register(plain("cosh", false, num.Real.Cosh))
	register(plain("tanh", false, num.Real.Tanh))
	register(plain("asinh", false, num.Real.Asinh))
	register(plain("acosh", false, num.Real.Acosh))
	register(plain("atanh", false, num.Real.Atanh))
	register(plain("ln", false, num.Real.Ln))
	register(plain("log2", false, num.Real.Log2))
	register(plain("log10", false, num.Real.Log10))
	register(plain("factorial", true, num.Real.Factorial))

	register(Op{Name: "neg", Arity: 1, apply: func(args []num.Real, _ interrupt.Interrupt) (num.Real, bool, error) {
		return args[0].Neg(), true, nil
	}})
	register(Op{Name: "approx", Arity: 1, apply: func(args []num.Real, intr interrupt.Interrupt) (num.Real, bool, error) {
		r, err := args[0].Approximate(intr)
		if err != nil {
			return num.Real{}, false, err
		}
		return num.FromBigRat(r), args[0].Kind() == num.Simple, nil
	}})
	register(Op{Name: "int", Arity: 1, apply: func(args []num.Real, intr interrupt.Interrupt) (num.Real, bool, error) {
		n, err := args[0].TryAsUint(intr)
		if err != nil {
			return num.Real{}, false, err
		}
		return num.FromUint64(uint64(n)), true, nil
	}})
}

// Lookup returns the operation called name.
func Lookup(name string) (Op, bool) {
	o, ok := ops[name]
	return o, ok
}

// Names returns every operation name in sorted order.
func Names() []string {
	names := make([]string, 0, len(ops))
	for name := range ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
