package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/roach88/realcalc/internal/format"
	"github.com/roach88/realcalc/internal/interrupt"
	"github.com/roach88/realcalc/internal/num"
)

// Request is a single evaluation.
type Request struct {
	Name  string
	Op    string
	Args  []string
	Base  format.Base
	Style format.Style
}

// Result is the outcome of one evaluation.
type Result struct {
	Name  string   `json:"name,omitempty"`
	Op    string   `json:"op"`
	Args  []string `json:"args"`
	Value string   `json:"value,omitempty"`

	// Exact reports whether the arithmetic kept the value exact.
	Exact bool `json:"exact"`

	// RenderExact reports whether Value denotes the computed value exactly.
	RenderExact bool `json:"render_exact"`

	Kind  num.ErrorKind `json:"kind,omitempty"`
	Error string        `json:"error,omitempty"`
}

// Failed reports whether the evaluation produced an error.
func (r Result) Failed() bool {
	return r.Kind != num.KindNone
}

// Evaluate runs req under intr.
//
// A malformed request (unknown operation, wrong operand count, operand that
// does not parse) is returned as an error. Failures of the computation itself
// are recorded in the Result.
func Evaluate(req Request, intr interrupt.Interrupt) (Result, error) {
	op, ok := Lookup(req.Op)
	if !ok {
		return Result{}, fmt.Errorf("unknown operation %q", req.Op)
	}
	if len(req.Args) != op.Arity {
		return Result{}, fmt.Errorf("%s takes %d operand(s), got %d", op.Name, op.Arity, len(req.Args))
	}
	args, err := ParseOperands(req.Args)
	if err != nil {
		return Result{}, err
	}

	res := Result{Name: req.Name, Op: op.Name, Args: req.Args}
	value, exact, err := op.Apply(args, intr)
	if err != nil {
		return res.fail(err), nil
	}
	text, renderExact, err := value.Format(req.Base, req.Style, false, false, intr)
	if err != nil {
		return res.fail(err), nil
	}
	res.Value = text
	res.Exact = exact
	res.RenderExact = renderExact
	return res, nil
}

func (r Result) fail(err error) Result {
	r.Kind = num.Classify(err)
	r.Error = err.Error()
	return r
}

// Limits bound a single evaluation. Zero values mean no limit.
type Limits struct {
	Timeout  time.Duration
	MaxPolls int64
}

// Policy builds the interrupt policy for one evaluation: it fires when ctx is
// done, when the timeout measured on now elapses, or when the poll budget is
// used up. A nil now means time.Now.
func Policy(ctx context.Context, limits Limits, now func() time.Time) interrupt.Interrupt {
	if now == nil {
		now = time.Now
	}
	policy := interrupt.Any{interrupt.Func(func() bool { return ctx.Err() != nil })}
	if limits.Timeout > 0 {
		policy = append(policy, interrupt.NewTimeoutAt(now(), limits.Timeout, now))
	}
	if limits.MaxPolls > 0 {
		policy = append(policy, interrupt.NewQuota(limits.MaxPolls))
	}
	return policy
}

// Runner runs batch files.
type Runner struct {
	// Limits apply to every case; a timeout set in the file or the case
	// takes precedence.
	Limits Limits

	// Now is the clock used for timeouts. Nil means time.Now.
	Now func() time.Time
}

// Report is the outcome of a batch.
type Report struct {
	Name    string   `json:"name"`
	Results []Result `json:"results"`
	Failed  int      `json:"failed"`
}

// Run evaluates every case of f in order. It stops early only when ctx is
// cancelled, returning the results gathered so far with ctx's error.
func (r *Runner) Run(ctx context.Context, f *File) (*Report, error) {
	base, err := f.base()
	if err != nil {
		return nil, err
	}

	report := &Report{Name: f.Name, Results: make([]Result, 0, len(f.Cases))}
	slog.Info("batch starting", "batch", f.Name, "cases", len(f.Cases))

	for _, c := range f.Cases {
		if err := ctx.Err(); err != nil {
			slog.Warn("batch cancelled", "batch", f.Name, "completed", len(report.Results))
			return report, err
		}

		style, err := f.style(c)
		if err != nil {
			return report, fmt.Errorf("case %q: %w", c.Name, err)
		}
		timeout, err := f.timeout(c, r.Limits.Timeout)
		if err != nil {
			return report, fmt.Errorf("case %q: %w", c.Name, err)
		}

		slog.Debug("evaluating case",
			"batch", f.Name,
			"case", c.Name,
			"op", c.Op,
			"args", c.Args,
			"timeout", timeout,
		)

		limits := Limits{Timeout: timeout, MaxPolls: r.Limits.MaxPolls}
		res, err := Evaluate(Request{
			Name:  c.Name,
			Op:    c.Op,
			Args:  c.Args,
			Base:  base,
			Style: style,
		}, Policy(ctx, limits, r.Now))
		if err != nil {
			return report, fmt.Errorf("case %q: %w", c.Name, err)
		}

		if res.Failed() {
			report.Failed++
			slog.Warn("case failed",
				"batch", f.Name,
				"case", c.Name,
				"kind", res.Kind,
				"error", res.Error,
			)
		}
		report.Results = append(report.Results, res)
	}

	slog.Info("batch finished", "batch", f.Name, "cases", len(report.Results), "failed", report.Failed)
	return report, nil
}
