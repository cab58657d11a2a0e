package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/realcalc/internal/batch"
	"github.com/roach88/realcalc/internal/format"
)

// EvalOptions holds flags for the eval command.
type EvalOptions struct {
	*RootOptions
	Base     int
	Style    string
	Timeout  time.Duration
	MaxPolls int64
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "eval <op> <operand> [<operand>]",
		Short: "Apply one operation to its operands",
		Long: `Apply a single operation and print the result.

Operands are rationals ("3", "-3/4", "1.25", "1e-3"), optionally
followed by "pi" or "π" ("1/2pi", "-π"). The result is marked
approximate whenever exactness was lost.

Operations: add sub mul div pow root neg sin cos tan asin acos atan
sinh cosh tanh asinh acosh atanh ln log2 log10 exp factorial approx int`,
		Args:          commandArgs(cobra.RangeArgs(2, 3)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(opts, args[0], args[1:], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Base, "base", 10, "output radix (2-36)")
	cmd.Flags().StringVar(&opts.Style, "style", "auto", "output style (auto|fraction|mixed_fraction|float|exact|dp:N|sf:N|approx:N)")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 5*time.Second, "wall-clock limit, 0 for none")
	cmd.Flags().Int64Var(&opts.MaxPolls, "max-polls", 0, "cancellation poll budget, 0 for none")

	return cmd
}

func runEval(opts *EvalOptions, op string, operands []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	base, err := format.NewBase(opts.Base)
	if err != nil {
		return badRequest(formatter, err)
	}
	style, err := format.ParseStyle(opts.Style)
	if err != nil {
		return badRequest(formatter, err)
	}

	slog.Debug("evaluating",
		"op", op,
		"args", operands,
		"base", base.Radix(),
		"style", style.String(),
		"timeout", opts.Timeout,
		"trace_id", formatter.TraceID,
	)

	limits := batch.Limits{Timeout: opts.Timeout, MaxPolls: opts.MaxPolls}
	res, err := batch.Evaluate(batch.Request{
		Op:    op,
		Args:  operands,
		Base:  base,
		Style: style,
	}, batch.Policy(cmd.Context(), limits, nil))
	if err != nil {
		return badRequest(formatter, err)
	}

	if res.Failed() {
		code := ErrorCodeFor(res.Kind)
		if opts.Format == "json" {
			if err := formatter.Response(CLIResponse{
				Status: "error",
				Data:   res,
				Error:  &CLIError{Code: code, Message: res.Error},
			}); err != nil {
				return err
			}
		} else if err := formatter.Error(code, res.Error, nil); err != nil {
			return err
		}
		return NewExitError(ExitFailure, fmt.Sprintf("%s failed: %s", op, res.Kind))
	}

	if opts.Format == "json" {
		return formatter.Success(res)
	}
	formatter.VerboseLog("exact: %t, render exact: %t", res.Exact, res.RenderExact)
	return formatter.Success(textValue(res))
}

// textValue renders a result for text output, marking approximations.
func textValue(res batch.Result) string {
	if res.Exact && res.RenderExact {
		return res.Value
	}
	return "approx. " + res.Value
}

// badRequest reports a command error and returns the matching exit error.
func badRequest(formatter *OutputFormatter, err error) error {
	if outErr := formatter.Error(ErrCodeBadRequest, err.Error(), nil); outErr != nil {
		return outErr
	}
	return WrapExitError(ExitCommandError, "invalid request", err)
}
