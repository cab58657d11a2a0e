package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/realcalc/internal/format"
	"github.com/roach88/realcalc/internal/interrupt"
	"github.com/roach88/realcalc/internal/num"
)

// maxPiDigits is the number of decimals carried by the π approximation.
const maxPiDigits = 18

// PiOptions holds flags for the pi command.
type PiOptions struct {
	*RootOptions
	Digits int
}

// PiResult is the JSON payload of the pi command.
type PiResult struct {
	Value  string `json:"value"`
	Digits int    `json:"digits"`
}

// NewPiCommand creates the pi command.
func NewPiCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PiOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "pi",
		Short:         "Print the approximation of pi used when pi multiples collapse",
		Args:          commandArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPi(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Digits, "digits", 10, fmt.Sprintf("decimal places (0-%d)", maxPiDigits))

	return cmd
}

func runPi(opts *PiOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	if opts.Digits < 0 || opts.Digits > maxPiDigits {
		return badRequest(formatter, fmt.Errorf("digits must be between 0 and %d, got %d", maxPiDigits, opts.Digits))
	}

	text, _, err := num.Pi().Format(format.Decimal, format.Places(opts.Digits), false, false, interrupt.Never{})
	if err != nil {
		return WrapExitError(ExitFailure, "failed to render pi", err)
	}

	if opts.Format == "json" {
		return formatter.Success(PiResult{Value: text, Digits: opts.Digits})
	}
	return formatter.Success(text)
}
