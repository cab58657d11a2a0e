package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/realcalc/internal/batch"
)

// BatchOptions holds flags for the batch command.
type BatchOptions struct {
	*RootOptions
	Timeout  time.Duration
	MaxPolls int64
}

// NewBatchCommand creates the batch command.
func NewBatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "batch <file.yaml>",
		Short: "Run a YAML batch of operations",
		Long: `Run every case of a YAML batch file and report each result.

The file is validated against the batch schema before anything runs.
Each case runs under its own timeout: the case's, else the file's,
else --timeout. A failing case does not stop the batch; the command
exits with status 1 if any case failed.`,
		Args:          commandArgs(cobra.ExactArgs(1)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(opts, args[0], cmd)
		},
	}

	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 5*time.Second, "default per-case wall-clock limit, 0 for none")
	cmd.Flags().Int64Var(&opts.MaxPolls, "max-polls", 0, "per-case cancellation poll budget, 0 for none")

	return cmd
}

func runBatch(opts *BatchOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	f, err := batch.Load(path)
	if err != nil {
		if outErr := formatter.Error(ErrCodeLoadFailed, err.Error(), nil); outErr != nil {
			return outErr
		}
		return WrapExitError(ExitCommandError, "failed to load batch", err)
	}
	formatter.VerboseLog("Loaded %d case(s) from %s", len(f.Cases), path)

	runner := &batch.Runner{Limits: batch.Limits{Timeout: opts.Timeout, MaxPolls: opts.MaxPolls}}
	report, err := runner.Run(cmd.Context(), f)
	if err != nil {
		if outErr := formatter.Error(ErrCodeGeneric, err.Error(), nil); outErr != nil {
			return outErr
		}
		return WrapExitError(ExitCommandError, "batch aborted", err)
	}

	if opts.Format == "json" {
		return outputBatchJSON(formatter, report)
	}
	return outputBatchText(cmd, report)
}

func outputBatchJSON(formatter *OutputFormatter, report *batch.Report) error {
	resp := CLIResponse{Status: "ok", Data: report}
	if report.Failed > 0 {
		resp.Status = "error"
		resp.Error = &CLIError{
			Code:    ErrCodeBatchFailed,
			Message: fmt.Sprintf("%d case(s) failed", report.Failed),
		}
	}
	if err := formatter.Response(resp); err != nil {
		return err
	}
	if report.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d case(s) failed", report.Failed))
	}
	return nil
}

func outputBatchText(cmd *cobra.Command, report *batch.Report) error {
	w := cmd.OutOrStdout()
	for _, res := range report.Results {
		if res.Failed() {
			fmt.Fprintf(w, "✗ %s: [%s] %s\n", res.Name, ErrorCodeFor(res.Kind), res.Error)
			continue
		}
		fmt.Fprintf(w, "✓ %s: %s\n", res.Name, textValue(res))
	}

	fmt.Fprintln(w)
	passed := len(report.Results) - report.Failed
	fmt.Fprintf(w, "Batch Summary: %d passed, %d failed, %d total\n", passed, report.Failed, len(report.Results))

	if report.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d case(s) failed", report.Failed))
	}
	return nil
}
