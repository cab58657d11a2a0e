// Package batch evaluates Real operations by name for the realc host.
//
// It maps operation names ("add", "sin", "factorial", ...) to num.Real calls,
// parses operands such as "3/4", "1e-3" or "1/2pi", and runs YAML batch files
// of named cases. Batch files are checked against an embedded CUE schema
// before they are decoded.
//
// Every case runs under its own interrupt policy built from the batch and
// runner limits. A case that fails with a domain error, a division by zero
// or an interruption is reported in its Result; it does not stop the batch.
// Only cancellation of the runner's context stops a batch early.
package batch
