// Package interrupt provides the cooperative cancellation capability that is
// threaded through every operation which may run unbounded work.
//
// An Interrupt is polled, never pushed: long-running loops call Check once per
// step and unwind with ErrInterrupted as soon as the policy fires. There is no
// global or goroutine-local flag. Two evaluations that must not share
// cancellation state simply use two policy values.
//
// Policies:
//   - Never: never fires (comparisons, tests)
//   - Timeout: fires once a wall-clock deadline has passed (hosts)
//   - Quota: fires after a fixed number of polls (deterministic tests, budgets)
//   - Func: adapts a plain predicate
package interrupt
