// Package orchestration coordinates workload runs: it executes runner
// strategies back-to-back against the same unit range, wires their progress
// updates to a reporter, and analyzes the collected results for consistency
// and relative speed.
package orchestration
