// Package workload defines the delayed squaring workload and the runners
// that execute it. All runners share one contract: process every input in
// [0, count) exactly once, retiring a unit (and reporting progress) as its
// delayed computation completes. They differ only in scheduling:
//
//   - Sequential: one unit at a time, input order, blocking delay.
//   - Concurrent: every unit launched at once, results in completion order.
//   - Pooled: at most a fixed number of units in flight.
package workload
