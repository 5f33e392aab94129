// Package workload drives a nullmap.Map under concurrency.
//
//   - walkthrough.go: the end-to-end nil value scenario as recorded steps
//   - stress.go: goroutines racing PutIfAbsent on a fresh key per round
//   - soak.go: a rate-limited mix of operations until cancelled
//
// Every workload checks the results it observes against what a
// linearizable map may return and reports domain.ErrInvariantViolated
// otherwise.
package workload
