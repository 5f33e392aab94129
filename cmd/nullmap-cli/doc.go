// Package main provides the entry point for nullmap-cli.
//
// nullmap-cli exercises the null-permitting concurrent map:
//
//	nullmap-cli walkthrough
//	nullmap-cli stress --goroutines 32 --rounds 10000
//	nullmap-cli soak --duration 10m --rate 50000 --metrics-addr :9090
//	nullmap-cli -o yaml config show
//
// Exit status is 1 on any error and 2 when a workload observed a map
// invariant violation.
package main
