// Package worker runs jobs in the background on a fixed pool of goroutines
// fed by a bounded in-memory queue. It backs detached task writes.
package worker
