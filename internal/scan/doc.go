// Package scan implements the concurrent scan-and-rank engine behind topfiles.
//
// A fastwalk-based walker prunes excluded subtrees and streams candidate
// file paths to a batch dispatcher, which feeds a bounded worker pool. The
// workers stat each path under a shared open-handle semaphore, submit sizes
// to a bounded top-N ranking and account every outcome in atomic progress
// counters. Scan-time failures are accumulated and reported, never fatal;
// only configuration problems abort a run.
package scan
