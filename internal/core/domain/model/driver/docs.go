// Package driver provides the Driver aggregate: availability state, shift
// timing, and active-order bookkeeping for the dispatch engine and the
// shift-reminder job.
package driver
