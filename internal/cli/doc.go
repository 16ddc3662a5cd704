// Package cli wires the aggregation pipeline into the memphis-shows
// command: flag handling, output formatting, run artifacts, and the
// optional notification step.
package cli
