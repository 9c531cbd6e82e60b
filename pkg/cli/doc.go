// Package cli holds shared helpers for the dssearch command line tool:
// output formatting, command error types, and signal-aware contexts.
package cli
