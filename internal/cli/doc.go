// Package cli implements the command-line interface for nepali-holidays.
//
// The cli package provides the Cobra root command. It loads the YAML config,
// applies flag overrides, runs the pipeline once and reports the outcome as text
// or JSON. Any fatal pipeline error ends the process with ExitError; skipped rows
// are reported but never change the exit code.
package cli
