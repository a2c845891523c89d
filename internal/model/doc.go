// Package model defines the domain types and value objects for the
// devboot CLI.
//
// This package contains pure data structures with no external dependencies.
// A bootstrap run is described by a fixed list of Steps, each wrapping one
// external Command, and produces a Report of StepResults. None of these
// values outlive the process; the virtual environment they describe is
// owned entirely by the dependency manager.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
