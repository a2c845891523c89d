// Package runner invokes external commands for the devboot CLI.
//
// Every bootstrap step is a single external process: pip, poetry, or a tool
// run through poetry. This package wraps os/exec so that:
//   - streamed commands write straight to the user's terminal, because the
//     tools' own output is the only progress and failure signal a user gets
//   - captured commands return stdout while still passing stderr through
//   - failures are wrapped in model.CLIError with ExitCommandFailed, and the
//     child's exit status can be recovered with ExitStatus
//
// The Runner interface exists so the bootstrap sequence can be exercised in
// tests with runnertest.Recorder instead of real processes.
package runner
