package exitcodes

const (
	// ================================
	// Platform-universal exit codes
	// ================================

	// ExitCodeSuccess indicates no errors or failures had occurred.
	ExitCodeSuccess = 0

	// ExitCodeGeneralError indicates some type of general error occurred.
	ExitCodeGeneralError = 1

	// ExitCodeHandledError indicates the error was already logged where it occurred, so the
	// top-level handler should exit non-zero without printing it again.
	ExitCodeHandledError = 3

	// ================================
	// Application-specific exit codes
	// ================================
	// Note: Despite not being standardized, exit codes 2-5 are often used for common use cases, so we avoid them.

	// ExitCodeDriverError indicates the compiler driver could not produce output, or the output
	// it produced could not be parsed. These are environmental faults, not verification results.
	ExitCodeDriverError = 6

	// ExitCodeCompilationFailed indicates the compiler reported one or more error diagnostics
	// for the verified source. This is a domain result, distinct from driver faults.
	ExitCodeCompilationFailed = 7
)
