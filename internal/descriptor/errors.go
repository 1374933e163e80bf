package descriptor

import "errors"

// Sentinel errors returned by the generator core. Callers should use
// errors.Is to test for these, since they are always wrapped with
// additional context via fmt.Errorf("%w", ...).
var (
	// ErrInvalidSettings is returned by Configure when a settings field is
	// outside its allowed range. Prior settings are left untouched.
	ErrInvalidSettings = errors.New("descriptor: invalid settings")

	// ErrInvalidDescriptor is returned when safe-mode validation rejects an
	// emitted descriptor. The whole step's emission buffer is discarded.
	ErrInvalidDescriptor = errors.New("descriptor: invalid descriptor")

	// ErrHookFailed wraps an error returned by a derived-class hook.
	ErrHookFailed = errors.New("descriptor: hook failed")

	// ErrTaskFailed indicates one or more worker-pool tasks reported failure
	// during a step.
	ErrTaskFailed = errors.New("descriptor: task failed")

	// ErrGeneratorFrozen is returned by MultiGenerator.AddChild once the
	// first Step has already run.
	ErrGeneratorFrozen = errors.New("descriptor: generator frozen")

	// ErrNotConfigured is returned by Step when called before Configure.
	ErrNotConfigured = errors.New("descriptor: generator not configured")
)
