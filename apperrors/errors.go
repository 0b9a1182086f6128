// Package apperrors holds the sentinel errors shared across the
// suggestion pipeline. Callers wrap them with %w and test with
// errors.Is.
package apperrors

import "errors"

var (
	// ErrTelemetryFetch means the storage layer could not be read.
	// Fatal to a generation run; there is no local retry.
	ErrTelemetryFetch = errors.New("telemetry fetch failed")

	// ErrLLMInvocation means the language-model service call itself
	// failed (network, auth, non-200).
	ErrLLMInvocation = errors.New("llm invocation failed")

	// ErrLLMOutputParse means the model returned output that could not
	// be parsed as the expected structure. Fatal during drafting.
	ErrLLMOutputParse = errors.New("llm output parse failed")

	// ErrLifecycleViolation means an illegal suggestion status
	// transition was requested. Rejected at the store boundary.
	ErrLifecycleViolation = errors.New("illegal suggestion status transition")

	// ErrValidationRejected marks a single event dropped during
	// validation. Never fatal to the run.
	ErrValidationRejected = errors.New("event rejected by validation")
)
