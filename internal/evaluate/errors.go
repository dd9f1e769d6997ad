package evaluate

import "fmt"

// APICallError represents a failed inference call: transport errors,
// provider errors, and timeouts all land here.
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("inference call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("inference call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ParseError represents a malformed inference response: invalid JSON or a
// document that does not match the stage schema.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// CountMismatchError reports an inference response whose per-answer
// evaluation count disagrees with the submitted answer set. The evaluator
// assumes a complete, ordered answer set and fails loudly on any mismatch.
type CountMismatchError struct {
	Expected int
	Got      int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("expected %d answer evaluations, got %d", e.Expected, e.Got)
}
