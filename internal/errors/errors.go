// Package errors defines the error types shared across the clone and
// scaffold pipeline. Subprocess and filesystem steps report an
// OperationError tagged with the step that failed; API calls report an
// APIError carrying the HTTP status, which drives credential handling.
package errors

import "fmt"

// OperationError tags a failure with the pipeline step it occurred in
// ("clone", "lfs-pull", "write-asmdef"). Sentinels with a reserved Op value
// let callers match a condition with errors.Is without string inspection.
type OperationError struct {
	Op  string
	Err error
}

// New wraps err as a failure of the named operation.
func New(op string, err error) *OperationError {
	return &OperationError{Op: op, Err: err}
}

func (e *OperationError) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// Is matches two OperationErrors by operation name, so a sentinel compares
// equal to any error raised for the same step.
func (e *OperationError) Is(target error) bool {
	t, ok := target.(*OperationError)
	if !ok {
		return false
	}
	return e.Op == t.Op
}
