package filter

import (
	"errors"
	"fmt"
)

// ErrEmptyExpression is returned when compiling a blank expression
var ErrEmptyExpression = errors.New("empty filter expression")

// Error types for filter operations
type (
	// CompilationError indicates a filter expression could not be compiled
	CompilationError struct {
		Expression string
		Err        error
	}

	// EvaluationError indicates a filter could not be evaluated
	EvaluationError struct {
		Expression string
		Object     string
		Err        error
	}
)

func (e *CompilationError) Error() string {
	return fmt.Sprintf("compilation error in '%s': %v", e.Expression, e.Err)
}

func (e *CompilationError) Unwrap() error {
	return e.Err
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluation error for '%s' on %s: %v", e.Expression, e.Object, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}
