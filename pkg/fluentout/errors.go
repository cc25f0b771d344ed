package fluentout

import (
	"errors"
	"fmt"
)

// ErrNoReportFiles indicates that no report file was found or selected.
var ErrNoReportFiles = errors.New("no .out files found")

// ErrNothingSelected indicates that the operator selected no report file.
var ErrNothingSelected = errors.New("no files selected")

// StageError wraps a failure with the session stage it happened in.
type StageError struct {
	Stage string // "discover", "extract", "classify", "derive", "export", "plot", "manifest"
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// NewStageError creates a new StageError.
func NewStageError(stage string, err error) *StageError {
	return &StageError{
		Stage: stage,
		Err:   err,
	}
}
