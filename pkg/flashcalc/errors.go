package flashcalc

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrNoTargetSheet indicates no sheet matched a flash-report rule.
var ErrNoTargetSheet = errors.New("no flash-report sheet recognized")

// ErrUnknownTarget indicates a mapping references a target id that the
// extraction pass did not produce.
var ErrUnknownTarget = errors.New("unknown target id")

// ExtractionError represents an error during workbook extraction.
type ExtractionError struct {
	SheetName string
	Component string // "headers", "sources", "targets"
	Err       error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error in sheet %q (%s): %v", e.SheetName, e.Component, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(sheetName, component string, err error) *ExtractionError {
	return &ExtractionError{
		SheetName: sheetName,
		Component: component,
		Err:       err,
	}
}
