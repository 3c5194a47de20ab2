package labreport

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrMalformedWorkbook indicates the buffer is not a readable spreadsheet.
// The upload must be rejected; no partial result is produced.
var ErrMalformedWorkbook = errors.New("malformed workbook")

// ErrUnsupportedFormat indicates a file extension no reader handles.
var ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

// ExtractionError represents an error during extraction.
type ExtractionError struct {
	SheetName string
	Component string // "workbook", "cells", "csv"
	Err       error
}

func (e *ExtractionError) Error() string {
	if e.SheetName == "" {
		return fmt.Sprintf("extraction error (%s): %v", e.Component, e.Err)
	}
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

// malformed wraps err so that it matches ErrMalformedWorkbook.
func malformed(sheetName, component string, err error) error {
	return NewExtractionError(sheetName, component, fmt.Errorf("%w: %w", ErrMalformedWorkbook, err))
}
