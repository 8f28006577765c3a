package errors

import (
	"errors"
	"fmt"
)

// Scan error taxonomy. Only PathError is fatal for a run; FormatError
// skips the offending file and DataError skips the offending row, both
// surfaced as warnings so the output's completeness can be audited.

// PathError reports that the configured input directory is missing or
// unreadable.
type PathError struct {
	Dir string
	Err error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("input directory %s: %v", e.Dir, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

// NewPathError wraps a directory access failure.
func NewPathError(dir string, err error) *PathError {
	return &PathError{Dir: dir, Err: err}
}

// FormatError reports that a file could not be parsed as tabular data or
// that its required semantic columns could not be located.
type FormatError struct {
	File string
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("file %s: %v", e.File, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// NewFormatError wraps a file level parse failure.
func NewFormatError(file string, err error) *FormatError {
	return &FormatError{File: file, Err: err}
}

// FormatErrorf creates a FormatError from a format string.
func FormatErrorf(file, format string, args ...interface{}) *FormatError {
	return &FormatError{File: file, Err: fmt.Errorf(format, args...)}
}

// DataError reports a single malformed row. The row is excluded and
// processing continues.
type DataError struct {
	File string
	Row  int
	Err  error
}

func (e *DataError) Error() string {
	return fmt.Sprintf("file %s row %d: %v", e.File, e.Row, e.Err)
}

func (e *DataError) Unwrap() error { return e.Err }

// NewDataError wraps a row level parse failure. Row is the 1-based row
// number in the source file.
func NewDataError(file string, row int, err error) *DataError {
	return &DataError{File: file, Row: row, Err: err}
}

// IsPathError reports whether err is or wraps a PathError.
func IsPathError(err error) bool {
	var pe *PathError
	return errors.As(err, &pe)
}

// IsFormatError reports whether err is or wraps a FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

// IsDataError reports whether err is or wraps a DataError.
func IsDataError(err error) bool {
	var de *DataError
	return errors.As(err, &de)
}
