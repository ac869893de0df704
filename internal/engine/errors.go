package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is returned for table files that are not JSON, CSV or XLSX.
	ErrUnsupportedFormat = errors.New("unsupported table format")

	// ErrDuplicateSlice marks two records sharing an (area, unit type) pair.
	ErrDuplicateSlice = errors.New("duplicate area/unit type record")

	// ErrMissingColumn is returned when a table lacks one of the dimension columns.
	ErrMissingColumn = errors.New("missing dimension column")
)

// LoadError wraps a failure while reading a table source.
// Row is 1-based over data rows, 0 when the failure is not tied to a row.
type LoadError struct {
	Path string
	Row  int
	Err  error
}

func (e *LoadError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("load %s: row %d: %v", e.Path, e.Row, e.Err)
	}
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
