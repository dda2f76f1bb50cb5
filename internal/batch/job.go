package batch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Validation errors, checked in this order by Job.Validate
var (
	ErrInputRequired  = errors.New("please select a valid CSV file")
	ErrInputNotFound  = errors.New("input file not found")
	ErrColumnRequired = errors.New("please enter column name")
	ErrRangeRequired  = errors.New("please enter row range (e.g. 1:100)")
	ErrOutputRequired = errors.New("please choose output folder")
	ErrInvalidRange   = errors.New("invalid range, use a format like 1:100 or 500:600")
)

// ErrJobRunning is returned when a job is started while another one runs
var ErrJobRunning = errors.New("a translation job is already running")

// ColumnNotFoundError reports a target column missing from the table
type ColumnNotFoundError struct {
	Column    string
	Available []string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column '%s' not found, available: [%s]", e.Column, strings.Join(e.Available, ", "))
}

// RangeOutOfTableError reports a range starting at or past the last row
type RangeOutOfTableError struct {
	Start int
	Rows  int
}

func (e *RangeOutOfTableError) Error() string {
	return fmt.Sprintf("range starts at row %d but the table has %d rows", e.Start, e.Rows)
}

// Job holds the parameters of one translation run
type Job struct {
	InputPath string
	Column    string
	Range     string
	OutputDir string
}

// Validate checks the job parameters and returns the parsed range
func (j Job) Validate() (start, end int, err error) {
	if strings.TrimSpace(j.InputPath) == "" {
		return 0, 0, ErrInputRequired
	}
	info, err := os.Stat(j.InputPath)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %s", ErrInputNotFound, j.InputPath)
	}
	if !info.Mode().IsRegular() {
		return 0, 0, fmt.Errorf("%w: %s is not a regular file", ErrInputNotFound, j.InputPath)
	}

	if strings.TrimSpace(j.Column) == "" {
		return 0, 0, ErrColumnRequired
	}
	if strings.TrimSpace(j.Range) == "" {
		return 0, 0, ErrRangeRequired
	}
	if strings.TrimSpace(j.OutputDir) == "" {
		return 0, 0, ErrOutputRequired
	}

	return ParseRange(j.Range)
}

// ParseRange parses "start:end" into a half-open row range. Both bounds are
// integers with 0 <= start < end.
func ParseRange(s string) (start, end int, err error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidRange, s)
	}

	start, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidRange, s)
	}
	end, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidRange, s)
	}

	if start < 0 || start >= end {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidRange, s)
	}
	return start, end, nil
}

// OutputFileName returns the name of the file written for rows [start, end).
// The input base name keeps its extension.
func OutputFileName(inputPath string, start, end int) string {
	return fmt.Sprintf("BANGLA_%s_rows_%d-%d.csv", filepath.Base(inputPath), start, end-1)
}
