package batch

import (
	"errors"
	"path/filepath"
	"testing"

	"codeberg.org/snonux/banglacsv/internal/testutil"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		input     string
		wantStart int
		wantEnd   int
		wantErr   bool
	}{
		{input: "1:100", wantStart: 1, wantEnd: 100},
		{input: "0:1", wantStart: 0, wantEnd: 1},
		{input: "500:600", wantStart: 500, wantEnd: 600},
		{input: " 2 : 5 ", wantStart: 2, wantEnd: 5},
		{input: "5:5", wantErr: true},
		{input: "500:100", wantErr: true},
		{input: "-1:3", wantErr: true},
		{input: "a:b", wantErr: true},
		{input: "10", wantErr: true},
		{input: "1:2:3", wantErr: true},
		{input: "", wantErr: true},
		{input: ":5", wantErr: true},
		{input: "1.5:3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			start, end, err := ParseRange(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidRange) {
					t.Errorf("ParseRange(%q) error = %v, want ErrInvalidRange", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRange(%q) unexpected error: %v", tt.input, err)
			}
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("ParseRange(%q) = (%d, %d), want (%d, %d)", tt.input, start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestJobValidate(t *testing.T) {
	dir := t.TempDir()
	input := testutil.CreateTestCSV(t, dir, "data.csv", []string{"id", "text"}, testutil.NumberedRows(3, "hello"))
	outDir := t.TempDir()

	tests := []struct {
		name    string
		job     Job
		wantErr error
	}{
		{
			name:    "missing input",
			job:     Job{Column: "text", Range: "1:2", OutputDir: outDir},
			wantErr: ErrInputRequired,
		},
		{
			name:    "input does not exist",
			job:     Job{InputPath: filepath.Join(dir, "nope.csv"), Column: "text", Range: "1:2", OutputDir: outDir},
			wantErr: ErrInputNotFound,
		},
		{
			name:    "input is a directory",
			job:     Job{InputPath: dir, Column: "text", Range: "1:2", OutputDir: outDir},
			wantErr: ErrInputNotFound,
		},
		{
			name:    "blank column",
			job:     Job{InputPath: input, Column: "   ", Range: "1:2", OutputDir: outDir},
			wantErr: ErrColumnRequired,
		},
		{
			name:    "blank range",
			job:     Job{InputPath: input, Column: "text", Range: " ", OutputDir: outDir},
			wantErr: ErrRangeRequired,
		},
		{
			name:    "missing output",
			job:     Job{InputPath: input, Column: "text", Range: "1:2"},
			wantErr: ErrOutputRequired,
		},
		{
			name:    "bad range checked last",
			job:     Job{InputPath: input, Column: "text", Range: "500:100", OutputDir: outDir},
			wantErr: ErrInvalidRange,
		},
		{
			name:    "column checked before range",
			job:     Job{InputPath: input, Range: "x"},
			wantErr: ErrColumnRequired,
		},
		{
			name: "valid",
			job:  Job{InputPath: input, Column: "text", Range: "1:2", OutputDir: outDir},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := tt.job.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestOutputFileName(t *testing.T) {
	tests := []struct {
		input      string
		start, end int
		want       string
	}{
		{"data.csv", 2, 5, "BANGLA_data.csv_rows_2-4.csv"},
		{"/tmp/in/survey.csv", 0, 100, "BANGLA_survey.csv_rows_0-99.csv"},
		{"noext", 7, 8, "BANGLA_noext_rows_7-7.csv"},
	}

	for _, tt := range tests {
		if got := OutputFileName(tt.input, tt.start, tt.end); got != tt.want {
			t.Errorf("OutputFileName(%q, %d, %d) = %q, want %q", tt.input, tt.start, tt.end, got, tt.want)
		}
	}
}

func TestErrorMessages(t *testing.T) {
	err := &ColumnNotFoundError{Column: "body", Available: []string{"id", "text"}}
	if got := err.Error(); got != "column 'body' not found, available: [id, text]" {
		t.Errorf("ColumnNotFoundError.Error() = %q", got)
	}

	rangeErr := &RangeOutOfTableError{Start: 20, Rows: 10}
	if got := rangeErr.Error(); got != "range starts at row 20 but the table has 10 rows" {
		t.Errorf("RangeOutOfTableError.Error() = %q", got)
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateIdle, "Idle"},
		{StateValidating, "Validating"},
		{StateRunning, "Running"},
		{StateSucceeded, "Succeeded"},
		{StateFailed, "Failed"},
		{State(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
