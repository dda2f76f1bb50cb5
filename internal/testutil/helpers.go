package testutil

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// CreateTestFile creates a test file with content
func CreateTestFile(t *testing.T, path string, content []byte) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create directory for test file: %v", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}
}

// CreateTestCSV writes a CSV file with the given header and rows and returns its path
func CreateTestCSV(t *testing.T, dir, name string, header []string, rows [][]string) string {
	t.Helper()

	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.Write(header); err != nil {
		t.Fatalf("Failed to encode header: %v", err)
	}
	if err := w.WriteAll(rows); err != nil {
		t.Fatalf("Failed to encode rows: %v", err)
	}

	path := filepath.Join(dir, name)
	CreateTestFile(t, path, []byte(b.String()))
	return path
}

// NumberedRows returns n rows of the form {"<i>", "<prefix> <i>"}
func NumberedRows(n int, prefix string) [][]string {
	rows := make([][]string, n)
	for i := range rows {
		rows[i] = []string{fmt.Sprint(i), fmt.Sprintf("%s %d", prefix, i)}
	}
	return rows
}

// ReadCSV reads a CSV file written by the tool, dropping the UTF-8 BOM
func ReadCSV(t *testing.T, path string) [][]string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}

	content := strings.TrimPrefix(string(data), "\ufeff")
	records, err := csv.NewReader(strings.NewReader(content)).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse CSV %s: %v", path, err)
	}
	return records
}

// AssertFileExists checks if a file exists
func AssertFileExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Expected file to exist: %s", path)
	}
}

// AssertFileNotExists checks if a file does not exist
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); err == nil {
		t.Errorf("Expected file to not exist: %s", path)
	}
}

// AssertDirEmpty checks that a directory has no entries
func AssertDirEmpty(t *testing.T, dir string) {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read directory %s: %v", dir, err)
	}
	if len(entries) != 0 {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Errorf("Expected %s to be empty, found %v", dir, names)
	}
}

// AssertFileHasPrefix checks that a file starts with the given bytes
func AssertFileHasPrefix(t *testing.T, path string, prefix []byte) {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}

	if !strings.HasPrefix(string(content), string(prefix)) {
		t.Errorf("File %s does not start with %q", path, prefix)
	}
}

// CaptureOutput captures stdout/stderr during test execution
func CaptureOutput(t *testing.T, f func()) (stdout, stderr string) {
	t.Helper()

	oldStdout := os.Stdout
	oldStderr := os.Stderr

	rOut, wOut, _ := os.Pipe()
	rErr, wErr, _ := os.Pipe()

	os.Stdout = wOut
	os.Stderr = wErr

	outC := make(chan string)
	errC := make(chan string)
	go func() { outC <- drain(rOut) }()
	go func() { errC <- drain(rErr) }()

	f()

	wOut.Close()
	wErr.Close()

	os.Stdout = oldStdout
	os.Stderr = oldStderr

	return <-outC, <-errC
}

func drain(f *os.File) string {
	var b strings.Builder
	buf := make([]byte, 4096)
	for {
		n, err := f.Read(buf)
		b.Write(buf[:n])
		if err != nil {
			return b.String()
		}
	}
}
