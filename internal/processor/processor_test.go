package processor

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"codeberg.org/snonux/banglacsv/internal/cli"
	"codeberg.org/snonux/banglacsv/internal/testutil"
	"codeberg.org/snonux/banglacsv/internal/translation"
)

func resetViper(t *testing.T) {
	t.Helper()
	originalConfig := viper.New()
	*originalConfig = *viper.GetViper()
	t.Cleanup(func() {
		*viper.GetViper() = *originalConfig
	})
	viper.Reset()
}

func newTestProcessor(t *testing.T, flags *cli.Flags, mock translation.Translator) (*Processor, *bytes.Buffer) {
	t.Helper()

	config := translation.DefaultConfig()
	config.RetryDelay = 0
	stack, err := translation.NewWithBackend(mock, config)
	if err != nil {
		t.Fatalf("NewWithBackend() error = %v", err)
	}
	t.Cleanup(func() { stack.Close() })

	p := newProcessor(flags, config, stack)
	var out bytes.Buffer
	p.out = &out
	p.errOut = &bytes.Buffer{}
	return p, &out
}

func TestNewProcessor(t *testing.T) {
	resetViper(t)

	flags := cli.NewFlags()
	p, err := NewProcessor(context.Background(), flags)
	if err != nil {
		t.Fatalf("NewProcessor() error = %v", err)
	}
	defer p.Close()

	if p.flags != flags {
		t.Error("Processor flags not set correctly")
	}
	if p.stack == nil {
		t.Error("Translator stack not initialized")
	}
	if p.msgs == nil {
		t.Error("Localizer not initialized")
	}
	if p.stack.Source != "en" || p.stack.Target != "bn" {
		t.Errorf("Languages = %s->%s, want en->bn", p.stack.Source, p.stack.Target)
	}
}

func TestNewProcessor_BadBackend(t *testing.T) {
	resetViper(t)
	viper.Set("translation.backend", "babelfish")

	if _, err := NewProcessor(context.Background(), cli.NewFlags()); err == nil {
		t.Error("Expected error for unknown backend")
	}
}

func TestNewProcessor_SQLiteCacheDir(t *testing.T) {
	resetViper(t)
	cachePath := filepath.Join(t.TempDir(), "nested", "dir", "cache.db")
	viper.Set("cache.mode", "sqlite")
	viper.Set("cache.path", cachePath)

	p, err := NewProcessor(context.Background(), cli.NewFlags())
	if err != nil {
		t.Fatalf("NewProcessor() error = %v", err)
	}
	defer p.Close()

	testutil.AssertFileExists(t, cachePath)
}

func TestRunBatch(t *testing.T) {
	resetViper(t)

	dir := t.TempDir()
	outDir := t.TempDir()
	input := testutil.CreateTestCSV(t, dir, "data.csv", []string{"id", "text"}, testutil.NumberedRows(10, "hello"))

	for _, verbose := range []bool{false, true} {
		flags := cli.NewFlags()
		flags.InputFile = input
		flags.Column = "text"
		flags.Range = "2:5"
		flags.OutputDir = outDir
		flags.Pacing = 0
		flags.Verbose = verbose

		p, out := newTestProcessor(t, flags, &testutil.MockTranslator{})
		if err := p.RunBatch(context.Background()); err != nil {
			t.Fatalf("RunBatch(verbose=%v) error = %v", verbose, err)
		}

		outputPath := filepath.Join(outDir, "BANGLA_data.csv_rows_2-4.csv")
		testutil.AssertFileExists(t, outputPath)

		text := out.String()
		if !strings.Contains(text, "Rows translated: 3") {
			t.Errorf("Summary missing row count:\n%s", text)
		}
		if !strings.Contains(text, "Translation Complete!") {
			t.Errorf("Summary missing completion message:\n%s", text)
		}
		if verbose && !strings.Contains(text, "Row 3/3") {
			t.Errorf("Verbose run should log rows:\n%s", text)
		}
		if !verbose && strings.Contains(text, "Row 3/3") {
			t.Errorf("Quiet run should not log rows:\n%s", text)
		}
	}
}

func TestRunBatch_OutputDirFromConfig(t *testing.T) {
	resetViper(t)

	input := testutil.CreateTestCSV(t, t.TempDir(), "data.csv", []string{"id", "text"}, testutil.NumberedRows(10, "hello"))
	outDir := t.TempDir()
	viper.Set("output.directory", outDir)

	flags := cli.NewFlags()
	flags.InputFile = input
	flags.Column = "text"
	flags.Range = "0:5"
	flags.Pacing = 0

	p, _ := newTestProcessor(t, flags, &testutil.MockTranslator{})
	if job := p.job(); job.OutputDir != outDir {
		t.Errorf("job().OutputDir = %q, want %q", job.OutputDir, outDir)
	}
	if err := p.RunBatch(context.Background()); err != nil {
		t.Fatalf("RunBatch() error = %v", err)
	}
	testutil.AssertFileExists(t, filepath.Join(outDir, "BANGLA_data.csv_rows_0-4.csv"))

	// An explicit -o wins over the config
	flagDir := t.TempDir()
	flags.OutputDir = flagDir
	if job := p.job(); job.OutputDir != flagDir {
		t.Errorf("job().OutputDir = %q, want flag value %q", job.OutputDir, flagDir)
	}
}

func TestRunBatch_Fallbacks(t *testing.T) {
	resetViper(t)

	input := testutil.CreateTestCSV(t, t.TempDir(), "data.csv", []string{"text"}, [][]string{{"a"}, {"b"}})
	flags := cli.NewFlags()
	flags.InputFile = input
	flags.Column = "text"
	flags.Range = "0:2"
	flags.OutputDir = t.TempDir()
	flags.Pacing = 0

	p, out := newTestProcessor(t, flags, testutil.AlwaysFail())
	if err := p.RunBatch(context.Background()); err != nil {
		t.Fatalf("RunBatch() error = %v", err)
	}

	if !strings.Contains(out.String(), "Kept original text: 2 (after 3 attempts each)") {
		t.Errorf("Summary should report fallbacks:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "mock remote failure") {
		t.Errorf("Summary should report the last error:\n%s", out.String())
	}
}

func TestRunBatch_Errors(t *testing.T) {
	resetViper(t)

	input := testutil.CreateTestCSV(t, t.TempDir(), "data.csv", []string{"id", "text"}, testutil.NumberedRows(3, "x"))

	tests := []struct {
		name    string
		column  string
		rng     string
		wantErr string
	}{
		{"invalid range", "text", "500:100", "Invalid range! Use format like 1:100 or 500:600"},
		{"missing column", "body", "0:2", "Column 'body' not found!\nAvailable: ['id', 'text']"},
		{"missing column flag", "", "0:2", "Please enter column name!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outDir := t.TempDir()
			flags := cli.NewFlags()
			flags.InputFile = input
			flags.Column = tt.column
			flags.Range = tt.rng
			flags.OutputDir = outDir
			flags.Pacing = 0

			p, _ := newTestProcessor(t, flags, &testutil.MockTranslator{})
			err := p.RunBatch(context.Background())
			if err == nil {
				t.Fatal("Expected error")
			}
			if err.Error() != tt.wantErr {
				t.Errorf("RunBatch() error = %q, want %q", err.Error(), tt.wantErr)
			}
			testutil.AssertDirEmpty(t, outDir)
		})
	}
}

func TestOptions_PacingFromConfig(t *testing.T) {
	resetViper(t)

	flags := cli.NewFlags()
	p, _ := newTestProcessor(t, flags, &testutil.MockTranslator{})

	if got := p.options().Pacing; got != flags.Pacing {
		t.Errorf("Pacing = %v, want flag value %v", got, flags.Pacing)
	}

	viper.Set("batch.pacing", "2s")
	if got := p.options().Pacing.String(); got != "2s" {
		t.Errorf("Pacing = %v, want 2s from config", got)
	}
}

func TestMain(m *testing.M) {
	// Keep .env files of the developer out of the tests
	os.Unsetenv("OPENAI_API_KEY")
	os.Unsetenv("GEMINI_API_KEY")
	os.Exit(m.Run())
}
