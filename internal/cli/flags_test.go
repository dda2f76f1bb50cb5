package cli

import (
	"reflect"
	"testing"
	"time"
)

func TestNewFlags(t *testing.T) {
	flags := NewFlags()

	// Test default values
	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"Lang", flags.Lang, "en"},
		{"Backend", flags.Backend, "google"},
		{"Source", flags.Source, "en"},
		{"Target", flags.Target, "bn"},
		{"OpenAIModel", flags.OpenAIModel, "gpt-4o-mini"},
		{"GeminiModel", flags.GeminiModel, "gemini-2.0-flash"},
		{"Pacing", flags.Pacing, 600 * time.Millisecond},
		{"Attempts", flags.Attempts, 3},
		{"RetryDelay", flags.RetryDelay, time.Second},
		{"CacheMode", flags.CacheMode, "none"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.expected) {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}

	// Test boolean defaults (should be false)
	boolTests := []struct {
		name  string
		value bool
	}{
		{"ListModels", flags.ListModels},
		{"Verbose", flags.Verbose},
		{"Breaker", flags.Breaker},
	}

	for _, tt := range boolTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != false {
				t.Errorf("%s = %v, want false", tt.name, tt.value)
			}
		})
	}

	// Test string defaults (should be empty)
	stringTests := []struct {
		name  string
		value string
	}{
		{"CfgFile", flags.CfgFile},
		{"InputFile", flags.InputFile},
		{"Column", flags.Column},
		{"Range", flags.Range},
		{"OutputDir", flags.OutputDir},
		{"CacheDB", flags.CacheDB},
	}

	for _, tt := range stringTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Errorf("%s = %v, want empty string", tt.name, tt.value)
			}
		})
	}
}

func TestFlagsHeadless(t *testing.T) {
	tests := []struct {
		name  string
		flags Flags
		want  bool
	}{
		{"nothing set", Flags{}, false},
		{"only output", Flags{OutputDir: "out"}, false},
		{"input", Flags{InputFile: "data.csv"}, true},
		{"column", Flags{Column: "text"}, true},
		{"range", Flags{Range: "1:2"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.flags.Headless(); got != tt.want {
				t.Errorf("Headless() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFlagsJob(t *testing.T) {
	flags := Flags{InputFile: "data.csv", Column: "text", Range: "2:5", OutputDir: "out"}
	job := flags.Job()

	if job.InputPath != "data.csv" || job.Column != "text" || job.Range != "2:5" || job.OutputDir != "out" {
		t.Errorf("Job() = %+v", job)
	}
}
