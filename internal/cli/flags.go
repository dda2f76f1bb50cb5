package cli

import (
	"time"

	"codeberg.org/snonux/banglacsv/internal/batch"
	"codeberg.org/snonux/banglacsv/internal/translation"
)

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	ListModels bool
	Verbose    bool
	Lang       string

	// Job flags
	InputFile string
	Column    string
	Range     string
	OutputDir string

	// Translation flags
	Backend     string
	Source      string
	Target      string
	OpenAIModel string
	GeminiModel string
	Pacing      time.Duration
	Attempts    int
	RetryDelay  time.Duration
	CacheMode   string
	CacheDB     string
	Breaker     bool
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Lang:        "en",
		Backend:     translation.BackendGoogle,
		Source:      translation.DefaultSource,
		Target:      translation.DefaultTarget,
		OpenAIModel: translation.DefaultOpenAIModel,
		GeminiModel: translation.DefaultGeminiModel,
		Pacing:      batch.DefaultPacing,
		Attempts:    translation.DefaultAttempts,
		RetryDelay:  translation.DefaultRetryDelay,
		CacheMode:   translation.CacheNone,
	}
}

// Headless reports whether any job flag was given, in which case the job
// runs in the terminal instead of the GUI
func (f *Flags) Headless() bool {
	return f.InputFile != "" || f.Column != "" || f.Range != ""
}

// Job returns the batch job described by the flags
func (f *Flags) Job() batch.Job {
	return batch.Job{
		InputPath: f.InputFile,
		Column:    f.Column,
		Range:     f.Range,
		OutputDir: f.OutputDir,
	}
}
