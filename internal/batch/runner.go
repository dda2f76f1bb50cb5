package batch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"codeberg.org/snonux/banglacsv/internal"
	"codeberg.org/snonux/banglacsv/internal/table"
	"codeberg.org/snonux/banglacsv/internal/translation"
)

// DefaultPacing is the wait after each row, keeping the request rate low
// enough for the public Google endpoint
const DefaultPacing = 600 * time.Millisecond

// fallbackCounter is implemented by translators that pass text through after
// exhausting their retries
type fallbackCounter interface {
	Fallbacks() int
}

// Options configures a Runner
type Options struct {
	Source string        // source language code, default "en"
	Target string        // target language code, default "bn"
	Pacing time.Duration // wait after each row; negative means DefaultPacing
	Output io.Writer     // per-row log; nil means os.Stdout
}

// Runner executes one Job at a time
type Runner struct {
	translator translation.Translator
	source     string
	target     string
	pacing     time.Duration
	out        io.Writer

	running atomic.Bool
	state   atomic.Int32
}

// NewRunner creates a runner translating through t
func NewRunner(t translation.Translator, opts Options) *Runner {
	r := &Runner{
		translator: t,
		source:     opts.Source,
		target:     opts.Target,
		pacing:     opts.Pacing,
		out:        opts.Output,
	}
	if r.source == "" {
		r.source = translation.DefaultSource
	}
	if r.target == "" {
		r.target = translation.DefaultTarget
	}
	if r.pacing < 0 {
		r.pacing = DefaultPacing
	}
	if r.out == nil {
		r.out = os.Stdout
	}
	return r
}

// State returns the current lifecycle state
func (r *Runner) State() State {
	return State(r.state.Load())
}

// Running reports whether a job is in flight
func (r *Runner) Running() bool {
	return r.running.Load()
}

// Run validates and executes job. A non-nil error means the job never
// started: it is ErrJobRunning or a validation error, and obs is not called.
// Once the job starts obs receives progress and exactly one OnComplete, and
// the returned Result carries any failure in Result.Err.
func (r *Runner) Run(ctx context.Context, job Job, obs Observer) (Result, error) {
	if !r.running.CompareAndSwap(false, true) {
		return Result{}, ErrJobRunning
	}
	defer r.running.Store(false)

	if obs == nil {
		obs = ObserverFuncs{}
	}

	r.setState(StateValidating)
	start, end, err := job.Validate()
	if err != nil {
		r.setState(StateIdle)
		return Result{}, err
	}

	r.setState(StateRunning)
	began := time.Now()
	result := Result{}

	defer func() {
		result.Elapsed = time.Since(began)
		if result.Err != nil {
			r.setState(StateFailed)
		} else {
			r.setState(StateSucceeded)
		}
		obs.OnProgress(100)
		obs.OnComplete(result)
		r.setState(StateIdle)
	}()

	obs.OnProgress(0)
	result.OutputPath, result.Rows, result.Fallbacks, result.Err = r.execute(ctx, job, start, end, obs)
	if result.Err != nil {
		result.OutputPath = ""
	}
	return result, nil
}

func (r *Runner) execute(ctx context.Context, job Job, start, end int, obs Observer) (string, int, int, error) {
	column := strings.TrimSpace(job.Column)

	t, err := table.Load(job.InputPath)
	if err != nil {
		return "", 0, 0, err
	}

	if !t.HasColumn(column) {
		return "", 0, 0, &ColumnNotFoundError{Column: column, Available: t.Columns()}
	}

	if end > t.Len() {
		end = t.Len()
	}
	if start >= end {
		return "", 0, 0, &RangeOutOfTableError{Start: start, Rows: t.Len()}
	}

	total := end - start
	fmt.Fprintf(r.out, "Translating column '%s', rows %d-%d (%d rows)\n", column, start, end-1, total)

	fallbacks := 0
	for i := start; i < end; i++ {
		text, err := t.Cell(i, column)
		if err != nil {
			return "", 0, 0, err
		}

		before := r.fallbacks()
		translated, err := r.translator.Translate(ctx, text, r.source, r.target)
		if err != nil {
			return "", 0, 0, fmt.Errorf("row %d: %w", i, err)
		}
		if r.fallbacks() > before {
			fallbacks++
			fmt.Fprintf(r.out, "Warning: row %d left untranslated after retries\n", i)
		}

		if err := t.SetCell(i, column, translated); err != nil {
			return "", 0, 0, err
		}

		if err := pause(ctx, r.pacing); err != nil {
			return "", 0, 0, fmt.Errorf("row %d: %w", i, err)
		}

		done := i - start + 1
		fmt.Fprintf(r.out, "Row %d/%d: %s\n", done, total, summarize(translated))
		obs.OnProgress(internal.Percent(done, total))
	}

	outputPath := filepath.Join(job.OutputDir, OutputFileName(job.InputPath, start, end))
	if err := t.Prefix(end).WriteFile(outputPath); err != nil {
		return "", 0, 0, err
	}

	fmt.Fprintf(r.out, "Saved %s\n", outputPath)
	return outputPath, total, fallbacks, nil
}

func (r *Runner) fallbacks() int {
	if fc, ok := r.translator.(fallbackCounter); ok {
		return fc.Fallbacks()
	}
	return 0
}

func (r *Runner) setState(s State) {
	r.state.Store(int32(s))
}

func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// summarize shortens a cell for the log
func summarize(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) > 40 {
		return string(runes[:40]) + "..."
	}
	return s
}
