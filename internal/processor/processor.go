package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/viper"

	"codeberg.org/snonux/banglacsv/internal/batch"
	"codeberg.org/snonux/banglacsv/internal/cli"
	"codeberg.org/snonux/banglacsv/internal/gui"
	"codeberg.org/snonux/banglacsv/internal/messages"
	"codeberg.org/snonux/banglacsv/internal/translation"
)

// Processor runs translation jobs configured from the command line
type Processor struct {
	flags  *cli.Flags
	config *translation.Config
	stack  *translation.Stack
	msgs   *messages.Localizer
	out    io.Writer
	errOut io.Writer
}

// NewProcessor builds the translator stack described by flags and config
func NewProcessor(ctx context.Context, flags *cli.Flags) (*Processor, error) {
	config := cli.TranslationConfig()
	if config.CacheMode == translation.CacheSQLite {
		if err := os.MkdirAll(filepath.Dir(config.CachePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	stack, err := translation.New(ctx, config)
	if err != nil {
		return nil, err
	}

	return newProcessor(flags, config, stack), nil
}

func newProcessor(flags *cli.Flags, config *translation.Config, stack *translation.Stack) *Processor {
	lang := viper.GetString("ui.lang")
	if lang == "" {
		lang = flags.Lang
	}
	return &Processor{
		flags:  flags,
		config: config,
		stack:  stack,
		msgs:   messages.New(lang),
		out:    os.Stdout,
		errOut: os.Stderr,
	}
}

// Close releases the translator stack
func (p *Processor) Close() error {
	return p.stack.Close()
}

// options returns the runner options from flags and config
func (p *Processor) options() batch.Options {
	pacing := p.flags.Pacing
	if viper.IsSet("batch.pacing") {
		pacing = viper.GetDuration("batch.pacing")
	}
	return batch.Options{
		Source: p.stack.Source,
		Target: p.stack.Target,
		Pacing: pacing,
	}
}

// job returns the job from the flags. The output directory falls back to
// output.directory from the config file or BANGLACSV_OUTPUT_DIRECTORY.
func (p *Processor) job() batch.Job {
	job := p.flags.Job()
	if job.OutputDir == "" {
		job.OutputDir = viper.GetString("output.directory")
	}
	return job
}

// RunGUIMode launches the GUI application
func (p *Processor) RunGUIMode() error {
	opts := p.options()

	app := gui.New(&gui.Config{
		Translator: p.stack,
		Source:     opts.Source,
		Target:     opts.Target,
		Pacing:     opts.Pacing,
		Lang:       p.msgs.Language(),
		Job:        p.job(),
	})
	app.Run()

	return nil
}

// RunBatch runs the job from the flags in the terminal. With --verbose every
// row is logged, otherwise a progress bar is shown.
func (p *Processor) RunBatch(ctx context.Context) error {
	opts := p.options()
	var observer batch.Observer

	if p.flags.Verbose {
		opts.Output = p.out
		observer = batch.ObserverFuncs{}
	} else {
		opts.Output = io.Discard
		observer = newBarObserver(p.errOut)
	}

	fmt.Fprintf(p.out, "Translating with %s (%s -> %s)\n", p.config.Backend,
		translation.LanguageName(opts.Source), translation.LanguageName(opts.Target))

	runner := batch.NewRunner(p.stack, opts)
	result, err := runner.Run(ctx, p.job(), observer)
	if err != nil {
		return errors.New(p.msgs.Error(err))
	}
	if !result.Succeeded() {
		return errors.New(p.msgs.Error(result.Err))
	}

	p.printSummary(result)
	return nil
}

func (p *Processor) printSummary(result batch.Result) {
	size := "?"
	if info, err := os.Stat(result.OutputPath); err == nil {
		size = humanize.Bytes(uint64(info.Size()))
	}

	fmt.Fprintf(p.out, "\n=== Translation Summary ===\n")
	fmt.Fprintf(p.out, "Rows translated: %s\n", humanize.Comma(int64(result.Rows)))
	if result.Fallbacks > 0 {
		fmt.Fprintf(p.out, "Kept original text: %s (after %d attempts each)\n",
			humanize.Comma(int64(result.Fallbacks)), p.stack.Attempts())
		if err := p.stack.LastError(); err != nil {
			fmt.Fprintf(p.out, "Last translation error: %v\n", err)
		}
	}
	fmt.Fprintf(p.out, "Elapsed: %s\n", result.Elapsed.Round(100*time.Millisecond))
	fmt.Fprintf(p.out, "Output: %s (%s)\n", result.OutputPath, size)
	fmt.Fprintf(p.out, "===========================\n")
	fmt.Fprintln(p.out, p.msgs.Success(result))
}

// barObserver renders job progress as a terminal progress bar
type barObserver struct {
	bar *progressbar.ProgressBar
	w   io.Writer
}

func newBarObserver(w io.Writer) *barObserver {
	bar := progressbar.NewOptions(100,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan]Translating[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
	return &barObserver{bar: bar, w: w}
}

// OnProgress implements batch.Observer
func (o *barObserver) OnProgress(percent float64) {
	o.bar.Set(int(percent))
}

// OnComplete implements batch.Observer
func (o *barObserver) OnComplete(batch.Result) {
	o.bar.Finish()
	fmt.Fprintln(o.w)
}
