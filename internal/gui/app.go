package gui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/banglacsv/internal"
	"codeberg.org/snonux/banglacsv/internal/batch"
	"codeberg.org/snonux/banglacsv/internal/messages"
	"codeberg.org/snonux/banglacsv/internal/translation"
)

// Application represents the main GUI application
type Application struct {
	// Fyne components
	app    fyne.App
	window fyne.Window

	// UI elements
	inputEntry  *widget.Entry
	columnEntry *widget.Entry
	rangeEntry  *widget.Entry
	outputEntry *widget.Entry
	startButton *ttwidget.Button
	progressBar *widget.ProgressBar
	statusLabel *widget.Label
	logViewer   *LogViewer

	// Job execution
	runner *batch.Runner
	msgs   *messages.Localizer

	// Configuration
	config *Config

	// Background processing
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Config holds GUI application configuration
type Config struct {
	Translator translation.Translator
	Source     string
	Target     string
	Pacing     time.Duration
	Lang       string    // user interface language, "en" or "bn"
	Job        batch.Job // initial form values
}

// DefaultConfig returns default GUI configuration
func DefaultConfig() *Config {
	return &Config{
		Translator: translation.NewRetrying(translation.NewGoogleTranslator(), translation.DefaultAttempts, translation.DefaultRetryDelay),
		Source:     translation.DefaultSource,
		Target:     translation.DefaultTarget,
		Pacing:     batch.DefaultPacing,
		Lang:       "en",
	}
}

// New creates a new GUI application
func New(config *Config) *Application {
	if config == nil {
		config = DefaultConfig()
	} else if config.Translator == nil {
		config.Translator = DefaultConfig().Translator
	}

	ctx, cancel := context.WithCancel(context.Background())

	myApp := app.NewWithID("org.codeberg.snonux.banglacsv")
	myApp.SetIcon(GetAppIcon())

	a := &Application{
		app:    myApp,
		config: config,
		msgs:   messages.New(config.Lang),
		ctx:    ctx,
		cancel: cancel,
	}

	a.setupUI()

	a.runner = batch.NewRunner(config.Translator, batch.Options{
		Source: config.Source,
		Target: config.Target,
		Pacing: config.Pacing,
		Output: io.MultiWriter(os.Stdout, a.logViewer),
	})

	return a
}

// setupUI creates the main user interface
func (a *Application) setupUI() {
	a.window = a.app.NewWindow(fmt.Sprintf("%s v%s", a.msgs.T("WindowTitle", nil), internal.Version))
	a.window.SetIcon(GetAppIcon())
	a.window.Resize(fyne.NewSize(640, 520))

	job := a.config.Job

	a.inputEntry = widget.NewEntry()
	a.inputEntry.SetPlaceHolder(a.msgs.T("InputPlaceholder", nil))
	a.inputEntry.SetText(job.InputPath)
	inputBrowse := widget.NewButtonWithIcon(a.msgs.T("BrowseButton", nil), theme.FileIcon(), a.onBrowseInput)

	a.columnEntry = widget.NewEntry()
	a.columnEntry.SetPlaceHolder(a.msgs.T("ColumnPlaceholder", nil))
	a.columnEntry.SetText(job.Column)

	a.rangeEntry = widget.NewEntry()
	a.rangeEntry.SetPlaceHolder(a.msgs.T("RangePlaceholder", nil))
	a.rangeEntry.SetText(job.Range)
	a.rangeEntry.OnSubmitted = func(string) { a.onStart() }

	a.outputEntry = widget.NewEntry()
	a.outputEntry.SetPlaceHolder(a.msgs.T("OutputPlaceholder", nil))
	a.outputEntry.SetText(job.OutputDir)
	outputBrowse := widget.NewButtonWithIcon(a.msgs.T("BrowseButton", nil), theme.FolderOpenIcon(), a.onBrowseOutput)

	form := container.New(layout.NewFormLayout(),
		widget.NewLabel(a.msgs.T("InputLabel", nil)),
		container.NewBorder(nil, nil, nil, inputBrowse, a.inputEntry),
		widget.NewLabel(a.msgs.T("ColumnLabel", nil)),
		a.columnEntry,
		widget.NewLabel(a.msgs.T("RangeLabel", nil)),
		a.rangeEntry,
		widget.NewLabel(a.msgs.T("OutputLabel", nil)),
		container.NewBorder(nil, nil, nil, outputBrowse, a.outputEntry),
	)

	a.startButton = ttwidget.NewButtonWithIcon(a.msgs.T("StartButton", nil), theme.MediaPlayIcon(), a.onStart)
	a.startButton.Importance = widget.HighImportance

	a.progressBar = widget.NewProgressBar()
	a.progressBar.Min = 0
	a.progressBar.Max = 100

	a.statusLabel = widget.NewLabel("")
	tip := widget.NewLabel(a.msgs.T("Tip", nil))
	tip.Importance = widget.LowImportance

	a.logViewer = NewLogViewer(a.msgs.T("LogTitle", nil))

	content := container.NewBorder(
		container.NewVBox(
			form,
			a.startButton,
			a.progressBar,
			a.statusLabel,
			tip,
			widget.NewSeparator(),
		),
		nil,
		nil,
		nil,
		a.logViewer,
	)

	a.window.SetContent(fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas()))

	// Tooltips need the tooltip layer
	a.startButton.SetToolTip(a.msgs.T("StartTooltip", nil))

	a.window.SetOnClosed(func() {
		a.cancel()
		a.wg.Wait()
		log.SetOutput(os.Stderr)
	})
}

// Run starts the GUI application
func (a *Application) Run() {
	log.SetOutput(io.MultiWriter(os.Stderr, a.logViewer))
	a.window.ShowAndRun()
}

func (a *Application) onBrowseInput() {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		a.inputEntry.SetText(reader.URI().Path())
	}, a.window)
	fileDialog.SetFilter(storage.NewExtensionFileFilter([]string{".csv"}))
	fileDialog.Show()
}

func (a *Application) onBrowseOutput() {
	folderDialog := dialog.NewFolderOpen(func(dir fyne.ListableURI, err error) {
		if err != nil || dir == nil {
			return
		}
		a.outputEntry.SetText(dir.Path())
	}, a.window)

	// Try to start in the current output directory
	if current := strings.TrimSpace(a.outputEntry.Text); current != "" {
		if uri, err := storage.ListerForURI(storage.NewFileURI(current)); err == nil {
			folderDialog.SetLocation(uri)
		}
	}

	folderDialog.Show()
}

// currentJob reads the job parameters from the form
func (a *Application) currentJob() batch.Job {
	return batch.Job{
		InputPath: strings.TrimSpace(a.inputEntry.Text),
		Column:    strings.TrimSpace(a.columnEntry.Text),
		Range:     strings.TrimSpace(a.rangeEntry.Text),
		OutputDir: strings.TrimSpace(a.outputEntry.Text),
	}
}

// onStart validates the form on the UI thread and runs the job in the
// background. The start button stays disabled until the job completes.
func (a *Application) onStart() {
	// Enter in the range field bypasses the disabled button
	if a.startButton.Disabled() {
		return
	}
	if a.runner.Running() {
		a.showError(batch.ErrJobRunning)
		return
	}

	job := a.currentJob()
	if _, _, err := job.Validate(); err != nil {
		a.showError(err)
		return
	}

	a.startButton.Disable()
	a.logViewer.Clear()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		// Run validates again; the file may have gone away since
		if _, err := a.runner.Run(a.ctx, job, &formObserver{app: a}); err != nil {
			fyne.Do(func() {
				if reenableAfter(err) {
					a.startButton.Enable()
				}
				a.showError(err)
			})
		}
	}()
}

// reenableAfter reports whether the start button may be enabled again after
// Run refused a job. A refusal because another job runs leaves it to that
// job's completion.
func reenableAfter(err error) bool {
	return !errors.Is(err, batch.ErrJobRunning)
}

func (a *Application) showError(err error) {
	title, message := resultDialog(a.msgs, batch.Result{Err: err})
	dialog.ShowInformation(title, message, a.window)
}

// resultDialog returns the localized dialog title and message for a result
func resultDialog(msgs *messages.Localizer, result batch.Result) (string, string) {
	if !result.Succeeded() {
		return msgs.T("ErrorTitle", nil), msgs.Error(result.Err)
	}
	return msgs.T("SuccessTitle", nil), msgs.Success(result)
}

// formObserver forwards job progress to the form on the UI thread
type formObserver struct {
	app *Application
}

// OnProgress implements batch.Observer
func (o *formObserver) OnProgress(percent float64) {
	fyne.Do(func() {
		o.app.progressBar.SetValue(percent)
		o.app.statusLabel.SetText(internal.FormatPercent(percent))
	})
}

// OnComplete implements batch.Observer
func (o *formObserver) OnComplete(result batch.Result) {
	a := o.app
	fyne.Do(func() {
		a.startButton.Enable()

		title, message := resultDialog(a.msgs, result)
		dialog.ShowInformation(title, message, a.window)
	})
}
