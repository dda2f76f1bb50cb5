package batch

import "time"

// Result describes a finished run
type Result struct {
	OutputPath string
	Rows       int // cells translated
	Fallbacks  int // cells left untranslated after all retries
	Elapsed    time.Duration
	Err        error
}

// Succeeded reports whether the run wrote its output
func (r Result) Succeeded() bool {
	return r.Err == nil
}

// Observer receives progress from a running job. Calls come from the
// goroutine running the job.
type Observer interface {
	OnProgress(percent float64)
	OnComplete(result Result)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are ignored.
type ObserverFuncs struct {
	Progress func(percent float64)
	Complete func(result Result)
}

// OnProgress implements Observer
func (o ObserverFuncs) OnProgress(percent float64) {
	if o.Progress != nil {
		o.Progress(percent)
	}
}

// OnComplete implements Observer
func (o ObserverFuncs) OnComplete(result Result) {
	if o.Complete != nil {
		o.Complete(result)
	}
}
