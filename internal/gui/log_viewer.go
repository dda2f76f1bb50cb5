package gui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// logBuffer keeps the newest messages first, up to max entries
type logBuffer struct {
	mu       sync.Mutex
	messages []string
	max      int
	partial  string
	now      func() time.Time
}

func newLogBuffer(max int) *logBuffer {
	return &logBuffer{max: max, now: time.Now}
}

// write splits p into lines and stores the complete ones. It returns true
// when at least one message was added.
func (b *logBuffer) write(p []byte) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	data := b.partial + string(p)
	lines := strings.Split(data, "\n")
	b.partial = lines[len(lines)-1]

	added := false
	for _, line := range lines[:len(lines)-1] {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		b.add(line)
		added = true
	}
	return added
}

func (b *logBuffer) add(message string) {
	timestamp := b.now().Format("15:04:05")
	b.messages = append([]string{fmt.Sprintf("[%s] %s", timestamp, message)}, b.messages...)

	// Trim if too many messages (remove oldest from the end)
	if len(b.messages) > b.max {
		b.messages = b.messages[:b.max]
	}
}

func (b *logBuffer) text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.Join(b.messages, "\n")
}

func (b *logBuffer) clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = b.messages[:0]
	b.partial = ""
}

// LogViewer is a widget that displays the job log. It is an io.Writer, so
// the batch runner can write its per-row lines straight into it.
type LogViewer struct {
	widget.BaseWidget

	container  *fyne.Container
	logEntry   *widget.Entry
	scrollView *container.Scroll

	buf *logBuffer
}

// NewLogViewer creates a new log viewer widget
func NewLogViewer(title string) *LogViewer {
	v := &LogViewer{
		buf: newLogBuffer(1000), // Keep last 1000 messages
	}

	// Create log entry (read-only multiline)
	v.logEntry = widget.NewMultiLineEntry()
	v.logEntry.Disable()
	v.logEntry.Wrapping = fyne.TextWrapWord

	v.scrollView = container.NewScroll(v.logEntry)
	v.scrollView.SetMinSize(fyne.NewSize(0, 180))
	v.scrollView.Direction = container.ScrollBoth

	v.container = container.NewBorder(
		widget.NewLabel(title),
		nil,
		nil,
		nil,
		v.scrollView,
	)

	v.ExtendBaseWidget(v)
	return v
}

// CreateRenderer implements fyne.Widget
func (v *LogViewer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.container)
}

// Write implements io.Writer. It may be called from any goroutine.
func (v *LogViewer) Write(p []byte) (int, error) {
	if v.buf.write(p) {
		v.refresh()
	}
	return len(p), nil
}

// Log adds a formatted message
func (v *LogViewer) Log(format string, args ...interface{}) {
	v.Write([]byte(fmt.Sprintf(format, args...) + "\n"))
}

// Clear clears all log messages
func (v *LogViewer) Clear() {
	v.buf.clear()
	v.refresh()
}

func (v *LogViewer) refresh() {
	text := v.buf.text()

	// Update UI on main thread
	fyne.Do(func() {
		v.logEntry.SetText(text)

		// Keep scroll at top to show newest messages
		v.scrollView.Offset = fyne.NewPos(0, 0)
		v.scrollView.Refresh()
	})
}
