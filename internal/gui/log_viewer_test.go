package gui

import (
	"strings"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)
}

func TestLogBuffer_NewestFirst(t *testing.T) {
	b := newLogBuffer(10)
	b.now = fixedClock

	if !b.write([]byte("Row 1/2: এক\nRow 2/2: দুই\n")) {
		t.Fatal("Expected messages to be added")
	}

	want := "[15:04:05] Row 2/2: দুই\n[15:04:05] Row 1/2: এক"
	if got := b.text(); got != want {
		t.Errorf("text() = %q, want %q", got, want)
	}
}

func TestLogBuffer_PartialLines(t *testing.T) {
	b := newLogBuffer(10)
	b.now = fixedClock

	if b.write([]byte("Saved /tmp/")) {
		t.Error("Partial line should not be added yet")
	}
	if !b.write([]byte("out.csv\r\n\n   \n")) {
		t.Error("Completed line should be added")
	}

	if got := b.text(); got != "[15:04:05] Saved /tmp/out.csv" {
		t.Errorf("text() = %q", got)
	}
}

func TestLogBuffer_Trims(t *testing.T) {
	b := newLogBuffer(3)
	b.now = fixedClock

	for i := 0; i < 5; i++ {
		b.write([]byte("line\n"))
	}
	if got := strings.Count(b.text(), "line"); got != 3 {
		t.Errorf("Expected 3 messages, got %d", got)
	}

	b.clear()
	if b.text() != "" {
		t.Error("clear() should drop all messages")
	}
}
