package notify

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type failing struct{ err error }

func (f failing) Notify(ctx context.Context, n Notification) error { return f.err }

func TestTerminalWriterFormat(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminalWriter(&buf)

	n := Notification{
		Type:      TypeError,
		Title:     "Autosave Failed",
		Message:   "Could not save your changes.",
		Timestamp: time.Date(2025, 6, 12, 9, 45, 0, 0, time.UTC),
	}
	if err := term.Notify(context.Background(), n); err != nil {
		t.Fatalf("Notify: %v", err)
	}

	got := buf.String()
	want := "[09:45:00] error: Autosave Failed: Could not save your changes.\n"
	if got != want {
		t.Errorf("line = %q, want %q", got, want)
	}
}

func TestMultiFansOut(t *testing.T) {
	var first, second bytes.Buffer
	m := Multi{NewTerminalWriter(&first), NewTerminalWriter(&second)}

	n := Notification{Type: TypeInfo, Title: "Saved", Message: "ok"}
	if err := m.Notify(context.Background(), n); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if first.Len() == 0 || second.Len() == 0 {
		t.Error("notification not delivered to every channel")
	}
}

func TestMultiAttemptsEveryChannelOnError(t *testing.T) {
	var buf bytes.Buffer
	boom := errors.New("boom")
	m := Multi{failing{err: boom}, NewTerminalWriter(&buf)}

	err := m.Notify(context.Background(), Notification{Type: TypeError, Title: "x", Message: "y"})
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want the first channel's error", err)
	}
	if buf.Len() == 0 {
		t.Error("later channel skipped after an earlier error")
	}
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	l := NewLog(logger)
	n := Notification{Type: TypeError, Title: "Autosave Failed", Message: "Could not save your changes."}
	if err := l.Notify(context.Background(), n); err != nil {
		t.Fatalf("Notify: %v", err)
	}

	line := buf.String()
	if !strings.Contains(line, `"level":"warn"`) {
		t.Errorf("error notification logged as %q, want warn level", line)
	}
	if !strings.Contains(line, "Autosave Failed") {
		t.Errorf("title missing from %q", line)
	}
}
