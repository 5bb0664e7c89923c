package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
)

// Terminal writes notifications to a writer, stderr by default.
type Terminal struct {
	w     io.Writer
	color bool
}

// NewTerminal creates a terminal notifier writing to stderr.
func NewTerminal() *Terminal {
	t := NewTerminalWriter(os.Stderr)
	t.color = isTerminal(os.Stderr)
	return t
}

// NewTerminalWriter creates a terminal notifier writing to w without color.
func NewTerminalWriter(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

// Notify prints the notification as a single line with a colored level tag.
func (t *Terminal) Notify(ctx context.Context, n Notification) error {
	ts := n.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	tag := string(n.Type)
	if t.color {
		switch n.Type {
		case TypeError:
			tag = colorRed + tag + colorReset
		case TypeSuccess:
			tag = colorGreen + tag + colorReset
		default:
			tag = colorYellow + tag + colorReset
		}
	}
	_, err := fmt.Fprintf(t.w, "[%s] %s: %s: %s\n",
		ts.Format("15:04:05"), tag, n.Title, n.Message)
	return err
}
