package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// Log mirrors notifications into the structured log, so a failure surfaced
// on the terminal also lands in the log file.
type Log struct {
	logger zerolog.Logger
}

// NewLog creates a notifier writing to logger.
func NewLog(logger zerolog.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Notify(ctx context.Context, n Notification) error {
	event := l.logger.Info()
	if n.Type == TypeError {
		event = l.logger.Warn()
	}
	event.Str("title", n.Title).Msg(n.Message)
	return nil
}
