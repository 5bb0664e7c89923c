// Package notify surfaces non-fatal events to the user, the toast analog of
// the journal UI. I/O failures are reported here and never crash the app.
package notify

import (
	"context"
	"time"
)

// Type classifies a notification.
type Type string

const (
	TypeInfo    Type = "info"
	TypeSuccess Type = "success"
	TypeError   Type = "error"
)

// Notification is one user-visible message.
type Notification struct {
	Type      Type
	Title     string
	Message   string
	Timestamp time.Time
}

// Notifier delivers notifications to the user.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// Multi fans a notification out to several channels; the first error wins
// but every channel is attempted.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, n Notification) error {
	var firstErr error
	for _, notifier := range m {
		if err := notifier.Notify(ctx, n); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Nop discards notifications.
type Nop struct{}

func (Nop) Notify(ctx context.Context, n Notification) error { return nil }
