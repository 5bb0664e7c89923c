package journal

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"tradelight/internal/models"
)

// DefaultDebounce is the quiet period between the last edit and the write.
const DefaultDebounce = 2000 * time.Millisecond

const writeTimeout = 30 * time.Second

// Saver is the write side of the day-log store, as the autosaver needs it.
type Saver interface {
	Save(ctx context.Context, userID string, log models.DayLog) error
}

// AutoSaver debounces edits to a single day record. Each Queue replaces the
// pending snapshot and restarts the timer; only the latest snapshot is ever
// written. Flush bypasses the debounce window but still waits out any write
// already in flight, so the flushed state can never be overwritten by an
// older one.
type AutoSaver struct {
	saver    Saver
	userID   string
	debounce time.Duration
	logger   zerolog.Logger
	onError  func(error)

	mu      sync.Mutex
	timer   *time.Timer
	pending *models.DayLog
	stopped bool

	// writeMu serializes physical writes so they land in queue order.
	writeMu sync.Mutex
}

// NewAutoSaver creates an autosaver for one user's edits. A non-positive
// debounce falls back to DefaultDebounce. onError receives write failures
// from the background timer path and may be nil.
func NewAutoSaver(saver Saver, userID string, debounce time.Duration, logger zerolog.Logger, onError func(error)) *AutoSaver {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &AutoSaver{
		saver:    saver,
		userID:   userID,
		debounce: debounce,
		logger:   logger,
		onError:  onError,
	}
}

// Queue records log as the pending snapshot and (re)arms the debounce timer.
// Queue never blocks on I/O.
func (a *AutoSaver) Queue(log models.DayLog) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopped {
		return
	}
	snapshot := log.Clone()
	a.pending = &snapshot
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.debounce, a.fire)
}

// fire pops and writes the pending snapshot under writeMu, so the pop and
// the write are one atomic step and snapshots land strictly in queue order.
func (a *AutoSaver) fire() {
	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	pending := a.pop(false)
	if pending == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := a.saver.Save(ctx, a.userID, *pending); err != nil {
		a.logger.Error().Err(err).Msg("Debounced save failed")
		if a.onError != nil {
			a.onError(err)
		}
	}
}

// Flush writes the pending snapshot immediately, if there is one. It returns
// once the write (and any write already running) has finished.
func (a *AutoSaver) Flush(ctx context.Context) error {
	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	pending := a.pop(true)
	if pending == nil {
		return nil
	}
	return a.saver.Save(ctx, a.userID, *pending)
}

// Stop flushes any pending snapshot and disables further queuing.
func (a *AutoSaver) Stop(ctx context.Context) error {
	a.mu.Lock()
	a.stopped = true
	a.mu.Unlock()
	return a.Flush(ctx)
}

// pop takes the pending snapshot. Callers hold writeMu. stopTimer disarms a
// still-armed timer so the popped snapshot cannot also fire later.
func (a *AutoSaver) pop(stopTimer bool) *models.DayLog {
	a.mu.Lock()
	defer a.mu.Unlock()
	pending := a.pending
	a.pending = nil
	if stopTimer && a.timer != nil {
		a.timer.Stop()
	}
	a.timer = nil
	return pending
}
