package journal

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"tradelight/internal/models"
)

// countingSaver records every write it receives.
type countingSaver struct {
	mu    sync.Mutex
	saved []models.DayLog
	delay time.Duration
}

func (c *countingSaver) Save(ctx context.Context, userID string, log models.DayLog) error {
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.saved = append(c.saved, log)
	return nil
}

func (c *countingSaver) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.saved)
}

func (c *countingSaver) last() models.DayLog {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saved[len(c.saved)-1]
}

func TestAutoSaverCoalescesBursts(t *testing.T) {
	saver := &countingSaver{}
	auto := NewAutoSaver(saver, "u1", 50*time.Millisecond, zerolog.Nop(), nil)

	day := models.NewDayLog(testDate)
	for i := 1; i <= 10; i++ {
		day.Trades[0].PnL = float64(i * 10)
		auto.Queue(day)
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(150 * time.Millisecond)

	if got := saver.count(); got != 1 {
		t.Fatalf("writes = %d, want 1 for a burst inside the window", got)
	}
	if pnl := saver.last().Trades[0].PnL; pnl != 100 {
		t.Errorf("written pnl = %v, want the latest snapshot", pnl)
	}
}

func TestAutoSaverFiresAfterQuietPeriod(t *testing.T) {
	saver := &countingSaver{}
	auto := NewAutoSaver(saver, "u1", 30*time.Millisecond, zerolog.Nop(), nil)

	day := models.NewDayLog(testDate)
	day.Notes = "first"
	auto.Queue(day)
	time.Sleep(100 * time.Millisecond)

	day.Notes = "second"
	auto.Queue(day)
	time.Sleep(100 * time.Millisecond)

	if got := saver.count(); got != 2 {
		t.Fatalf("writes = %d, want 2 separate quiet periods", got)
	}
	if saver.last().Notes != "second" {
		t.Errorf("last write = %q", saver.last().Notes)
	}
}

func TestFlushWritesPendingImmediately(t *testing.T) {
	saver := &countingSaver{}
	auto := NewAutoSaver(saver, "u1", time.Hour, zerolog.Nop(), nil)

	day := models.NewDayLog(testDate)
	day.Notes = "flush me"
	auto.Queue(day)

	if err := auto.Flush(context.Background()); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if got := saver.count(); got != 1 {
		t.Fatalf("writes = %d, want 1", got)
	}
	if saver.last().Notes != "flush me" {
		t.Errorf("flushed notes = %q", saver.last().Notes)
	}

	// Nothing left pending: the timer write must not fire a duplicate.
	time.Sleep(50 * time.Millisecond)
	if got := saver.count(); got != 1 {
		t.Errorf("writes after flush = %d, want still 1", got)
	}
}

func TestFlushWaitsForInFlightWrite(t *testing.T) {
	saver := &countingSaver{delay: 80 * time.Millisecond}
	auto := NewAutoSaver(saver, "u1", 10*time.Millisecond, zerolog.Nop(), nil)

	day := models.NewDayLog(testDate)
	day.Notes = "slow write"
	auto.Queue(day)

	// Let the timer fire and enter the slow write.
	time.Sleep(30 * time.Millisecond)

	start := time.Now()
	if err := auto.Flush(context.Background()); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if waited := time.Since(start); waited < 40*time.Millisecond {
		t.Errorf("Flush returned after %v, should have waited for the in-flight write", waited)
	}
	if got := saver.count(); got != 1 {
		t.Errorf("writes = %d, want 1", got)
	}
}

func TestWritesLandInIssueOrder(t *testing.T) {
	saver := &countingSaver{delay: 60 * time.Millisecond}
	auto := NewAutoSaver(saver, "u1", 10*time.Millisecond, zerolog.Nop(), nil)

	first := models.NewDayLog(testDate)
	first.Notes = "first"
	auto.Queue(first)

	// Let the timer fire and enter the slow write.
	time.Sleep(30 * time.Millisecond)

	// A newer snapshot queued and flushed while the older write is in flight
	// must land after it, never before.
	second := models.NewDayLog(testDate)
	second.Notes = "second"
	auto.Queue(second)
	if err := auto.Flush(context.Background()); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	saver.mu.Lock()
	defer saver.mu.Unlock()
	if len(saver.saved) != 2 {
		t.Fatalf("writes = %d, want 2", len(saver.saved))
	}
	if saver.saved[0].Notes != "first" || saver.saved[1].Notes != "second" {
		t.Errorf("write order = %q then %q, want oldest first",
			saver.saved[0].Notes, saver.saved[1].Notes)
	}
}

func TestFlushWithNothingPendingIsNoOp(t *testing.T) {
	saver := &countingSaver{}
	auto := NewAutoSaver(saver, "u1", 30*time.Millisecond, zerolog.Nop(), nil)

	if err := auto.Flush(context.Background()); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if got := saver.count(); got != 0 {
		t.Errorf("writes = %d, want 0", got)
	}
}

func TestQueueSnapshotsAtCallTime(t *testing.T) {
	saver := &countingSaver{}
	auto := NewAutoSaver(saver, "u1", 20*time.Millisecond, zerolog.Nop(), nil)

	day := models.NewDayLog(testDate)
	day.Trades[0].PnL = 100
	auto.Queue(day)

	// Mutating the caller's copy after Queue must not leak into the write.
	day.Trades[0].PnL = -999

	if err := auto.Flush(context.Background()); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if pnl := saver.last().Trades[0].PnL; pnl != 100 {
		t.Errorf("written pnl = %v, want the snapshot at queue time", pnl)
	}
}

func TestStopFlushesAndDisablesQueue(t *testing.T) {
	saver := &countingSaver{}
	auto := NewAutoSaver(saver, "u1", time.Hour, zerolog.Nop(), nil)

	day := models.NewDayLog(testDate)
	day.Notes = "final"
	auto.Queue(day)

	if err := auto.Stop(context.Background()); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if got := saver.count(); got != 1 {
		t.Fatalf("writes = %d, want 1", got)
	}

	day.Notes = "after stop"
	auto.Queue(day)
	if err := auto.Flush(context.Background()); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if got := saver.count(); got != 1 {
		t.Errorf("writes = %d, queue after stop must be ignored", got)
	}
}

func TestDefaultDebounceApplied(t *testing.T) {
	auto := NewAutoSaver(&countingSaver{}, "u1", 0, zerolog.Nop(), nil)
	if auto.debounce != DefaultDebounce {
		t.Errorf("debounce = %v, want %v", auto.debounce, DefaultDebounce)
	}
}
