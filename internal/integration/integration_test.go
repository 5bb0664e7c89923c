// Package integration provides end-to-end integration tests for the journal.
package integration

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"tradelight/internal/dashboard"
	"tradelight/internal/journal"
	"tradelight/internal/models"
	"tradelight/internal/settings"
	"tradelight/internal/store"
)

// TestEndToEndWorkflow drives the full edit path: load a fresh day, edit it
// through the form, autosave, and read it back through both tiers.
func TestEndToEndWorkflow(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	remote := store.NewMemoryStore()
	cache := store.NewMemoryCache()
	logs := journal.NewDayLogStore(remote, cache, nil, zerolog.Nop())

	const userID = "user-1"
	date := time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)

	// A fresh day comes back as a default record.
	day, err := logs.Load(ctx, userID, date)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(day.Trades) != 1 {
		t.Fatalf("expected 1 seed trade, got %d", len(day.Trades))
	}
	if day.Trades[0].Instrument != models.DefaultInstrument {
		t.Fatalf("expected default instrument, got %q", day.Trades[0].Instrument)
	}

	// Edit through the form with a fast autosaver behind it.
	saver := journal.NewAutoSaver(logs, userID, 20*time.Millisecond, zerolog.Nop(), nil)
	form := journal.NewForm(day, saver.Queue)

	form.SetTotalPoints(25)
	form.SetContracts(2)
	form.SetModel("Silver Bullet")
	form.SetSession("New York", models.ActionDisplacement, models.DirectionUp, models.SweepLow)
	form.SetNotes("clean session")

	if err := saver.Flush(ctx); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	// NQ at 20 points per contract.
	wantPnL := 25.0 * 20 * 2

	// Cache tier serves the next load.
	cached, err := logs.Load(ctx, userID, date)
	if err != nil {
		t.Fatalf("Load after save: %v", err)
	}
	if cached.Trades[0].PnL != wantPnL {
		t.Errorf("cached PnL = %v, want %v", cached.Trades[0].PnL, wantPnL)
	}
	if cached.Notes != "clean session" {
		t.Errorf("cached notes = %q", cached.Notes)
	}

	// Evicting the cache forces the remote tier, which must agree.
	if err := logs.EvictDay(date); err != nil {
		t.Fatalf("EvictDay: %v", err)
	}
	remoteCopy, err := logs.Load(ctx, userID, date)
	if err != nil {
		t.Fatalf("Load from remote: %v", err)
	}
	if remoteCopy.Trades[0].PnL != wantPnL {
		t.Errorf("remote PnL = %v, want %v", remoteCopy.Trades[0].PnL, wantPnL)
	}
	if remoteCopy.Trades[0].Model != "Silver Bullet" {
		t.Errorf("remote model = %q", remoteCopy.Trades[0].Model)
	}
	ny := sessionByName(t, remoteCopy.Trades[0].Sessions, "New York")
	if ny.Action != models.ActionDisplacement || ny.Direction != models.DirectionUp || ny.Sweep != models.SweepLow {
		t.Errorf("New York session = %+v", ny)
	}
}

// TestDashboardOverJournal checks that records written through the store
// surface in the dashboard rollups.
func TestDashboardOverJournal(t *testing.T) {
	ctx := context.Background()

	remote := store.NewMemoryStore()
	cache := store.NewMemoryCache()
	logs := journal.NewDayLogStore(remote, cache, nil, zerolog.Nop())

	const userID = "user-1"
	days := []struct {
		date time.Time
		pnl  float64
	}{
		{time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), 400},
		{time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC), -150},
		{time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC), 250},
	}
	for _, d := range days {
		day := models.NewDayLog(d.date)
		day.Trades[0].PnL = d.pnl
		if err := logs.Save(ctx, userID, day); err != nil {
			t.Fatalf("Save %s: %v", models.DayKey(d.date), err)
		}
	}

	all, err := logs.LoadAll(ctx, userID)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("LoadAll returned %d records, want 3", len(all))
	}

	stats := dashboard.ComputeStats(all)
	if stats.NetPnL != 500 {
		t.Errorf("NetPnL = %v, want 500", stats.NetPnL)
	}
	if stats.GreenDays != 2 || stats.RedDays != 1 {
		t.Errorf("green/red = %d/%d, want 2/1", stats.GreenDays, stats.RedDays)
	}

	anchor := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	progress := dashboard.TrackProgress(dashboard.FilterMonth(all, anchor), 30)
	if progress.Logged != 3 {
		t.Errorf("Logged = %d, want 3", progress.Logged)
	}
}

// TestSettingsSubscription checks preference persistence and change fan-out.
func TestSettingsSubscription(t *testing.T) {
	cache := store.NewMemoryCache()
	prefs := settings.New(cache)

	var seen []settings.Values
	unsubscribe := prefs.Subscribe(func(v settings.Values) {
		seen = append(seen, v)
	})

	if err := prefs.SetTheme("theme-rose"); err != nil {
		t.Fatalf("SetTheme: %v", err)
	}
	if err := prefs.SetLogGoal(20); err != nil {
		t.Fatalf("SetLogGoal: %v", err)
	}

	if len(seen) != 2 {
		t.Fatalf("subscriber saw %d changes, want 2", len(seen))
	}
	if seen[1].Theme != "theme-rose" || seen[1].LogGoal != 20 {
		t.Errorf("final snapshot = %+v", seen[1])
	}

	unsubscribe()
	if err := prefs.SetFont("font-mono"); err != nil {
		t.Fatalf("SetFont: %v", err)
	}
	if len(seen) != 2 {
		t.Errorf("subscriber notified after unsubscribe")
	}

	// A fresh settings instance over the same cache sees persisted values.
	reloaded := settings.New(cache).Snapshot()
	if reloaded.Theme != "theme-rose" || reloaded.Font != "font-mono" || reloaded.LogGoal != 20 {
		t.Errorf("reloaded snapshot = %+v", reloaded)
	}
}

func sessionByName(t *testing.T, sessions []models.SessionEntry, name string) models.SessionEntry {
	t.Helper()
	for _, s := range sessions {
		if s.SessionName == name {
			return s
		}
	}
	t.Fatalf("session %q not found", name)
	return models.SessionEntry{}
}
