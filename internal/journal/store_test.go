package journal

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"tradelight/internal/models"
	"tradelight/internal/notify"
	"tradelight/internal/store"
)

var testDate = time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)

func newTestStore() (*DayLogStore, *store.MemoryStore, *store.MemoryCache) {
	remote := store.NewMemoryStore()
	cache := store.NewMemoryCache()
	return NewDayLogStore(remote, cache, nil, zerolog.Nop()), remote, cache
}

// failingStore wraps a MemoryStore and fails writes on demand.
type failingStore struct {
	*store.MemoryStore
	mu       sync.Mutex
	failSet  bool
	setCalls int
}

func (f *failingStore) Set(ctx context.Context, path string, doc store.Document, opts store.SetOptions) error {
	f.mu.Lock()
	f.setCalls++
	fail := f.failSet
	f.mu.Unlock()
	if fail {
		return errors.New("write refused")
	}
	return f.MemoryStore.Set(ctx, path, doc, opts)
}

// recordingNotifier captures notifications for assertions.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []notify.Notification
}

func (r *recordingNotifier) Notify(ctx context.Context, n notify.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return nil
}

func TestLoadAbsentReturnsDefault(t *testing.T) {
	logs, _, _ := newTestStore()

	day, err := logs.Load(context.Background(), "u1", testDate)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !day.Date.Equal(testDate) {
		t.Errorf("date = %v", day.Date)
	}
	if len(day.Trades) != 1 {
		t.Fatalf("trades = %d, want 1 seed trade", len(day.Trades))
	}
	if day.Trades[0].Instrument != models.DefaultInstrument {
		t.Errorf("instrument = %q", day.Trades[0].Instrument)
	}
	if day.Notes != "" {
		t.Errorf("notes = %q", day.Notes)
	}
}

func TestLoadPrefersCache(t *testing.T) {
	logs, remote, cache := newTestStore()
	ctx := context.Background()

	// Seed the remote with a conflicting record.
	remoteDay := models.NewDayLog(testDate)
	remoteDay.Notes = "remote copy"
	if err := remote.Set(ctx, docPath("u1", models.DayKey(testDate)), EncodeDayLog(remoteDay), store.SetOptions{Merge: true}); err != nil {
		t.Fatal(err)
	}

	cachedDay := models.NewDayLog(testDate)
	cachedDay.Notes = "cached copy"
	raw, _ := json.Marshal(cachedDay)
	if err := cache.Set(cacheKeyPrefix+models.DayKey(testDate), string(raw)); err != nil {
		t.Fatal(err)
	}

	day, err := logs.Load(ctx, "u1", testDate)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if day.Notes != "cached copy" {
		t.Errorf("notes = %q, want the cached record", day.Notes)
	}
}

func TestLoadCorruptCacheFallsThrough(t *testing.T) {
	logs, remote, cache := newTestStore()
	ctx := context.Background()

	remoteDay := models.NewDayLog(testDate)
	remoteDay.Notes = "remote copy"
	if err := remote.Set(ctx, docPath("u1", models.DayKey(testDate)), EncodeDayLog(remoteDay), store.SetOptions{Merge: true}); err != nil {
		t.Fatal(err)
	}
	if err := cache.Set(cacheKeyPrefix+models.DayKey(testDate), "{not json"); err != nil {
		t.Fatal(err)
	}

	day, err := logs.Load(ctx, "u1", testDate)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if day.Notes != "remote copy" {
		t.Errorf("notes = %q, want remote fallthrough", day.Notes)
	}

	// The remote hit was written back over the corrupt entry.
	raw, ok := cache.Get(cacheKeyPrefix + models.DayKey(testDate))
	if !ok {
		t.Fatal("cache not repopulated")
	}
	var cached models.DayLog
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		t.Fatalf("cache still corrupt: %v", err)
	}
	if cached.Notes != "remote copy" {
		t.Errorf("cached notes = %q", cached.Notes)
	}
}

func TestSaveWritesRemoteThenCache(t *testing.T) {
	logs, remote, cache := newTestStore()
	ctx := context.Background()

	day := models.NewDayLog(testDate)
	day.Trades[0].PnL = 420
	if err := logs.Save(ctx, "u1", day); err != nil {
		t.Fatalf("Save: %v", err)
	}

	doc, err := remote.Get(ctx, docPath("u1", models.DayKey(testDate)))
	if err != nil {
		t.Fatalf("remote Get: %v", err)
	}
	if doc == nil {
		t.Fatal("remote missing the record")
	}

	raw, ok := cache.Get(cacheKeyPrefix + models.DayKey(testDate))
	if !ok {
		t.Fatal("cache missing the record")
	}
	var cached models.DayLog
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		t.Fatalf("cache payload: %v", err)
	}
	if cached.Trades[0].PnL != 420 {
		t.Errorf("cached pnl = %v", cached.Trades[0].PnL)
	}
}

func TestSaveFailureLeavesCacheUntouched(t *testing.T) {
	remote := &failingStore{MemoryStore: store.NewMemoryStore()}
	cache := store.NewMemoryCache()
	notifier := &recordingNotifier{}
	logs := NewDayLogStore(remote, cache, notifier, zerolog.Nop())
	ctx := context.Background()

	// Establish a known cached state first.
	first := models.NewDayLog(testDate)
	first.Notes = "confirmed"
	if err := logs.Save(ctx, "u1", first); err != nil {
		t.Fatalf("initial Save: %v", err)
	}

	remote.failSet = true
	second := first.Clone()
	second.Notes = "unconfirmed edit"
	if err := logs.Save(ctx, "u1", second); err == nil {
		t.Fatal("Save succeeded against a failing remote")
	}

	raw, ok := cache.Get(cacheKeyPrefix + models.DayKey(testDate))
	if !ok {
		t.Fatal("cache entry vanished")
	}
	var cached models.DayLog
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		t.Fatal(err)
	}
	if cached.Notes != "confirmed" {
		t.Errorf("cache holds %q, want the last confirmed state", cached.Notes)
	}

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if len(notifier.sent) != 1 {
		t.Fatalf("notifications = %d, want 1", len(notifier.sent))
	}
	n := notifier.sent[0]
	if n.Type != notify.TypeError || n.Title != "Autosave Failed" {
		t.Errorf("notification = %+v", n)
	}
}

func TestLoadAllIgnoresCache(t *testing.T) {
	logs, _, cache := newTestStore()
	ctx := context.Background()

	dates := []time.Time{
		testDate,
		testDate.AddDate(0, 0, 1),
		testDate.AddDate(0, 0, 2),
	}
	for i, d := range dates {
		day := models.NewDayLog(d)
		day.Trades[0].PnL = float64((i + 1) * 100)
		if err := logs.Save(ctx, "u1", day); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	// A cache-only day must not appear in the bulk load.
	orphan := models.NewDayLog(testDate.AddDate(0, 0, 10))
	raw, _ := json.Marshal(orphan)
	if err := cache.Set(cacheKeyPrefix+orphan.Key(), string(raw)); err != nil {
		t.Fatal(err)
	}

	all, err := logs.LoadAll(ctx, "u1")
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("LoadAll = %d records, want 3 (remote only)", len(all))
	}
}

func TestLoadAllScopedPerUser(t *testing.T) {
	logs, _, _ := newTestStore()
	ctx := context.Background()

	if err := logs.Save(ctx, "u1", models.NewDayLog(testDate)); err != nil {
		t.Fatal(err)
	}
	if err := logs.Save(ctx, "u2", models.NewDayLog(testDate)); err != nil {
		t.Fatal(err)
	}

	all, err := logs.LoadAll(ctx, "u1")
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("LoadAll = %d records, want 1", len(all))
	}
}
