package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"tradelight/internal/models"
	"tradelight/internal/notify"
	"tradelight/internal/store"
)

// cacheKeyPrefix matches the slot naming of the original storage layout.
const cacheKeyPrefix = "dayLog-"

// DayLogStore round-trips a single day's record between the in-memory model,
// the local cache, and the remote document store with a cache-aside strategy.
type DayLogStore struct {
	remote   store.DocumentStore
	cache    store.LocalCache
	notifier notify.Notifier
	logger   zerolog.Logger
}

// NewDayLogStore creates a day-log store over the given collaborators.
// notifier may be nil when save failures need no user-visible surface.
func NewDayLogStore(remote store.DocumentStore, cache store.LocalCache, notifier notify.Notifier, logger zerolog.Logger) *DayLogStore {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &DayLogStore{
		remote:   remote,
		cache:    cache,
		notifier: notifier,
		logger:   logger,
	}
}

func docPath(userID, dayKey string) string {
	return "users/" + userID + "/tradeLogs/" + dayKey
}

func collectionPath(userID string) string {
	return "users/" + userID + "/tradeLogs"
}

// Load returns the day's record for the user. A parseable local cache entry
// is authoritative and skips the remote call entirely; a corrupt entry is
// logged and treated as a miss. A remote hit is written back into the cache
// so the next load for the day is cache-only. When neither tier has the day,
// a fresh default record anchored at date is returned.
func (s *DayLogStore) Load(ctx context.Context, userID string, date time.Time) (models.DayLog, error) {
	dayKey := models.DayKey(date)

	if raw, ok := s.cache.Get(cacheKeyPrefix + dayKey); ok {
		var log models.DayLog
		if err := json.Unmarshal([]byte(raw), &log); err != nil {
			s.logger.Warn().Err(err).Str("day", dayKey).
				Msg("Corrupt day log in local cache, falling back to remote")
		} else {
			return normalizeDayLog(log, date), nil
		}
	}

	doc, err := s.remote.Get(ctx, docPath(userID, dayKey))
	if err != nil {
		return models.DayLog{}, fmt.Errorf("loading day log %s: %w", dayKey, err)
	}
	if doc == nil {
		return models.NewDayLog(date), nil
	}

	log := normalizeDayLog(DecodeDayLog(doc), date)
	if raw, err := json.Marshal(log); err == nil {
		if err := s.cache.Set(cacheKeyPrefix+dayKey, string(raw)); err != nil {
			s.logger.Warn().Err(err).Str("day", dayKey).Msg("Failed to cache day log")
		}
	}
	return log, nil
}

// Save writes the record to the remote document (merge upsert) and, only
// after the remote write succeeded, mirrors the native record into the local
// cache. On remote failure the cache is left untouched so a later load
// rediscovers the confirmed remote state, and the failure is surfaced as a
// non-fatal notification.
func (s *DayLogStore) Save(ctx context.Context, userID string, log models.DayLog) error {
	dayKey := models.DayKey(log.Date)
	doc := EncodeDayLog(log)

	if err := s.remote.Set(ctx, docPath(userID, dayKey), doc, store.SetOptions{Merge: true}); err != nil {
		s.logger.Error().Err(err).Str("day", dayKey).Msg("Autosave failed")
		_ = s.notifier.Notify(ctx, notify.Notification{
			Type:    notify.TypeError,
			Title:   "Autosave Failed",
			Message: "Could not save your changes.",
		})
		return fmt.Errorf("saving day log %s: %w", dayKey, err)
	}

	raw, err := json.Marshal(log)
	if err != nil {
		return fmt.Errorf("serializing day log %s: %w", dayKey, err)
	}
	if err := s.cache.Set(cacheKeyPrefix+dayKey, string(raw)); err != nil {
		s.logger.Warn().Err(err).Str("day", dayKey).Msg("Failed to cache day log after save")
	}
	return nil
}

// LoadAll fetches every day record for the user from the remote collection.
// The local cache does not participate. Callers sort for display; the order
// here is whatever the store returned.
func (s *DayLogStore) LoadAll(ctx context.Context, userID string) ([]models.DayLog, error) {
	docs, err := s.remote.ListCollection(ctx, collectionPath(userID))
	if err != nil {
		return nil, fmt.Errorf("loading day logs: %w", err)
	}
	logs := make([]models.DayLog, 0, len(docs))
	for _, doc := range docs {
		log := DecodeDayLog(doc)
		logs = append(logs, normalizeDayLog(log, log.Date))
	}
	return logs, nil
}

// EvictDay drops the local cache slot for a day, forcing the next load to
// hit the remote store.
func (s *DayLogStore) EvictDay(date time.Time) error {
	return s.cache.Delete(cacheKeyPrefix + models.DayKey(date))
}

// normalizeDayLog backfills whatever a loaded record is missing: an anchored
// date, at least one trade, a known instrument, and the canonical session
// list on every trade.
func normalizeDayLog(log models.DayLog, fallbackDate time.Time) models.DayLog {
	if log.Date.IsZero() {
		log.Date = fallbackDate
	}
	if len(log.Trades) == 0 {
		log.Trades = []models.Trade{models.EmptyTrade()}
	}
	for i := range log.Trades {
		if log.Trades[i].Instrument == "" {
			log.Trades[i].Instrument = models.DefaultInstrument
		}
		log.Trades[i].Sessions = models.NormalizeSessions(log.Trades[i].Sessions)
	}
	return log
}
