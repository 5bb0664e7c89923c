// Package journal implements the local-first day-log core: load/save of a
// single day's record across an in-memory model, a local cache, and a remote
// document store, plus the debounced write-back.
package journal

import (
	"time"

	"tradelight/internal/models"
	"tradelight/internal/store"
)

// The codec is a two-way mapping with a fixed default table per field. On
// encode, every field of the schema is written explicitly (no field is ever
// "missing" in a payload we produce) and dates become the store-native
// timestamp type, recursively. On decode, missing fields take their schema
// default and timestamps become calendar dates.

// EncodeDayLog converts an in-memory record for the storage boundary.
func EncodeDayLog(log models.DayLog) store.Document {
	trades := make([]any, len(log.Trades))
	for i, t := range log.Trades {
		trades[i] = encodeTrade(t)
	}
	return store.Document{
		"date":   store.NewTimestamp(log.Date),
		"notes":  log.Notes,
		"trades": trades,
	}
}

func encodeTrade(t models.Trade) store.Document {
	sessions := make([]any, len(t.Sessions))
	for i, s := range t.Sessions {
		sessions[i] = store.Document{
			"sessionName": s.SessionName,
			"action":      string(s.Action),
			"direction":   string(s.Direction),
			"sweep":       string(s.Sweep),
		}
	}
	return store.Document{
		"instrument":       t.Instrument,
		"model":            t.Model,
		"pnl":              t.PnL,
		"entryTime":        t.EntryTime,
		"exitTime":         t.ExitTime,
		"contracts":        t.Contracts,
		"tradeTp":          t.TradeTP,
		"tradeSl":          t.TradeSL,
		"totalPoints":      t.TotalPoints,
		"analysisImage":    t.AnalysisImage,
		"analysisText":     t.AnalysisText,
		"chartPerformance": t.ChartPerformance,
		"sessions":         sessions,
	}
}

// DecodeDayLog converts a stored document back to the in-memory shape.
// Partial and legacy records are tolerated: missing optional fields are
// backfilled with their defaults and the session list is re-projected onto
// the canonical template.
func DecodeDayLog(doc store.Document) models.DayLog {
	log := models.DayLog{
		Date:  asTime(doc["date"]),
		Notes: asString(doc["notes"]),
	}
	if rawTrades, ok := doc["trades"].([]any); ok {
		for _, raw := range rawTrades {
			if td, ok := raw.(store.Document); ok {
				log.Trades = append(log.Trades, decodeTrade(td))
			}
		}
	}
	return log
}

func decodeTrade(d store.Document) models.Trade {
	// Start from the blank trade so a field absent from the stored record
	// keeps its default; a field present always wins, even when empty.
	t := models.EmptyTrade()
	if v, ok := d["instrument"]; ok {
		t.Instrument = asString(v)
	}
	if v, ok := d["model"]; ok {
		t.Model = asString(v)
	}
	if v, ok := d["pnl"]; ok {
		t.PnL = asFloat(v)
	}
	if v, ok := d["entryTime"]; ok {
		t.EntryTime = asString(v)
	}
	if v, ok := d["exitTime"]; ok {
		t.ExitTime = asString(v)
	}
	if v, ok := d["contracts"]; ok {
		t.Contracts = asFloat(v)
	}
	if v, ok := d["tradeTp"]; ok {
		t.TradeTP = asFloat(v)
	}
	if v, ok := d["tradeSl"]; ok {
		t.TradeSL = asFloat(v)
	}
	if v, ok := d["totalPoints"]; ok {
		t.TotalPoints = asFloat(v)
	}
	if v, ok := d["analysisImage"]; ok {
		t.AnalysisImage = asString(v)
	}
	if v, ok := d["analysisText"]; ok {
		t.AnalysisText = asString(v)
	}
	if v, ok := d["chartPerformance"]; ok {
		t.ChartPerformance = asString(v)
	}
	t.Sessions = models.NormalizeSessions(decodeSessions(d["sessions"]))
	return t
}

func decodeSessions(v any) []models.SessionEntry {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]models.SessionEntry, 0, len(raw))
	for _, item := range raw {
		sd, ok := item.(store.Document)
		if !ok {
			continue
		}
		out = append(out, models.SessionEntry{
			SessionName: asString(sd["sessionName"]),
			Action:      models.SessionAction(asString(sd["action"])),
			Direction:   models.Direction(asString(sd["direction"])),
			Sweep:       models.Sweep(asString(sd["sweep"])),
		})
	}
	return out
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// asFloat tolerates the numeric shapes a document round-trip can produce.
func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}

func asTime(v any) time.Time {
	switch ts := v.(type) {
	case store.Timestamp:
		return ts.Time()
	case float64:
		return store.Timestamp(ts).Time()
	case int64:
		return store.Timestamp(ts).Time()
	default:
		return time.Time{}
	}
}
