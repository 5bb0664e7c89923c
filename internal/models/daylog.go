// Package models defines the trading journal data model.
package models

import "time"

// DayKeyFormat is the canonical day key layout (day granularity; time of day
// and zone offset within the day are discarded for key purposes).
const DayKeyFormat = "2006-01-02"

// DayKey returns the canonical YYYY-MM-DD key for a date.
func DayKey(t time.Time) string {
	return t.Format(DayKeyFormat)
}

// ParseDayKey parses a canonical YYYY-MM-DD day key.
func ParseDayKey(key string) (time.Time, error) {
	return time.Parse(DayKeyFormat, key)
}

// SessionAction classifies what price did during a session window.
type SessionAction string

const (
	ActionNone          SessionAction = "none"
	ActionConsolidation SessionAction = "consolidation"
	ActionDisplacement  SessionAction = "displacement"
	ActionRetracement   SessionAction = "retracement"
	ActionReversal      SessionAction = "reversal"
)

// Direction is the direction of a directional session action.
type Direction string

const (
	DirectionNone Direction = "none"
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// Sweep records which side of the range was swept during a session.
type Sweep string

const (
	SweepNone Sweep = "none"
	SweepHigh Sweep = "high"
	SweepLow  Sweep = "low"
	SweepBoth Sweep = "both"
)

// SessionNames lists the canonical trading session windows in canonical order.
// Every trade carries exactly one entry per name.
var SessionNames = []string{"Asia", "London", "New York", "Lunch", "PM"}

// SessionEntry records what happened during one named session window.
type SessionEntry struct {
	SessionName string        `json:"sessionName"`
	Action      SessionAction `json:"action"`
	Direction   Direction     `json:"direction"`
	Sweep       Sweep         `json:"sweep"`
}

// Trade is one trading event recorded for a day.
type Trade struct {
	Instrument       string         `json:"instrument"`
	Model            string         `json:"model"`
	PnL              float64        `json:"pnl"`
	EntryTime        string         `json:"entryTime"`
	ExitTime         string         `json:"exitTime"`
	Contracts        float64        `json:"contracts"`
	TradeTP          float64        `json:"tradeTp"`
	TradeSL          float64        `json:"tradeSl"`
	TotalPoints      float64        `json:"totalPoints"`
	AnalysisImage    string         `json:"analysisImage"`
	AnalysisText     string         `json:"analysisText"`
	ChartPerformance string         `json:"chartPerformance"`
	Sessions         []SessionEntry `json:"sessions"`
}

// HasImage reports whether an analysis image is attached to the trade.
func (t Trade) HasImage() bool {
	return t.AnalysisImage != ""
}

// DayLog is one user's journal record for one calendar day.
type DayLog struct {
	Date   time.Time `json:"date"`
	Notes  string    `json:"notes"`
	Trades []Trade   `json:"trades"`
}

// Key returns the day key of the log's date.
func (l DayLog) Key() string {
	return DayKey(l.Date)
}

// TotalPnL sums the pnl of every trade in the day.
func (l DayLog) TotalPnL() float64 {
	var sum float64
	for _, t := range l.Trades {
		sum += t.PnL
	}
	return sum
}

// HasImage reports whether any trade in the day carries an analysis image.
func (l DayLog) HasImage() bool {
	for _, t := range l.Trades {
		if t.HasImage() {
			return true
		}
	}
	return false
}

// IsLogged reports whether the day counts for calendar highlighting and goal
// progress: non-zero aggregate pnl, or an attached image on a zero-pnl
// ("no trade") day.
func (l DayLog) IsLogged() bool {
	pnl := l.TotalPnL()
	return pnl != 0 || (l.HasImage() && pnl == 0)
}

// Clone returns a deep copy of the log, safe to mutate independently.
func (l DayLog) Clone() DayLog {
	out := l
	out.Trades = make([]Trade, len(l.Trades))
	for i, t := range l.Trades {
		tc := t
		tc.Sessions = append([]SessionEntry(nil), t.Sessions...)
		out.Trades[i] = tc
	}
	return out
}

// DefaultSessions returns the all-default session list, one entry per
// canonical session name in canonical order.
func DefaultSessions() []SessionEntry {
	out := make([]SessionEntry, len(SessionNames))
	for i, name := range SessionNames {
		out[i] = SessionEntry{
			SessionName: name,
			Action:      ActionNone,
			Direction:   DirectionNone,
			Sweep:       SweepNone,
		}
	}
	return out
}

// NormalizeSessions re-projects a loaded session list onto the canonical
// template: entries matching a canonical name keep their values, missing
// names are filled with defaults, and unknown names are dropped.
func NormalizeSessions(in []SessionEntry) []SessionEntry {
	byName := make(map[string]SessionEntry, len(in))
	for _, s := range in {
		byName[s.SessionName] = s
	}
	out := make([]SessionEntry, len(SessionNames))
	for i, name := range SessionNames {
		entry := SessionEntry{
			SessionName: name,
			Action:      ActionNone,
			Direction:   DirectionNone,
			Sweep:       SweepNone,
		}
		if loaded, ok := byName[name]; ok {
			if loaded.Action != "" {
				entry.Action = loaded.Action
			}
			if loaded.Direction != "" {
				entry.Direction = loaded.Direction
			}
			if loaded.Sweep != "" {
				entry.Sweep = loaded.Sweep
			}
		}
		out[i] = entry
	}
	return out
}

// EmptyTrade returns a blank trade seeded with the default instrument and
// all-default session entries.
func EmptyTrade() Trade {
	return Trade{
		Instrument: DefaultInstrument,
		Sessions:   DefaultSessions(),
	}
}

// NewDayLog returns a fresh default record anchored at the given date, seeded
// with one blank trade.
func NewDayLog(date time.Time) DayLog {
	return DayLog{
		Date:   date,
		Trades: []Trade{EmptyTrade()},
	}
}
