package dashboard

import (
	"sort"
	"time"

	"tradelight/internal/models"
)

// DefaultGoal is the monthly logged-day target the progress bar measures
// against when the user has not set one.
const DefaultGoal = 30

// DaySummary is the per-day rollup the calendar renders from.
type DaySummary struct {
	Date       time.Time `json:"date"`
	NetPnL     float64   `json:"netPnl"`
	TradeCount int       `json:"tradeCount"`
	HasImage   bool      `json:"hasImage"`
	IsLogged   bool      `json:"isLogged"`
}

// FeedEntry is one row of the recent-activity feed: a single trade with its
// day attached. IsNoTrade flags a zero-result trade on a day that carries an
// analysis image, the "No Trade" marker days.
type FeedEntry struct {
	Date             time.Time `json:"date"`
	Instrument       string    `json:"instrument"`
	Model            string    `json:"model"`
	ChartPerformance string    `json:"chartPerformance"`
	PnL              float64   `json:"pnl"`
	IsNoTrade        bool      `json:"isNoTrade"`
}

// Stats are the aggregate figures for a set of day records.
type Stats struct {
	NetPnL      float64 `json:"netPnl"`
	TradeCount  int     `json:"tradeCount"`
	WinCount    int     `json:"winCount"`
	LossCount   int     `json:"lossCount"`
	WinRate     float64 `json:"winRate"`
	AvgWin      float64 `json:"avgWin"`
	AvgLoss     float64 `json:"avgLoss"`
	BestDay     float64 `json:"bestDay"`
	WorstDay    float64 `json:"worstDay"`
	LoggedDays  int     `json:"loggedDays"`
	GreenDays   int     `json:"greenDays"`
	RedDays     int     `json:"redDays"`
	ProfitRatio float64 `json:"profitRatio"`
}

// Progress is the logged-day counter against the monthly goal.
type Progress struct {
	Logged  int     `json:"logged"`
	Goal    int     `json:"goal"`
	Percent float64 `json:"percent"`
}

// Summarize collapses day records into one summary per day key. When the
// input holds several records for the same day, PnL and trade counts
// accumulate and image presence is sticky. A day counts as logged once it
// has non-zero accumulated PnL or any analysis image.
func Summarize(logs []models.DayLog) map[string]DaySummary {
	out := make(map[string]DaySummary, len(logs))
	for _, log := range logs {
		key := log.Key()
		s, ok := out[key]
		if !ok {
			s = DaySummary{Date: log.Date}
		}
		s.NetPnL += log.TotalPnL()
		s.TradeCount += len(log.Trades)
		s.HasImage = s.HasImage || log.HasImage()
		out[key] = s
	}
	for key, s := range out {
		s.IsLogged = s.NetPnL != 0 || s.HasImage
		out[key] = s
	}
	return out
}

// Flatten expands day records into per-trade feed entries, newest day first.
// A zero-result trade is kept only when its day carries an analysis image,
// in which case it is marked as a no-trade day. Trades within a day keep
// their recorded order.
func Flatten(logs []models.DayLog) []FeedEntry {
	var out []FeedEntry
	for _, log := range logs {
		dayImage := log.HasImage()
		for _, trade := range log.Trades {
			noTrade := dayImage && trade.PnL == 0
			if trade.PnL == 0 && !noTrade {
				continue
			}
			out = append(out, FeedEntry{
				Date:             log.Date,
				Instrument:       trade.Instrument,
				Model:            trade.Model,
				ChartPerformance: trade.ChartPerformance,
				PnL:              trade.PnL,
				IsNoTrade:        noTrade,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// ComputeStats aggregates trade and day figures across the records. Trades
// with zero PnL count toward neither wins nor losses, and a day with no
// recorded PnL moves neither best nor worst.
func ComputeStats(logs []models.DayLog) Stats {
	var stats Stats
	summaries := Summarize(logs)

	var grossWin, grossLoss float64
	for _, log := range logs {
		for _, trade := range log.Trades {
			switch {
			case trade.PnL > 0:
				stats.TradeCount++
				stats.WinCount++
				grossWin += trade.PnL
			case trade.PnL < 0:
				stats.TradeCount++
				stats.LossCount++
				grossLoss += -trade.PnL
			}
		}
	}

	first := true
	for _, s := range summaries {
		stats.NetPnL += s.NetPnL
		if s.IsLogged {
			stats.LoggedDays++
		}
		switch {
		case s.NetPnL > 0:
			stats.GreenDays++
		case s.NetPnL < 0:
			stats.RedDays++
		}
		if s.NetPnL == 0 {
			continue
		}
		if first {
			stats.BestDay = s.NetPnL
			stats.WorstDay = s.NetPnL
			first = false
			continue
		}
		if s.NetPnL > stats.BestDay {
			stats.BestDay = s.NetPnL
		}
		if s.NetPnL < stats.WorstDay {
			stats.WorstDay = s.NetPnL
		}
	}

	if stats.TradeCount > 0 {
		stats.WinRate = float64(stats.WinCount) / float64(stats.TradeCount) * 100
	}
	if stats.WinCount > 0 {
		stats.AvgWin = grossWin / float64(stats.WinCount)
	}
	if stats.LossCount > 0 {
		stats.AvgLoss = grossLoss / float64(stats.LossCount)
	}
	if grossLoss > 0 {
		stats.ProfitRatio = grossWin / grossLoss
	}
	return stats
}

// TrackProgress counts distinct logged days against goal. A non-positive
// goal falls back to DefaultGoal. Percent may exceed 100 once the goal is
// passed.
func TrackProgress(logs []models.DayLog, goal int) Progress {
	if goal <= 0 {
		goal = DefaultGoal
	}
	logged := 0
	for _, s := range Summarize(logs) {
		if s.IsLogged {
			logged++
		}
	}
	percent := float64(logged) / float64(goal) * 100
	return Progress{Logged: logged, Goal: goal, Percent: percent}
}

// FilterMonth keeps the records whose date falls in the month of anchor.
func FilterMonth(logs []models.DayLog, anchor time.Time) []models.DayLog {
	var out []models.DayLog
	for _, log := range logs {
		if log.Date.Year() == anchor.Year() && log.Date.Month() == anchor.Month() {
			out = append(out, log)
		}
	}
	return out
}
