package journal

import (
	"tradelight/internal/models"
)

// Form is the editable state for one day's record. Every setter mutates the
// record and emits a deep copy through onChange, which is where the autosaver
// hooks in. Setters target the trade at the current index.
//
// PnL is derived from points, contract size, and instrument point value until
// the user types a non-zero PnL by hand; the manual figure then sticks across
// further edits to the derivation inputs and clears only when the field is
// set back to zero.
type Form struct {
	log       models.DayLog
	tradeIdx  int
	pnlManual map[int]bool
	onChange  func(models.DayLog)
}

// NewForm starts an editing session over log. onChange may be nil.
func NewForm(log models.DayLog, onChange func(models.DayLog)) *Form {
	if len(log.Trades) == 0 {
		log.Trades = []models.Trade{models.EmptyTrade()}
	}
	return &Form{
		log:       log,
		pnlManual: make(map[int]bool),
		onChange:  onChange,
	}
}

// Log returns a deep copy of the current record.
func (f *Form) Log() models.DayLog {
	return f.log.Clone()
}

// TradeIndex returns the index of the trade the setters act on.
func (f *Form) TradeIndex() int { return f.tradeIdx }

// SelectTrade switches the active trade. Out-of-range indexes are ignored.
func (f *Form) SelectTrade(i int) {
	if i >= 0 && i < len(f.log.Trades) {
		f.tradeIdx = i
	}
}

// AddTrade appends a fresh trade and makes it the active one.
func (f *Form) AddTrade() {
	f.log.Trades = append(f.log.Trades, models.EmptyTrade())
	f.tradeIdx = len(f.log.Trades) - 1
	f.emit()
}

// RemoveTrade deletes the trade at i. The record always keeps at least one
// trade, so removing the last one resets it to an empty trade instead.
func (f *Form) RemoveTrade(i int) {
	if i < 0 || i >= len(f.log.Trades) {
		return
	}
	if len(f.log.Trades) == 1 {
		f.log.Trades[0] = models.EmptyTrade()
		delete(f.pnlManual, 0)
		f.emit()
		return
	}
	f.log.Trades = append(f.log.Trades[:i], f.log.Trades[i+1:]...)
	shifted := make(map[int]bool, len(f.pnlManual))
	for idx, manual := range f.pnlManual {
		switch {
		case idx < i:
			shifted[idx] = manual
		case idx > i:
			shifted[idx-1] = manual
		}
	}
	f.pnlManual = shifted
	if f.tradeIdx >= len(f.log.Trades) {
		f.tradeIdx = len(f.log.Trades) - 1
	}
	f.emit()
}

func (f *Form) trade() *models.Trade {
	return &f.log.Trades[f.tradeIdx]
}

// SetNotes replaces the day's notes.
func (f *Form) SetNotes(notes string) {
	f.log.Notes = notes
	f.emit()
}

// SetPnL sets the trade PnL by hand. A non-zero value pins the figure against
// rederivation; zero unpins it and rederives from the current inputs.
func (f *Form) SetPnL(pnl float64) {
	if pnl == 0 {
		delete(f.pnlManual, f.tradeIdx)
		f.derive()
	} else {
		f.pnlManual[f.tradeIdx] = true
		f.trade().PnL = pnl
	}
	f.emit()
}

// SetInstrument changes the instrument and rederives PnL unless a manual
// figure is pinned.
func (f *Form) SetInstrument(instrument string) {
	f.trade().Instrument = instrument
	f.derive()
	f.emit()
}

// SetContracts changes the contract count and rederives PnL unless a manual
// figure is pinned.
func (f *Form) SetContracts(contracts float64) {
	f.trade().Contracts = contracts
	f.derive()
	f.emit()
}

// SetTotalPoints changes the captured points and rederives PnL unless a
// manual figure is pinned.
func (f *Form) SetTotalPoints(points float64) {
	f.trade().TotalPoints = points
	f.derive()
	f.emit()
}

// SetModel records the trade model name.
func (f *Form) SetModel(model string) {
	f.trade().Model = model
	f.emit()
}

// SetEntryTime records the entry time string.
func (f *Form) SetEntryTime(t string) {
	f.trade().EntryTime = t
	f.emit()
}

// SetExitTime records the exit time string.
func (f *Form) SetExitTime(t string) {
	f.trade().ExitTime = t
	f.emit()
}

// SetTP records the take-profit level.
func (f *Form) SetTP(tp float64) {
	f.trade().TradeTP = tp
	f.emit()
}

// SetSL records the stop-loss level.
func (f *Form) SetSL(sl float64) {
	f.trade().TradeSL = sl
	f.emit()
}

// SetChartPerformance records how the chart resolved after the trade.
func (f *Form) SetChartPerformance(perf string) {
	f.trade().ChartPerformance = perf
	f.emit()
}

// AttachImage stores an analysis image as a data URL alongside optional text.
func (f *Form) AttachImage(dataURL, text string) {
	f.trade().AnalysisImage = dataURL
	if text != "" {
		f.trade().AnalysisText = text
	}
	f.emit()
}

// ClearImage drops the analysis image and text.
func (f *Form) ClearImage() {
	f.trade().AnalysisImage = ""
	f.trade().AnalysisText = ""
	f.emit()
}

// SetSession updates the named session row on the active trade. Unknown
// session names are ignored.
func (f *Form) SetSession(name string, action models.SessionAction, direction models.Direction, sweep models.Sweep) {
	sessions := f.trade().Sessions
	for i := range sessions {
		if sessions[i].SessionName == name {
			sessions[i].Action = action
			sessions[i].Direction = direction
			sessions[i].Sweep = sweep
			f.emit()
			return
		}
	}
}

// derive recomputes PnL from points, point value, and contracts unless the
// user pinned a manual figure.
func (f *Form) derive() {
	if f.pnlManual[f.tradeIdx] {
		return
	}
	t := f.trade()
	t.PnL = t.TotalPoints * models.PointValue(t.Instrument) * t.Contracts
}

func (f *Form) emit() {
	if f.onChange != nil {
		f.onChange(f.log.Clone())
	}
}
