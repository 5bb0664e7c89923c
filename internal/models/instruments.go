package models

// DefaultInstrument is the instrument a blank trade starts with.
const DefaultInstrument = "NQ"

// InstrumentPointValues maps each tradable symbol to its per-point dollar
// multiplier, used to derive pnl from points and contracts.
var InstrumentPointValues = map[string]float64{
	"MNQ": 2,
	"NQ":  20,
	"ES":  50,
	"MES": 5,
}

// InstrumentOptions lists the tradable symbols in display order.
var InstrumentOptions = []string{"MNQ", "NQ", "ES", "MES"}

// PointValue returns the dollar value of one point for the instrument,
// or 0 for an unknown symbol.
func PointValue(instrument string) float64 {
	return InstrumentPointValues[instrument]
}

// ValidInstrument reports whether the symbol is one of the tradable set.
func ValidInstrument(instrument string) bool {
	_, ok := InstrumentPointValues[instrument]
	return ok
}

// ChartPerformanceOptions lists the labels describing a trade's visual
// outcome pattern.
var ChartPerformanceOptions = []string{
	"Consolidation",
	"Small Move",
	"Hit TP",
	"Hit SL",
	"Hit SL and then TP",
	"Expansion Up",
	"Expansion Down",
}
