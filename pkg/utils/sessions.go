package utils

import "time"

// SessionWindow describes one canonical trading session window in ET.
// Start and End are "HH:MM" clock strings; a window where End sorts before
// Start crosses midnight.
type SessionWindow struct {
	Name  string
	Start string
	End   string
}

// SessionWindows lists the canonical session windows in canonical order.
var SessionWindows = []SessionWindow{
	{Name: "Asia", Start: "18:00", End: "00:00"},
	{Name: "London", Start: "02:00", End: "05:00"},
	{Name: "New York", Start: "07:00", End: "11:00"},
	{Name: "Lunch", Start: "11:30", End: "13:00"},
	{Name: "PM", Start: "13:30", End: "16:00"},
}

// SessionForClock returns the canonical session whose window contains the
// given "HH:MM" clock string, reporting whether any window matched.
func SessionForClock(clock string) (string, bool) {
	m, ok := clockMinutes(clock)
	if !ok {
		return "", false
	}
	for _, w := range SessionWindows {
		start, _ := clockMinutes(w.Start)
		end, _ := clockMinutes(w.End)
		if end <= start {
			// Window crosses midnight.
			if m >= start || m < end {
				return w.Name, true
			}
			continue
		}
		if m >= start && m < end {
			return w.Name, true
		}
	}
	return "", false
}

func clockMinutes(clock string) (int, bool) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}
