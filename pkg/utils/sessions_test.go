package utils

import "testing"

func TestSessionForClock(t *testing.T) {
	cases := []struct {
		clock string
		name  string
		ok    bool
	}{
		{"18:00", "Asia", true},
		{"23:59", "Asia", true},
		{"00:00", "", false}, // Asia window is half-open at midnight
		{"02:00", "London", true},
		{"04:59", "London", true},
		{"05:00", "", false},
		{"05:30", "", false},
		{"07:00", "New York", true},
		{"10:59", "New York", true},
		{"11:00", "", false},
		{"11:30", "Lunch", true},
		{"12:45", "Lunch", true},
		{"13:00", "", false},
		{"13:30", "PM", true},
		{"15:59", "PM", true},
		{"16:00", "", false},
		{"17:59", "", false},
	}
	for _, tc := range cases {
		name, ok := SessionForClock(tc.clock)
		if name != tc.name || ok != tc.ok {
			t.Errorf("SessionForClock(%q) = (%q, %v), want (%q, %v)", tc.clock, name, ok, tc.name, tc.ok)
		}
	}
}

func TestSessionForClockRejectsBadInput(t *testing.T) {
	for _, clock := range []string{"", "25:00", "9am", "12:75", "noon"} {
		if name, ok := SessionForClock(clock); ok {
			t.Errorf("SessionForClock(%q) matched %q, want no match", clock, name)
		}
	}
}
