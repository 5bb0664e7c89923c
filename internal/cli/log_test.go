package cli

import (
	"testing"

	"tradelight/internal/models"
)

func TestClockWithSession(t *testing.T) {
	cases := []struct {
		clock string
		want  string
	}{
		{"09:45", "09:45 (New York)"},
		{"12:00", "12:00 (Lunch)"},
		{"14:15", "14:15 (PM)"},
		{"06:30", "06:30"}, // between windows
		{"", ""},
		{"noon", "noon"},
	}
	for _, tc := range cases {
		if got := clockWithSession(tc.clock); got != tc.want {
			t.Errorf("clockWithSession(%q) = %q, want %q", tc.clock, got, tc.want)
		}
	}
}

func TestParseSessionSpec(t *testing.T) {
	name, action, direction, sweep, err := parseSessionSpec("New York=displacement:up:low")
	if err != nil {
		t.Fatalf("parseSessionSpec: %v", err)
	}
	if name != "New York" || action != models.ActionDisplacement ||
		direction != models.DirectionUp || sweep != models.SweepLow {
		t.Errorf("parsed = %q %q %q %q", name, action, direction, sweep)
	}

	// Direction and sweep are optional.
	name, action, direction, sweep, err = parseSessionSpec("London=consolidation")
	if err != nil {
		t.Fatalf("parseSessionSpec: %v", err)
	}
	if name != "London" || action != models.ActionConsolidation ||
		direction != models.DirectionNone || sweep != models.SweepNone {
		t.Errorf("parsed = %q %q %q %q", name, action, direction, sweep)
	}

	// Missing action, unknown session, action, direction, and sweep.
	for _, bad := range []string{
		"Asia",
		"Tokyo=reversal",
		"Asia=melting",
		"Asia=reversal:sideways",
		"Asia=reversal:up:middle",
	} {
		if _, _, _, _, err := parseSessionSpec(bad); err == nil {
			t.Errorf("parseSessionSpec(%q) accepted", bad)
		}
	}
}

func TestValidChartLabel(t *testing.T) {
	for _, label := range models.ChartPerformanceOptions {
		if !validChartLabel(label) {
			t.Errorf("canonical label %q rejected", label)
		}
	}
	if validChartLabel("Moon Shot") {
		t.Error("unknown label accepted")
	}
}
