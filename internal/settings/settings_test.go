package settings

import (
	"testing"

	"tradelight/internal/store"
)

func TestSnapshotDefaults(t *testing.T) {
	s := New(store.NewMemoryCache())
	got := s.Snapshot()

	if got.Theme != DefaultTheme || got.Font != DefaultFont {
		t.Errorf("theme/font = %q/%q", got.Theme, got.Font)
	}
	if got.Particles {
		t.Error("particles default on")
	}
	if got.ParticlesDensity != DefaultParticlesDensity {
		t.Errorf("density = %d", got.ParticlesDensity)
	}
	if got.LogGoal != DefaultLogGoal {
		t.Errorf("goal = %d", got.LogGoal)
	}
}

func TestConfiguredGoalDefault(t *testing.T) {
	cache := store.NewMemoryCache()
	s := New(cache).WithDefaultGoal(20)

	if got := s.Snapshot().LogGoal; got != 20 {
		t.Errorf("goal = %d, want configured fallback 20", got)
	}

	// A stored preference beats the configured fallback.
	if err := s.SetLogGoal(25); err != nil {
		t.Fatalf("SetLogGoal: %v", err)
	}
	if got := s.Snapshot().LogGoal; got != 25 {
		t.Errorf("goal = %d, want stored 25", got)
	}

	// Non-positive fallback keeps the built-in default.
	if got := New(cache).WithDefaultGoal(0).Snapshot().LogGoal; got != 25 {
		t.Errorf("goal over shared cache = %d, want stored 25", got)
	}
	if got := New(store.NewMemoryCache()).WithDefaultGoal(-3).Snapshot().LogGoal; got != DefaultLogGoal {
		t.Errorf("goal = %d, want %d", got, DefaultLogGoal)
	}
}

func TestSetValidation(t *testing.T) {
	s := New(store.NewMemoryCache())

	if err := s.SetTheme("theme-neon"); err == nil {
		t.Error("unknown theme accepted")
	}
	if err := s.SetFont("font-serif"); err == nil {
		t.Error("unknown font accepted")
	}
	if err := s.SetLogGoal(0); err == nil {
		t.Error("non-positive goal accepted")
	}
	if err := s.SetTheme("theme-rose"); err != nil {
		t.Errorf("SetTheme: %v", err)
	}
	if got := s.Snapshot().Theme; got != "theme-rose" {
		t.Errorf("theme = %q", got)
	}
}

func TestParticlesDensityClamped(t *testing.T) {
	s := New(store.NewMemoryCache())

	if err := s.SetParticlesDensity(500); err != nil {
		t.Fatalf("SetParticlesDensity: %v", err)
	}
	if got := s.Snapshot().ParticlesDensity; got != 200 {
		t.Errorf("density = %d, want clamped 200", got)
	}
	if err := s.SetParticlesDensity(-10); err != nil {
		t.Fatalf("SetParticlesDensity: %v", err)
	}
	if got := s.Snapshot().ParticlesDensity; got != 0 {
		t.Errorf("density = %d, want clamped 0", got)
	}
}
