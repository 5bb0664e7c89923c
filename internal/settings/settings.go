package settings

import (
	"strconv"
	"sync"

	apperrors "tradelight/internal/errors"
	"tradelight/internal/store"
)

// Cache keys for each preference slot.
const (
	keyTheme            = "app-theme"
	keyFont             = "app-font"
	keyParticles        = "app-particles"
	keyParticlesDensity = "app-particles-density"
	keyLogGoal          = "app-log-goal"
)

// Defaults applied when a slot is missing or unreadable.
const (
	DefaultTheme            = "theme-default"
	DefaultFont             = "font-body"
	DefaultParticlesDensity = 40
	DefaultLogGoal          = 30
)

// Themes lists the selectable color themes.
var Themes = []string{"light", "theme-default", "theme-zinc", "theme-rose", "theme-blue"}

// Fonts lists the selectable font stacks.
var Fonts = []string{"font-body", "font-mono"}

// Values is a snapshot of every preference.
type Values struct {
	Theme            string `json:"theme"`
	Font             string `json:"font"`
	Particles        bool   `json:"particles"`
	ParticlesDensity int    `json:"particlesDensity"`
	LogGoal          int    `json:"logGoal"`
}

// Settings persists user preferences in the local cache and notifies
// subscribers on every change. All methods are safe for concurrent use.
type Settings struct {
	cache       store.LocalCache
	defaultGoal int

	mu     sync.Mutex
	nextID int
	subs   map[int]func(Values)
}

// New creates a settings store over cache.
func New(cache store.LocalCache) *Settings {
	return &Settings{cache: cache, defaultGoal: DefaultLogGoal, subs: make(map[int]func(Values))}
}

// WithDefaultGoal sets the monthly goal used while no preference is stored,
// the configured fallback. Non-positive values keep DefaultLogGoal.
func (s *Settings) WithDefaultGoal(goal int) *Settings {
	if goal > 0 {
		s.defaultGoal = goal
	}
	return s
}

// Subscribe registers fn to run after every settings change, with the full
// snapshot. The returned function removes the subscription.
func (s *Settings) Subscribe(fn func(Values)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Snapshot reads every preference, substituting defaults for missing slots.
func (s *Settings) Snapshot() Values {
	return Values{
		Theme:            s.stringOr(keyTheme, DefaultTheme),
		Font:             s.stringOr(keyFont, DefaultFont),
		Particles:        s.boolOr(keyParticles, false),
		ParticlesDensity: s.intOr(keyParticlesDensity, DefaultParticlesDensity),
		LogGoal:          s.intOr(keyLogGoal, s.defaultGoal),
	}
}

// SetTheme selects a color theme from Themes.
func (s *Settings) SetTheme(theme string) error {
	if !contains(Themes, theme) {
		return apperrors.NewValidationError("theme", theme, "unknown theme")
	}
	return s.set(keyTheme, theme)
}

// SetFont selects a font stack from Fonts.
func (s *Settings) SetFont(font string) error {
	if !contains(Fonts, font) {
		return apperrors.NewValidationError("font", font, "unknown font")
	}
	return s.set(keyFont, font)
}

// SetParticles toggles the background particle effect.
func (s *Settings) SetParticles(enabled bool) error {
	return s.set(keyParticles, strconv.FormatBool(enabled))
}

// SetParticlesDensity sets the particle density, clamped to 0..200.
func (s *Settings) SetParticlesDensity(density int) error {
	if density < 0 {
		density = 0
	}
	if density > 200 {
		density = 200
	}
	return s.set(keyParticlesDensity, strconv.Itoa(density))
}

// SetLogGoal sets the monthly logged-day target. It must be positive.
func (s *Settings) SetLogGoal(goal int) error {
	if goal <= 0 {
		return apperrors.NewValidationError("logGoal", goal, "goal must be positive")
	}
	return s.set(keyLogGoal, strconv.Itoa(goal))
}

func (s *Settings) set(key, value string) error {
	if err := s.cache.Set(key, value); err != nil {
		return err
	}
	snapshot := s.Snapshot()

	s.mu.Lock()
	subs := make([]func(Values), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	// Run subscribers outside the lock so they may call back in.
	for _, fn := range subs {
		fn(snapshot)
	}
	return nil
}

func (s *Settings) stringOr(key, def string) string {
	if v, ok := s.cache.Get(key); ok && v != "" {
		return v
	}
	return def
}

func (s *Settings) boolOr(key string, def bool) bool {
	if v, ok := s.cache.Get(key); ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func (s *Settings) intOr(key string, def int) int {
	if v, ok := s.cache.Get(key); ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
