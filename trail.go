package mazewalk

import "time"

// DefaultFadeWindow is how long a trail entry stays visible.
const DefaultFadeWindow = 10 * time.Second

// TrailEntry records a cell the player occupied and when.
type TrailEntry struct {
	Pos
	At time.Time
}

// Trail is the append-only, chronologically ordered history of visited cells
// for one session. Entries are never removed; faded entries are skipped by
// renderers.
type Trail struct {
	entries []TrailEntry
}

// append adds an entry. Timestamps earlier than the last entry are raised to
// it so the trail stays ordered even if the clock steps backwards.
func (t *Trail) append(p Pos, at time.Time) {
	if n := len(t.entries); n > 0 && at.Before(t.entries[n-1].At) {
		at = t.entries[n-1].At
	}
	t.entries = append(t.entries, TrailEntry{Pos: p, At: at})
}

// Len returns the number of entries.
func (t *Trail) Len() int {
	return len(t.entries)
}

// At returns the i-th entry, oldest first.
func (t *Trail) At(i int) TrailEntry {
	return t.entries[i]
}

// Last returns the newest entry and false when the trail is empty.
func (t *Trail) Last() (TrailEntry, bool) {
	if len(t.entries) == 0 {
		return TrailEntry{}, false
	}
	return t.entries[len(t.entries)-1], true
}

// Each calls fn for every entry whose fade at now is above zero, oldest first,
// passing the fade value.
func (t *Trail) Each(now time.Time, window time.Duration, fn func(e TrailEntry, fade float64)) {
	for _, e := range t.entries {
		f := Fade(e, now, window)
		if f <= 0 {
			continue
		}
		fn(e, f)
	}
}

// Fade returns max(0, 1 − age/window) clamped to [0, 1]. A non-positive
// window falls back to DefaultFadeWindow.
func Fade(e TrailEntry, now time.Time, window time.Duration) float64 {
	if window <= 0 {
		window = DefaultFadeWindow
	}
	age := now.Sub(e.At)
	return clamp01(1 - float64(age)/float64(window))
}
