package mazewalk

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultFlashDuration is how long the win flash takes to fade out.
const DefaultFlashDuration = 900 * time.Millisecond

// TweenGroup animates up to 4 float64 fields simultaneously. Create one via
// TweenAlpha and call Update(dt) each frame; the group writes the
// interpolated values straight into the fields.
//
// There is no global animation manager; owners call Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields.
func (g *TweenGroup) Update(dt float32) {
	if g == nil || g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// Stop marks the group done without writing further values.
func (g *TweenGroup) Stop() {
	if g != nil {
		g.Done = true
	}
}

// TweenAlpha animates *field from its current value to `to` over duration
// seconds using the easing function.
func TweenAlpha(field *float64, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1}
	g.tweens[0] = gween.New(float32(*field), float32(to), duration, fn)
	g.fields[0] = field
	return g
}

// flash is the full-screen win flash: opaque at the win, fading to clear.
type flash struct {
	alpha float64
	tween *TweenGroup
}

func (f *flash) start(duration time.Duration) {
	f.alpha = 1
	if duration <= 0 {
		f.alpha = 0
		f.tween = nil
		return
	}
	f.tween = TweenAlpha(&f.alpha, 0, float32(duration.Seconds()), ease.InQuad)
}

func (f *flash) update(dt float32) {
	if f.tween == nil {
		return
	}
	f.tween.Update(dt)
	if f.tween.Done {
		f.tween = nil
	}
}

func (f *flash) reset() {
	f.alpha = 0
	f.tween = nil
}
