package canvas

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/mazewalk"
)

const maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

// arrowKeys maps keys to directions. Only arrow keys move the player.
var arrowKeys = [...]struct {
	key ebiten.Key
	dir mazewalk.Direction
}{
	{ebiten.KeyArrowUp, mazewalk.DirUp},
	{ebiten.KeyArrowDown, mazewalk.DirDown},
	{ebiten.KeyArrowLeft, mazewalk.DirLeft},
	{ebiten.KeyArrowRight, mazewalk.DirRight},
}

type pointerState struct {
	down   bool
	startX float64
	startY float64
	lastX  float64
	lastY  float64
}

// repeatFires reports whether a key held for ticks frames (1 on the press
// frame) triggers a move this frame. The press frame always fires; after
// delay frames the key repeats every interval frames. A non-positive delay
// or interval disables repeat.
func repeatFires(ticks, delay, interval int) bool {
	if ticks == 1 {
		return true
	}
	if delay <= 0 || interval <= 0 || ticks < 1+delay {
		return false
	}
	return (ticks-1-delay)%interval == 0
}

// durationTicks converts d to whole frames at tps ticks per second.
func durationTicks(d time.Duration, tps int) int {
	if d <= 0 || tps <= 0 {
		return 0
	}
	n := int(d.Seconds()*float64(tps) + 0.5)
	return max(n, 1)
}

// processInput is called from Scene.Update to feed keyboard, mouse and
// touch input into the engine. Injected events take precedence over real
// pointers for the frame they are consumed in.
func (s *Scene) processInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		s.Dark = !s.Dark
	}

	s.processInjectedKeys()
	s.processKeys()

	if s.processInjectedInput() {
		return
	}
	s.processMousePointer()
	s.processTouchPointers()
}

// processKeys moves once per arrow key press, then auto-repeats while the
// key stays down.
func (s *Scene) processKeys() {
	tps := ebiten.TPS()
	delay := durationTicks(s.cfg.KeyRepeatDelay, tps)
	interval := durationTicks(s.cfg.KeyRepeatInterval, tps)
	for _, k := range arrowKeys {
		if repeatFires(inpututil.KeyPressDuration(k.key), delay, interval) {
			s.eng.Move(k.dir)
		}
	}
}

// processMousePointer handles mouse input (pointer 0).
func (s *Scene) processMousePointer() {
	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	s.processPointer(0, float64(mx), float64(my), pressed)
}

// processTouchPointers handles touch input (pointers 1-9).
func (s *Scene) processTouchPointers() {
	touchIDs := ebiten.AppendTouchIDs(s.prevTouchIDs[:0])
	s.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := s.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true

		tx, ty := ebiten.TouchPosition(tid)
		s.processPointer(slot, float64(tx), float64(ty), true)
	}

	// A touch that vanished ends where it was last seen.
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && !activeSlots[i] {
			ps := &s.pointers[i]
			if ps.down {
				s.processPointer(i, ps.lastX, ps.lastY, false)
			}
			s.touchUsed[i] = false
			s.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (s *Scene) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && s.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !s.touchUsed[i] {
			s.touchUsed[i] = true
			s.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// processPointer runs the swipe state machine for a single pointer. x and y
// are screen coordinates in device pixels. A release further than the swipe
// threshold (in logical pixels) from the press point becomes one move along
// the dominant axis.
func (s *Scene) processPointer(pointerID int, x, y float64, pressed bool) {
	ps := &s.pointers[pointerID]

	switch {
	case pressed && !ps.down:
		*ps = pointerState{down: true, startX: x, startY: y, lastX: x, lastY: y}
	case pressed && ps.down:
		ps.lastX, ps.lastY = x, y
	case !pressed && ps.down:
		ps.down = false
		scale := s.scale
		if scale <= 0 {
			scale = 1
		}
		dx, dy := (x-ps.startX)/scale, (y-ps.startY)/scale
		if d, ok := mazewalk.ClassifySwipe(dx, dy, s.cfg.SwipeThreshold); ok {
			s.eng.Move(d)
		}
	}
}
