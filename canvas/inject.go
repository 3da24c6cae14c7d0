package canvas

import "github.com/phanxgames/mazewalk"

// syntheticPointerEvent represents a single injected pointer event in
// screen coordinates, the same space real cursor and touch positions use.
type syntheticPointerEvent struct {
	screenX, screenY float64
	pressed          bool
}

// InjectKey queues a single arrow key press. The move is made on the next
// frame's processInput call; each queued key consumes one frame.
func (s *Scene) InjectKey(d mazewalk.Direction) {
	s.keyQueue = append(s.keyQueue, d)
}

// InjectPress queues a pointer press at the given screen coordinates.
func (s *Scene) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{screenX: x, screenY: y, pressed: true})
}

// InjectMove queues a pointer move with the pointer held down.
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{screenX: x, screenY: y, pressed: true})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (s *Scene) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{screenX: x, screenY: y})
}

// InjectSwipe queues a full swipe: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate frames, and release at
// (toX, toY). The sequence consumes frames frames, at least 2.
func (s *Scene) InjectSwipe(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY)
}

// pendingInjections is the number of queued synthetic events of any kind.
func (s *Scene) pendingInjections() int {
	return len(s.injectQueue) + len(s.keyQueue)
}

// processInjectedKeys pops one queued key and moves.
func (s *Scene) processInjectedKeys() {
	if len(s.keyQueue) == 0 {
		return
	}
	d := s.keyQueue[0]
	copy(s.keyQueue, s.keyQueue[1:])
	s.keyQueue = s.keyQueue[:len(s.keyQueue)-1]
	s.eng.Move(d)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through processPointer as pointer 0. Returns true if an event was
// consumed, in which case real pointer input is skipped this frame.
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	s.processPointer(0, evt.screenX, evt.screenY, evt.pressed)
	return true
}
