package canvas

import (
	"time"

	"github.com/sirupsen/logrus"
)

// debugLogEvery is the frame interval between debug stat lines.
const debugLogEvery = 60

// debugStats holds per-frame timing and draw-call metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	emitTime      time.Duration
	submitTime    time.Duration
	commandCount  int
	drawCallCount int
}

// debugLog writes timing and draw-call stats at debug level.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug || s.frame%debugLogEvery != 0 {
		return
	}
	s.log.WithFields(logrus.Fields{
		"frame":      s.frame,
		"emit":       stats.emitTime.String(),
		"submit":     stats.submitTime.String(),
		"total":      (stats.emitTime + stats.submitTime).String(),
		"commands":   stats.commandCount,
		"draw_calls": stats.drawCallCount,
	}).Debug("frame stats")
}

// countDrawCalls counts the vector draw calls the command list produces.
// Glows count as one per stacked disc.
func countDrawCalls(commands []RenderCommand) int {
	count := 0
	for i := range commands {
		if commands[i].Type == CommandGlow {
			count += glowSteps
			continue
		}
		count++
	}
	return count
}
