package term

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	chimeRate     = beep.SampleRate(44100)
	chimeNote     = 120 * time.Millisecond
	chimeVolume   = -2.0 // log2 gain
	chimeBuffered = time.Second / 10
)

// chimeNotes is a rising major third.
var chimeNotes = [...]float64{880, 1108.73}

// Chime plays a short two-note tone when a maze is solved.
type Chime struct {
	rate  beep.SampleRate
	ready bool
}

// NewChime returns a chime that stays silent until Init succeeds.
func NewChime() *Chime {
	return &Chime{rate: chimeRate}
}

// Init opens the audio device.
func (c *Chime) Init() error {
	if err := speaker.Init(c.rate, c.rate.N(chimeBuffered)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	c.ready = true
	return nil
}

// Play queues the chime. It is a no-op without an audio device.
func (c *Chime) Play() {
	if c == nil || !c.ready {
		return
	}
	speaker.Play(chimeStreamer(c.rate))
}

// Close releases the audio device.
func (c *Chime) Close() {
	if c == nil || !c.ready {
		return
	}
	speaker.Close()
	c.ready = false
}

// chimeStreamer builds the chime: each note a sine of chimeNote length,
// played in sequence at reduced volume.
func chimeStreamer(rate beep.SampleRate) beep.Streamer {
	notes := make([]beep.Streamer, 0, len(chimeNotes))
	for _, freq := range chimeNotes {
		tone, err := generators.SineTone(rate, freq)
		if err != nil {
			continue
		}
		notes = append(notes, beep.Take(rate.N(chimeNote), tone))
	}
	return &effects.Volume{Streamer: beep.Seq(notes...), Base: 2, Volume: chimeVolume}
}
