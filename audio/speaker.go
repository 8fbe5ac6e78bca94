package audio

import (
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"

	"go-drumseq/debug"
)

var (
	speakerOnce sync.Once
	speakerErr  error
	speakerRate beep.SampleRate
)

// initSpeaker opens the system device once per process
func initSpeaker(sr beep.SampleRate, bufferFrames int) error {
	speakerOnce.Do(func() {
		speakerRate = sr
		speakerErr = speaker.Init(sr, bufferFrames)
	})
	if speakerErr != nil {
		return speakerErr
	}
	if speakerRate != sr {
		return errors.Errorf("speaker already initialized at %d Hz (requested %d Hz)", speakerRate, sr)
	}
	return nil
}

// Speaker plays mono 16-bit frames on the system audio device. Writes go into
// a bounded ring that the device drains; a full ring blocks the writer.
type Speaker struct {
	ring *Ring
	rate beep.SampleRate
}

// OpenSpeaker starts the device at sampleRate with a ring of bufferFrames
func OpenSpeaker(sampleRate, bufferFrames int) (*Speaker, error) {
	sr := beep.SampleRate(sampleRate)
	if err := initSpeaker(sr, bufferFrames); err != nil {
		return nil, errors.Wrap(err, "init speaker")
	}

	s := &Speaker{ring: NewRing(bufferFrames), rate: sr}
	speaker.Play(&ringStreamer{ring: s.ring})
	debug.Log("audio", "speaker open rate=%d buffer=%d frames", sampleRate, bufferFrames)
	return s, nil
}

// Write implements sequencer.Output
func (s *Speaker) Write(frames []int16) error {
	return s.ring.Write(frames)
}

// Clear implements sequencer.Output
func (s *Speaker) Clear() {
	s.ring.Clear()
}

// Close silences the device and releases any blocked writer
func (s *Speaker) Close() error {
	s.ring.Close()
	speaker.Clear()
	written, cleared := s.ring.Stats()
	debug.Log("audio", "speaker closed written=%d clears=%d", written, cleared)
	return nil
}

// ringStreamer feeds the beep speaker from a Ring, padding underruns with
// silence so the device never stops
type ringStreamer struct {
	ring *Ring
	tmp  []int16
}

func (rs *ringStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if cap(rs.tmp) < len(samples) {
		rs.tmp = make([]int16, len(samples))
	}
	tmp := rs.tmp[:len(samples)]
	got := rs.ring.Read(tmp)

	for i := range samples {
		v := 0.0
		if i < got {
			v = float64(tmp[i]) / 32768
		}
		samples[i][0] = v
		samples[i][1] = v
	}
	return len(samples), true
}

func (rs *ringStreamer) Err() error {
	return nil
}

// Discard is an output with no device behind it; writes return at once
type Discard struct{}

func (Discard) Write(frames []int16) error { return nil }
func (Discard) Clear()                     {}
