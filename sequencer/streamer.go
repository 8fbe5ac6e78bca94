package sequencer

import (
	"fmt"

	"go-drumseq/debug"
)

// Output is the audio device: mono 16-bit frames at a fixed rate through a
// bounded buffer.
type Output interface {
	// Write blocks until every frame has been accepted. The slice is not
	// retained after Write returns.
	Write(frames []int16) error
	// Clear drops anything queued but not yet played.
	Clear()
}

// Streamer converts 8-bit samples to the output format and pushes them to the
// device, one sample at a time.
//
// The conversion buffer is allocated once, sized for the longest sample it will
// be asked to play; Play never allocates.
type Streamer struct {
	out     Output
	scratch []int16
	busy    bool
}

// NewStreamer creates a streamer able to play samples of up to maxFrames frames
func NewStreamer(out Output, maxFrames int) *Streamer {
	if maxFrames < 0 {
		maxFrames = 0
	}
	return &Streamer{
		out:     out,
		scratch: make([]int16, maxFrames),
	}
}

// Capacity is the longest sample Play accepts
func (s *Streamer) Capacity() int {
	return len(s.scratch)
}

// Play converts pcm and writes it to the output, blocking until the device
// has taken all of it. A sample that does not fit the conversion buffer is
// logged and skipped without writing anything.
func (s *Streamer) Play(pcm []int8) error {
	buf, err := s.acquire(len(pcm))
	if err != nil {
		debug.Log("stream", "skip sample: %v", err)
		return err
	}
	defer s.release()

	Convert(buf, pcm)

	if err := s.out.Write(buf); err != nil {
		debug.Log("stream", "write %d frames: %v", len(buf), err)
		return fmt.Errorf("write %d frames: %w", len(buf), err)
	}
	return nil
}

// Flush silences the output immediately
func (s *Streamer) Flush() {
	s.out.Clear()
}

func (s *Streamer) acquire(n int) ([]int16, error) {
	if s.busy {
		return nil, ErrStreamerBusy
	}
	if n > len(s.scratch) {
		return nil, fmt.Errorf("%d frames > %d: %w", n, len(s.scratch), ErrScratchExhausted)
	}
	s.busy = true
	return s.scratch[:n], nil
}

func (s *Streamer) release() {
	s.busy = false
}

// Convert widens signed 8-bit samples into the high byte of 16-bit frames.
// dst must be at least as long as src.
func Convert(dst []int16, src []int8) {
	for i, v := range src {
		dst[i] = int16(v) << 8
	}
}
