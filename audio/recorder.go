package audio

import (
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"

	"go-drumseq/debug"
)

// Recorder writes everything it is given to a 16-bit mono WAV file. Time only
// advances through Write and Pad, so it renders a pattern faster than real time.
type Recorder struct {
	f      *os.File
	enc    *wav.Encoder
	format *audio.Format
	buf    audio.IntBuffer
	frames int
	clears int
}

// CreateRecorder opens path for writing at sampleRate
func CreateRecorder(path string, sampleRate int) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "create recording")
	}
	format := &audio.Format{NumChannels: 1, SampleRate: sampleRate}
	return &Recorder{
		f:      f,
		enc:    wav.NewEncoder(f, sampleRate, 16, 1, 1),
		format: format,
		buf:    audio.IntBuffer{Format: format, SourceBitDepth: 16},
	}, nil
}

// Write implements sequencer.Output
func (r *Recorder) Write(frames []int16) error {
	if len(frames) == 0 {
		return nil
	}
	if cap(r.buf.Data) < len(frames) {
		r.buf.Data = make([]int, len(frames))
	}
	r.buf.Data = r.buf.Data[:len(frames)]
	for i, v := range frames {
		r.buf.Data[i] = int(v)
	}
	if err := r.enc.Write(&r.buf); err != nil {
		return errors.Wrap(err, "write recording")
	}
	r.frames += len(frames)
	return nil
}

// Clear implements sequencer.Output. Nothing is queued, so it only counts.
func (r *Recorder) Clear() {
	r.clears++
}

// Pad appends silence until the recording is at least n frames long
func (r *Recorder) Pad(n int) error {
	if n <= r.frames {
		return nil
	}
	return r.Write(make([]int16, n-r.frames))
}

// Frames returns the number of frames recorded so far
func (r *Recorder) Frames() int {
	return r.frames
}

// Clears returns how often the output was cleared
func (r *Recorder) Clears() int {
	return r.clears
}

// Close finalizes the WAV header and closes the file
func (r *Recorder) Close() error {
	debug.Log("audio", "recording closed frames=%d clears=%d", r.frames, r.clears)
	if err := r.enc.Close(); err != nil {
		r.f.Close()
		return errors.Wrap(err, "finalize recording")
	}
	return r.f.Close()
}
