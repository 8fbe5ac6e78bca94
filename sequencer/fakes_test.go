package sequencer

import "go-drumseq/midi"

// recordingOutput keeps a copy of every write
type recordingOutput struct {
	writes  [][]int16
	clears  int
	err     error
	onWrite func()
}

func (o *recordingOutput) Write(frames []int16) error {
	o.writes = append(o.writes, append([]int16(nil), frames...))
	if o.onWrite != nil {
		o.onWrite()
	}
	return o.err
}

func (o *recordingOutput) Clear() { o.clears++ }

// recordingPlayer stands in for the streamer in dispatcher tests
type recordingPlayer struct {
	played  []int8 // first byte of each sample, identifies the sound
	flushes int
	err     error
	onPlay  func()
}

func (p *recordingPlayer) Play(pcm []int8) error {
	p.played = append(p.played, pcm[0])
	if p.onPlay != nil {
		p.onPlay()
	}
	return p.err
}

func (p *recordingPlayer) Flush() { p.flushes++ }

// taggedLibrary registers n sounds whose first sample byte is sound+1
func taggedLibrary(n int) *Library {
	assets := make([]SampleAsset, n)
	for i := range assets {
		assets[i] = SampleAsset{
			Sound: i,
			Name:  KitNames[i%NumSounds],
			PCM:   []int8{int8(i + 1), 0, 0, 0},
		}
	}
	lib, err := NewLibrary(assets...)
	if err != nil {
		panic(err)
	}
	return lib
}

// fakeController records LED batches
type fakeController struct {
	batches [][]midi.LEDUpdate
	pads    chan midi.PadEvent
	notes   chan midi.NoteEvent
}

func newFakeController() *fakeController {
	return &fakeController{
		pads:  make(chan midi.PadEvent, 8),
		notes: make(chan midi.NoteEvent, 8),
	}
}

func (c *fakeController) ID() string                        { return "fake" }
func (c *fakeController) Type() midi.ControllerType         { return midi.ControllerLaunchpad }
func (c *fakeController) PadEvents() <-chan midi.PadEvent   { return c.pads }
func (c *fakeController) NoteEvents() <-chan midi.NoteEvent { return c.notes }
func (c *fakeController) Close() error                      { return nil }
func (c *fakeController) SetLEDBatch(u []midi.LEDUpdate) error {
	c.batches = append(c.batches, append([]midi.LEDUpdate(nil), u...))
	return nil
}
