package sequencer

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrUnknownSound     = errors.New("unknown sound")
	ErrDuplicateSound   = errors.New("duplicate sound index")
	ErrEmptySample      = errors.New("sample has no frames")
	ErrScratchExhausted = errors.New("conversion buffer exhausted")
	ErrStreamerBusy     = errors.New("streamer already playing")
)

// SampleAsset is a recorded sound bound to a lane. The frame count is always
// len(PCM); there is no separate length to get out of step with the data.
type SampleAsset struct {
	Sound int
	Name  string
	PCM   []int8
}

// Frames returns the sample length in frames
func (a SampleAsset) Frames() int {
	return len(a.PCM)
}

// Library is the boot-time sound table. It is read-only once built.
type Library struct {
	assets map[int]SampleAsset
	order  []int
	max    int
}

// NewLibrary registers every asset, rejecting duplicates and empty samples
func NewLibrary(assets ...SampleAsset) (*Library, error) {
	lib := &Library{assets: make(map[int]SampleAsset, len(assets))}
	for _, a := range assets {
		if _, ok := lib.assets[a.Sound]; ok {
			return nil, fmt.Errorf("sound %d: %w", a.Sound, ErrDuplicateSound)
		}
		if len(a.PCM) == 0 {
			return nil, fmt.Errorf("sound %d (%s): %w", a.Sound, a.Name, ErrEmptySample)
		}
		pcm := make([]int8, len(a.PCM))
		copy(pcm, a.PCM)
		a.PCM = pcm
		lib.assets[a.Sound] = a
		lib.order = append(lib.order, a.Sound)
		if len(pcm) > lib.max {
			lib.max = len(pcm)
		}
	}
	sort.Ints(lib.order)
	return lib, nil
}

// Lookup resolves a lane to its sample
func (l *Library) Lookup(sound int) (SampleAsset, bool) {
	a, ok := l.assets[sound]
	return a, ok
}

// Len returns the number of registered sounds
func (l *Library) Len() int {
	return len(l.assets)
}

// MaxFrames is the length of the longest registered sample
func (l *Library) MaxFrames() int {
	return l.max
}

// Names returns lane labels indexed by sound, sized to cover the highest index.
// Gaps get a "??" label.
func (l *Library) Names() []string {
	if len(l.order) == 0 {
		return nil
	}
	names := make([]string, l.order[len(l.order)-1]+1)
	for i := range names {
		names[i] = "??"
	}
	for _, s := range l.order {
		names[s] = l.assets[s].Name
	}
	return names
}
