package audio

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/pkg/errors"

	"go-drumseq/debug"
	"go-drumseq/sequencer"
)

// LoadKitDir replaces samples in base with WAV files found in dir. A lane
// named "Kc" is read from Kc.wav or kc.wav; lanes without a file keep their
// base sample. Files must match sampleRate; they are mixed down to mono and
// reduced to signed 8-bit.
func LoadKitDir(dir string, sampleRate int, base []sequencer.SampleAsset) ([]sequencer.SampleAsset, error) {
	kit := make([]sequencer.SampleAsset, len(base))
	copy(kit, base)

	for i, a := range kit {
		path, ok := findSample(dir, a.Name)
		if !ok {
			continue
		}
		pcm, err := LoadSample(path, sampleRate)
		if err != nil {
			return nil, err
		}
		kit[i].PCM = pcm
		debug.Log("audio", "kit %s <- %s (%d frames)", a.Name, path, len(pcm))
	}
	return kit, nil
}

func findSample(dir, name string) (string, bool) {
	for _, n := range []string{name, strings.ToLower(name)} {
		path := filepath.Join(dir, n+".wav")
		if st, err := os.Stat(path); err == nil && !st.IsDir() {
			return path, true
		}
	}
	return "", false
}

// LoadSample decodes one WAV file into signed 8-bit mono frames
func LoadSample(path string, sampleRate int) ([]int8, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open sample")
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return nil, errors.Errorf("%s: not a valid WAV file", path)
	}
	if int(d.SampleRate) != sampleRate {
		return nil, errors.Errorf("%s: sample rate %d Hz, kit runs at %d Hz", path, d.SampleRate, sampleRate)
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}

	ch := int(d.NumChans)
	depth := int(d.BitDepth)
	if ch < 1 || depth < 8 {
		return nil, errors.Errorf("%s: unsupported format (%d channels, %d bits)", path, ch, depth)
	}
	frames := len(buf.Data) / ch
	if frames == 0 {
		return nil, errors.Wrapf(sequencer.ErrEmptySample, "%s", path)
	}

	pcm := make([]int8, frames)
	for i := 0; i < frames; i++ {
		sum := 0
		for c := 0; c < ch; c++ {
			sum += buf.Data[i*ch+c]
		}
		pcm[i] = to8(sum/ch, depth)
	}
	return pcm, nil
}

// to8 reduces a decoded sample to signed 8 bits. 8-bit WAV data is unsigned.
func to8(v, depth int) int8 {
	if depth == 8 {
		v -= 128
	} else {
		v >>= uint(depth - 8)
	}
	if v > 127 {
		v = 127
	} else if v < -128 {
		v = -128
	}
	return int8(v)
}
