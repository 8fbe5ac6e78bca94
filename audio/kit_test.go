package audio

import (
	"path/filepath"
	"strings"
	"testing"

	"go-drumseq/sequencer"
)

func writeWAV(t *testing.T, path string, rate int, frames []int16) {
	t.Helper()
	rec, err := CreateRecorder(path, rate)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := rec.Write(frames); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestRecorderRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := []int8{0, 1, -1, 127, -128, 64}
	frames := make([]int16, len(src))
	sequencer.Convert(frames, src)
	writeWAV(t, filepath.Join(dir, "kc.wav"), sequencer.DefaultSampleRate, frames)

	base := sequencer.DefaultKit(sequencer.DefaultSampleRate)
	kit, err := LoadKitDir(dir, sequencer.DefaultSampleRate, base)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(kit) != len(base) {
		t.Fatalf("kit has %d sounds, want %d", len(kit), len(base))
	}

	got := kit[sequencer.SoundKick].PCM
	if len(got) != len(src) {
		t.Fatalf("kick has %d frames, want %d", len(got), len(src))
	}
	for i := range src {
		if got[i] != src[i] {
			t.Fatalf("frame %d = %d, want %d", i, got[i], src[i])
		}
	}

	// untouched lanes keep the built-in sample
	if len(kit[sequencer.SoundSnare1].PCM) != len(base[sequencer.SoundSnare1].PCM) {
		t.Fatal("lane without a file lost its base sample")
	}
}

func TestLoadKitDirRejectsRateMismatch(t *testing.T) {
	dir := t.TempDir()
	writeWAV(t, filepath.Join(dir, "Kc.wav"), 44100, []int16{0, 256})

	_, err := LoadKitDir(dir, sequencer.DefaultSampleRate, sequencer.DefaultKit(sequencer.DefaultSampleRate))
	if err == nil || !strings.Contains(err.Error(), "sample rate") {
		t.Fatalf("err = %v, want sample rate mismatch", err)
	}
}

func TestRecorderPad(t *testing.T) {
	rec, err := CreateRecorder(filepath.Join(t.TempDir(), "out.wav"), 8000)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer rec.Close()

	_ = rec.Write([]int16{1, 2, 3})
	if err := rec.Pad(10); err != nil {
		t.Fatalf("pad: %v", err)
	}
	if rec.Frames() != 10 {
		t.Fatalf("frames = %d, want 10", rec.Frames())
	}
	_ = rec.Pad(4)
	if rec.Frames() != 10 {
		t.Fatalf("pad shorter than recording changed length to %d", rec.Frames())
	}
	rec.Clear()
	if rec.Clears() != 1 {
		t.Fatalf("clears = %d", rec.Clears())
	}
}

func TestTo8(t *testing.T) {
	cases := []struct {
		v, depth int
		want     int8
	}{
		{128, 8, 0},
		{255, 8, 127},
		{0, 8, -128},
		{-256, 16, -1},
		{32767, 16, 127},
		{-8388608, 24, -128},
	}
	for _, tc := range cases {
		if got := to8(tc.v, tc.depth); got != tc.want {
			t.Errorf("to8(%d, %d) = %d, want %d", tc.v, tc.depth, got, tc.want)
		}
	}
}
