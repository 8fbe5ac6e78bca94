package main

import (
	"path/filepath"
	"testing"

	"go-drumseq/audio"
	"go-drumseq/sequencer"
)

func TestProgram(t *testing.T) {
	lib := sequencer.DefaultLibrary(sequencer.DefaultSampleRate)
	e := sequencer.NewEngine(lib, audio.Discard{}, sequencer.Options{})

	if err := program(e, lib.Names(), []string{"kc:0,4,8,12", "CH:2,2"}); err != nil {
		t.Fatalf("program: %v", err)
	}
	for _, step := range []int{0, 4, 8, 12} {
		if !e.Grid().IsActive(sequencer.SoundKick, step) {
			t.Errorf("kick step %d not set", step)
		}
	}
	if !e.Grid().IsActive(sequencer.SoundClosedHat, 2) {
		t.Error("repeated step toggled back off")
	}

	bad := [][]string{
		{"Kc"},
		{"Zz:1"},
		{"Kc:16"},
		{"Kc:x"},
	}
	for _, args := range bad {
		if err := program(e, lib.Names(), args); err == nil {
			t.Errorf("program(%v) accepted", args)
		}
	}
}

func TestRunWritesWAV(t *testing.T) {
	out := filepath.Join(t.TempDir(), "beat.wav")
	if err := run([]string{"-o", out, "-bars", "2", "-step", "100", "Kc:0,8", "S1:4"}); err != nil {
		t.Fatalf("run: %v", err)
	}

	pcm, err := audio.LoadSample(out, sequencer.DefaultSampleRate)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	// 32 steps of at least 1638 frames each
	if want := 32 * 1638; len(pcm) < want {
		t.Fatalf("rendered %d frames, want at least %d", len(pcm), want)
	}
	if pcm[0] == 0 && pcm[1] == 0 && pcm[2] == 0 && pcm[100] == 0 {
		t.Fatal("kick on step 0 is silent")
	}
}
