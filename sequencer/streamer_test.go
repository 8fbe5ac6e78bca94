package sequencer

import (
	"errors"
	"testing"
)

func TestConvert(t *testing.T) {
	src := []int8{0, 1, -1, 127, -128}
	want := []int16{0, 256, -256, 32512, -32768}
	dst := make([]int16, len(src))
	Convert(dst, src)
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("Convert(%d) = %d, want %d", src[i], dst[i], want[i])
		}
	}
}

func TestStreamerPlay(t *testing.T) {
	out := &recordingOutput{}
	s := NewStreamer(out, 4)

	if err := s.Play([]int8{-1, 2}); err != nil {
		t.Fatalf("play: %v", err)
	}
	if len(out.writes) != 1 || len(out.writes[0]) != 2 || out.writes[0][0] != -256 || out.writes[0][1] != 512 {
		t.Fatalf("writes = %v", out.writes)
	}

	// the scratch buffer is handed back after each play
	if err := s.Play([]int8{1, 1, 1, 1}); err != nil {
		t.Fatalf("second play: %v", err)
	}
	if s.Capacity() != 4 {
		t.Fatalf("capacity = %d", s.Capacity())
	}
}

func TestStreamerScratchExhausted(t *testing.T) {
	out := &recordingOutput{}
	s := NewStreamer(out, 2)

	err := s.Play([]int8{1, 2, 3})
	if !errors.Is(err, ErrScratchExhausted) {
		t.Fatalf("err = %v, want ErrScratchExhausted", err)
	}
	if len(out.writes) != 0 {
		t.Fatal("oversized sample was partly written")
	}
	if err := s.Play([]int8{1}); err != nil {
		t.Fatalf("streamer unusable after exhaustion: %v", err)
	}
}

func TestStreamerWriteErrorReleases(t *testing.T) {
	out := &recordingOutput{err: errors.New("device gone")}
	s := NewStreamer(out, 4)
	if err := s.Play([]int8{1}); err == nil {
		t.Fatal("write error swallowed")
	}
	out.err = nil
	if err := s.Play([]int8{1}); err != nil {
		t.Fatalf("buffer not released after error: %v", err)
	}
}

func TestStreamerFlush(t *testing.T) {
	out := &recordingOutput{}
	NewStreamer(out, 1).Flush()
	if out.clears != 1 {
		t.Fatalf("clears = %d", out.clears)
	}
}

func TestStreamerReentrantPlayBusy(t *testing.T) {
	out := &recordingOutput{}
	s := NewStreamer(out, 4)

	var nested error
	out.onWrite = func() {
		out.onWrite = nil
		nested = s.Play([]int8{2})
	}
	if err := s.Play([]int8{1}); err != nil {
		t.Fatalf("outer play: %v", err)
	}
	if !errors.Is(nested, ErrStreamerBusy) {
		t.Fatalf("nested err = %v, want ErrStreamerBusy", nested)
	}
	if len(out.writes) != 1 {
		t.Fatalf("writes = %d, want 1", len(out.writes))
	}
}
