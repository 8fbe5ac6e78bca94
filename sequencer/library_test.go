package sequencer

import (
	"errors"
	"testing"
)

func TestLibrary(t *testing.T) {
	src := []int8{1, 2, 3}
	lib, err := NewLibrary(
		SampleAsset{Sound: 2, Name: "S2", PCM: src},
		SampleAsset{Sound: 0, Name: "Kc", PCM: []int8{9, 9, 9, 9, 9}},
	)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	src[0] = 100

	a, ok := lib.Lookup(2)
	if !ok || a.PCM[0] != 1 {
		t.Fatalf("lookup returned %+v, %v (library must copy its input)", a, ok)
	}
	if a.Frames() != 3 {
		t.Fatalf("frames = %d", a.Frames())
	}
	if _, ok := lib.Lookup(1); ok {
		t.Fatal("lookup of unregistered sound succeeded")
	}
	if lib.Len() != 2 || lib.MaxFrames() != 5 {
		t.Fatalf("len=%d max=%d", lib.Len(), lib.MaxFrames())
	}

	names := lib.Names()
	if len(names) != 3 || names[0] != "Kc" || names[1] != "??" || names[2] != "S2" {
		t.Fatalf("names = %v", names)
	}
}

func TestLibraryRejects(t *testing.T) {
	_, err := NewLibrary(
		SampleAsset{Sound: 1, PCM: []int8{1}},
		SampleAsset{Sound: 1, PCM: []int8{2}},
	)
	if !errors.Is(err, ErrDuplicateSound) {
		t.Fatalf("duplicate: err = %v", err)
	}

	_, err = NewLibrary(SampleAsset{Sound: 0, Name: "Kc"})
	if !errors.Is(err, ErrEmptySample) {
		t.Fatalf("empty: err = %v", err)
	}
}

func TestDefaultKit(t *testing.T) {
	a := DefaultKit(DefaultSampleRate)
	b := DefaultKit(DefaultSampleRate)
	if len(a) != NumSounds {
		t.Fatalf("kit has %d sounds", len(a))
	}
	for i := range a {
		if a[i].Sound != i || a[i].Name != KitNames[i] {
			t.Fatalf("asset %d = %d %q", i, a[i].Sound, a[i].Name)
		}
		if len(a[i].PCM) == 0 {
			t.Fatalf("%s is empty", a[i].Name)
		}
		if string(int8Bytes(a[i].PCM)) != string(int8Bytes(b[i].PCM)) {
			t.Fatalf("%s differs between renders", a[i].Name)
		}
	}
	lib := DefaultLibrary(DefaultSampleRate)
	if lib.Len() != NumSounds {
		t.Fatalf("library len = %d", lib.Len())
	}
}

func int8Bytes(pcm []int8) []byte {
	b := make([]byte, len(pcm))
	for i, v := range pcm {
		b[i] = byte(v)
	}
	return b
}
