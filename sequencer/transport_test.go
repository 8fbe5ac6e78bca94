package sequencer

import "testing"

func TestTransportStepWrap(t *testing.T) {
	tr := NewTransport(16)
	tr.ToggleRun()
	for i := 0; i < 16; i++ {
		step, ok := tr.Tick()
		if !ok || step != i {
			t.Fatalf("tick %d = (%d, %v)", i, step, ok)
		}
	}
	if tr.Step() != 0 {
		t.Fatalf("after C ticks step = %d, want 0", tr.Step())
	}
}

func TestTransportStoppedDoesNotAdvance(t *testing.T) {
	tr := NewTransport(4)
	if _, ok := tr.Tick(); ok {
		t.Fatal("stopped transport ticked")
	}
	if tr.Step() != 0 {
		t.Fatal("stopped transport advanced")
	}

	tr.ToggleRun()
	tr.Tick()
	tr.Tick()
	if s := tr.ToggleRun(); s != Stopped {
		t.Fatalf("toggle returned %s", s)
	}
	if tr.Step() != 2 {
		t.Fatalf("stop lost position: step = %d", tr.Step())
	}
	tr.ToggleRun()
	if step, _ := tr.Tick(); step != 2 {
		t.Fatalf("resumed at %d, want 2", step)
	}
}

func TestTransportStopAndSeek(t *testing.T) {
	tr := NewTransport(8)
	tr.ToggleRun()
	tr.Stop()
	tr.Stop()
	if tr.Running() {
		t.Fatal("still running after Stop")
	}
	tr.Seek(5)
	if tr.Step() != 5 {
		t.Fatalf("seek: step = %d", tr.Step())
	}
	defer func() {
		if recover() == nil {
			t.Fatal("seek past end did not panic")
		}
	}()
	tr.Seek(8)
}

func TestTransportStops(t *testing.T) {
	tr := NewTransport(4)
	tr.Stop() // already stopped
	if tr.Stops() != 0 {
		t.Fatalf("stop while stopped counted: %d", tr.Stops())
	}
	tr.ToggleRun()
	tr.ToggleRun()
	tr.ToggleRun()
	tr.Stop()
	if tr.Stops() != 2 {
		t.Fatalf("stops = %d, want 2", tr.Stops())
	}
}
