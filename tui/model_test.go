package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"go-drumseq/sequencer"
	"go-drumseq/theme"
)

func newTestModel() (Model, chan sequencer.Event, *bool) {
	events := make(chan sequencer.Event, 8)
	quit := false
	m := Model{
		Sink:   NewSink(),
		Events: events,
		Theme:  theme.New(nil),
		Period: 125 * time.Millisecond,
		Quit:   func() { quit = true },
	}
	return m, events, &quit
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestUpdateSendsEvents(t *testing.T) {
	m, events, _ := newTestModel()

	tests := []struct {
		msg  tea.KeyMsg
		want sequencer.Event
	}{
		{runeKey('p'), sequencer.ToggleRun},
		{runeKey('r'), sequencer.ResetPattern},
		{runeKey('j'), sequencer.MoveDown},
		{tea.KeyMsg{Type: tea.KeyLeft}, sequencer.MoveLeft},
		{tea.KeyMsg{Type: tea.KeyEnter}, sequencer.ToggleCell},
	}
	for _, tt := range tests {
		m.Update(tt.msg)
		select {
		case got := <-events:
			if got != tt.want {
				t.Errorf("%q sent %s, want %s", tt.msg.String(), got, tt.want)
			}
		default:
			t.Errorf("%q sent nothing", tt.msg.String())
		}
	}

	m.Update(runeKey('z'))
	if len(events) != 0 {
		t.Fatal("unmapped key produced an event")
	}
}

func TestQuitStopsEngine(t *testing.T) {
	m, _, quit := newTestModel()
	next, cmd := m.Update(runeKey('q'))
	if !*quit {
		t.Fatal("quit hook not called")
	}
	if cmd == nil {
		t.Fatal("expected tea.Quit")
	}
	if next.View() != "" {
		t.Fatal("view should be empty after quit")
	}
}

func TestSinkCollapsesUpdates(t *testing.T) {
	s := NewSink()
	s.Render(sequencer.Snapshot{Step: 1})
	s.Render(sequencer.Snapshot{Step: 2})

	if len(s.UpdateChan) != 1 {
		t.Fatalf("pending updates = %d, want 1", len(s.UpdateChan))
	}
	if s.Latest().Step != 2 {
		t.Fatalf("latest step = %d", s.Latest().Step)
	}
}

func TestViewShowsLanes(t *testing.T) {
	m, _, _ := newTestModel()
	lib := sequencer.DefaultLibrary(sequencer.DefaultSampleRate)
	e := sequencer.NewEngine(lib, nil, sequencer.Options{Display: m.Sink})
	e.Handle(sequencer.ToggleRun)

	view := m.View()
	for _, name := range sequencer.KitNames {
		if !strings.Contains(view, name) {
			t.Errorf("view missing lane %s", name)
		}
	}
	if !strings.Contains(view, "PLAY") || !strings.Contains(view, "120bpm") {
		t.Errorf("header missing state:\n%s", view)
	}
}

func TestBPM(t *testing.T) {
	if got := BPM(125 * time.Millisecond); got != 120 {
		t.Fatalf("BPM(125ms) = %d", got)
	}
}

func TestViewShowsStopped(t *testing.T) {
	m, _, _ := newTestModel()
	lib := sequencer.DefaultLibrary(sequencer.DefaultSampleRate)
	e := sequencer.NewEngine(lib, nil, sequencer.Options{Display: m.Sink})
	e.Handle(sequencer.ToggleRun)
	e.Handle(sequencer.ToggleRun)

	view := m.View()
	if !strings.Contains(view, "STOP") || strings.Contains(view, "PLAY") {
		t.Errorf("header should show STOP:\n%s", view)
	}
}
