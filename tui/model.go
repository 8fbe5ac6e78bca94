package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-drumseq/debug"
	"go-drumseq/midi"
	"go-drumseq/sequencer"
	"go-drumseq/theme"
	"go-drumseq/widgets"
)

type Model struct {
	Sink      *Sink
	Events    chan<- sequencer.Event
	DeviceMgr *midi.DeviceManager // nil when MIDI is off
	LEDs      *sequencer.LEDDisplay
	Theme     *theme.Theme
	Period    time.Duration
	Quit      func() // stops the engine

	controller midi.Controller // current controller (may be nil)
	showHelp   bool
	quitting   bool
}

type UpdateMsg struct{}

type DeviceEventMsg midi.DeviceEvent

func ListenForUpdates(sink *Sink) tea.Cmd {
	return func() tea.Msg {
		<-sink.UpdateChan
		return UpdateMsg{}
	}
}

func ListenForDevices(deviceMgr *midi.DeviceManager) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-deviceMgr.Events()
		if !ok {
			return nil
		}
		return DeviceEventMsg(event)
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{ListenForUpdates(m.Sink)}
	if m.DeviceMgr != nil {
		cmds = append(cmds, ListenForDevices(m.DeviceMgr))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c":
			m.quitting = true
			if m.Quit != nil {
				m.Quit()
			}
			return m, tea.Quit

		case "?":
			m.showHelp = !m.showHelp

		default:
			if ev, ok := sequencer.KeyEvent(key); ok {
				sequencer.Send(m.Events, ev)
			}
		}

	case UpdateMsg:
		return m, ListenForUpdates(m.Sink)

	case DeviceEventMsg:
		event := midi.DeviceEvent(msg)
		switch event.Type {
		case midi.DeviceConnected:
			debug.Log("tui", "device connected: %s (%s)", event.ID, event.Controller.Type())
			go sequencer.Listen(event.Controller, m.Events)
			if event.Controller.Type() == midi.ControllerLaunchpad {
				m.controller = event.Controller
				if m.LEDs != nil {
					m.LEDs.SetController(event.Controller)
				}
			}
		case midi.DeviceDisconnected:
			if m.controller != nil && m.controller.ID() == event.ID {
				m.controller = nil
				if m.LEDs != nil {
					m.LEDs.SetController(nil)
				}
			}
		}
		return m, ListenForDevices(m.DeviceMgr)
	}

	return m, nil
}

var keyHelp = []widgets.KeySection{
	{Title: "Edit", Keys: []widgets.KeyBinding{
		{Key: "hjkl/arrows", Desc: "move cursor"},
		{Key: "space/enter", Desc: "toggle step"},
		{Key: "r", Desc: "clear pattern"},
	}},
	{Title: "Transport", Keys: []widgets.KeyBinding{
		{Key: "p", Desc: "play / stop"},
	}},
	{Keys: []widgets.KeyBinding{
		{Key: "?", Desc: "hide help"},
		{Key: "q", Desc: "quit"},
	}},
}

// BPM for a sixteenth-note step period
func BPM(period time.Duration) int {
	if period <= 0 {
		return 0
	}
	return int(time.Minute / (4 * period))
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.Sink.Latest()

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent()).Background(m.Theme.Surface())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())

	playState := headerStyle.Foreground(m.Theme.Warning()).Render("STOP")
	if snap.Running {
		playState = headerStyle.Render("PLAY")
	}

	deviceStatus := ""
	if m.controller != nil {
		deviceStatus = " LP:X"
	}

	header := headerStyle.Render("go-drumseq  ") + playState +
		headerStyle.Render(fmt.Sprintf("  %3dbpm  step:%02d%s", BPM(m.Period), snap.Step, deviceStatus))

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(m.renderGrid(snap))
	out.WriteString("\n")

	if m.controller != nil {
		out.WriteString(m.renderPads(snap))
		out.WriteString("\n\n")
	}

	if m.showHelp {
		out.WriteString(dimStyle.Render(widgets.RenderKeyHelp(keyHelp)))
	} else {
		out.WriteString(dimStyle.Render("hjkl:nav  space:toggle  p:play  r:clear  ?:help  q:quit"))
	}

	return out.String()
}

// renderGrid draws one line per lane with a beat ruler on top
func (m Model) renderGrid(snap sequencer.Snapshot) string {
	nameStyle := lipgloss.NewStyle().Foreground(m.Theme.FG()).Width(4)
	emptyStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	activeStyle := lipgloss.NewStyle().Foreground(m.Theme.Active())
	playStyle := lipgloss.NewStyle().Foreground(m.Theme.Success())
	cursorStyle := lipgloss.NewStyle().Foreground(m.Theme.Cursor()).Bold(true)

	// the column heard last; Step already points past it
	playhead := -1
	if snap.Running && snap.Cols() > 0 {
		playhead = (snap.Step + snap.Cols() - 1) % snap.Cols()
	}

	var out strings.Builder
	out.WriteString(strings.Repeat(" ", 4))
	for step := 0; step < snap.Cols(); step++ {
		if step%4 == 0 {
			out.WriteString(emptyStyle.Render(fmt.Sprintf("%-2d", step+1)))
		} else {
			out.WriteString("  ")
		}
	}
	out.WriteString("\n")

	for sound, row := range snap.Cells {
		name := "??"
		if sound < len(snap.Names) {
			name = snap.Names[sound]
		}
		out.WriteString(nameStyle.Render(name))
		for step, on := range row {
			cursor := sound == snap.Cursor.Row && step == snap.Cursor.Col
			glyph := string(m.Theme.Glyph(on, cursor, step == playhead))

			style := emptyStyle
			switch {
			case cursor:
				style = cursorStyle
			case on:
				style = activeStyle
			case step == playhead:
				style = playStyle
			}
			out.WriteString(style.Render(glyph))
			out.WriteString(" ")
		}
		out.WriteString("\n")
	}
	return out.String()
}

// renderPads mirrors what the Launchpad is showing
func (m Model) renderPads(snap sequencer.Snapshot) string {
	var g widgets.PadGrid
	for _, led := range sequencer.RenderLEDs(snap) {
		g.Set(led.Row, led.Col, widgets.Pad(led.Color))
	}
	return widgets.RenderPadGrid(g)
}
