package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"modlive/driver"
	"modlive/input"
	"modlive/perform"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")).Bold(true)
	recStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555")).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
)

// Model is the control surface: it feeds keyboard input through the
// mapping table into the engine and renders transport, performance,
// phrase, and mixer state.
type Model struct {
	Clock   *driver.Clock
	Engine  *perform.Engine
	Mapping *input.Mapping

	width    int
	height   int
	quitting bool
}

// UpdateMsg arrives whenever engine state changed.
type UpdateMsg struct{}

// NewModel builds the control surface.
func NewModel(clock *driver.Clock, engine *perform.Engine, mapping *input.Mapping) Model {
	return Model{Clock: clock, Engine: engine, Mapping: mapping}
}

// ListenForUpdates relays the engine's update nudges into bubbletea.
func ListenForUpdates(engine *perform.Engine) tea.Cmd {
	return func() tea.Msg {
		<-engine.UpdateChan
		return UpdateMsg{}
	}
}

func (m Model) Init() tea.Cmd {
	return ListenForUpdates(m.Engine)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		key := msg.String()

		switch key {
		case "ctrl+c":
			return m.quit()

		case "R":
			m.Clock.Do(func() {
				p := m.Engine.Performance()
				p.SetRecording(!p.Recording())
			})
			return m, nil

		case "P":
			m.Clock.Do(func() {
				p := m.Engine.Performance()
				p.SetPlayback(!p.Playback())
			})
			return m, nil

		case "C":
			m.Clock.Do(func() {
				m.Engine.Performance().Clear()
			})
			return m, nil
		}

		ev, ok := m.Mapping.ResolveKey(key)
		if !ok {
			return m, nil
		}
		if ev.Action == perform.ActionQuit {
			return m.quit()
		}
		m.Clock.Do(func() {
			m.Engine.HandleAction(ev, perform.OriginUser)
		})
		return m, nil

	case UpdateMsg:
		return m, ListenForUpdates(m.Engine)
	}

	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.Clock.Do(func() {
		m.Engine.HandleAction(perform.Event{Action: perform.ActionStop}, perform.OriginUser)
	})
	return m, tea.Quit
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	st := m.Clock.Snapshot()

	var recording, playback bool
	var perfRow, perfLen int
	var phraseIdx, phraseStep int
	var phrases []perform.Phrase
	m.Clock.Do(func() {
		p := m.Engine.Performance()
		recording = p.Recording()
		playback = p.Playback()
		perfRow = p.Row()
		perfLen = p.Len()
		phraseIdx, phraseStep = m.Engine.ActivePhrase()
		phrases = m.Engine.Phrases()
	})

	var b strings.Builder
	b.WriteString(titleStyle.Render("modlive") + "  " + st.Title + "\n\n")

	// Transport line
	state := "PLAYING"
	style := activeStyle
	if st.Paused {
		state = "PAUSED"
		style = labelStyle
	}
	b.WriteString(fmt.Sprintf("%s  order %02d/%02d  pattern %02d  row %02d/%02d  pitch %.2fx\n",
		style.Render(state), st.Order, st.OrderCount-1, st.Pattern, st.Row, st.Rows-1, st.Pitch))

	if st.Looping {
		b.WriteString(fmt.Sprintf("loop rows %d..%d\n", st.LoopStart, st.LoopEnd))
	}
	b.WriteString("\n")

	// Performance line
	perf := labelStyle.Render("performance:") + " "
	if recording {
		perf += recStyle.Render("● REC") + " "
	}
	if playback {
		perf += activeStyle.Render("▶ replay") + " "
	}
	perf += fmt.Sprintf("row %d, %d events", perfRow, perfLen)
	b.WriteString(perf + "\n")

	// Phrase line
	if phraseIdx >= 0 {
		name := fmt.Sprintf("#%d", phraseIdx)
		if phraseIdx < len(phrases) && phrases[phraseIdx].Name != "" {
			name = phrases[phraseIdx].Name
		}
		b.WriteString(labelStyle.Render("phrase:") + " " +
			activeStyle.Render(fmt.Sprintf("%s step %d", name, phraseStep)) + "\n")
	} else {
		b.WriteString(labelStyle.Render("phrase:") + " idle\n")
	}
	b.WriteString("\n")

	// Channel mute row
	b.WriteString(labelStyle.Render("channels:") + " ")
	for ch := 0; ch < st.Channels; ch++ {
		cell := fmt.Sprintf("%d", ch+1)
		if st.Muted[ch] {
			b.WriteString(mutedStyle.Render(cell) + " ")
		} else {
			b.WriteString(activeStyle.Render(cell) + " ")
		}
	}
	b.WriteString("\n\n")

	b.WriteString(helpStyle.Render("space play/pause • s stop • r retrigger • ←/→ order • l/h/f loop") + "\n")
	b.WriteString(helpStyle.Render("1-8 mute • R record • P replay • C clear take • F1-F8 pads • shift+F1-F8 phrases • q quit") + "\n")

	return b.String()
}
