package tui

import (
	"context"
	"ev-route-navigator/internal/session"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Model is the interactive client: a route form with live validation
// feedback, the status panel, collapsible sidebar and legend, and the
// notification line. The map itself renders in the browser page served
// by the mapview adapter; the TUI shows its URL.
type Model struct {
	ctrl    *session.Controller
	notifCh chan struct{}
	mapURL  string

	inputs [fieldCount]textinput.Model
	focus  int

	spin       spinner.Model
	busy       bool
	fullscreen bool

	width  int
	height int
}

func NewModel(ctrl *session.Controller, mapURL string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styleAccent

	m := Model{
		ctrl:    ctrl,
		notifCh: make(chan struct{}, 8),
		mapURL:  mapURL,
		inputs:  newInputs(),
		spin:    sp,
	}

	ctrl.Notifier().SetOnChange(func() {
		// Non-blocking: a full channel already has a wakeup queued.
		select {
		case m.notifCh <- struct{}{}:
		default:
		}
	})

	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spin.Tick, m.waitNotify())
}

func (m Model) waitNotify() tea.Cmd {
	ch := m.notifCh
	return func() tea.Msg {
		<-ch
		return notifyChangedMsg{}
	}
}

func (m Model) submit() (Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	m.busy = true

	ctrl := m.ctrl
	fields := m.fields()
	return m, tea.Batch(m.spin.Tick, func() tea.Msg {
		return planDoneMsg{err: ctrl.Submit(context.Background(), fields)}
	})
}

func (m Model) clearRoute() Model {
	m.ctrl.Reset()
	m.inputs = newInputs()
	m.focus = fieldStart
	return m
}

func (m *Model) setFocus(i int) tea.Cmd {
	m.focus = (i + fieldCount) % fieldCount
	var cmd tea.Cmd
	for j := range m.inputs {
		if j == m.focus {
			cmd = m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	return cmd
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case notifyChangedMsg:
		return m, m.waitNotify()

	case planDoneMsg:
		m.busy = false
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		// Shortcut keys are consumed here and never reach the inputs.
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+s":
			return m.submit()
		case "ctrl+r":
			return m.clearRoute(), nil
		case "ctrl+f":
			m.fullscreen = m.ctrl.ToggleFullscreen()
			return m, nil
		case "ctrl+l":
			m.ctrl.ToggleLegend()
			return m, nil
		case "ctrl+b":
			m.ctrl.ToggleSidebar()
			return m, nil
		case "ctrl+o":
			m.ctrl.CenterOnRoute()
			return m, nil
		case "tab", "enter", "down":
			return m, m.setFocus(m.focus + 1)
		case "shift+tab", "up":
			return m, m.setFocus(m.focus - 1)
		}

		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}

	return m, nil
}
