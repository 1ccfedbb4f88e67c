package tui

import (
	"ev-route-navigator/internal/session"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

var (
	styleAccent       = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	styleLabel        = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleLabelFocused = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	styleTitle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	styleSubtle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	stylePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)

	notifyStyles = map[session.NotificationKind]lipgloss.Style{
		session.KindInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		session.KindSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		session.KindError:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
)

func (m Model) View() string {
	var sections []string

	sections = append(sections, m.renderHeader())

	if m.ctrl.SidebarState() == session.SidebarExpanded {
		sections = append(sections, stylePanel.Render(m.renderForm()))
	} else {
		sections = append(sections, styleSubtle.Render("sidebar collapsed (ctrl+b)"))
	}

	if summary := m.ctrl.Summary(); summary != nil {
		sections = append(sections, stylePanel.Render(renderStatus(summary)))
	}

	if m.ctrl.LegendState() == session.LegendExpanded {
		sections = append(sections, stylePanel.Render(renderLegend()))
	} else {
		sections = append(sections, styleSubtle.Render("legend collapsed (ctrl+l)"))
	}

	if line := m.renderNotification(); line != "" {
		sections = append(sections, line)
	}

	sections = append(sections, m.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := styleTitle.Render("EV Route Navigator")
	battery := m.batteryIndicator()

	mode := ""
	if m.fullscreen {
		mode = styleSubtle.Render(" [fullscreen]")
	}

	return fmt.Sprintf("%s  %s%s\n%s", title, battery, mode,
		styleSubtle.Render("map: "+m.mapURL))
}

func (m Model) renderForm() string {
	var b strings.Builder
	for i := 0; i < fieldCount; i++ {
		b.WriteString(m.renderField(i))
		b.WriteString("\n")
	}

	if m.busy {
		b.WriteString(m.spin.View() + " Planning route…")
	} else {
		b.WriteString(styleAccent.Render("ctrl+s") + " plan route")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderStatus(s *session.Summary) string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("Route Status") + "\n")

	arrival := lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.ArrivalTier.Color())).
		Render(s.ArrivalLabel())
	b.WriteString(fmt.Sprintf("Arrival battery: %s\n", arrival))
	b.WriteString(fmt.Sprintf("Charging stops:  %d\n", s.StopCount))

	if !s.HasStops() {
		b.WriteString(styleSubtle.Render(session.NoStopsMessage))
		return b.String()
	}

	for _, row := range s.Stops {
		b.WriteString(fmt.Sprintf("%s\n  %s\n", row.Label(), styleSubtle.Render(row.Detail())))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderLegend() string {
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("#059669")).Render("━")
	amber := lipgloss.NewStyle().Foreground(lipgloss.Color("#f59e0b")).Render("━")
	red := lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626")).Render("━")
	blue := lipgloss.NewStyle().Foreground(lipgloss.Color("#2563eb")).Render("╌")

	return strings.Join([]string{
		styleTitle.Render("Legend"),
		green + " battery > 60%",
		amber + " battery 30-60%",
		red + " battery ≤ 30%",
		blue + " alternative route",
		"🔌 required stop   ⚡ nearby station",
	}, "\n")
}

func (m Model) renderNotification() string {
	n := m.ctrl.Notifier().Current()
	if n == nil {
		return ""
	}

	style := notifyStyles[n.Kind]
	if n.Leaving {
		style = style.Copy().Faint(true)
	}

	width := m.width
	if width <= 0 {
		width = 80
	}
	return style.Render(wordwrap.String(n.Message, width))
}

func (m Model) renderFooter() string {
	return styleSubtle.Render(
		"ctrl+s plan  ctrl+r clear  ctrl+o center  ctrl+f fullscreen  ctrl+l legend  ctrl+b sidebar  ctrl+c quit")
}
