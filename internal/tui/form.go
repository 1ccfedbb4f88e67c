package tui

import (
	"ev-route-navigator/internal/domain"
	"ev-route-navigator/internal/session"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

const (
	fieldStart = iota
	fieldEnd
	fieldCharge
	fieldRange
	fieldCount
)

var fieldLabels = [fieldCount]string{"Start", "Destination", "Battery %", "Range (km)"}

// Defaults restored by the clear action.
var fieldDefaults = [fieldCount]string{"Visakhapatnam", "Hyderabad", "100", "300"}

func newInputs() [fieldCount]textinput.Model {
	var inputs [fieldCount]textinput.Model
	for i := range inputs {
		in := textinput.New()
		in.Placeholder = fieldLabels[i]
		in.SetValue(fieldDefaults[i])
		in.CharLimit = 64
		in.Width = 24
		inputs[i] = in
	}
	inputs[fieldStart].Focus()
	return inputs
}

// fields snapshots the raw input values for validation.
func (m Model) fields() session.FormFields {
	return session.FormFields{
		Start:  m.inputs[fieldStart].Value(),
		End:    m.inputs[fieldEnd].Value(),
		Charge: m.inputs[fieldCharge].Value(),
		Range:  m.inputs[fieldRange].Value(),
	}
}

// renderField draws one input with its floating label: the label floats
// above while the field is focused or holds non-blank content, otherwise
// the placeholder stands in for it.
func (m Model) renderField(i int) string {
	in := m.inputs[i]
	floated := in.Focused() || strings.TrimSpace(in.Value()) != ""

	label := " "
	if floated {
		style := styleLabel
		if in.Focused() {
			style = styleLabelFocused
		}
		label = style.Render(fieldLabels[i])
	}

	return label + "\n" + in.View()
}

var batteryGlyphs = map[string]string{
	"battery-full":    "█████",
	"battery-half":    "███░░",
	"battery-quarter": "█░░░░",
	"battery-empty":   "░░░░░",
}

// batteryIndicator derives the live three-tier indicator from the charge
// field. Recomputed on every keystroke; unparsable input reads as 0.
func (m Model) batteryIndicator() string {
	charge, err := strconv.ParseFloat(strings.TrimSpace(m.inputs[fieldCharge].Value()), 64)
	if err != nil {
		charge = 0
	}

	tier := domain.TierFor(charge)
	glyph := batteryGlyphs[domain.BatteryIcon(charge)]

	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(tier.Color())).
		Render(glyph + " " + strconv.FormatFloat(charge, 'f', -1, 64) + "%")
}
