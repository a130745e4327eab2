package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/carteira/internal/period"
)

const inputDateLayout = "02/01/2006"

// Timeframe is a predefined or custom date range, counted in calendar months.
type Timeframe int

const (
	TimeframeThisMonth Timeframe = iota
	TimeframeLastMonth
	TimeframeLastQuarter
	TimeframeThisYear
	TimeframeAll
	TimeframeCustom
)

func (t Timeframe) String() string {
	switch t {
	case TimeframeThisMonth:
		return "Este mês"
	case TimeframeLastMonth:
		return "Mês passado"
	case TimeframeLastQuarter:
		return "Últimos 3 meses"
	case TimeframeThisYear:
		return "Este ano"
	case TimeframeAll:
		return "Tudo"
	case TimeframeCustom:
		return "Personalizado"
	}

	return "?"
}

// Range resolves t relative to now. All and Custom have no fixed range.
func (t Timeframe) Range(now time.Time) (time.Time, time.Time) {
	current := period.Of(now)

	switch t {
	case TimeframeThisMonth:
		return current.Start(), current.End()
	case TimeframeLastMonth:
		last := current.Prev()
		return last.Start(), last.End()
	case TimeframeLastQuarter:
		return current.Add(-2).Start(), current.End()
	case TimeframeThisYear:
		return period.Period{Year: current.Year, Month: time.January}.Start(), current.End()
	}

	return time.Time{}, time.Time{}
}

// TimeframeSelectedMsg carries the chosen range. Start and End are zero when All is set.
type TimeframeSelectedMsg struct {
	Start time.Time
	End   time.Time
	All   bool
}

type timeframeState int

const (
	timeframeStateSelect timeframeState = iota
	timeframeStateCustom
)

// TimeframePicker lets the user choose a range from a short menu or type one in.
type TimeframePicker struct {
	state    timeframeState
	selected Timeframe
	now      func() time.Time

	startInput textinput.Model
	endInput   textinput.Model
	focusIndex int

	err error
}

func NewTimeframePicker() TimeframePicker {
	si := textinput.New()
	si.Placeholder = "DD/MM/AAAA"
	si.CharLimit = 10
	si.Width = 12
	si.Prompt = "Início: "

	ei := textinput.New()
	ei.Placeholder = "DD/MM/AAAA"
	ei.CharLimit = 10
	ei.Width = 12
	ei.Prompt = "Fim:    "

	return TimeframePicker{
		state:      timeframeStateSelect,
		selected:   TimeframeThisMonth,
		now:        time.Now,
		startInput: si,
		endInput:   ei,
	}
}

func (m TimeframePicker) Update(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if m.state == timeframeStateSelect {
			return m.updateSelect(keyMsg)
		}

		if next, cmd, handled := m.updateCustom(keyMsg); handled {
			return next, cmd
		}
	}

	if m.state != timeframeStateCustom {
		return m, nil
	}

	var cmds [2]tea.Cmd
	m.startInput, cmds[0] = m.startInput.Update(msg)
	m.endInput, cmds[1] = m.endInput.Update(msg)

	return m, tea.Batch(cmds[:]...)
}

func (m TimeframePicker) updateSelect(msg tea.KeyMsg) (TimeframePicker, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.selected > TimeframeThisMonth {
			m.selected--
		}
	case "down", "j":
		if m.selected < TimeframeCustom {
			m.selected++
		}
	case "enter":
		switch m.selected {
		case TimeframeCustom:
			m.state = timeframeStateCustom
			m.focusIndex = 0
			m.startInput.Focus()

			return m, textinput.Blink
		case TimeframeAll:
			return m, func() tea.Msg { return TimeframeSelectedMsg{All: true} }
		}

		start, end := m.selected.Range(m.now())

		return m, func() tea.Msg { return TimeframeSelectedMsg{Start: start, End: end} }
	}

	return m, nil
}

func (m TimeframePicker) updateCustom(msg tea.KeyMsg) (TimeframePicker, tea.Cmd, bool) {
	switch msg.String() {
	case "tab", "shift+tab":
		m.focusIndex = 1 - m.focusIndex
		m.startInput.Blur()
		m.endInput.Blur()

		if m.focusIndex == 0 {
			m.startInput.Focus()
		} else {
			m.endInput.Focus()
		}

		return m, textinput.Blink, true
	case "enter":
		start, end, err := parseRange(m.startInput.Value(), m.endInput.Value())
		if err != nil {
			m.err = err
			return m, nil, true
		}

		m.err = nil

		return m, func() tea.Msg { return TimeframeSelectedMsg{Start: start, End: end} }, true
	case "esc":
		m.state = timeframeStateSelect
		m.err = nil

		return m, nil, true
	}

	return m, nil, false
}

func parseRange(startText, endText string) (time.Time, time.Time, error) {
	start, err := time.Parse(inputDateLayout, strings.TrimSpace(startText))
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("data inicial inválida (DD/MM/AAAA)")
	}

	end, err := time.Parse(inputDateLayout, strings.TrimSpace(endText))
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("data final inválida (DD/MM/AAAA)")
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, errors.New("a data final é anterior à inicial")
	}

	return start, end, nil
}

func (m TimeframePicker) View() string {
	var sb strings.Builder

	if m.state == timeframeStateCustom {
		fmt.Fprintf(&sb, "Período personalizado:\n\n%s\n%s\n\n", m.startInput.View(), m.endInput.View())
		sb.WriteString(dimStyle.Render("Enter: confirmar | Tab: alternar | Esc: voltar"))
	} else {
		sb.WriteString("Escolha o período:\n\n")

		for tf := TimeframeThisMonth; tf <= TimeframeCustom; tf++ {
			cursor := " "
			if tf == m.selected {
				cursor = ">"
			}

			fmt.Fprintf(&sb, "%s %s\n", cursor, tf)
		}

		sb.WriteString("\n" + dimStyle.Render("Enter: selecionar | Esc: voltar"))
	}

	if m.err != nil {
		sb.WriteString("\n\n" + errStyle.Render("Erro: "+m.err.Error()))
	}

	return sb.String()
}

// IsSelecting reports whether the picker shows the menu rather than the custom inputs.
func (m TimeframePicker) IsSelecting() bool {
	return m.state == timeframeStateSelect
}

func (m *TimeframePicker) Reset() {
	m.state = timeframeStateSelect
	m.selected = TimeframeThisMonth
	m.err = nil
	m.startInput.SetValue("")
	m.endInput.SetValue("")
}
