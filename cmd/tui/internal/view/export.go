package view

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/carteira/internal/expense"
	"github.com/MrJamesThe3rd/carteira/internal/export"
)

const exportTimeout = 2 * time.Minute

type exportState int

const (
	exportStateTimeframe exportState = iota
	exportStatePath
	exportStateExporting
	exportStateResult
)

// ExportModel copies the receipts of a date range to a local directory.
type ExportModel struct {
	CommonModel
	exportService *export.Service
	defaultDir    string

	state           exportState
	timeframePicker TimeframePicker

	filter expense.ListFilter
	form   *huh.Form

	spinner spinner.Model
	dir     string
	summary string
	err     error
}

func NewExportModel(common CommonModel, svc *export.Service, defaultDir string) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ExportModel{
		CommonModel:     common,
		exportService:   svc,
		defaultDir:      defaultDir,
		timeframePicker: NewTimeframePicker(),
		spinner:         s,
	}
}

func (m ExportModel) Title() string { return "Exportar comprovantes" }

func (m ExportModel) ShortHelp() string {
	switch m.state {
	case exportStateResult:
		return "Esc: voltar ao menu"
	case exportStateExporting:
		return "Exportando..."
	}

	return "Esc: voltar | Enter: confirmar"
}

func (m ExportModel) Init() tea.Cmd {
	return nil
}

type exportResultMsg struct {
	dir     string
	summary string
	err     error
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if tf, ok := msg.(TimeframeSelectedMsg); ok {
		m.filter = expense.ListFilter{}
		if !tf.All {
			m.filter.StartDate = &tf.Start
			m.filter.EndDate = &tf.End
		}

		m.form = m.buildPathForm()
		m.state = exportStatePath

		return m, m.form.Init()
	}

	switch m.state {
	case exportStateTimeframe:
		return m.updateTimeframe(msg)
	case exportStatePath:
		return m.updatePath(msg)
	case exportStateExporting:
		return m.updateExporting(msg)
	case exportStateResult:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m ExportModel) updateTimeframe(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
		return m, Back
	}

	var cmd tea.Cmd
	m.timeframePicker, cmd = m.timeframePicker.Update(msg)

	return m, cmd
}

func (m ExportModel) updatePath(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = exportStateTimeframe
		m.timeframePicker.Reset()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	dir := m.form.GetString("path")
	if dir == "" {
		dir = m.defaultDir
	}

	m.state = exportStateExporting
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.runExportCmd(m.filter, dir))
}

func (m ExportModel) updateExporting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(exportResultMsg); ok {
		m.state = exportStateResult
		m.err = result.err
		m.dir = result.dir
		m.summary = result.summary

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m ExportModel) buildPathForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("path").
				Title("Diretório de saída").
				Description("Será criado se não existir").
				Placeholder(m.defaultDir),
		),
	).WithWidth(60).WithShowHelp(false)
}

func (m ExportModel) View() string {
	switch m.state {
	case exportStateTimeframe:
		return padded.Render(m.timeframePicker.View())
	case exportStatePath:
		return padded.Render(m.form.View())
	case exportStateExporting:
		return padded.Render(fmt.Sprintf("%s Copiando comprovantes...", m.spinner.View()))
	case exportStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ExportModel) viewResult() string {
	if m.err != nil {
		return padded.Render(errStyle.Render(fmt.Sprintf("Erro: %v", m.err)) + "\n\n(Esc para voltar)")
	}

	return padded.Render(lipgloss.JoinVertical(lipgloss.Left,
		okStyle.Bold(true).Render("Exportação concluída"),
		dimStyle.Render(m.dir),
		"",
		m.summary,
		dimStyle.Render(m.ShortHelp()),
	))
}

func (m ExportModel) runExportCmd(filter expense.ListFilter, dir string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		abs, err := filepath.Abs(dir)
		if err != nil {
			return exportResultMsg{err: err}
		}

		items, err := m.exportService.Export(ctx, m.OwnerID, filter, abs)
		if err != nil {
			return exportResultMsg{err: err}
		}

		return exportResultMsg{dir: abs, summary: m.exportService.Summary(items)}
	}
}
