package view

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/carteira/internal/forecast"
	"github.com/MrJamesThe3rd/carteira/internal/money"
)

type ForecastModel struct {
	CommonModel
	svc      *forecast.Service
	horizon  int
	chartDir string

	table       table.Model
	result      forecast.Result
	showHistory bool

	loading bool
	status  string
	err     error
}

func NewForecastModel(common CommonModel, svc *forecast.Service, horizon int, chartDir string) ForecastModel {
	columns := []table.Column{
		{Title: "Mês", Width: 20},
		{Title: "Saldo inicial", Width: 16},
		{Title: "Receitas", Width: 14},
		{Title: "Despesas", Width: 14},
		{Title: "Faturas", Width: 14},
		{Title: "Saldo final", Width: 16},
	}

	return ForecastModel{
		CommonModel: common,
		svc:         svc,
		horizon:     horizon,
		chartDir:    chartDir,
		table:       newTable(columns, 15),
		loading:     true,
	}
}

func (m ForecastModel) Title() string { return "Previsão de saldo" }

func (m ForecastModel) ShortHelp() string {
	return "Esc: voltar | h: histórico | g: salvar gráfico | r: atualizar"
}

func (m ForecastModel) Init() tea.Cmd {
	return m.loadCmd()
}

type forecastLoadedMsg struct {
	result forecast.Result
	err    error
}

type chartSavedMsg struct {
	path string
	err  error
}

func (m ForecastModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case forecastLoadedMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.result = msg.result
			m.refreshTable()
		}

		return m, nil

	case chartSavedMsg:
		if msg.err != nil {
			m.status = errStyle.Render(fmt.Sprintf("Erro ao salvar gráfico: %v", msg.err))
		} else {
			m.status = okStyle.Render("Gráfico salvo em " + msg.path)
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-12, 5))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			m.status = ""

			return m, m.loadCmd()
		case "h":
			m.showHistory = !m.showHistory
			m.refreshTable()

			return m, nil
		case "g":
			if m.err == nil && !m.loading {
				return m, m.saveChartCmd()
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m *ForecastModel) refreshTable() {
	var rows []table.Row

	if m.showHistory {
		for _, r := range m.result.HistoryMonths {
			rows = append(rows, monthRow(r))
		}
	}

	for _, r := range m.result.Forecast {
		rows = append(rows, monthRow(r))
	}

	m.table.SetRows(rows)
	m.table.GotoTop()
}

func monthRow(r forecast.MonthRow) table.Row {
	label := r.Label
	if r.Historical {
		label += " *"
	}

	return table.Row{
		label,
		money.Format(r.StartingBalance),
		money.Format(r.Income),
		money.Format(r.Expenses),
		money.Format(r.Invoices),
		money.Format(r.EndingBalance),
	}
}

func (m ForecastModel) View() string {
	if m.loading {
		return padded.Render("Calculando previsão...")
	}

	if m.err != nil {
		return padded.Render(errStyle.Render(fmt.Sprintf("Erro: %v", m.err)) + "\n\n(Esc para voltar)")
	}

	header := boldStyle.Render(fmt.Sprintf("Saldo atual: %s", money.Format(m.result.CurrentBalance)))

	parts := []string{header, "", m.table.View()}

	if m.showHistory {
		parts = append(parts, dimStyle.Render("* mês fechado"))
	}

	if len(m.result.Warnings) > 0 {
		var sb strings.Builder

		fmt.Fprintf(&sb, "%d registro(s) ignorado(s):\n", len(m.result.Warnings))

		for _, w := range m.result.Warnings {
			fmt.Fprintf(&sb, "  - %s\n", w.Reason)
		}

		parts = append(parts, "", errStyle.Render(strings.TrimRight(sb.String(), "\n")))
	}

	if m.status != "" {
		parts = append(parts, "", m.status)
	}

	parts = append(parts, "", dimStyle.Render(m.ShortHelp()))

	return padded.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m ForecastModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := dbCtx()
		defer cancel()

		res, err := m.svc.Forecast(ctx, m.OwnerID, m.horizon)

		return forecastLoadedMsg{result: res, err: err}
	}
}

func (m ForecastModel) saveChartCmd() tea.Cmd {
	res := m.result

	return func() tea.Msg {
		png, err := forecast.RenderChart(res)
		if err != nil {
			return chartSavedMsg{err: err}
		}

		if err := os.MkdirAll(m.chartDir, 0o755); err != nil {
			return chartSavedMsg{err: err}
		}

		path := filepath.Join(m.chartDir, "previsao.png")
		if err := os.WriteFile(path, png, 0o644); err != nil {
			return chartSavedMsg{err: err}
		}

		return chartSavedMsg{path: path}
	}
}
