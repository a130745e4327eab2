package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/MrJamesThe3rd/carteira/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/carteira/internal/bank"
	bankStore "github.com/MrJamesThe3rd/carteira/internal/bank/store"
	"github.com/MrJamesThe3rd/carteira/internal/card"
	cardStore "github.com/MrJamesThe3rd/carteira/internal/card/store"
	"github.com/MrJamesThe3rd/carteira/internal/config"
	"github.com/MrJamesThe3rd/carteira/internal/database"
	"github.com/MrJamesThe3rd/carteira/internal/expense"
	expenseStore "github.com/MrJamesThe3rd/carteira/internal/expense/store"
	"github.com/MrJamesThe3rd/carteira/internal/export"
	"github.com/MrJamesThe3rd/carteira/internal/forecast"
	"github.com/MrJamesThe3rd/carteira/internal/importer"
	"github.com/MrJamesThe3rd/carteira/internal/income"
	incomeStore "github.com/MrJamesThe3rd/carteira/internal/income/store"
	"github.com/MrJamesThe3rd/carteira/internal/invoice"
	invoiceStore "github.com/MrJamesThe3rd/carteira/internal/invoice/store"
	"github.com/MrJamesThe3rd/carteira/internal/logger"
	"github.com/MrJamesThe3rd/carteira/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/carteira/internal/matching/store"
	"github.com/MrJamesThe3rd/carteira/internal/receipt"
	"github.com/MrJamesThe3rd/carteira/internal/user"
	userStore "github.com/MrJamesThe3rd/carteira/internal/user/store"
)

const logFile = "carteira-tui.log"

// screen is one menu entry; build creates a fresh view each time it is opened.
type screen struct {
	key   string
	title string
	build func() view.View
}

type model struct {
	appName string
	screens []screen
	active  view.View
	width   int
	height  int
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.active == nil {
			return m.updateMenu(msg)
		}
	case view.BackMsg:
		m.active = nil
		return m, nil
	}

	if m.active == nil {
		return m, nil
	}

	next, cmd := m.active.Update(msg)
	m.active = next.(view.View)

	return m, cmd
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "q" {
		return m, tea.Quit
	}

	for _, s := range m.screens {
		if msg.String() != s.key {
			continue
		}

		m.active = s.build()

		cmds := []tea.Cmd{m.active.Init()}
		if m.width > 0 {
			size := tea.WindowSizeMsg{Width: m.width, Height: m.height}
			cmds = append(cmds, func() tea.Msg { return size })
		}

		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m model) View() string {
	if m.active != nil {
		header := lipgloss.NewStyle().Bold(true).PaddingLeft(1).Render(m.active.Title())
		return header + "\n" + m.active.View()
	}

	var sb strings.Builder

	sb.WriteString(lipgloss.NewStyle().Bold(true).Render(m.appName) + "\n\n")

	for _, s := range m.screens {
		fmt.Fprintf(&sb, "%s. %s\n", s.key, s.title)
	}

	sb.WriteString("\nq. Sair")

	return lipgloss.NewStyle().Padding(2).Render(sb.String())
}

func newModel(cfg *config.Config, log zerolog.Logger) (model, func(), error) {
	if cfg.TUI.Owner == "" {
		return model{}, nil, errors.New("TUI_OWNER is required")
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return model{}, nil, fmt.Errorf("connect to database: %w", err)
	}

	receipts, err := openReceipts(cfg)
	if err != nil {
		db.Close()
		return model{}, nil, err
	}

	var (
		bankService     = bank.NewService(bankStore.New(db))
		cardService     = card.NewService(cardStore.New(db))
		expenseService  = expense.NewService(expenseStore.New(db))
		incomeService   = income.NewService(incomeStore.New(db))
		userService     = user.NewService(userStore.New(db))
		matchingService = matching.NewService(matchingStore.New(db))
		invoiceService  = invoice.NewService(invoiceStore.New(db), cardService, expenseService)
		importService   = importer.NewService(expenseService, incomeService, bankService, cardService, matchingService)
		exportService   = export.NewService(expenseService, receipt.NewService(receipts, expenseService))
		forecastService = forecast.NewService(forecast.Sources{
			Banks:    bankService,
			Cards:    cardService,
			Incomes:  incomeService,
			Expenses: expenseService,
			Invoices: invoiceService,
			Users:    userService,
		}, log)
	)

	common := view.CommonModel{OwnerID: cfg.TUI.Owner}

	screens := []screen{
		{"1", "Previsão de saldo", func() view.View {
			return view.NewForecastModel(common, forecastService, cfg.Forecast.Horizon, cfg.TUI.ExportDir)
		}},
		{"2", "Cartões e faturas", func() view.View {
			return view.NewCardsModel(common, cardService, invoiceService, bankService)
		}},
		{"3", "Pendências", func() view.View {
			return view.NewPendingModel(common, expenseService, incomeService, bankService, cardService)
		}},
		{"4", "Importar extrato", func() view.View {
			return view.NewImportModel(common, importService, bankService, cardService)
		}},
		{"5", "Exportar comprovantes", func() view.View {
			return view.NewExportModel(common, exportService, cfg.TUI.ExportDir)
		}},
	}

	return model{appName: cfg.App.Name, screens: screens}, func() { db.Close() }, nil
}

// openReceipts mirrors the API: the bucket when configured, the local directory otherwise.
func openReceipts(cfg *config.Config) (receipt.Store, error) {
	if cfg.Storage.Bucket != "" {
		gcs, err := receipt.NewGCS(context.Background(), cfg.Storage.Bucket)
		if err != nil {
			return nil, fmt.Errorf("open receipts bucket: %w", err)
		}

		return gcs, nil
	}

	local, err := receipt.NewLocal(cfg.Storage.LocalDir)
	if err != nil {
		return nil, fmt.Errorf("open receipts dir: %w", err)
	}

	return local, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	f, err := tea.LogToFile(logFile, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open %s: %v\n", logFile, err)
		os.Exit(1)
	}
	defer f.Close()

	log := logger.New(logger.Options{Level: cfg.Log.Level, JSON: true, Out: f})

	m, closeDB, err := newModel(cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("failed to start")
		fmt.Fprintln(os.Stderr, err)
		f.Close()
		os.Exit(1)
	}
	defer closeDB()

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Error().Err(err).Msg("tui stopped")
		fmt.Fprintln(os.Stderr, err)
	}
}
