package view

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/carteira/internal/bank"
	"github.com/MrJamesThe3rd/carteira/internal/card"
	"github.com/MrJamesThe3rd/carteira/internal/importer"
	"github.com/MrJamesThe3rd/carteira/internal/importer/statement"
	"github.com/MrJamesThe3rd/carteira/internal/money"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateSetup importState = iota
	importStateFilePick
	importStateImporting
	importStateResult
)

// Account choices are encoded as "bank:<id>" or "card:<id>".
const (
	bankPrefix = "bank:"
	cardPrefix = "card:"
)

type ImportModel struct {
	CommonModel
	importService *importer.Service
	banks         *bank.Service
	cards         *card.Service

	state      importState
	form       *huh.Form
	filePicker filepicker.Model

	accounts []*bank.Account
	cardList []*card.Card
	params   importer.Params

	summary *importer.Summary
	status  string
	err     error
}

func NewImportModel(common CommonModel, impSvc *importer.Service, banks *bank.Service, cards *card.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".CSV", ".txt"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		CommonModel:   common,
		importService: impSvc,
		banks:         banks,
		cards:         cards,
		filePicker:    fp,
		status:        "Carregando contas...",
	}
}

func (m ImportModel) Title() string { return "Importar extrato" }

func (m ImportModel) ShortHelp() string {
	if m.state == importStateResult {
		return "Esc: nova importação"
	}

	return "Esc: voltar | Enter: selecionar"
}

type importAccountsMsg struct {
	accounts []*bank.Account
	cards    []*card.Card
	err      error
}

type importResultMsg struct {
	summary *importer.Summary
	err     error
}

func (m ImportModel) Init() tea.Cmd {
	return m.loadAccountsCmd()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

	case importAccountsMsg:
		if msg.err != nil {
			m.state = importStateResult
			m.err = msg.err

			return m, nil
		}

		m.accounts = msg.accounts
		m.cardList = msg.cards
		m.form = m.buildSetupForm()
		m.status = ""

		return m, m.form.Init()

	case importResultMsg:
		m.state = importStateResult
		m.err = msg.err
		m.summary = msg.summary

		return m, nil
	}

	switch m.state {
	case importStateSetup:
		return m.updateSetup(msg)
	case importStateFilePick:
		return m.updateFilePick(msg)
	}

	return m, nil
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateFilePick:
		m.state = importStateSetup
		m.form = m.buildSetupForm()

		return m, m.form.Init()
	case importStateResult:
		m.state = importStateSetup
		m.err = nil
		m.summary = nil
		m.form = m.buildSetupForm()

		return m, m.form.Init()
	}

	return m, Back
}

func (m ImportModel) updateSetup(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	params, err := parseImportChoice(m.form.GetString("source"), m.form.GetString("account"))
	if err != nil {
		m.state = importStateResult
		m.err = err

		return m, nil
	}

	m.params = params
	m.state = importStateFilePick

	return m, m.filePicker.Init()
}

func (m ImportModel) updateFilePick(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateImporting
		m.status = fmt.Sprintf("Importando %s...", path)

		return m, m.importCmd(path)
	}

	return m, cmd
}

func parseImportChoice(source, account string) (importer.Params, error) {
	params := importer.Params{Source: statement.Source(source)}

	switch {
	case strings.HasPrefix(account, bankPrefix):
		id, err := uuid.Parse(strings.TrimPrefix(account, bankPrefix))
		if err != nil {
			return importer.Params{}, err
		}

		params.BankID = &id
	case strings.HasPrefix(account, cardPrefix):
		id, err := uuid.Parse(strings.TrimPrefix(account, cardPrefix))
		if err != nil {
			return importer.Params{}, err
		}

		params.CardID = &id
	default:
		return importer.Params{}, errors.New("nenhuma conta selecionada")
	}

	return params, nil
}

func (m ImportModel) buildSetupForm() *huh.Form {
	accounts := make([]huh.Option[string], 0, len(m.accounts)+len(m.cardList))
	for _, a := range m.accounts {
		accounts = append(accounts, huh.NewOption("Conta "+a.Name, bankPrefix+a.ID.String()))
	}

	for _, c := range m.cardList {
		accounts = append(accounts, huh.NewOption(fmt.Sprintf("Cartão %s final %s", c.Name, c.LastFour), cardPrefix+c.ID.String()))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("source").
				Title("Banco do extrato").
				Options(
					huh.NewOption("Detectar automaticamente", string(statement.SourceAuto)),
					huh.NewOption("Nubank", string(statement.SourceNubank)),
					huh.NewOption("Itaú", string(statement.SourceItau)),
					huh.NewOption("Banco do Brasil", string(statement.SourceBB)),
				),
			huh.NewSelect[string]().
				Key("account").
				Title("Conta ou cartão").
				Description("Extratos de cartão exigem um cartão").
				Options(accounts...),
		),
	).WithWidth(60).WithShowHelp(false)
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateSetup:
		if m.form == nil {
			return padded.Render(m.status)
		}

		return padded.Render(m.form.View())
	case importStateFilePick:
		return padded.Render("Selecione o arquivo CSV:\n\n" + m.filePicker.View())
	case importStateImporting:
		return padded.Render(m.status)
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewResult() string {
	if m.err != nil {
		return padded.Render(errStyle.Render(fmt.Sprintf("Erro: %v", m.err)) + "\n\n(Esc para voltar)")
	}

	s := m.summary

	var sb strings.Builder

	sb.WriteString(okStyle.Render(fmt.Sprintf("%d lançamento(s) importado(s)", s.Imported())))
	fmt.Fprintf(&sb, "\n\nFormato: %s (%s)\n", s.Profile, s.Charset)
	fmt.Fprintf(&sb, "Categorizados por regra: %d\n", s.Categorized)

	if s.Ignored > 0 {
		fmt.Fprintf(&sb, "Créditos de cartão ignorados: %d\n", s.Ignored)
	}

	if s.Skipped() > 0 {
		fmt.Fprintf(&sb, "\nJá registrados (%d):\n", s.Skipped())

		for _, e := range s.SkippedExpenses {
			fmt.Fprintf(&sb, "  %s  -%s  %s\n", formatDate(e.Date), money.Format(e.Amount), e.Description)
		}

		for _, i := range s.SkippedIncomes {
			fmt.Fprintf(&sb, "  %s  %s  %s\n", formatDate(i.Date), money.Format(i.Amount), i.Description)
		}
	}

	sb.WriteString("\n" + dimStyle.Render(m.ShortHelp()))

	return padded.Render(sb.String())
}

func (m ImportModel) loadAccountsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := dbCtx()
		defer cancel()

		accounts, err := m.banks.List(ctx, m.OwnerID)
		if err != nil {
			return importAccountsMsg{err: err}
		}

		cards, err := m.cards.List(ctx, m.OwnerID)

		return importAccountsMsg{accounts: accounts, cards: cards, err: err}
	}
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	params := m.params

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		summary, err := m.importService.Import(ctx, m.OwnerID, params, f)

		return importResultMsg{summary: summary, err: err}
	}
}
