package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/carteira/internal/bank"
	"github.com/MrJamesThe3rd/carteira/internal/card"
	"github.com/MrJamesThe3rd/carteira/internal/invoice"
	"github.com/MrJamesThe3rd/carteira/internal/money"
	"github.com/MrJamesThe3rd/carteira/internal/period"
)

type cardsState int

const (
	cardsStateSelect cardsState = iota
	cardsStatePeriod
	cardsStatePay
)

// CardsModel browses each card's bill one period at a time.
type CardsModel struct {
	CommonModel
	cards    *card.Service
	invoices *invoice.Service
	banks    *bank.Service

	state cardsState
	table table.Model
	list  []*card.Card

	current *card.Card
	summary *invoice.CardSummary
	period  period.Period
	view    *invoice.PeriodView
	detail  table.Model

	form     *huh.Form
	accounts []*bank.Account

	loading bool
	status  string
	err     error
}

func NewCardsModel(common CommonModel, cards *card.Service, invoices *invoice.Service, banks *bank.Service) CardsModel {
	return CardsModel{
		CommonModel: common,
		cards:       cards,
		invoices:    invoices,
		banks:       banks,
		table: newTable([]table.Column{
			{Title: "Cartão", Width: 24},
			{Title: "Final", Width: 6},
			{Title: "Limite", Width: 16},
			{Title: "Fecha", Width: 6},
			{Title: "Vence", Width: 6},
		}, 10),
		detail: newTable([]table.Column{
			{Title: "Data", Width: 12},
			{Title: "Descrição", Width: 36},
			{Title: "Parcela", Width: 8},
			{Title: "Valor", Width: 14},
		}, 12),
		loading: true,
	}
}

func (m CardsModel) Title() string { return "Cartões e faturas" }

func (m CardsModel) ShortHelp() string {
	switch m.state {
	case cardsStatePeriod:
		return "←/→: período | g: gerar fatura | p: pagar | Esc: cartões"
	case cardsStatePay:
		return "Enter: confirmar | Esc: cancelar"
	}

	return "Enter: abrir | Esc: voltar"
}

func (m CardsModel) Init() tea.Cmd {
	return m.loadCardsCmd()
}

type cardsLoadedMsg struct {
	cards []*card.Card
	err   error
}

type periodLoadedMsg struct {
	summary *invoice.CardSummary
	view    *invoice.PeriodView
	err     error
}

type invoiceActionDoneMsg struct {
	status string
	err    error
}

type accountsLoadedMsg struct {
	accounts []*bank.Account
	err      error
}

func (m CardsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case cardsLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.list = msg.cards
		m.refreshCards()

		return m, nil

	case periodLoadedMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.summary = msg.summary
			m.view = msg.view
			m.refreshDetail()
		}

		return m, nil

	case invoiceActionDoneMsg:
		m.state = cardsStatePeriod
		m.form = nil

		if msg.err != nil {
			m.status = errStyle.Render(fmt.Sprintf("Erro: %v", msg.err))
			return m, nil
		}

		m.status = okStyle.Render(msg.status)
		m.loading = true

		return m, m.loadPeriodCmd()

	case accountsLoadedMsg:
		if msg.err != nil {
			m.status = errStyle.Render(fmt.Sprintf("Erro: %v", msg.err))
			return m, nil
		}

		m.accounts = msg.accounts
		m.form = m.buildPayForm()
		m.state = cardsStatePay

		return m, m.form.Init()
	}

	switch m.state {
	case cardsStateSelect:
		return m.updateSelect(msg)
	case cardsStatePeriod:
		return m.updatePeriod(msg)
	case cardsStatePay:
		return m.updatePay(msg)
	}

	return m, nil
}

func (m CardsModel) updateSelect(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "enter":
			idx := m.table.Cursor()
			if idx < 0 || idx >= len(m.list) {
				return m, nil
			}

			m.current = m.list[idx]
			m.state = cardsStatePeriod
			m.period = period.Period{}
			m.view = nil
			m.status = ""
			m.loading = true

			return m, m.loadPeriodCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m CardsModel) updatePeriod(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.state = cardsStateSelect
			m.status = ""
			m.err = nil

			return m, nil
		case "left", "h":
			return m.shift(-1)
		case "right", "l":
			return m.shift(1)
		case "g":
			return m, m.generateCmd()
		case "p":
			if m.view == nil || m.view.Invoice == nil {
				m.status = errStyle.Render("Gere a fatura antes de pagá-la.")
				return m, nil
			}

			if m.view.Invoice.Paid {
				m.status = errStyle.Render("Esta fatura já foi paga.")
				return m, nil
			}

			return m, m.loadAccountsCmd()
		}
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)

	return m, cmd
}

func (m CardsModel) shift(n int) (tea.Model, tea.Cmd) {
	if m.view == nil {
		return m, nil
	}

	m.period = m.view.Period.Add(n)
	m.status = ""
	m.loading = true

	return m, m.loadPeriodCmd()
}

func (m CardsModel) updatePay(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = cardsStatePeriod
		m.form = nil

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.payCmd()
}

func (m CardsModel) buildPayForm() *huh.Form {
	options := []huh.Option[string]{huh.NewOption("Sem débito em conta", "")}
	for _, a := range m.accounts {
		options = append(options, huh.NewOption(fmt.Sprintf("%s (%s)", a.Name, money.Format(a.Balance)), a.ID.String()))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("bank_id").
				Title(fmt.Sprintf("Pagar %s com", money.Format(m.view.Invoice.Total))).
				Options(options...),
		),
	).WithWidth(60).WithShowHelp(false)
}

func (m *CardsModel) refreshCards() {
	rows := make([]table.Row, len(m.list))
	for i, c := range m.list {
		rows[i] = table.Row{
			c.Name,
			c.LastFour,
			money.Format(c.Limit),
			fmt.Sprint(c.ClosingDay),
			fmt.Sprint(c.DueDay),
		}
	}

	m.table.SetRows(rows)
}

func (m *CardsModel) refreshDetail() {
	rows := make([]table.Row, len(m.view.Expenses))
	for i, e := range m.view.Expenses {
		label := ""
		if e.Installment != nil {
			label = e.Installment.Label
		}

		rows[i] = table.Row{formatDate(e.Date), e.Description, label, money.Format(e.Amount)}
	}

	m.detail.SetRows(rows)
	m.detail.GotoTop()
}

func (m CardsModel) View() string {
	if m.err != nil {
		return padded.Render(errStyle.Render(fmt.Sprintf("Erro: %v", m.err)) + "\n\n(Esc para voltar)")
	}

	switch m.state {
	case cardsStateSelect:
		if m.loading {
			return padded.Render("Carregando cartões...")
		}

		if len(m.list) == 0 {
			return padded.Render("Nenhum cartão cadastrado.\n\n(Esc para voltar)")
		}

		return padded.Render(m.table.View() + "\n\n" + dimStyle.Render(m.ShortHelp()))

	case cardsStatePay:
		return padded.Render(m.form.View())
	}

	return m.viewPeriod()
}

func (m CardsModel) viewPeriod() string {
	if m.view == nil {
		return padded.Render("Carregando fatura...")
	}

	v := m.view

	var sb strings.Builder

	fmt.Fprintf(&sb, "%s · fatura de %s\n", boldStyle.Render(v.Card.Name), v.Period.Label())
	fmt.Fprintf(&sb, "Fechamento %s · Vencimento %s\n", formatDate(v.ClosingDate), formatDate(v.DueDate))
	fmt.Fprintf(&sb, "Total calculado: %s\n", money.Format(v.EffectiveTotal))

	switch {
	case v.Invoice == nil:
		sb.WriteString(dimStyle.Render("Fatura não gerada"))
	case v.Invoice.Paid:
		fmt.Fprintf(&sb, "Fatura %s paga em %s", money.Format(v.Invoice.Total), formatDate(*v.Invoice.PaidAt))
	default:
		fmt.Fprintf(&sb, "Fatura gerada: %s (a pagar)", money.Format(v.Invoice.Total))
	}

	if m.summary != nil {
		fmt.Fprintf(&sb, "\nLimite disponível: %s de %s (%.0f%% usado)",
			money.Format(m.summary.AvailableLimit), money.Format(v.Card.Limit), m.summary.UsagePercent)
	}

	parts := []string{sb.String(), "", m.detail.View()}

	if m.status != "" {
		parts = append(parts, "", m.status)
	}

	parts = append(parts, "", dimStyle.Render(m.ShortHelp()))

	return padded.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m CardsModel) loadCardsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := dbCtx()
		defer cancel()

		cards, err := m.cards.List(ctx, m.OwnerID)

		return cardsLoadedMsg{cards: cards, err: err}
	}
}

// loadPeriodCmd loads the selected period, or the card's open period when none is selected yet.
func (m CardsModel) loadPeriodCmd() tea.Cmd {
	cardID := m.current.ID
	p := m.period

	return func() tea.Msg {
		ctx, cancel := dbCtx()
		defer cancel()

		summary, err := m.invoices.CardSummary(ctx, m.OwnerID, cardID)
		if err != nil {
			return periodLoadedMsg{err: err}
		}

		if p.IsZero() {
			p = summary.CurrentPeriod
		}

		view, err := m.invoices.PeriodView(ctx, m.OwnerID, cardID, p)

		return periodLoadedMsg{summary: summary, view: view, err: err}
	}
}

func (m CardsModel) generateCmd() tea.Cmd {
	if m.view == nil {
		return nil
	}

	cardID := m.current.ID
	p := m.view.Period

	return func() tea.Msg {
		ctx, cancel := dbCtx()
		defer cancel()

		inv, err := m.invoices.Generate(ctx, m.OwnerID, cardID, p)
		if errors.Is(err, invoice.ErrAlreadyPaid) {
			return invoiceActionDoneMsg{err: errors.New("a fatura deste período já foi paga")}
		}

		if err != nil {
			return invoiceActionDoneMsg{err: err}
		}

		return invoiceActionDoneMsg{status: fmt.Sprintf("Fatura gerada: %s", money.Format(inv.Total))}
	}
}

func (m CardsModel) loadAccountsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := dbCtx()
		defer cancel()

		accounts, err := m.banks.List(ctx, m.OwnerID)

		return accountsLoadedMsg{accounts: accounts, err: err}
	}
}

func (m CardsModel) payCmd() tea.Cmd {
	invoiceID := m.view.Invoice.ID
	choice := m.form.GetString("bank_id")

	return func() tea.Msg {
		var bankID *uuid.UUID

		if choice != "" {
			id, err := uuid.Parse(choice)
			if err != nil {
				return invoiceActionDoneMsg{err: err}
			}

			bankID = &id
		}

		ctx, cancel := dbCtx()
		defer cancel()

		inv, err := m.invoices.Pay(ctx, m.OwnerID, invoiceID, bankID, nil)
		if err != nil {
			return invoiceActionDoneMsg{err: err}
		}

		return invoiceActionDoneMsg{status: fmt.Sprintf("Fatura de %s paga", inv.Period.Label())}
	}
}
