package view

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/carteira/internal/bank"
	"github.com/MrJamesThe3rd/carteira/internal/card"
	"github.com/MrJamesThe3rd/carteira/internal/expense"
	"github.com/MrJamesThe3rd/carteira/internal/income"
	"github.com/MrJamesThe3rd/carteira/internal/money"
)

type pendingState int

const (
	pendingStateBrowse pendingState = iota
	pendingStateMethod
	pendingStateAccount
)

// pendingItem is either a pending expense or a pending income.
type pendingItem struct {
	expense *expense.Expense
	income  *income.Income
}

func (p pendingItem) date() time.Time {
	if p.expense != nil {
		return p.expense.Date
	}

	return p.income.Date
}

func (p pendingItem) row() table.Row {
	if p.expense != nil {
		return table.Row{"Despesa", formatDate(p.expense.Date), p.expense.Description, installmentLabel(p.expense.Installment), "-" + money.Format(p.expense.Amount)}
	}

	label := ""
	if p.income.Installment != nil {
		label = p.income.Installment.Label
	}

	return table.Row{"Receita", formatDate(p.income.Date), p.income.Description, label, money.Format(p.income.Amount)}
}

func installmentLabel(i *expense.Installment) string {
	if i == nil {
		return ""
	}

	return i.Label
}

var paymentMethods = []expense.Method{
	expense.MethodPix,
	expense.MethodDebit,
	expense.MethodTransfer,
	expense.MethodBillet,
	expense.MethodCash,
	expense.MethodCredit,
}

func methodName(m expense.Method) string {
	switch m {
	case expense.MethodPix:
		return "Pix"
	case expense.MethodDebit:
		return "Débito"
	case expense.MethodTransfer:
		return "Transferência"
	case expense.MethodBillet:
		return "Boleto"
	case expense.MethodCash:
		return "Dinheiro"
	case expense.MethodCredit:
		return "Crédito"
	}

	return string(m)
}

// PendingModel lists what is due up to the end of the month and confirms
// each item once it has been paid or received.
type PendingModel struct {
	CommonModel
	expenses *expense.Service
	incomes  *income.Service
	banks    *bank.Service
	cards    *card.Service

	state    pendingState
	table    table.Model
	items    []pendingItem
	accounts []*bank.Account
	cardList []*card.Card

	current pendingItem
	method  expense.Method
	form    *huh.Form

	loading bool
	status  string
	err     error
}

func NewPendingModel(common CommonModel, expenses *expense.Service, incomes *income.Service, banks *bank.Service, cards *card.Service) PendingModel {
	return PendingModel{
		CommonModel: common,
		expenses:    expenses,
		incomes:     incomes,
		banks:       banks,
		cards:       cards,
		table: newTable([]table.Column{
			{Title: "Tipo", Width: 8},
			{Title: "Data", Width: 12},
			{Title: "Descrição", Width: 36},
			{Title: "Parcela", Width: 8},
			{Title: "Valor", Width: 16},
		}, 15),
		loading: true,
	}
}

func (m PendingModel) Title() string { return "Pendências" }

func (m PendingModel) ShortHelp() string {
	if m.state != pendingStateBrowse {
		return "Enter: confirmar | Esc: cancelar"
	}

	return "Enter: confirmar pagamento | r: atualizar | Esc: voltar"
}

func (m PendingModel) Init() tea.Cmd {
	return m.loadCmd()
}

type pendingLoadedMsg struct {
	items    []pendingItem
	accounts []*bank.Account
	cards    []*card.Card
	err      error
}

type pendingConfirmedMsg struct {
	description string
	err         error
}

func (m PendingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pendingLoadedMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.items = msg.items
			m.accounts = msg.accounts
			m.cardList = msg.cards
			m.refreshTable()
		}

		return m, nil

	case pendingConfirmedMsg:
		m.state = pendingStateBrowse
		m.form = nil

		if msg.err != nil {
			m.status = errStyle.Render(fmt.Sprintf("Erro: %v", msg.err))
			return m, nil
		}

		m.status = okStyle.Render(fmt.Sprintf("%q confirmado", msg.description))
		m.loading = true

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-10, 5))
		return m, nil
	}

	if m.state == pendingStateBrowse {
		return m.updateBrowse(msg)
	}

	return m.updateForm(msg)
}

func (m PendingModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			m.status = ""

			return m, m.loadCmd()
		case "enter":
			idx := m.table.Cursor()
			if idx < 0 || idx >= len(m.items) {
				return m, nil
			}

			m.current = m.items[idx]
			m.status = ""

			if m.current.expense != nil {
				m.state = pendingStateMethod
				m.form = m.buildMethodForm()
			} else {
				m.method = ""
				m.state = pendingStateAccount
				m.form = m.buildAccountForm()
			}

			return m, m.form.Init()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m PendingModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = pendingStateBrowse
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

	if m.state == pendingStateMethod {
		m.method = expense.Method(m.form.GetString("method"))
		m.state = pendingStateAccount
		m.form = m.buildAccountForm()

		return m, m.form.Init()
	}

	return m, m.confirmCmd(m.form.GetString("account"))
}

func (m PendingModel) buildMethodForm() *huh.Form {
	options := make([]huh.Option[string], len(paymentMethods))
	for i, pm := range paymentMethods {
		options[i] = huh.NewOption(methodName(pm), string(pm))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("method").
				Title(fmt.Sprintf("Como %q foi pago?", m.current.expense.Description)).
				Options(options...),
		),
	).WithWidth(60).WithShowHelp(false)
}

// buildAccountForm offers cards for credit payments and bank accounts otherwise.
func (m PendingModel) buildAccountForm() *huh.Form {
	var (
		title   string
		options []huh.Option[string]
	)

	if m.method == expense.MethodCredit {
		title = "Cartão"
		for _, c := range m.cardList {
			options = append(options, huh.NewOption(fmt.Sprintf("%s final %s", c.Name, c.LastFour), c.ID.String()))
		}
	} else {
		title = "Conta"
		for _, a := range m.accounts {
			options = append(options, huh.NewOption(fmt.Sprintf("%s (%s)", a.Name, money.Format(a.Balance)), a.ID.String()))
		}
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("account").
				Title(title).
				Options(options...),
		),
	).WithWidth(60).WithShowHelp(false)
}

func (m *PendingModel) refreshTable() {
	rows := make([]table.Row, len(m.items))
	for i, item := range m.items {
		rows[i] = item.row()
	}

	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m PendingModel) View() string {
	if m.loading {
		return padded.Render("Carregando pendências...")
	}

	if m.err != nil {
		return padded.Render(errStyle.Render(fmt.Sprintf("Erro: %v", m.err)) + "\n\n(Esc para voltar)")
	}

	if m.state != pendingStateBrowse {
		return padded.Render(m.form.View() + "\n\n" + dimStyle.Render(m.ShortHelp()))
	}

	if len(m.items) == 0 {
		body := "Nada pendente até o fim do mês."
		if m.status != "" {
			body = m.status + "\n\n" + body
		}

		return padded.Render(body + "\n\n(Esc para voltar)")
	}

	parts := []string{boldStyle.Render(fmt.Sprintf("%d pendência(s)", len(m.items))), "", m.table.View()}

	if m.status != "" {
		parts = append(parts, "", m.status)
	}

	parts = append(parts, "", dimStyle.Render(m.ShortHelp()))

	return padded.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m PendingModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := dbCtx()
		defer cancel()

		exps, err := m.expenses.Pending(ctx, m.OwnerID)
		if err != nil {
			return pendingLoadedMsg{err: err}
		}

		incs, err := m.incomes.Pending(ctx, m.OwnerID)
		if err != nil {
			return pendingLoadedMsg{err: err}
		}

		accounts, err := m.banks.List(ctx, m.OwnerID)
		if err != nil {
			return pendingLoadedMsg{err: err}
		}

		cards, err := m.cards.List(ctx, m.OwnerID)
		if err != nil {
			return pendingLoadedMsg{err: err}
		}

		items := make([]pendingItem, 0, len(exps)+len(incs))
		for _, e := range exps {
			items = append(items, pendingItem{expense: e})
		}

		for _, i := range incs {
			items = append(items, pendingItem{income: i})
		}

		slices.SortStableFunc(items, func(a, b pendingItem) int {
			return a.date().Compare(b.date())
		})

		return pendingLoadedMsg{items: items, accounts: accounts, cards: cards}
	}
}

func (m PendingModel) confirmCmd(account string) tea.Cmd {
	item := m.current
	method := m.method

	return func() tea.Msg {
		accountID, err := uuid.Parse(account)
		if err != nil {
			return pendingConfirmedMsg{err: errors.New("nenhuma conta selecionada")}
		}

		ctx, cancel := dbCtx()
		defer cancel()

		if item.income != nil {
			_, err := m.incomes.ConfirmReceipt(ctx, m.OwnerID, item.income.ID, accountID, nil)
			return pendingConfirmedMsg{description: item.income.Description, err: err}
		}

		params := expense.ConfirmParams{Method: method}
		if method == expense.MethodCredit {
			params.CardID = &accountID
		} else {
			params.BankID = &accountID
		}

		_, err = m.expenses.ConfirmPayment(ctx, m.OwnerID, item.expense.ID, params)

		return pendingConfirmedMsg{description: item.expense.Description, err: err}
	}
}
