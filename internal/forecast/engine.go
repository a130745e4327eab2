// Package forecast projects bank balances month by month from the owner's
// current balances and pending records, and reconstructs the months since
// the owner joined from what actually settled.
package forecast

import (
	"cmp"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/carteira/internal/bank"
	"github.com/MrJamesThe3rd/carteira/internal/expense"
	"github.com/MrJamesThe3rd/carteira/internal/income"
	"github.com/MrJamesThe3rd/carteira/internal/invoice"
	"github.com/MrJamesThe3rd/carteira/internal/period"
	"github.com/MrJamesThe3rd/carteira/internal/validation"
)

const (
	DefaultHorizon = 24
	MaxHorizon     = 120
)

// Input is a snapshot of everything the projection reads. Compute never
// modifies it.
type Input struct {
	Now         time.Time
	MemberSince time.Time
	// Horizon is the number of months to project, current month included.
	// Zero means DefaultHorizon.
	Horizon     int
	Banks       []*bank.Account
	Incomes     []*income.Income
	Expenses    []*expense.Expense
	Invoices    []*invoice.Invoice
	ClosingDays map[uuid.UUID]int
}

type InvoiceSource string

const (
	SourcePersisted InvoiceSource = "persisted"
	SourceDerived   InvoiceSource = "derived"
)

// InvoiceDetail is one card's contribution to a month's invoices.
type InvoiceDetail struct {
	CardID uuid.UUID
	Period period.Period
	Amount int64
	Source InvoiceSource
}

type MonthRow struct {
	Period          period.Period
	Label           string
	StartingBalance int64
	Income          int64
	Expenses        int64
	Invoices        int64
	NetChange       int64
	EndingBalance   int64
	Historical      bool
	InvoiceDetails  []InvoiceDetail
}

type WarningKind string

const (
	WarningUnknownCard WarningKind = "unknown_card"
	WarningUnknownBank WarningKind = "unknown_bank"
)

// Warning flags a record left out of the projection because it points at a
// card or bank account the snapshot does not know.
type Warning struct {
	Kind     WarningKind
	RecordID uuid.UUID
	Reason   string
}

type Result struct {
	CurrentBalance int64
	HistoryMonths  []MonthRow
	Forecast       []MonthRow
	Warnings       []Warning
}

type cardPeriod struct {
	card uuid.UUID
	p    period.Period
}

type engine struct {
	in       Input
	current  period.Period
	banks    map[uuid.UUID]struct{}
	warnings map[uuid.UUID]Warning
}

// Compute builds the balance history and projection for in.
func Compute(in Input) (Result, error) {
	horizon := in.Horizon
	if horizon == 0 {
		horizon = DefaultHorizon
	}

	if horizon < 1 || horizon > MaxHorizon {
		return Result{}, validation.New("horizon_months", "must be between 1 and 120")
	}

	e := &engine{
		in:       in,
		current:  period.Of(in.Now),
		banks:    make(map[uuid.UUID]struct{}, len(in.Banks)),
		warnings: make(map[uuid.UUID]Warning),
	}

	for _, b := range in.Banks {
		e.banks[b.ID] = struct{}{}
	}

	res := Result{CurrentBalance: bank.Total(in.Banks)}
	res.Forecast = e.project(res.CurrentBalance, horizon)
	res.HistoryMonths = e.history(res.CurrentBalance)
	res.Warnings = e.sortedWarnings()

	return res, nil
}

func (e *engine) warn(kind WarningKind, id uuid.UUID, reason string) {
	if _, ok := e.warnings[id]; ok {
		return
	}

	e.warnings[id] = Warning{Kind: kind, RecordID: id, Reason: reason}
}

func (e *engine) sortedWarnings() []Warning {
	out := make([]Warning, 0, len(e.warnings))
	for _, w := range e.warnings {
		out = append(out, w)
	}

	slices.SortFunc(out, func(a, b Warning) int {
		if c := cmp.Compare(a.Kind, b.Kind); c != 0 {
			return c
		}

		return cmp.Compare(a.RecordID.String(), b.RecordID.String())
	})

	return out
}

// knownBank reports whether id is absent or names an account in the snapshot.
func (e *engine) knownBank(id *uuid.UUID, record uuid.UUID) bool {
	if id == nil {
		return true
	}

	if _, ok := e.banks[*id]; ok {
		return true
	}

	e.warn(WarningUnknownBank, record, "bank account "+id.String()+" does not exist")

	return false
}

func (e *engine) closingDay(cardID, record uuid.UUID) (int, bool) {
	day, ok := e.in.ClosingDays[cardID]
	if !ok {
		e.warn(WarningUnknownCard, record, "card "+cardID.String()+" has no closing day")
	}

	return day, ok
}

// slot maps a date to its forecast row, pulling overdue items into the
// current month. It returns -1 past the horizon.
func (e *engine) slot(p period.Period, horizon int) int {
	if p.Before(e.current) {
		return 0
	}

	k := e.current.MonthsUntil(p)
	if k >= horizon {
		return -1
	}

	return k
}

func (e *engine) project(start int64, horizon int) []MonthRow {
	rows := make([]MonthRow, horizon)
	for k := range rows {
		p := e.current.Add(k)
		rows[k] = MonthRow{Period: p, Label: p.Label()}
	}

	for _, inc := range e.in.Incomes {
		if inc.Status != income.StatusPending || inc.DeletedAt != nil {
			continue
		}

		if !e.knownBank(inc.BankID, inc.ID) {
			continue
		}

		if k := e.slot(period.Of(inc.Date), horizon); k >= 0 {
			rows[k].Income += inc.Amount
		}
	}

	for _, exp := range e.in.Expenses {
		if exp.Status != expense.StatusPending || exp.DeletedAt != nil || !projected(exp.Method) {
			continue
		}

		if !e.knownBank(exp.BankID, exp.ID) {
			continue
		}

		if k := e.slot(period.Of(exp.Date), horizon); k >= 0 {
			rows[k].Expenses += exp.Amount
		}
	}

	for _, d := range e.invoiceDetails(horizon) {
		k := e.slot(d.Period, horizon)
		if k < 0 {
			continue
		}

		rows[k].Invoices += d.Amount
		rows[k].InvoiceDetails = append(rows[k].InvoiceDetails, d)
	}

	balance := start
	for k := range rows {
		rows[k].StartingBalance = balance
		rows[k].NetChange = rows[k].Income - rows[k].Expenses - rows[k].Invoices
		rows[k].EndingBalance = rows[k].StartingBalance + rows[k].NetChange
		balance = rows[k].EndingBalance
	}

	return rows
}

// invoiceDetails resolves what is owed per card and period. A persisted
// invoice wins over the total derived from attributed credit expenses; a
// paid one contributes nothing.
func (e *engine) invoiceDetails(horizon int) []InvoiceDetail {
	persisted := make(map[cardPeriod]*invoice.Invoice, len(e.in.Invoices))

	var out []InvoiceDetail

	for _, inv := range e.in.Invoices {
		if _, ok := e.closingDay(inv.CardID, inv.ID); !ok {
			continue
		}

		persisted[cardPeriod{inv.CardID, inv.Period}] = inv

		if inv.Paid || inv.Total == 0 {
			continue
		}

		out = append(out, InvoiceDetail{CardID: inv.CardID, Period: inv.Period, Amount: inv.Total, Source: SourcePersisted})
	}

	derived := make(map[cardPeriod]int64)
	last := e.current.Add(horizon - 1)

	for _, exp := range e.in.Expenses {
		if exp.Method != expense.MethodCredit || exp.CardID == nil || exp.DeletedAt != nil {
			continue
		}

		day, ok := e.closingDay(*exp.CardID, exp.ID)
		if !ok {
			continue
		}

		p, err := invoice.Attribute(exp.Date, day)
		if err != nil {
			e.warn(WarningUnknownCard, exp.ID, err.Error())
			continue
		}

		// Past periods without a persisted invoice are treated as settled.
		if p.Before(e.current) || p.After(last) {
			continue
		}

		key := cardPeriod{*exp.CardID, p}
		if _, ok := persisted[key]; ok {
			continue
		}

		derived[key] += exp.Amount
	}

	for key, amount := range derived {
		out = append(out, InvoiceDetail{CardID: key.card, Period: key.p, Amount: amount, Source: SourceDerived})
	}

	slices.SortFunc(out, func(a, b InvoiceDetail) int {
		if c := comparePeriods(a.Period, b.Period); c != 0 {
			return c
		}

		return cmp.Compare(a.CardID.String(), b.CardID.String())
	})

	return out
}

// projected reports whether a pending expense paid with m counts towards the
// forecast. Credit is counted through invoices.
func projected(m expense.Method) bool {
	switch m {
	case expense.MethodPix, expense.MethodTransfer, expense.MethodBillet:
		return true
	}

	return false
}

func comparePeriods(a, b period.Period) int {
	switch {
	case a.Before(b):
		return -1
	case b.Before(a):
		return 1
	}

	return 0
}

// history rebuilds the months between joining and now from settled records,
// chained backwards so the last row ends at the current balance.
func (e *engine) history(current int64) []MonthRow {
	first := period.Of(e.in.MemberSince)
	if e.in.MemberSince.IsZero() || !first.Before(e.current) {
		return nil
	}

	n := first.MonthsUntil(e.current)
	rows := make([]MonthRow, n)
	index := func(p period.Period) int {
		if p.Before(first) || !p.Before(e.current) {
			return -1
		}

		return first.MonthsUntil(p)
	}

	for k := range rows {
		p := first.Add(k)
		rows[k] = MonthRow{Period: p, Label: p.Label(), Historical: true}
	}

	for _, inc := range e.in.Incomes {
		if inc.Status != income.StatusReceived || inc.DeletedAt != nil {
			continue
		}

		k := index(period.Of(inc.Date))
		if k < 0 || !e.knownBank(inc.BankID, inc.ID) {
			continue
		}

		rows[k].Income += inc.Amount
	}

	for _, exp := range e.in.Expenses {
		if exp.Status != expense.StatusPaid || exp.DeletedAt != nil || exp.Method == expense.MethodCredit || exp.BankID == nil {
			continue
		}

		k := index(period.Of(exp.Date))
		if k < 0 || !e.knownBank(exp.BankID, exp.ID) {
			continue
		}

		rows[k].Expenses += exp.Amount
	}

	for _, inv := range e.in.Invoices {
		if !inv.Paid {
			continue
		}

		k := index(inv.Period)
		if k < 0 {
			continue
		}

		rows[k].Invoices += inv.Total
		rows[k].InvoiceDetails = append(rows[k].InvoiceDetails, InvoiceDetail{
			CardID: inv.CardID, Period: inv.Period, Amount: inv.Total, Source: SourcePersisted,
		})
	}

	balance := current
	for k := len(rows) - 1; k >= 0; k-- {
		rows[k].NetChange = rows[k].Income - rows[k].Expenses - rows[k].Invoices
		rows[k].EndingBalance = balance
		rows[k].StartingBalance = balance - rows[k].NetChange
		balance = rows[k].StartingBalance

		slices.SortFunc(rows[k].InvoiceDetails, func(a, b InvoiceDetail) int {
			return cmp.Compare(a.CardID.String(), b.CardID.String())
		})
	}

	return rows
}
