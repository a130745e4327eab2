package invoice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/carteira/internal/bank"
	"github.com/MrJamesThe3rd/carteira/internal/card"
	"github.com/MrJamesThe3rd/carteira/internal/expense"
	"github.com/MrJamesThe3rd/carteira/internal/period"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=invoice
type Repository interface {
	// SaveInvoice inserts the invoice of (card, period) or refreshes the total
	// of an unpaid one.
	SaveInvoice(ctx context.Context, inv *Invoice) error
	GetInvoice(ctx context.Context, ownerID string, id uuid.UUID) (*Invoice, error)
	GetByPeriod(ctx context.Context, ownerID string, cardID uuid.UUID, p period.Period) (*Invoice, error)
	ListInvoices(ctx context.Context, ownerID string, filter ListFilter) ([]*Invoice, error)
	DeleteInvoice(ctx context.Context, ownerID string, id uuid.UUID) error
	// MarkPaid settles an unpaid invoice and applies adj in the same transaction.
	MarkPaid(ctx context.Context, inv *Invoice, adj *bank.Adjustment) error
}

type CardReader interface {
	Get(ctx context.Context, ownerID string, id uuid.UUID) (*card.Card, error)
}

type ExpenseLister interface {
	List(ctx context.Context, ownerID string, filter expense.ListFilter) ([]*expense.Expense, error)
}

type ListFilter struct {
	CardID *uuid.UUID
	Paid   *bool
	From   *period.Period
	To     *period.Period
}

type Service struct {
	repo     Repository
	cards    CardReader
	expenses ExpenseLister
	now      func() time.Time
}

func NewService(repo Repository, cards CardReader, expenses ExpenseLister) *Service {
	return &Service{repo: repo, cards: cards, expenses: expenses, now: time.Now}
}

func (s *Service) Get(ctx context.Context, ownerID string, id uuid.UUID) (*Invoice, error) {
	return s.repo.GetInvoice(ctx, ownerID, id)
}

func (s *Service) List(ctx context.Context, ownerID string, filter ListFilter) ([]*Invoice, error) {
	return s.repo.ListInvoices(ctx, ownerID, filter)
}

func (s *Service) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	return s.repo.DeleteInvoice(ctx, ownerID, id)
}

// creditExpenses loads the card's credit expenses that can be attributed to p:
// purchases dated from the start of the previous month to the end of p.
func (s *Service) creditExpenses(ctx context.Context, ownerID string, cardID uuid.UUID, p period.Period) ([]*expense.Expense, error) {
	start := p.Prev().Start()
	end := p.End()

	exps, err := s.expenses.List(ctx, ownerID, expense.ListFilter{
		Method:    new(expense.MethodCredit),
		CardID:    &cardID,
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return nil, fmt.Errorf("list card expenses: %w", err)
	}

	return exps, nil
}

// Generate persists the invoice of cardID for p from the derived total. An
// existing unpaid invoice has its total refreshed.
func (s *Service) Generate(ctx context.Context, ownerID string, cardID uuid.UUID, p period.Period) (*Invoice, error) {
	c, err := s.cards.Get(ctx, ownerID, cardID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByPeriod(ctx, ownerID, cardID, p)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	if existing != nil && existing.Paid {
		return nil, ErrAlreadyPaid
	}

	exps, err := s.creditExpenses(ctx, ownerID, cardID, p)
	if err != nil {
		return nil, err
	}

	inv := &Invoice{
		OwnerID: ownerID,
		CardID:  cardID,
		Period:  p,
		Total:   EffectiveTotal(exps, cardID, c.ClosingDay, p),
		DueDate: DueDate(p, c.ClosingDay, c.DueDay),
	}

	if existing != nil {
		inv.ID = existing.ID
		inv.CreatedAt = existing.CreatedAt
	}

	if err := s.repo.SaveInvoice(ctx, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

// Pay settles an invoice. When bankID is given the total is debited from that
// account atomically with the status change.
func (s *Service) Pay(ctx context.Context, ownerID string, id uuid.UUID, bankID *uuid.UUID, paidOn *time.Time) (*Invoice, error) {
	inv, err := s.repo.GetInvoice(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if inv.Paid {
		return nil, ErrAlreadyPaid
	}

	at := period.Truncate(s.now())
	if paidOn != nil {
		at = period.Truncate(*paidOn)
	}

	inv.Paid = true
	inv.PaidAt = &at
	inv.BankID = bankID

	var adj *bank.Adjustment
	if bankID != nil && inv.Total > 0 {
		adj = &bank.Adjustment{AccountID: *bankID, Delta: -inv.Total}
	}

	if err := s.repo.MarkPaid(ctx, inv, adj); err != nil {
		return nil, err
	}

	return inv, nil
}

// PeriodView is one card's bill for one period as shown to the user.
type PeriodView struct {
	Card        *card.Card
	Period      period.Period
	ClosingDate time.Time
	DueDate     time.Time
	Expenses    []*expense.Expense
	// EffectiveTotal is always the derived total.
	EffectiveTotal int64
	// Invoice is the persisted invoice, nil when none was generated.
	Invoice *Invoice
	// AmountDue is the persisted total when an invoice exists, else the derived one.
	AmountDue int64
}

func (s *Service) PeriodView(ctx context.Context, ownerID string, cardID uuid.UUID, p period.Period) (*PeriodView, error) {
	c, err := s.cards.Get(ctx, ownerID, cardID)
	if err != nil {
		return nil, err
	}

	exps, err := s.creditExpenses(ctx, ownerID, cardID, p)
	if err != nil {
		return nil, err
	}

	inv, err := s.repo.GetByPeriod(ctx, ownerID, cardID, p)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	attributed := Attributed(exps, cardID, c.ClosingDay, p)

	view := &PeriodView{
		Card:        c,
		Period:      p,
		ClosingDate: ClosingDate(p, c.ClosingDay),
		DueDate:     DueDate(p, c.ClosingDay, c.DueDay),
		Expenses:    attributed,
	}

	for _, e := range attributed {
		view.EffectiveTotal += e.Amount
	}

	view.AmountDue = view.EffectiveTotal

	if inv != nil {
		view.Invoice = inv
		view.AmountDue = inv.Total
		view.DueDate = inv.DueDate
	}

	return view, nil
}

// CardSummary reports how much of a card's limit is committed.
type CardSummary struct {
	Card          *card.Card
	CurrentPeriod period.Period
	// UsedLimit comes from unpaid persisted invoices.
	UsedLimit int64
	// CurrentUsage is the derived total of the calendar month of now.
	CurrentUsage   int64
	AvailableLimit int64
	UsagePercent   float64
}

func (s *Service) CardSummary(ctx context.Context, ownerID string, cardID uuid.UUID) (*CardSummary, error) {
	c, err := s.cards.Get(ctx, ownerID, cardID)
	if err != nil {
		return nil, err
	}

	current := period.Of(s.now())

	invoices, err := s.repo.ListInvoices(ctx, ownerID, ListFilter{CardID: &cardID, Paid: new(false)})
	if err != nil {
		return nil, err
	}

	exps, err := s.creditExpenses(ctx, ownerID, cardID, current)
	if err != nil {
		return nil, err
	}

	summary := &CardSummary{
		Card:          c,
		CurrentPeriod: current,
		UsedLimit:     UsedLimit(invoices, cardID),
		CurrentUsage:  EffectiveTotal(exps, cardID, c.ClosingDay, current),
	}

	summary.AvailableLimit = c.Limit - summary.UsedLimit

	if c.Limit > 0 {
		summary.UsagePercent = float64(summary.UsedLimit) / float64(c.Limit) * 100
	}

	return summary, nil
}
