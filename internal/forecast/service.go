package forecast

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/MrJamesThe3rd/carteira/internal/bank"
	"github.com/MrJamesThe3rd/carteira/internal/card"
	"github.com/MrJamesThe3rd/carteira/internal/expense"
	"github.com/MrJamesThe3rd/carteira/internal/income"
	"github.com/MrJamesThe3rd/carteira/internal/invoice"
	"github.com/MrJamesThe3rd/carteira/internal/logger"
)

//go:generate mockgen -source=service.go -destination=source_mock.go -package=forecast
type BankLister interface {
	List(ctx context.Context, ownerID string) ([]*bank.Account, error)
}

type CardLister interface {
	List(ctx context.Context, ownerID string) ([]*card.Card, error)
}

type IncomeLister interface {
	List(ctx context.Context, ownerID string, filter income.ListFilter) ([]*income.Income, error)
}

type ExpenseLister interface {
	List(ctx context.Context, ownerID string, filter expense.ListFilter) ([]*expense.Expense, error)
}

type InvoiceLister interface {
	List(ctx context.Context, ownerID string, filter invoice.ListFilter) ([]*invoice.Invoice, error)
}

type MemberSincer interface {
	MemberSince(ctx context.Context, ownerID string) (time.Time, error)
}

// Sources bundles the readers a forecast snapshot is loaded from.
type Sources struct {
	Banks    BankLister
	Cards    CardLister
	Incomes  IncomeLister
	Expenses ExpenseLister
	Invoices InvoiceLister
	Users    MemberSincer
}

type Service struct {
	src Sources
	log zerolog.Logger
	now func() time.Time
}

func NewService(src Sources, log zerolog.Logger) *Service {
	return &Service{src: src, log: log, now: time.Now}
}

// Snapshot loads every record the projection reads for ownerID.
func (s *Service) Snapshot(ctx context.Context, ownerID string, horizon int) (Input, error) {
	in := Input{Now: s.now(), Horizon: horizon}

	var err error

	if in.MemberSince, err = s.src.Users.MemberSince(ctx, ownerID); err != nil {
		return Input{}, fmt.Errorf("load member since: %w", err)
	}

	if in.Banks, err = s.src.Banks.List(ctx, ownerID); err != nil {
		return Input{}, fmt.Errorf("load banks: %w", err)
	}

	cards, err := s.src.Cards.List(ctx, ownerID)
	if err != nil {
		return Input{}, fmt.Errorf("load cards: %w", err)
	}

	in.ClosingDays = card.ClosingDays(cards)

	if in.Incomes, err = s.src.Incomes.List(ctx, ownerID, income.ListFilter{}); err != nil {
		return Input{}, fmt.Errorf("load incomes: %w", err)
	}

	if in.Expenses, err = s.src.Expenses.List(ctx, ownerID, expense.ListFilter{}); err != nil {
		return Input{}, fmt.Errorf("load expenses: %w", err)
	}

	if in.Invoices, err = s.src.Invoices.List(ctx, ownerID, invoice.ListFilter{}); err != nil {
		return Input{}, fmt.Errorf("load invoices: %w", err)
	}

	return in, nil
}

// Forecast projects ownerID's balances for horizon months. Records skipped
// for pointing at unknown cards or accounts are logged and returned as warnings.
func (s *Service) Forecast(ctx context.Context, ownerID string, horizon int) (Result, error) {
	in, err := s.Snapshot(ctx, ownerID, horizon)
	if err != nil {
		return Result{}, err
	}

	res, err := Compute(in)
	if err != nil {
		return Result{}, err
	}

	log := logger.FromContext(ctx, s.log)
	for _, w := range res.Warnings {
		log.Warn().
			Str("owner_id", ownerID).
			Str("kind", string(w.Kind)).
			Stringer("record_id", w.RecordID).
			Msg(w.Reason)
	}

	return res, nil
}
