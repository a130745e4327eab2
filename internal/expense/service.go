package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/carteira/internal/bank"
	"github.com/MrJamesThe3rd/carteira/internal/installment"
	"github.com/MrJamesThe3rd/carteira/internal/period"
	"github.com/MrJamesThe3rd/carteira/internal/recurrence"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=expense
type Repository interface {
	// CreateExpenses inserts exps and applies adjustments in a single transaction.
	CreateExpenses(ctx context.Context, exps []*Expense, adjustments []bank.Adjustment) error
	GetExpense(ctx context.Context, ownerID string, id uuid.UUID) (*Expense, error)
	ListExpenses(ctx context.Context, ownerID string, filter ListFilter) ([]*Expense, error)
	ListGroup(ctx context.Context, ownerID string, groupID uuid.UUID) ([]*Expense, error)
	UpdateExpense(ctx context.Context, e *Expense) error
	DeleteExpense(ctx context.Context, ownerID string, id uuid.UUID) error
	DeleteGroup(ctx context.Context, ownerID string, groupID uuid.UUID) (int64, error)
	// ConfirmPayment moves a pending expense to paid and applies adj in the
	// same transaction. It fails with ErrNotPending if the row is no longer pending.
	ConfirmPayment(ctx context.Context, e *Expense, adj *bank.Adjustment) error
	SetReceipt(ctx context.Context, ownerID string, id uuid.UUID, uri string) error

	BeginImport(ctx context.Context, ownerID string, minDate, maxDate time.Time) (ImportTx, error)
}

type ImportTx interface {
	FindDuplicates(ctx context.Context, exps []*Expense) ([]*Expense, error)
	CreateExpenses(ctx context.Context, exps []*Expense) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type CreateParams struct {
	Description    string
	RawDescription string
	Amount         int64 // total amount when Installments >= 2
	Date           time.Time
	CategoryID     *uuid.UUID
	Method         Method
	BankID         *uuid.UUID
	CardID         *uuid.UUID
	Status         Status
	Installments   int
	Recurrence     *recurrence.Frequency
	Notes          string
	Imported       bool
}

type ListFilter struct {
	Status     *Status
	Method     *Method
	BankID     *uuid.UUID
	CardID     *uuid.UUID
	CategoryID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}

// Create records an expense. With Installments >= 2 the amount is split into
// a group of monthly expenses sharing one group id, all stored atomically.
// Credit installments keep their card and status; any other method yields
// pending members to be confirmed one by one.
func (s *Service) Create(ctx context.Context, ownerID string, params CreateParams) ([]*Expense, error) {
	exps, err := build(ownerID, params)
	if err != nil {
		return nil, err
	}

	var adjustments []bank.Adjustment

	for _, e := range exps {
		if err := e.Validate(); err != nil {
			return nil, err
		}

		if adj := e.BalanceAdjustment(); adj != nil {
			adjustments = append(adjustments, *adj)
		}
	}

	if err := s.repo.CreateExpenses(ctx, exps, adjustments); err != nil {
		return nil, err
	}

	return exps, nil
}

func build(ownerID string, params CreateParams) ([]*Expense, error) {
	base := Expense{
		OwnerID:        ownerID,
		Description:    params.Description,
		RawDescription: params.RawDescription,
		Amount:         params.Amount,
		Date:           period.Truncate(params.Date),
		CategoryID:     params.CategoryID,
		Method:         params.Method,
		BankID:         params.BankID,
		CardID:         params.CardID,
		Status:         params.Status,
		Recurrence:     params.Recurrence,
		Notes:          params.Notes,
		Imported:       params.Imported,
	}

	if base.Status == "" {
		base.Status = StatusPending
	}

	if params.Installments < 2 {
		return []*Expense{&base}, nil
	}

	if params.Recurrence != nil {
		base.Installment = &Installment{}
		return nil, base.Validate()
	}

	parts, err := installment.Split(params.Amount, params.Installments, base.Date, uuid.New())
	if err != nil {
		return nil, err
	}

	exps := make([]*Expense, len(parts))
	for i, p := range parts {
		e := base
		e.Amount = p.Amount
		e.Date = p.DueDate
		e.Installment = &Installment{
			Label:       p.Label,
			Index:       p.Index,
			Total:       p.Total,
			GroupID:     p.GroupID,
			TotalAmount: p.TotalAmount,
		}

		if e.Method != MethodCredit {
			e.Status = StatusPending
			e.BankID = nil
		}

		exps[i] = &e
	}

	return exps, nil
}

func (s *Service) Get(ctx context.Context, ownerID string, id uuid.UUID) (*Expense, error) {
	return s.repo.GetExpense(ctx, ownerID, id)
}

func (s *Service) List(ctx context.Context, ownerID string, filter ListFilter) ([]*Expense, error) {
	return s.repo.ListExpenses(ctx, ownerID, filter)
}

// ListGroup returns the members of an installment group ordered by index.
func (s *Service) ListGroup(ctx context.Context, ownerID string, groupID uuid.UUID) ([]*Expense, error) {
	exps, err := s.repo.ListGroup(ctx, ownerID, groupID)
	if err != nil {
		return nil, err
	}

	if len(exps) == 0 {
		return nil, ErrNotFound
	}

	return exps, nil
}

// Update saves descriptive edits. Status, method and account references only
// change through ConfirmPayment, so balances are never touched here.
func (s *Service) Update(ctx context.Context, e *Expense) error {
	e.Date = period.Truncate(e.Date)
	if err := e.Validate(); err != nil {
		return err
	}

	return s.repo.UpdateExpense(ctx, e)
}

// Delete removes one expense. Installment siblings are left in place.
func (s *Service) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	return s.repo.DeleteExpense(ctx, ownerID, id)
}

// DeleteGroup removes every member of an installment group.
func (s *Service) DeleteGroup(ctx context.Context, ownerID string, groupID uuid.UUID) error {
	n, err := s.repo.DeleteGroup(ctx, ownerID, groupID)
	if err != nil {
		return err
	}

	if n == 0 {
		return ErrNotFound
	}

	return nil
}

type ConfirmParams struct {
	Method Method
	BankID *uuid.UUID
	CardID *uuid.UUID
	// PaidOn overrides the expense date when set.
	PaidOn *time.Time
}

// ConfirmPayment marks a pending expense as paid. When it is paid from a bank
// account the amount is debited in the same transaction as the status change.
func (s *Service) ConfirmPayment(ctx context.Context, ownerID string, id uuid.UUID, params ConfirmParams) (*Expense, error) {
	e, err := s.repo.GetExpense(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if e.Status != StatusPending {
		return nil, ErrNotPending
	}

	e.Status = StatusPaid
	e.Method = params.Method
	e.BankID = params.BankID
	e.CardID = params.CardID

	if params.PaidOn != nil {
		e.Date = period.Truncate(*params.PaidOn)
	}

	if err := e.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.ConfirmPayment(ctx, e, e.BalanceAdjustment()); err != nil {
		return nil, err
	}

	return e, nil
}

// AttachReceipt records where the receipt of an expense is stored.
func (s *Service) AttachReceipt(ctx context.Context, ownerID string, id uuid.UUID, uri string) error {
	return s.repo.SetReceipt(ctx, ownerID, id, uri)
}

// Pending lists pending expenses dated up to the end of the current month.
func (s *Service) Pending(ctx context.Context, ownerID string) ([]*Expense, error) {
	end := period.Of(s.now()).End()

	return s.repo.ListExpenses(ctx, ownerID, ListFilter{
		Status:  new(StatusPending),
		EndDate: &end,
	})
}

type ImportResult struct {
	Imported []*Expense
	Skipped  []*Expense
}

// ImportBatch stores statement entries as settled expenses, skipping any
// entry that matches an existing one on date, amount, account and raw
// description. Balances are not adjusted.
func (s *Service) ImportBatch(ctx context.Context, ownerID string, params []CreateParams) (*ImportResult, error) {
	if len(params) == 0 {
		return &ImportResult{}, nil
	}

	exps := make([]*Expense, 0, len(params))

	for _, p := range params {
		p.Imported = true

		built, err := build(ownerID, p)
		if err != nil {
			return nil, err
		}

		for _, e := range built {
			if err := e.Validate(); err != nil {
				return nil, fmt.Errorf("%s on %s: %w", e.Description, e.Date.Format(time.DateOnly), err)
			}
		}

		exps = append(exps, built...)
	}

	minDate, maxDate := dateRange(exps)

	itx, err := s.repo.BeginImport(ctx, ownerID, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	duplicates, err := itx.FindDuplicates(ctx, exps)
	if err != nil {
		return nil, fmt.Errorf("find duplicates: %w", err)
	}

	seen := make(map[dupKey]int, len(duplicates))
	for _, d := range duplicates {
		seen[keyOf(d)]++
	}

	result := &ImportResult{}

	var fresh []*Expense

	for _, e := range exps {
		k := keyOf(e)
		if seen[k] > 0 {
			seen[k]--

			result.Skipped = append(result.Skipped, e)

			continue
		}

		fresh = append(fresh, e)
	}

	if len(fresh) > 0 {
		if err := itx.CreateExpenses(ctx, fresh); err != nil {
			return nil, fmt.Errorf("create expenses: %w", err)
		}
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	result.Imported = fresh

	return result, nil
}

type dupKey struct {
	Date           string
	Amount         int64
	Account        uuid.UUID
	RawDescription string
}

func keyOf(e *Expense) dupKey {
	k := dupKey{
		Date:           e.Date.Format(time.DateOnly),
		Amount:         e.Amount,
		RawDescription: e.RawDescription,
	}

	switch {
	case e.BankID != nil:
		k.Account = *e.BankID
	case e.CardID != nil:
		k.Account = *e.CardID
	}

	return k
}

func dateRange(exps []*Expense) (time.Time, time.Time) {
	minDate := exps[0].Date
	maxDate := exps[0].Date

	for _, e := range exps[1:] {
		if e.Date.Before(minDate) {
			minDate = e.Date
		}

		if e.Date.After(maxDate) {
			maxDate = e.Date
		}
	}

	return minDate, maxDate
}
