package income

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

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=income
type Repository interface {
	CreateIncomes(ctx context.Context, incs []*Income, adjustments []bank.Adjustment) error
	GetIncome(ctx context.Context, ownerID string, id uuid.UUID) (*Income, error)
	ListIncomes(ctx context.Context, ownerID string, filter ListFilter) ([]*Income, error)
	ListGroup(ctx context.Context, ownerID string, groupID uuid.UUID) ([]*Income, error)
	UpdateIncome(ctx context.Context, i *Income) error
	DeleteIncome(ctx context.Context, ownerID string, id uuid.UUID) error
	DeleteGroup(ctx context.Context, ownerID string, groupID uuid.UUID) (int64, error)
	// ConfirmReceipt moves a pending income to received and credits adj in the same transaction.
	ConfirmReceipt(ctx context.Context, i *Income, adj *bank.Adjustment) error
	// ImportIncomes stores statement entries, skipping those already present,
	// and returns the skipped ones.
	ImportIncomes(ctx context.Context, ownerID string, incs []*Income) ([]*Income, error)
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
	BankID         *uuid.UUID
	Status         Status
	Installments   int
	Debtor         string
	Notes          string
	Recurrence     *recurrence.Frequency
	Imported       bool
}

type ListFilter struct {
	Status     *Status
	BankID     *uuid.UUID
	CategoryID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}

// Create records an income. Installment groups are always created pending and
// without a bank: each member picks its bank when it is received.
func (s *Service) Create(ctx context.Context, ownerID string, params CreateParams) ([]*Income, error) {
	incs, err := build(ownerID, params)
	if err != nil {
		return nil, err
	}

	var adjustments []bank.Adjustment

	for _, i := range incs {
		if err := i.Validate(); err != nil {
			return nil, err
		}

		if adj := i.BalanceAdjustment(); adj != nil {
			adjustments = append(adjustments, *adj)
		}
	}

	if err := s.repo.CreateIncomes(ctx, incs, adjustments); err != nil {
		return nil, err
	}

	return incs, nil
}

func build(ownerID string, params CreateParams) ([]*Income, error) {
	base := Income{
		OwnerID:        ownerID,
		Description:    params.Description,
		RawDescription: params.RawDescription,
		Amount:         params.Amount,
		Date:           period.Truncate(params.Date),
		CategoryID:     params.CategoryID,
		BankID:         params.BankID,
		Status:         params.Status,
		Recurrence:     params.Recurrence,
		Imported:       params.Imported,
	}

	if base.Status == "" {
		base.Status = StatusPending
	}

	if params.Installments < 2 {
		return []*Income{&base}, nil
	}

	if params.Recurrence != nil {
		base.Installment = &Installment{}
		return nil, base.Validate()
	}

	parts, err := installment.Split(params.Amount, params.Installments, base.Date, uuid.New())
	if err != nil {
		return nil, err
	}

	incs := make([]*Income, len(parts))
	for n, p := range parts {
		inc := base
		inc.Amount = p.Amount
		inc.Date = p.DueDate
		inc.Status = StatusPending
		inc.BankID = nil
		inc.Installment = &Installment{
			Label:        p.Label,
			Index:        p.Index,
			Total:        p.Total,
			GroupID:      p.GroupID,
			TotalAmount:  p.TotalAmount,
			Debtor:       params.Debtor,
			ExpectedDate: new(p.DueDate),
			Notes:        params.Notes,
		}

		incs[n] = &inc
	}

	return incs, nil
}

func (s *Service) Get(ctx context.Context, ownerID string, id uuid.UUID) (*Income, error) {
	return s.repo.GetIncome(ctx, ownerID, id)
}

func (s *Service) List(ctx context.Context, ownerID string, filter ListFilter) ([]*Income, error) {
	return s.repo.ListIncomes(ctx, ownerID, filter)
}

// ListGroup returns the members of an installment group with their totals.
func (s *Service) ListGroup(ctx context.Context, ownerID string, groupID uuid.UUID) ([]*Income, GroupSummary, error) {
	incs, err := s.repo.ListGroup(ctx, ownerID, groupID)
	if err != nil {
		return nil, GroupSummary{}, err
	}

	if len(incs) == 0 {
		return nil, GroupSummary{}, ErrNotFound
	}

	return incs, Summarize(incs), nil
}

// GroupSummary reports how much of an installment group was received.
func (s *Service) GroupSummary(ctx context.Context, ownerID string, groupID uuid.UUID) (GroupSummary, error) {
	_, summary, err := s.ListGroup(ctx, ownerID, groupID)

	return summary, err
}

func (s *Service) Update(ctx context.Context, i *Income) error {
	i.Date = period.Truncate(i.Date)
	if err := i.Validate(); err != nil {
		return err
	}

	return s.repo.UpdateIncome(ctx, i)
}

func (s *Service) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	return s.repo.DeleteIncome(ctx, ownerID, id)
}

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

// ConfirmReceipt marks a pending income as received into bankID and credits
// the account in the same transaction.
func (s *Service) ConfirmReceipt(ctx context.Context, ownerID string, id, bankID uuid.UUID, receivedOn *time.Time) (*Income, error) {
	inc, err := s.repo.GetIncome(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if inc.Status != StatusPending {
		return nil, ErrNotPending
	}

	inc.Status = StatusReceived
	inc.BankID = &bankID

	if receivedOn != nil {
		inc.Date = period.Truncate(*receivedOn)
	}

	if err := inc.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.ConfirmReceipt(ctx, inc, inc.BalanceAdjustment()); err != nil {
		return nil, err
	}

	return inc, nil
}

// Pending lists pending incomes dated up to the end of the current month.
func (s *Service) Pending(ctx context.Context, ownerID string) ([]*Income, error) {
	end := period.Of(s.now()).End()

	return s.repo.ListIncomes(ctx, ownerID, ListFilter{
		Status:  new(StatusPending),
		EndDate: &end,
	})
}

type ImportResult struct {
	Imported []*Income
	Skipped  []*Income
}

// ImportBatch stores statement credits as received incomes without touching balances.
func (s *Service) ImportBatch(ctx context.Context, ownerID string, params []CreateParams) (*ImportResult, error) {
	if len(params) == 0 {
		return &ImportResult{}, nil
	}

	incs := make([]*Income, 0, len(params))

	for _, p := range params {
		p.Imported = true
		p.Installments = 0

		built, err := build(ownerID, p)
		if err != nil {
			return nil, err
		}

		inc := built[0]
		if err := inc.Validate(); err != nil {
			return nil, fmt.Errorf("%s on %s: %w", inc.Description, inc.Date.Format(time.DateOnly), err)
		}

		incs = append(incs, inc)
	}

	skipped, err := s.repo.ImportIncomes(ctx, ownerID, incs)
	if err != nil {
		return nil, fmt.Errorf("import incomes: %w", err)
	}

	result := &ImportResult{Skipped: skipped}

	dropped := make(map[*Income]bool, len(skipped))
	for _, inc := range skipped {
		dropped[inc] = true
	}

	for _, inc := range incs {
		if !dropped[inc] {
			result.Imported = append(result.Imported, inc)
		}
	}

	return result, nil
}
