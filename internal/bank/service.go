package bank

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=bank
type Repository interface {
	CreateAccount(ctx context.Context, a *Account) error
	GetAccount(ctx context.Context, ownerID string, id uuid.UUID) (*Account, error)
	ListAccounts(ctx context.Context, ownerID string) ([]*Account, error)
	UpdateAccount(ctx context.Context, a *Account) error
	DeleteAccount(ctx context.Context, ownerID string, id uuid.UUID) error
	Adjust(ctx context.Context, ownerID string, adj Adjustment) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name    string
	Kind    Kind
	Balance int64
	Color   string
}

func (s *Service) Create(ctx context.Context, ownerID string, params CreateParams) (*Account, error) {
	a := &Account{
		OwnerID: ownerID,
		Name:    params.Name,
		Kind:    params.Kind,
		Balance: params.Balance,
		Color:   params.Color,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.CreateAccount(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

func (s *Service) Get(ctx context.Context, ownerID string, id uuid.UUID) (*Account, error) {
	return s.repo.GetAccount(ctx, ownerID, id)
}

func (s *Service) List(ctx context.Context, ownerID string) ([]*Account, error) {
	return s.repo.ListAccounts(ctx, ownerID)
}

// Update saves edits to an account. The write only succeeds if the account
// still carries the version it was read with; otherwise ErrStale is returned.
func (s *Service) Update(ctx context.Context, a *Account) error {
	if err := a.Validate(); err != nil {
		return err
	}

	return s.repo.UpdateAccount(ctx, a)
}

func (s *Service) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	return s.repo.DeleteAccount(ctx, ownerID, id)
}

// Adjust adds delta to the account balance without reading it first.
func (s *Service) Adjust(ctx context.Context, ownerID string, adj Adjustment) error {
	if adj.Delta == 0 {
		return nil
	}

	return s.repo.Adjust(ctx, ownerID, adj)
}

// TotalBalance returns the sum of every account balance of the owner.
func (s *Service) TotalBalance(ctx context.Context, ownerID string) (int64, error) {
	accounts, err := s.repo.ListAccounts(ctx, ownerID)
	if err != nil {
		return 0, err
	}

	return Total(accounts), nil
}
