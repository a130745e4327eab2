package goal

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/carteira/internal/category"
	"github.com/MrJamesThe3rd/carteira/internal/expense"
	"github.com/MrJamesThe3rd/carteira/internal/income"
	"github.com/MrJamesThe3rd/carteira/internal/period"
	"github.com/MrJamesThe3rd/carteira/internal/validation"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=goal
type Repository interface {
	CreateGoal(ctx context.Context, g *Goal) error
	GetGoal(ctx context.Context, ownerID string, id uuid.UUID) (*Goal, error)
	ListGoals(ctx context.Context, ownerID string, activeOnly bool) ([]*Goal, error)
	UpdateGoal(ctx context.Context, g *Goal) error
	DeleteGoal(ctx context.Context, ownerID string, id uuid.UUID) error
}

type CategoryReader interface {
	Get(ctx context.Context, ownerID string, id uuid.UUID) (*category.Category, error)
}

type IncomeLister interface {
	List(ctx context.Context, ownerID string, filter income.ListFilter) ([]*income.Income, error)
}

type ExpenseLister interface {
	List(ctx context.Context, ownerID string, filter expense.ListFilter) ([]*expense.Expense, error)
}

type Service struct {
	repo       Repository
	categories CategoryReader
	incomes    IncomeLister
	expenses   ExpenseLister
}

func NewService(repo Repository, categories CategoryReader, incomes IncomeLister, expenses ExpenseLister) *Service {
	return &Service{repo: repo, categories: categories, incomes: incomes, expenses: expenses}
}

type CreateParams struct {
	CategoryID    uuid.UUID
	MonthlyTarget int64
}

// Create sets a goal on a category. The goal takes the category's direction.
func (s *Service) Create(ctx context.Context, ownerID string, params CreateParams) (*Goal, error) {
	c, err := s.categories.Get(ctx, ownerID, params.CategoryID)
	if err != nil {
		return nil, err
	}

	g := &Goal{
		OwnerID:       ownerID,
		CategoryID:    c.ID,
		Direction:     c.Direction,
		MonthlyTarget: params.MonthlyTarget,
		Active:        true,
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.CreateGoal(ctx, g); err != nil {
		return nil, err
	}

	return g, nil
}

func (s *Service) Get(ctx context.Context, ownerID string, id uuid.UUID) (*Goal, error) {
	return s.repo.GetGoal(ctx, ownerID, id)
}

func (s *Service) List(ctx context.Context, ownerID string) ([]*Goal, error) {
	return s.repo.ListGoals(ctx, ownerID, false)
}

func (s *Service) Update(ctx context.Context, g *Goal) error {
	if err := g.Validate(); err != nil {
		return err
	}

	return s.repo.UpdateGoal(ctx, g)
}

func (s *Service) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	return s.repo.DeleteGoal(ctx, ownerID, id)
}

// ListProgress evaluates every active goal of the owner for p.
func (s *Service) ListProgress(ctx context.Context, ownerID string, p period.Period) ([]GoalProgress, error) {
	if p.IsZero() {
		return nil, validation.New("period", "is required")
	}

	goals, err := s.repo.ListGoals(ctx, ownerID, true)
	if err != nil {
		return nil, err
	}

	if len(goals) == 0 {
		return nil, nil
	}

	start, end := p.Start(), p.End()

	incs, err := s.incomes.List(ctx, ownerID, income.ListFilter{
		Status:    new(income.StatusReceived),
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return nil, fmt.Errorf("list incomes: %w", err)
	}

	exps, err := s.expenses.List(ctx, ownerID, expense.ListFilter{
		Status:    new(expense.StatusPaid),
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}

	out := make([]GoalProgress, len(goals))
	for i, g := range goals {
		out[i] = Progress(g, incs, exps, p)
	}

	return out, nil
}
