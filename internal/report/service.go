package report

import (
	"context"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/carteira/internal/category"
	"github.com/MrJamesThe3rd/carteira/internal/expense"
	"github.com/MrJamesThe3rd/carteira/internal/income"
	"github.com/MrJamesThe3rd/carteira/internal/validation"
)

//go:generate mockgen -source=service.go -destination=source_mock.go -package=report
type IncomeLister interface {
	List(ctx context.Context, ownerID string, filter income.ListFilter) ([]*income.Income, error)
}

type ExpenseLister interface {
	List(ctx context.Context, ownerID string, filter expense.ListFilter) ([]*expense.Expense, error)
}

type CategoryLister interface {
	List(ctx context.Context, ownerID string, filter category.ListFilter) ([]*category.Category, error)
}

type Service struct {
	incomes    IncomeLister
	expenses   ExpenseLister
	categories CategoryLister
}

func NewService(incomes IncomeLister, expenses ExpenseLister, categories CategoryLister) *Service {
	return &Service{incomes: incomes, expenses: expenses, categories: categories}
}

// Summary reports ownerID's totals between from and to, both inclusive.
func (s *Service) Summary(ctx context.Context, ownerID string, from, to time.Time) (Summary, error) {
	if from.IsZero() || to.IsZero() {
		return Summary{}, validation.New("from", "from and to are required")
	}

	if to.Before(from) {
		return Summary{}, validation.New("to", "must not be before from")
	}

	incs, err := s.incomes.List(ctx, ownerID, income.ListFilter{StartDate: &from, EndDate: &to})
	if err != nil {
		return Summary{}, fmt.Errorf("list incomes: %w", err)
	}

	exps, err := s.expenses.List(ctx, ownerID, expense.ListFilter{StartDate: &from, EndDate: &to})
	if err != nil {
		return Summary{}, fmt.Errorf("list expenses: %w", err)
	}

	cats, err := s.categories.List(ctx, ownerID, category.ListFilter{})
	if err != nil {
		return Summary{}, fmt.Errorf("list categories: %w", err)
	}

	return Build(incs, exps, cats, from, to), nil
}
