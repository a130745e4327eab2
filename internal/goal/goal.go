package goal

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/carteira/internal/category"
	"github.com/MrJamesThe3rd/carteira/internal/expense"
	"github.com/MrJamesThe3rd/carteira/internal/income"
	"github.com/MrJamesThe3rd/carteira/internal/period"
	"github.com/MrJamesThe3rd/carteira/internal/validation"
)

var ErrNotFound = errors.New("goal not found")

// Goal is a monthly target for one category: an amount to earn for income
// categories, a ceiling to stay under for expense categories.
type Goal struct {
	ID            uuid.UUID
	OwnerID       string
	CategoryID    uuid.UUID
	Direction     category.Direction
	MonthlyTarget int64
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

func (g *Goal) Validate() error {
	if g.CategoryID == uuid.Nil {
		return validation.New("category_id", "is required")
	}

	if !g.Direction.Valid() {
		return validation.New("direction", "must be income or expense")
	}

	if g.MonthlyTarget <= 0 {
		return validation.New("monthly_target", "must be positive")
	}

	return nil
}

type Status string

const (
	StatusOnTrack   Status = "on-track"
	StatusWarning   Status = "warning"
	StatusCompleted Status = "completed"
)

type GoalProgress struct {
	Goal      *Goal
	Period    period.Period
	Current   int64
	Remaining int64
	// Percent is capped at 100.
	Percent float64
	Status  Status
}

// Progress measures g against what was actually received or paid in p.
func Progress(g *Goal, incs []*income.Income, exps []*expense.Expense, p period.Period) GoalProgress {
	var current int64

	switch g.Direction {
	case category.DirectionIncome:
		for _, i := range incs {
			if i.Status == income.StatusReceived && i.CategoryID != nil && *i.CategoryID == g.CategoryID && p.Contains(i.Date) {
				current += i.Amount
			}
		}
	case category.DirectionExpense:
		for _, e := range exps {
			if e.Status == expense.StatusPaid && e.CategoryID != nil && *e.CategoryID == g.CategoryID && p.Contains(e.Date) {
				current += e.Amount
			}
		}
	}

	out := GoalProgress{
		Goal:      g,
		Period:    p,
		Current:   current,
		Remaining: g.MonthlyTarget - current,
		Status:    StatusOnTrack,
	}

	if g.MonthlyTarget <= 0 {
		return out
	}

	pct := float64(current) / float64(g.MonthlyTarget) * 100

	switch {
	case pct >= 100:
		out.Status = StatusCompleted
	case pct >= 80:
		out.Status = StatusWarning
	}

	out.Percent = min(pct, 100)

	return out
}
