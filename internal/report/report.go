// Package report aggregates incomes and expenses over a date range.
package report

import (
	"cmp"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/carteira/internal/category"
	"github.com/MrJamesThe3rd/carteira/internal/expense"
	"github.com/MrJamesThe3rd/carteira/internal/income"
	"github.com/MrJamesThe3rd/carteira/internal/period"
)

// Uncategorized labels expenses without a category.
const Uncategorized = "Sem categoria"

type CategoryTotal struct {
	CategoryID *uuid.UUID
	Name       string
	Color      string
	Amount     int64
	Percent    float64
}

type MethodTotal struct {
	Method  expense.Method
	Amount  int64
	Percent float64
}

type MonthTotal struct {
	Period   period.Period
	Income   int64
	Expenses int64
}

type Summary struct {
	From time.Time
	To   time.Time

	ReceivedIncome  int64
	PendingIncome   int64
	PaidExpenses    int64
	PendingExpenses int64
	// Balance is all income minus all expenses in range, pending included.
	Balance int64
	Count   int

	ByCategory []CategoryTotal
	ByMethod   []MethodTotal
	Monthly    []MonthTotal
}

// Build summarizes the records dated within [from, to].
func Build(incs []*income.Income, exps []*expense.Expense, cats []*category.Category, from, to time.Time) Summary {
	from, to = period.Truncate(from), period.Truncate(to)

	s := Summary{From: from, To: to}

	inRange := func(d time.Time) bool {
		return !d.Before(from) && !d.After(to)
	}

	monthly := make(map[period.Period]*MonthTotal)
	month := func(d time.Time) *MonthTotal {
		p := period.Of(d)
		if m, ok := monthly[p]; ok {
			return m
		}

		m := &MonthTotal{Period: p}
		monthly[p] = m

		return m
	}

	for _, i := range incs {
		if !inRange(i.Date) {
			continue
		}

		s.Count++

		switch i.Status {
		case income.StatusReceived:
			s.ReceivedIncome += i.Amount
		case income.StatusPending:
			s.PendingIncome += i.Amount
		}

		month(i.Date).Income += i.Amount
	}

	byCategory := make(map[uuid.UUID]int64)
	byMethod := make(map[expense.Method]int64)

	var uncategorized int64

	for _, e := range exps {
		if !inRange(e.Date) {
			continue
		}

		s.Count++

		switch e.Status {
		case expense.StatusPaid:
			s.PaidExpenses += e.Amount
		case expense.StatusPending:
			s.PendingExpenses += e.Amount
		}

		if e.CategoryID != nil {
			byCategory[*e.CategoryID] += e.Amount
		} else {
			uncategorized += e.Amount
		}

		byMethod[e.Method] += e.Amount
		month(e.Date).Expenses += e.Amount
	}

	totalExpenses := s.PaidExpenses + s.PendingExpenses
	s.Balance = s.ReceivedIncome + s.PendingIncome - totalExpenses

	names := make(map[uuid.UUID]*category.Category, len(cats))
	for _, c := range cats {
		names[c.ID] = c
	}

	for id, amount := range byCategory {
		ct := CategoryTotal{CategoryID: &id, Name: Uncategorized, Amount: amount, Percent: percent(amount, totalExpenses)}
		if c, ok := names[id]; ok {
			ct.Name = c.Name
			ct.Color = c.Color
		}

		s.ByCategory = append(s.ByCategory, ct)
	}

	if uncategorized > 0 {
		s.ByCategory = append(s.ByCategory, CategoryTotal{
			Name: Uncategorized, Amount: uncategorized, Percent: percent(uncategorized, totalExpenses),
		})
	}

	slices.SortFunc(s.ByCategory, func(a, b CategoryTotal) int {
		if c := cmp.Compare(b.Amount, a.Amount); c != 0 {
			return c
		}

		return cmp.Compare(a.Name, b.Name)
	})

	for m, amount := range byMethod {
		s.ByMethod = append(s.ByMethod, MethodTotal{Method: m, Amount: amount, Percent: percent(amount, totalExpenses)})
	}

	slices.SortFunc(s.ByMethod, func(a, b MethodTotal) int {
		if c := cmp.Compare(b.Amount, a.Amount); c != 0 {
			return c
		}

		return cmp.Compare(a.Method, b.Method)
	})

	for _, m := range monthly {
		s.Monthly = append(s.Monthly, *m)
	}

	slices.SortFunc(s.Monthly, func(a, b MonthTotal) int {
		return -a.Period.MonthsUntil(b.Period)
	})

	return s
}

func percent(part, total int64) float64 {
	if total <= 0 {
		return 0
	}

	return float64(part) / float64(total) * 100
}
