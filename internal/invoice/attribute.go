package invoice

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/carteira/internal/expense"
	"github.com/MrJamesThe3rd/carteira/internal/period"
	"github.com/MrJamesThe3rd/carteira/internal/validation"
)

// Attribute returns the invoice period a credit purchase made on date falls
// into. Purchases after the closing day roll into the next month's invoice.
func Attribute(date time.Time, closingDay int) (period.Period, error) {
	if closingDay < 1 || closingDay > 31 {
		return period.Period{}, validation.New("closing_day", "must be between 1 and 31")
	}

	p := period.Of(date)
	if date.Day() > closingDay {
		return p.Next(), nil
	}

	return p, nil
}

// EffectiveTotal sums the credit expenses of cardID attributed to p. This is
// the derived total, independent of any persisted invoice.
func EffectiveTotal(exps []*expense.Expense, cardID uuid.UUID, closingDay int, p period.Period) int64 {
	var total int64

	for _, e := range Attributed(exps, cardID, closingDay, p) {
		total += e.Amount
	}

	return total
}

// Attributed filters exps down to the credit expenses of cardID that land in p.
func Attributed(exps []*expense.Expense, cardID uuid.UUID, closingDay int, p period.Period) []*expense.Expense {
	var out []*expense.Expense

	for _, e := range exps {
		if e.Method != expense.MethodCredit || e.CardID == nil || *e.CardID != cardID {
			continue
		}

		got, err := Attribute(e.Date, closingDay)
		if err != nil || got != p {
			continue
		}

		out = append(out, e)
	}

	return out
}

// UsedLimit sums the totals of the unpaid persisted invoices of cardID.
func UsedLimit(invoices []*Invoice, cardID uuid.UUID) int64 {
	var total int64

	for _, inv := range invoices {
		if inv.CardID == cardID && !inv.Paid {
			total += inv.Total
		}
	}

	return total
}

// DueDate returns the payment date of the invoice for p. A due day after the
// closing day falls in the same month; otherwise it falls in the next one.
func DueDate(p period.Period, closingDay, dueDay int) time.Time {
	if dueDay > closingDay {
		return period.Date(p.Year, p.Month, dueDay)
	}

	next := p.Next()

	return period.Date(next.Year, next.Month, dueDay)
}

// ClosingDate returns the last day of purchases that count towards p.
func ClosingDate(p period.Period, closingDay int) time.Time {
	return period.Date(p.Year, p.Month, closingDay)
}
