// Package installment splits a purchase or receivable into monthly parts.
package installment

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/carteira/internal/period"
	"github.com/MrJamesThe3rd/carteira/internal/validation"
)

// Installment is one dated part of an installment group.
type Installment struct {
	Index       int
	Total       int
	Label       string
	Amount      int64
	DueDate     time.Time
	GroupID     uuid.UUID
	TotalAmount int64
}

// Split divides total into count monthly installments starting at start.
//
// Every installment but the last gets total/count rounded down to the cent;
// the last one absorbs the remainder, so the amounts always add up to total.
// Due dates advance one calendar month per installment, clamped to the last
// day of shorter months.
func Split(total int64, count int, start time.Time, groupID uuid.UUID) ([]Installment, error) {
	if count < 2 {
		return nil, validation.New("installments", "must be at least 2")
	}

	if total <= 0 {
		return nil, validation.New("amount", "must be positive")
	}

	if total < int64(count) {
		return nil, validation.New("amount", fmt.Sprintf("too small to split into %d installments", count))
	}

	base := total / int64(count)
	start = period.Truncate(start)

	out := make([]Installment, count)
	for i := range count {
		amount := base
		if i == count-1 {
			amount = total - base*int64(count-1)
		}

		out[i] = Installment{
			Index:       i + 1,
			Total:       count,
			Label:       Label(i+1, count),
			Amount:      amount,
			DueDate:     period.AddMonths(start, i),
			GroupID:     groupID,
			TotalAmount: total,
		}
	}

	return out, nil
}

// Label renders the "i/N" marker shown next to installment entries.
func Label(index, total int) string {
	return fmt.Sprintf("%d/%d", index, total)
}
