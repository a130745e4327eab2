package income

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/carteira/internal/http/respond"
	"github.com/MrJamesThe3rd/carteira/internal/income"
	"github.com/MrJamesThe3rd/carteira/internal/recurrence"
)

type incomeResponse struct {
	ID             uuid.UUID             `json:"id"`
	Description    string                `json:"description"`
	RawDescription string                `json:"raw_description,omitempty"`
	Amount         int64                 `json:"amount"`
	Date           respond.Date          `json:"date"`
	CategoryID     *uuid.UUID            `json:"category_id,omitempty"`
	BankID         *uuid.UUID            `json:"bank_id,omitempty"`
	Status         income.Status         `json:"status"`
	Installment    *installmentResponse  `json:"installment,omitempty"`
	Recurrence     *recurrence.Frequency `json:"recurrence,omitempty"`
	Imported       bool                  `json:"imported"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      *time.Time            `json:"updated_at,omitempty"`
}

type installmentResponse struct {
	Label        string        `json:"label"`
	Index        int           `json:"index"`
	Total        int           `json:"total"`
	GroupID      uuid.UUID     `json:"group_id"`
	TotalAmount  int64         `json:"total_amount"`
	Debtor       string        `json:"debtor,omitempty"`
	ExpectedDate *respond.Date `json:"expected_date,omitempty"`
	Notes        string        `json:"notes,omitempty"`
}

type groupSummaryResponse struct {
	GroupID       uuid.UUID     `json:"group_id"`
	Debtor        string        `json:"debtor,omitempty"`
	Total         int64         `json:"total"`
	Received      int64         `json:"received"`
	Pending       int64         `json:"pending"`
	ReceivedCount int           `json:"received_count"`
	PendingCount  int           `json:"pending_count"`
	NextDue       *respond.Date `json:"next_due,omitempty"`
}

type groupResponse struct {
	Summary groupSummaryResponse `json:"summary"`
	Members []incomeResponse     `json:"members"`
}

func toResponse(i *income.Income) incomeResponse {
	resp := incomeResponse{
		ID:             i.ID,
		Description:    i.Description,
		RawDescription: i.RawDescription,
		Amount:         i.Amount,
		Date:           respond.Date{Time: i.Date},
		CategoryID:     i.CategoryID,
		BankID:         i.BankID,
		Status:         i.Status,
		Recurrence:     i.Recurrence,
		Imported:       i.Imported,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}

	if inst := i.Installment; inst != nil {
		resp.Installment = &installmentResponse{
			Label:        inst.Label,
			Index:        inst.Index,
			Total:        inst.Total,
			GroupID:      inst.GroupID,
			TotalAmount:  inst.TotalAmount,
			Debtor:       inst.Debtor,
			ExpectedDate: respond.OptionalDate(inst.ExpectedDate),
			Notes:        inst.Notes,
		}
	}

	return resp
}

func toResponseList(incs []*income.Income) []incomeResponse {
	resp := make([]incomeResponse, len(incs))
	for i, inc := range incs {
		resp[i] = toResponse(inc)
	}

	return resp
}

func toGroupResponse(incs []*income.Income, s income.GroupSummary) groupResponse {
	return groupResponse{
		Summary: groupSummaryResponse{
			GroupID:       s.GroupID,
			Debtor:        s.Debtor,
			Total:         s.Total,
			Received:      s.Received,
			Pending:       s.Pending,
			ReceivedCount: s.ReceivedCount,
			PendingCount:  s.PendingCount,
			NextDue:       respond.OptionalDate(s.NextDue),
		},
		Members: toResponseList(incs),
	}
}
