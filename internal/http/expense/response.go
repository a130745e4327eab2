package expense

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/carteira/internal/expense"
	"github.com/MrJamesThe3rd/carteira/internal/http/respond"
	"github.com/MrJamesThe3rd/carteira/internal/recurrence"
)

type expenseResponse struct {
	ID             uuid.UUID             `json:"id"`
	Description    string                `json:"description"`
	RawDescription string                `json:"raw_description,omitempty"`
	Amount         int64                 `json:"amount"`
	Date           respond.Date          `json:"date"`
	CategoryID     *uuid.UUID            `json:"category_id,omitempty"`
	Method         expense.Method        `json:"method"`
	BankID         *uuid.UUID            `json:"bank_id,omitempty"`
	CardID         *uuid.UUID            `json:"card_id,omitempty"`
	Status         expense.Status        `json:"status"`
	Installment    *installmentResponse  `json:"installment,omitempty"`
	Recurrence     *recurrence.Frequency `json:"recurrence,omitempty"`
	HasReceipt     bool                  `json:"has_receipt"`
	Notes          string                `json:"notes,omitempty"`
	Imported       bool                  `json:"imported"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      *time.Time            `json:"updated_at,omitempty"`
}

type installmentResponse struct {
	Label       string    `json:"label"`
	Index       int       `json:"index"`
	Total       int       `json:"total"`
	GroupID     uuid.UUID `json:"group_id"`
	TotalAmount int64     `json:"total_amount"`
}

func toResponse(e *expense.Expense) expenseResponse {
	resp := expenseResponse{
		ID:             e.ID,
		Description:    e.Description,
		RawDescription: e.RawDescription,
		Amount:         e.Amount,
		Date:           respond.Date{Time: e.Date},
		CategoryID:     e.CategoryID,
		Method:         e.Method,
		BankID:         e.BankID,
		CardID:         e.CardID,
		Status:         e.Status,
		Recurrence:     e.Recurrence,
		HasReceipt:     e.ReceiptURI != "",
		Notes:          e.Notes,
		Imported:       e.Imported,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}

	if e.Installment != nil {
		resp.Installment = &installmentResponse{
			Label:       e.Installment.Label,
			Index:       e.Installment.Index,
			Total:       e.Installment.Total,
			GroupID:     e.Installment.GroupID,
			TotalAmount: e.Installment.TotalAmount,
		}
	}

	return resp
}

func toResponseList(exps []*expense.Expense) []expenseResponse {
	resp := make([]expenseResponse, len(exps))
	for i, e := range exps {
		resp[i] = toResponse(e)
	}

	return resp
}
