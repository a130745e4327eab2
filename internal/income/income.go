package income

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/carteira/internal/bank"
	"github.com/MrJamesThe3rd/carteira/internal/recurrence"
	"github.com/MrJamesThe3rd/carteira/internal/validation"
)

var (
	ErrNotFound = errors.New("income not found")
	// ErrNotPending is returned when confirming an income that was already received.
	ErrNotPending = errors.New("income is not pending")
)

type Status string

const (
	StatusReceived Status = "received"
	StatusPending  Status = "pending"
)

func (s Status) Valid() bool {
	return s == StatusReceived || s == StatusPending
}

// Installment marks an income as one part of an amount owed in parts, such as
// a purchase made on someone else's behalf and paid back monthly.
type Installment struct {
	Label        string
	Index        int
	Total        int
	GroupID      uuid.UUID
	TotalAmount  int64
	Debtor       string
	ExpectedDate *time.Time
	Notes        string
}

type Income struct {
	ID             uuid.UUID
	OwnerID        string
	Description    string
	RawDescription string
	Amount         int64 // Amount in cents
	Date           time.Time
	CategoryID     *uuid.UUID
	BankID         *uuid.UUID
	Status         Status
	Installment    *Installment
	Recurrence     *recurrence.Frequency
	Imported       bool
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
}

func (i *Income) Validate() error {
	if strings.TrimSpace(i.Description) == "" {
		return validation.New("description", "is required")
	}

	if i.Amount <= 0 {
		return validation.New("amount", "must be positive")
	}

	if i.Date.IsZero() {
		return validation.New("date", "is required")
	}

	if !i.Status.Valid() {
		return validation.New("status", "must be received or pending")
	}

	if i.Recurrence != nil && !i.Recurrence.Valid() {
		return validation.New("recurrence", "is not a known frequency")
	}

	if i.Recurrence != nil && i.Installment != nil {
		return validation.New("recurrence", "installment incomes cannot recur")
	}

	if i.Status == StatusReceived && i.BankID == nil {
		return validation.New("bank_id", "is required for received incomes")
	}

	return nil
}

// BalanceAdjustment returns the credit this income applies to its bank
// account, or nil when balances are unaffected.
func (i *Income) BalanceAdjustment() *bank.Adjustment {
	if i.Status != StatusReceived || i.BankID == nil || i.Imported {
		return nil
	}

	return &bank.Adjustment{AccountID: *i.BankID, Delta: i.Amount}
}

func (i *Income) GroupID() uuid.UUID {
	if i.Installment == nil {
		return uuid.Nil
	}

	return i.Installment.GroupID
}

// GroupSummary totals the members of one installment group.
type GroupSummary struct {
	GroupID       uuid.UUID
	Debtor        string
	Total         int64
	Received      int64
	Pending       int64
	ReceivedCount int
	PendingCount  int
	// NextDue is the earliest pending member's date, nil when fully received.
	NextDue *time.Time
}

func Summarize(members []*Income) GroupSummary {
	var s GroupSummary

	for _, m := range members {
		if m.Installment != nil {
			s.GroupID = m.Installment.GroupID
			s.Total = m.Installment.TotalAmount

			if s.Debtor == "" {
				s.Debtor = m.Installment.Debtor
			}
		}

		if m.Status == StatusReceived {
			s.Received += m.Amount
			s.ReceivedCount++

			continue
		}

		s.Pending += m.Amount
		s.PendingCount++

		if s.NextDue == nil || m.Date.Before(*s.NextDue) {
			s.NextDue = &m.Date
		}
	}

	return s
}
