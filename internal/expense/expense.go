package expense

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
	ErrNotFound = errors.New("expense not found")
	// ErrNotPending is returned when confirming an expense that is already paid.
	ErrNotPending = errors.New("expense is not pending")
)

// Method is how an expense is (or will be) paid.
type Method string

const (
	MethodCash     Method = "cash"
	MethodDebit    Method = "debit"
	MethodCredit   Method = "credit"
	MethodPix      Method = "pix"
	MethodTransfer Method = "transfer"
	MethodBillet   Method = "billet"
	// MethodPending means the payment method has not been chosen yet.
	MethodPending Method = "pending"
)

func (m Method) Valid() bool {
	switch m {
	case MethodCash, MethodDebit, MethodCredit, MethodPix, MethodTransfer, MethodBillet, MethodPending:
		return true
	}

	return false
}

// DrawsFromBank reports whether paying with m takes money straight out of a
// bank account. Cash is excluded, and credit is settled through invoices.
func (m Method) DrawsFromBank() bool {
	switch m {
	case MethodDebit, MethodPix, MethodTransfer, MethodBillet:
		return true
	}

	return false
}

type Status string

const (
	StatusPaid    Status = "paid"
	StatusPending Status = "pending"
)

func (s Status) Valid() bool {
	return s == StatusPaid || s == StatusPending
}

// Installment marks an expense as one part of a split purchase.
type Installment struct {
	Label       string
	Index       int
	Total       int
	GroupID     uuid.UUID
	TotalAmount int64
}

type Expense struct {
	ID             uuid.UUID
	OwnerID        string
	Description    string
	RawDescription string
	Amount         int64 // Amount in cents
	Date           time.Time
	CategoryID     *uuid.UUID
	Method         Method
	BankID         *uuid.UUID
	CardID         *uuid.UUID
	Status         Status
	Installment    *Installment
	Recurrence     *recurrence.Frequency
	ReceiptURI     string
	Notes          string
	Imported       bool
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
}

// Validate enforces the payment invariant: credit expenses name a card and
// never a bank; every other paid expense names exactly one bank account.
func (e *Expense) Validate() error {
	if strings.TrimSpace(e.Description) == "" {
		return validation.New("description", "is required")
	}

	if e.Amount <= 0 {
		return validation.New("amount", "must be positive")
	}

	if e.Date.IsZero() {
		return validation.New("date", "is required")
	}

	if !e.Method.Valid() {
		return validation.New("method", "is not supported")
	}

	if !e.Status.Valid() {
		return validation.New("status", "must be paid or pending")
	}

	if e.Recurrence != nil && !e.Recurrence.Valid() {
		return validation.New("recurrence", "is not a known frequency")
	}

	if e.Recurrence != nil && e.Installment != nil {
		return validation.New("recurrence", "installment expenses cannot recur")
	}

	if e.Method == MethodCredit {
		if e.CardID == nil {
			return validation.New("card_id", "is required for credit expenses")
		}

		if e.BankID != nil {
			return validation.New("bank_id", "must be empty for credit expenses")
		}

		return nil
	}

	if e.CardID != nil {
		return validation.New("card_id", "is only allowed for credit expenses")
	}

	if e.Status == StatusPaid {
		if e.Method == MethodPending {
			return validation.New("method", "must be chosen for paid expenses")
		}

		if e.BankID == nil {
			return validation.New("bank_id", "is required for paid expenses")
		}
	}

	return nil
}

// BalanceAdjustment returns the debit this expense applies to its bank
// account, or nil when it leaves balances untouched. Imported expenses are
// already reflected in the statement balance.
func (e *Expense) BalanceAdjustment() *bank.Adjustment {
	if e.Status != StatusPaid || e.BankID == nil || e.Imported {
		return nil
	}

	return &bank.Adjustment{AccountID: *e.BankID, Delta: -e.Amount}
}

// GroupID returns the installment group of e, or uuid.Nil.
func (e *Expense) GroupID() uuid.UUID {
	if e.Installment == nil {
		return uuid.Nil
	}

	return e.Installment.GroupID
}
