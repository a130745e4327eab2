package invoice

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/carteira/internal/period"
)

var (
	ErrNotFound = errors.New("invoice not found")
	// ErrAlreadyPaid is returned when paying or regenerating a settled invoice.
	ErrAlreadyPaid = errors.New("invoice already paid")
)

// Invoice is the persisted bill of one card for one period.
type Invoice struct {
	ID        uuid.UUID
	OwnerID   string
	CardID    uuid.UUID
	Period    period.Period
	Total     int64
	DueDate   time.Time
	Paid      bool
	PaidAt    *time.Time
	BankID    *uuid.UUID
	CreatedAt time.Time
	UpdatedAt *time.Time
}
