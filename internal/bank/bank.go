package bank

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/carteira/internal/validation"
)

var (
	ErrNotFound = errors.New("bank account not found")
	// ErrStale is returned when an account was modified since it was read.
	ErrStale = errors.New("bank account was modified concurrently")
)

// Kind is the type of bank account.
type Kind string

const (
	KindChecking Kind = "checking"
	KindSavings  Kind = "savings"
	KindDigital  Kind = "digital"
)

func (k Kind) Valid() bool {
	switch k {
	case KindChecking, KindSavings, KindDigital:
		return true
	}

	return false
}

// Account is a bank account. Balance is in cents and only moves when a
// transaction against the account is confirmed or the account is edited.
type Account struct {
	ID        uuid.UUID
	OwnerID   string
	Name      string
	Kind      Kind
	Balance   int64
	Color     string
	Version   int64
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Adjustment is a signed change applied atomically to an account balance.
type Adjustment struct {
	AccountID uuid.UUID
	Delta     int64
}

func (a *Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return validation.New("name", "is required")
	}

	if !a.Kind.Valid() {
		return validation.New("kind", "must be checking, savings or digital")
	}

	return nil
}

// Total sums the balances of accounts.
func Total(accounts []*Account) int64 {
	var sum int64
	for _, a := range accounts {
		sum += a.Balance
	}

	return sum
}
