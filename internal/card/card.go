package card

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/carteira/internal/validation"
)

var ErrNotFound = errors.New("credit card not found")

type Brand string

const (
	BrandVisa       Brand = "visa"
	BrandMastercard Brand = "mastercard"
	BrandElo        Brand = "elo"
	BrandAmex       Brand = "amex"
	BrandHipercard  Brand = "hipercard"
	BrandOther      Brand = "other"
)

func (b Brand) Valid() bool {
	switch b {
	case BrandVisa, BrandMastercard, BrandElo, BrandAmex, BrandHipercard, BrandOther:
		return true
	}

	return false
}

// Card is a credit card. Its statement closes on ClosingDay and is due on
// DueDay; neither is tied to a bank account.
type Card struct {
	ID         uuid.UUID
	OwnerID    string
	Name       string
	LastFour   string
	Brand      Brand
	Limit      int64
	ClosingDay int
	DueDay     int
	Color      string
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

func (c *Card) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return validation.New("name", "is required")
	}

	if !isDigits(c.LastFour, 4) {
		return validation.New("last_four", "must be 4 digits")
	}

	if !c.Brand.Valid() {
		return validation.New("brand", "is not supported")
	}

	if c.Limit < 0 {
		return validation.New("limit", "must not be negative")
	}

	if c.ClosingDay < 1 || c.ClosingDay > 31 {
		return validation.New("closing_day", "must be between 1 and 31")
	}

	if c.DueDay < 1 || c.DueDay > 31 {
		return validation.New("due_day", "must be between 1 and 31")
	}

	return nil
}

func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

// ClosingDays indexes the closing day of each card by id.
func ClosingDays(cards []*Card) map[uuid.UUID]int {
	out := make(map[uuid.UUID]int, len(cards))
	for _, c := range cards {
		out[c.ID] = c.ClosingDay
	}

	return out
}
