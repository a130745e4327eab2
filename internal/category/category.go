package category

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/carteira/internal/validation"
)

var (
	ErrNotFound = errors.New("category not found")
	// ErrInUse is returned when deleting a category still referenced by an income or expense.
	ErrInUse = errors.New("category is in use")
)

// Direction tells whether a category classifies money coming in or going out.
type Direction string

const (
	DirectionIncome  Direction = "income"
	DirectionExpense Direction = "expense"
)

func (d Direction) Valid() bool {
	return d == DirectionIncome || d == DirectionExpense
}

type Category struct {
	ID        uuid.UUID
	OwnerID   string
	Name      string
	Direction Direction
	Color     string
	Icon      string
	CreatedAt time.Time
}

func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return validation.New("name", "is required")
	}

	if !c.Direction.Valid() {
		return validation.New("direction", "must be income or expense")
	}

	return nil
}

// Names indexes category names by id.
func Names(categories []*Category) map[uuid.UUID]string {
	out := make(map[uuid.UUID]string, len(categories))
	for _, c := range categories {
		out[c.ID] = c.Name
	}

	return out
}
