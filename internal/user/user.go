package user

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/carteira/internal/validation"
)

var ErrNotFound = errors.New("user not found")

// User is the profile of an owner. ID is the subject issued by the identity
// provider, and CreatedAt marks the first month of balance history.
type User struct {
	ID          string
	Email       string
	DisplayName string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

func (u *User) Validate() error {
	if strings.TrimSpace(u.ID) == "" {
		return validation.New("id", "is required")
	}

	if u.Email != "" {
		if _, err := mail.ParseAddress(u.Email); err != nil {
			return validation.New("email", "is not a valid address")
		}
	}

	return nil
}
