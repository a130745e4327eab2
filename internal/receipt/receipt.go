// Package receipt stores the files attached to expenses as proof of payment.
package receipt

import (
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrNoReceipt is returned when an expense has no receipt attached.
	ErrNoReceipt = errors.New("expense has no receipt")
	// ErrObjectNotFound is returned by stores when the object behind a URI is gone.
	ErrObjectNotFound = errors.New("receipt object not found")
)

// Object is an open receipt. Callers must close Body.
type Object struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.ReadCloser
}

// Prefix is the key prefix under which every receipt of one expense lives.
func Prefix(ownerID string, expenseID uuid.UUID) string {
	return fmt.Sprintf("receipts/%s/%s/", ownerID, expenseID)
}

// Key builds a unique object key for a new receipt file.
func Key(ownerID string, expenseID uuid.UUID, filename string) string {
	return Prefix(ownerID, expenseID) + uuid.NewString() + "-" + sanitize(filename)
}

// displayName strips the key prefix and the uuid added by Key.
func displayName(key string) string {
	base := path.Base(key)
	if len(base) > 37 && base[36] == '-' {
		if _, err := uuid.Parse(base[:36]); err == nil {
			return base[37:]
		}
	}

	return base
}

func sanitize(filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "receipt"
	}

	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		}

		return '_'
	}, name)
}
