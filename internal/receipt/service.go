package receipt

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/carteira/internal/expense"
	"github.com/MrJamesThe3rd/carteira/internal/logger"
	"github.com/MrJamesThe3rd/carteira/internal/validation"
)

//go:generate mockgen -source=service.go -destination=store_mock.go -package=receipt
type Store interface {
	// Put writes r under key and returns the URI recorded on the expense.
	Put(ctx context.Context, key, contentType string, r io.Reader) (string, error)
	Open(ctx context.Context, uri string) (*Object, error)
	// List returns the URIs of every object whose key starts with prefix.
	List(ctx context.Context, prefix string) ([]string, error)
	Delete(ctx context.Context, uri string) error
}

type ExpenseStore interface {
	Get(ctx context.Context, ownerID string, id uuid.UUID) (*expense.Expense, error)
	AttachReceipt(ctx context.Context, ownerID string, id uuid.UUID, uri string) error
}

type Service struct {
	store    Store
	expenses ExpenseStore
}

func NewService(store Store, expenses ExpenseStore) *Service {
	return &Service{store: store, expenses: expenses}
}

var allowedTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"image/heic":      true,
}

// Attach uploads a receipt for an expense, replacing any previous one.
func (s *Service) Attach(ctx context.Context, ownerID string, expenseID uuid.UUID, filename, contentType string, r io.Reader) (string, error) {
	contentType = strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	if !allowedTypes[contentType] {
		return "", validation.New("file", "must be a PDF or an image")
	}

	if _, err := s.expenses.Get(ctx, ownerID, expenseID); err != nil {
		return "", err
	}

	uri, err := s.store.Put(ctx, Key(ownerID, expenseID, filename), contentType, r)
	if err != nil {
		return "", fmt.Errorf("store receipt: %w", err)
	}

	if err := s.expenses.AttachReceipt(ctx, ownerID, expenseID, uri); err != nil {
		if delErr := s.store.Delete(ctx, uri); delErr != nil {
			log := logger.FromContext(ctx, logger.Nop())
			log.Warn().Err(delErr).Str("uri", uri).Msg("failed to remove orphan receipt")
		}

		return "", fmt.Errorf("attach receipt: %w", err)
	}

	s.prune(ctx, Prefix(ownerID, expenseID), uri)

	return uri, nil
}

// prune removes receipts superseded by keep. Failures only leave stale files behind.
func (s *Service) prune(ctx context.Context, prefix, keep string) {
	log := logger.FromContext(ctx, logger.Nop())

	uris, err := s.store.List(ctx, prefix)
	if err != nil {
		log.Warn().Err(err).Str("prefix", prefix).Msg("failed to list receipts")
		return
	}

	for _, uri := range uris {
		if uri == keep {
			continue
		}

		if err := s.store.Delete(ctx, uri); err != nil {
			log.Warn().Err(err).Str("uri", uri).Msg("failed to remove old receipt")
		}
	}
}

// Open returns the receipt attached to an expense.
func (s *Service) Open(ctx context.Context, ownerID string, expenseID uuid.UUID) (*Object, error) {
	e, err := s.expenses.Get(ctx, ownerID, expenseID)
	if err != nil {
		return nil, err
	}

	if e.ReceiptURI == "" {
		return nil, ErrNoReceipt
	}

	obj, err := s.store.Open(ctx, e.ReceiptURI)
	if err != nil {
		return nil, fmt.Errorf("open receipt: %w", err)
	}

	return obj, nil
}

// Remove deletes the receipt of an expense and clears its URI.
func (s *Service) Remove(ctx context.Context, ownerID string, expenseID uuid.UUID) error {
	e, err := s.expenses.Get(ctx, ownerID, expenseID)
	if err != nil {
		return err
	}

	if e.ReceiptURI == "" {
		return ErrNoReceipt
	}

	if err := s.expenses.AttachReceipt(ctx, ownerID, expenseID, ""); err != nil {
		return fmt.Errorf("detach receipt: %w", err)
	}

	s.prune(ctx, Prefix(ownerID, expenseID), "")

	return nil
}
