package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/carteira/internal/bank"
	bankstore "github.com/MrJamesThe3rd/carteira/internal/bank/store"
	"github.com/MrJamesThe3rd/carteira/internal/invoice"
	"github.com/MrJamesThe3rd/carteira/internal/period"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectInvoiceColumns = `id, owner_id, card_id, period, total, due_date, paid, paid_at, bank_id, created_at, updated_at`

func scanInvoice(s scanner) (*invoice.Invoice, error) {
	var inv invoice.Invoice

	var p string

	if err := s.Scan(
		&inv.ID, &inv.OwnerID, &inv.CardID, &p, &inv.Total, &inv.DueDate, &inv.Paid, &inv.PaidAt, &inv.BankID,
		&inv.CreatedAt, &inv.UpdatedAt,
	); err != nil {
		return nil, err
	}

	parsed, err := period.Parse(p)
	if err != nil {
		return nil, fmt.Errorf("invoice %s: %w", inv.ID, err)
	}

	inv.Period = parsed

	return &inv, nil
}

// SaveInvoice relies on the unique (card_id, period) index: a second save of
// the same period only refreshes the total and due date while unpaid.
func (s *Store) SaveInvoice(ctx context.Context, inv *invoice.Invoice) error {
	query := `
		INSERT INTO invoices (owner_id, card_id, period, total, due_date, paid, created_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, NOW())
		ON CONFLICT (card_id, period) DO UPDATE
			SET total = EXCLUDED.total, due_date = EXCLUDED.due_date, updated_at = NOW()
			WHERE invoices.paid = FALSE AND invoices.owner_id = EXCLUDED.owner_id
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		inv.OwnerID, inv.CardID, inv.Period.String(), inv.Total, inv.DueDate,
	).Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return invoice.ErrAlreadyPaid
		}

		return fmt.Errorf("saving invoice: %w", err)
	}

	return nil
}

func (s *Store) GetInvoice(ctx context.Context, ownerID string, id uuid.UUID) (*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + ` FROM invoices WHERE owner_id = $1 AND id = $2`

	inv, err := scanInvoice(s.db.QueryRowContext(ctx, query, ownerID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, invoice.ErrNotFound
		}

		return nil, fmt.Errorf("getting invoice: %w", err)
	}

	return inv, nil
}

func (s *Store) GetByPeriod(ctx context.Context, ownerID string, cardID uuid.UUID, p period.Period) (*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + ` FROM invoices WHERE owner_id = $1 AND card_id = $2 AND period = $3`

	inv, err := scanInvoice(s.db.QueryRowContext(ctx, query, ownerID, cardID, p.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, invoice.ErrNotFound
		}

		return nil, fmt.Errorf("getting invoice by period: %w", err)
	}

	return inv, nil
}

func (s *Store) ListInvoices(ctx context.Context, ownerID string, filter invoice.ListFilter) ([]*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + ` FROM invoices WHERE owner_id = $1`
	args := []any{ownerID}
	argIdx := 2

	if filter.CardID != nil {
		query += fmt.Sprintf(" AND card_id = $%d", argIdx)

		args = append(args, *filter.CardID)
		argIdx++
	}

	if filter.Paid != nil {
		query += fmt.Sprintf(" AND paid = $%d", argIdx)

		args = append(args, *filter.Paid)
		argIdx++
	}

	// Periods are stored as YYYY-MM, so text order is chronological.
	if filter.From != nil {
		query += fmt.Sprintf(" AND period >= $%d", argIdx)

		args = append(args, filter.From.String())
		argIdx++
	}

	if filter.To != nil {
		query += fmt.Sprintf(" AND period <= $%d", argIdx)

		args = append(args, filter.To.String())
	}

	query += " ORDER BY period ASC, card_id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*invoice.Invoice

	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning invoice: %w", err)
		}

		invoices = append(invoices, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoices: %w", err)
	}

	return invoices, nil
}

func (s *Store) DeleteInvoice(ctx context.Context, ownerID string, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM invoices WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return fmt.Errorf("deleting invoice: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return invoice.ErrNotFound
	}

	return nil
}

func (s *Store) MarkPaid(ctx context.Context, inv *invoice.Invoice, adj *bank.Adjustment) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		UPDATE invoices
		SET paid = TRUE, paid_at = $1, bank_id = $2, updated_at = NOW()
		WHERE owner_id = $3 AND id = $4 AND paid = FALSE
		RETURNING updated_at
	`

	err = dbTx.QueryRowContext(ctx, query, inv.PaidAt, inv.BankID, inv.OwnerID, inv.ID).Scan(&inv.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return invoice.ErrAlreadyPaid
		}

		return fmt.Errorf("paying invoice: %w", err)
	}

	if adj != nil {
		if err := bankstore.Adjust(ctx, dbTx, inv.OwnerID, *adj); err != nil {
			return err
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}
