package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/carteira/internal/bank"
	bankstore "github.com/MrJamesThe3rd/carteira/internal/bank/store"
	"github.com/MrJamesThe3rd/carteira/internal/expense"
	"github.com/MrJamesThe3rd/carteira/internal/recurrence"
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

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const selectExpenseColumns = `
	id, owner_id, description, raw_description, amount, date, category_id, method,
	bank_id, card_id, status, installment_label, installment_index, installment_total,
	group_id, group_total, recurrence, receipt_uri, notes, imported,
	created_at, updated_at, deleted_at
`

// scanExpense reads a row laid out as selectExpenseColumns.
func scanExpense(s scanner) (*expense.Expense, error) {
	var e expense.Expense

	var method, status string

	var (
		label          sql.NullString
		index, total   sql.NullInt64
		groupID        *uuid.UUID
		groupTotal     sql.NullInt64
		freq           sql.NullString
		receipt, notes sql.NullString
	)

	if err := s.Scan(
		&e.ID, &e.OwnerID, &e.Description, &e.RawDescription, &e.Amount, &e.Date, &e.CategoryID, &method,
		&e.BankID, &e.CardID, &status, &label, &index, &total,
		&groupID, &groupTotal, &freq, &receipt, &notes, &e.Imported,
		&e.CreatedAt, &e.UpdatedAt, &e.DeletedAt,
	); err != nil {
		return nil, err
	}

	e.Method = expense.Method(method)
	e.Status = expense.Status(status)
	e.ReceiptURI = receipt.String
	e.Notes = notes.String

	if groupID != nil {
		e.Installment = &expense.Installment{
			Label:       label.String,
			Index:       int(index.Int64),
			Total:       int(total.Int64),
			GroupID:     *groupID,
			TotalAmount: groupTotal.Int64,
		}
	}

	if freq.Valid {
		e.Recurrence = new(recurrence.Frequency(freq.String))
	}

	return &e, nil
}

func insertExpense(ctx context.Context, q querier, e *expense.Expense) error {
	query := `
		INSERT INTO expenses (
			owner_id, description, raw_description, amount, date, category_id, method,
			bank_id, card_id, status, installment_label, installment_index, installment_total,
			group_id, group_total, recurrence, receipt_uri, notes, imported, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, NOW())
		RETURNING id, created_at
	`

	var (
		label        sql.NullString
		index, total sql.NullInt64
		groupID      *uuid.UUID
		groupTotal   sql.NullInt64
		freq         sql.NullString
	)

	if in := e.Installment; in != nil {
		label = sql.NullString{String: in.Label, Valid: true}
		index = sql.NullInt64{Int64: int64(in.Index), Valid: true}
		total = sql.NullInt64{Int64: int64(in.Total), Valid: true}
		groupID = &in.GroupID
		groupTotal = sql.NullInt64{Int64: in.TotalAmount, Valid: true}
	}

	if e.Recurrence != nil {
		freq = sql.NullString{String: string(*e.Recurrence), Valid: true}
	}

	err := q.QueryRowContext(ctx, query,
		e.OwnerID, e.Description, e.RawDescription, e.Amount, e.Date, e.CategoryID, e.Method,
		e.BankID, e.CardID, e.Status, label, index, total,
		groupID, groupTotal, freq, e.ReceiptURI, e.Notes, e.Imported,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating expense: %w", err)
	}

	return nil
}

func (s *Store) CreateExpenses(ctx context.Context, exps []*expense.Expense, adjustments []bank.Adjustment) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	for _, e := range exps {
		if err := insertExpense(ctx, dbTx, e); err != nil {
			return err
		}
	}

	if len(exps) > 0 {
		for _, adj := range adjustments {
			if err := bankstore.Adjust(ctx, dbTx, exps[0].OwnerID, adj); err != nil {
				return err
			}
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) GetExpense(ctx context.Context, ownerID string, id uuid.UUID) (*expense.Expense, error) {
	query := `SELECT ` + selectExpenseColumns + `
		FROM expenses
		WHERE owner_id = $1 AND id = $2 AND deleted_at IS NULL`

	e, err := scanExpense(s.db.QueryRowContext(ctx, query, ownerID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, expense.ErrNotFound
		}

		return nil, fmt.Errorf("getting expense: %w", err)
	}

	return e, nil
}

func (s *Store) ListExpenses(ctx context.Context, ownerID string, filter expense.ListFilter) ([]*expense.Expense, error) {
	query := `SELECT ` + selectExpenseColumns + `
		FROM expenses
		WHERE owner_id = $1 AND deleted_at IS NULL`

	args := []any{ownerID}
	argIdx := 2

	add := func(clause string, v any) {
		query += fmt.Sprintf(" AND "+clause, argIdx)

		args = append(args, v)
		argIdx++
	}

	if filter.Status != nil {
		add("status = $%d", *filter.Status)
	}

	if filter.Method != nil {
		add("method = $%d", *filter.Method)
	}

	if filter.BankID != nil {
		add("bank_id = $%d", *filter.BankID)
	}

	if filter.CardID != nil {
		add("card_id = $%d", *filter.CardID)
	}

	if filter.CategoryID != nil {
		add("category_id = $%d", *filter.CategoryID)
	}

	if filter.StartDate != nil {
		add("date >= $%d", *filter.StartDate)
	}

	if filter.EndDate != nil {
		add("date <= $%d", *filter.EndDate)
	}

	query += " ORDER BY date ASC, created_at ASC"

	return s.list(ctx, query, args...)
}

func (s *Store) ListGroup(ctx context.Context, ownerID string, groupID uuid.UUID) ([]*expense.Expense, error) {
	query := `SELECT ` + selectExpenseColumns + `
		FROM expenses
		WHERE owner_id = $1 AND group_id = $2 AND deleted_at IS NULL
		ORDER BY installment_index ASC`

	return s.list(ctx, query, ownerID, groupID)
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]*expense.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	defer rows.Close()

	var exps []*expense.Expense

	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}

		exps = append(exps, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating expenses: %w", err)
	}

	return exps, nil
}

func (s *Store) UpdateExpense(ctx context.Context, e *expense.Expense) error {
	query := `
		UPDATE expenses
		SET description = $1, amount = $2, date = $3, category_id = $4, notes = $5, updated_at = NOW()
		WHERE owner_id = $6 AND id = $7 AND deleted_at IS NULL
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		e.Description, e.Amount, e.Date, e.CategoryID, e.Notes, e.OwnerID, e.ID,
	).Scan(&e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return expense.ErrNotFound
		}

		return fmt.Errorf("updating expense: %w", err)
	}

	return nil
}

func (s *Store) DeleteExpense(ctx context.Context, ownerID string, id uuid.UUID) error {
	query := `
		UPDATE expenses
		SET deleted_at = NOW()
		WHERE owner_id = $1 AND id = $2 AND deleted_at IS NULL
	`

	res, err := s.db.ExecContext(ctx, query, ownerID, id)
	if err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return expense.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteGroup(ctx context.Context, ownerID string, groupID uuid.UUID) (int64, error) {
	query := `
		UPDATE expenses
		SET deleted_at = NOW()
		WHERE owner_id = $1 AND group_id = $2 AND deleted_at IS NULL
	`

	res, err := s.db.ExecContext(ctx, query, ownerID, groupID)
	if err != nil {
		return 0, fmt.Errorf("deleting expense group: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading affected rows: %w", err)
	}

	return n, nil
}

// ConfirmPayment flips the row from pending to paid only if it is still
// pending, so two concurrent confirmations debit the account once.
func (s *Store) ConfirmPayment(ctx context.Context, e *expense.Expense, adj *bank.Adjustment) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		UPDATE expenses
		SET status = 'paid', method = $1, bank_id = $2, card_id = $3, date = $4, updated_at = NOW()
		WHERE owner_id = $5 AND id = $6 AND status = 'pending' AND deleted_at IS NULL
		RETURNING updated_at
	`

	err = dbTx.QueryRowContext(ctx, query,
		e.Method, e.BankID, e.CardID, e.Date, e.OwnerID, e.ID,
	).Scan(&e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return expense.ErrNotPending
		}

		return fmt.Errorf("confirming expense: %w", err)
	}

	if adj != nil {
		if err := bankstore.Adjust(ctx, dbTx, e.OwnerID, *adj); err != nil {
			return err
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) SetReceipt(ctx context.Context, ownerID string, id uuid.UUID, uri string) error {
	query := `
		UPDATE expenses
		SET receipt_uri = $1, updated_at = NOW()
		WHERE owner_id = $2 AND id = $3 AND deleted_at IS NULL
	`

	res, err := s.db.ExecContext(ctx, query, uri, ownerID, id)
	if err != nil {
		return fmt.Errorf("setting receipt: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return expense.ErrNotFound
	}

	return nil
}

// importLockKey scopes the advisory lock to one owner and date range, so two
// imports of overlapping statements serialize on their duplicate check.
func importLockKey(ownerID string, minDate, maxDate time.Time) int64 {
	h := fnv.New64a()
	h.Write([]byte("expenses"))
	h.Write([]byte{0})
	h.Write([]byte(ownerID))
	h.Write([]byte{0})
	h.Write([]byte(minDate.Format(time.DateOnly)))
	h.Write([]byte{0})
	h.Write([]byte(maxDate.Format(time.DateOnly)))

	return int64(h.Sum64())
}

type importTx struct {
	tx      *sql.Tx
	ownerID string
}

func (s *Store) BeginImport(ctx context.Context, ownerID string, minDate, maxDate time.Time) (expense.ImportTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", importLockKey(ownerID, minDate, maxDate)); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring import lock: %w", err)
	}

	return &importTx{tx: dbTx, ownerID: ownerID}, nil
}

func (itx *importTx) Commit() error   { return itx.tx.Commit() }
func (itx *importTx) Rollback() error { return itx.tx.Rollback() }

// FindDuplicates returns the stored expenses in the batch's date range. The
// caller matches them against the batch on its own key.
func (itx *importTx) FindDuplicates(ctx context.Context, exps []*expense.Expense) ([]*expense.Expense, error) {
	if len(exps) == 0 {
		return nil, nil
	}

	minDate, maxDate := exps[0].Date, exps[0].Date
	raw := make(map[string]struct{}, len(exps))

	for _, e := range exps {
		if e.Date.Before(minDate) {
			minDate = e.Date
		}

		if e.Date.After(maxDate) {
			maxDate = e.Date
		}

		raw[e.RawDescription] = struct{}{}
	}

	query := `SELECT ` + selectExpenseColumns + `
		FROM expenses
		WHERE owner_id = $1 AND deleted_at IS NULL AND date >= $2 AND date <= $3
		ORDER BY date ASC`

	rows, err := itx.tx.QueryContext(ctx, query, itx.ownerID, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("finding duplicates: %w", err)
	}
	defer rows.Close()

	var duplicates []*expense.Expense

	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}

		if _, ok := raw[e.RawDescription]; !ok {
			continue
		}

		duplicates = append(duplicates, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating duplicate rows: %w", err)
	}

	return duplicates, nil
}

func (itx *importTx) CreateExpenses(ctx context.Context, exps []*expense.Expense) error {
	for _, e := range exps {
		if err := insertExpense(ctx, itx.tx, e); err != nil {
			return err
		}
	}

	return nil
}
