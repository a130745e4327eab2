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
	"github.com/MrJamesThe3rd/carteira/internal/income"
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

const selectIncomeColumns = `
	id, owner_id, description, raw_description, amount, date, category_id, bank_id, status,
	installment_label, installment_index, installment_total, group_id, group_total,
	debtor, expected_date, installment_notes, recurrence, imported,
	created_at, updated_at, deleted_at
`

func scanIncome(s scanner) (*income.Income, error) {
	var i income.Income

	var status string

	var (
		label, debtor, notes sql.NullString
		index, total         sql.NullInt64
		groupID              *uuid.UUID
		groupTotal           sql.NullInt64
		expected             *time.Time
		freq                 sql.NullString
	)

	if err := s.Scan(
		&i.ID, &i.OwnerID, &i.Description, &i.RawDescription, &i.Amount, &i.Date, &i.CategoryID, &i.BankID, &status,
		&label, &index, &total, &groupID, &groupTotal,
		&debtor, &expected, &notes, &freq, &i.Imported,
		&i.CreatedAt, &i.UpdatedAt, &i.DeletedAt,
	); err != nil {
		return nil, err
	}

	i.Status = income.Status(status)

	if groupID != nil {
		i.Installment = &income.Installment{
			Label:        label.String,
			Index:        int(index.Int64),
			Total:        int(total.Int64),
			GroupID:      *groupID,
			TotalAmount:  groupTotal.Int64,
			Debtor:       debtor.String,
			ExpectedDate: expected,
			Notes:        notes.String,
		}
	}

	if freq.Valid {
		i.Recurrence = new(recurrence.Frequency(freq.String))
	}

	return &i, nil
}

func insertIncome(ctx context.Context, q querier, i *income.Income) error {
	query := `
		INSERT INTO incomes (
			owner_id, description, raw_description, amount, date, category_id, bank_id, status,
			installment_label, installment_index, installment_total, group_id, group_total,
			debtor, expected_date, installment_notes, recurrence, imported, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, NOW())
		RETURNING id, created_at
	`

	var (
		label, debtor, notes sql.NullString
		index, total         sql.NullInt64
		groupID              *uuid.UUID
		groupTotal           sql.NullInt64
		expected             *time.Time
		freq                 sql.NullString
	)

	if in := i.Installment; in != nil {
		label = sql.NullString{String: in.Label, Valid: true}
		index = sql.NullInt64{Int64: int64(in.Index), Valid: true}
		total = sql.NullInt64{Int64: int64(in.Total), Valid: true}
		groupID = &in.GroupID
		groupTotal = sql.NullInt64{Int64: in.TotalAmount, Valid: true}
		debtor = sql.NullString{String: in.Debtor, Valid: in.Debtor != ""}
		notes = sql.NullString{String: in.Notes, Valid: in.Notes != ""}
		expected = in.ExpectedDate
	}

	if i.Recurrence != nil {
		freq = sql.NullString{String: string(*i.Recurrence), Valid: true}
	}

	err := q.QueryRowContext(ctx, query,
		i.OwnerID, i.Description, i.RawDescription, i.Amount, i.Date, i.CategoryID, i.BankID, i.Status,
		label, index, total, groupID, groupTotal,
		debtor, expected, notes, freq, i.Imported,
	).Scan(&i.ID, &i.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating income: %w", err)
	}

	return nil
}

func (s *Store) CreateIncomes(ctx context.Context, incs []*income.Income, adjustments []bank.Adjustment) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	for _, i := range incs {
		if err := insertIncome(ctx, dbTx, i); err != nil {
			return err
		}
	}

	if len(incs) > 0 {
		for _, adj := range adjustments {
			if err := bankstore.Adjust(ctx, dbTx, incs[0].OwnerID, adj); err != nil {
				return err
			}
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) GetIncome(ctx context.Context, ownerID string, id uuid.UUID) (*income.Income, error) {
	query := `SELECT ` + selectIncomeColumns + `
		FROM incomes
		WHERE owner_id = $1 AND id = $2 AND deleted_at IS NULL`

	i, err := scanIncome(s.db.QueryRowContext(ctx, query, ownerID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, income.ErrNotFound
		}

		return nil, fmt.Errorf("getting income: %w", err)
	}

	return i, nil
}

func (s *Store) ListIncomes(ctx context.Context, ownerID string, filter income.ListFilter) ([]*income.Income, error) {
	query := `SELECT ` + selectIncomeColumns + `
		FROM incomes
		WHERE owner_id = $1 AND deleted_at IS NULL`

	args := []any{ownerID}
	argIdx := 2

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.BankID != nil {
		query += fmt.Sprintf(" AND bank_id = $%d", argIdx)

		args = append(args, *filter.BankID)
		argIdx++
	}

	if filter.CategoryID != nil {
		query += fmt.Sprintf(" AND category_id = $%d", argIdx)

		args = append(args, *filter.CategoryID)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
	}

	query += " ORDER BY date ASC, created_at ASC"

	return list(ctx, s.db, query, args...)
}

func (s *Store) ListGroup(ctx context.Context, ownerID string, groupID uuid.UUID) ([]*income.Income, error) {
	query := `SELECT ` + selectIncomeColumns + `
		FROM incomes
		WHERE owner_id = $1 AND group_id = $2 AND deleted_at IS NULL
		ORDER BY installment_index ASC`

	return list(ctx, s.db, query, ownerID, groupID)
}

type rowQuerier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func list(ctx context.Context, q rowQuerier, query string, args ...any) ([]*income.Income, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing incomes: %w", err)
	}
	defer rows.Close()

	var incs []*income.Income

	for rows.Next() {
		i, err := scanIncome(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning income: %w", err)
		}

		incs = append(incs, i)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating incomes: %w", err)
	}

	return incs, nil
}

func (s *Store) UpdateIncome(ctx context.Context, i *income.Income) error {
	query := `
		UPDATE incomes
		SET description = $1, amount = $2, date = $3, category_id = $4, updated_at = NOW()
		WHERE owner_id = $5 AND id = $6 AND deleted_at IS NULL
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		i.Description, i.Amount, i.Date, i.CategoryID, i.OwnerID, i.ID,
	).Scan(&i.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return income.ErrNotFound
		}

		return fmt.Errorf("updating income: %w", err)
	}

	return nil
}

func (s *Store) DeleteIncome(ctx context.Context, ownerID string, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE incomes SET deleted_at = NOW() WHERE owner_id = $1 AND id = $2 AND deleted_at IS NULL`,
		ownerID, id,
	)
	if err != nil {
		return fmt.Errorf("deleting income: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return income.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteGroup(ctx context.Context, ownerID string, groupID uuid.UUID) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE incomes SET deleted_at = NOW() WHERE owner_id = $1 AND group_id = $2 AND deleted_at IS NULL`,
		ownerID, groupID,
	)
	if err != nil {
		return 0, fmt.Errorf("deleting income group: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading affected rows: %w", err)
	}

	return n, nil
}

func (s *Store) ConfirmReceipt(ctx context.Context, i *income.Income, adj *bank.Adjustment) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		UPDATE incomes
		SET status = 'received', bank_id = $1, date = $2, updated_at = NOW()
		WHERE owner_id = $3 AND id = $4 AND status = 'pending' AND deleted_at IS NULL
		RETURNING updated_at
	`

	err = dbTx.QueryRowContext(ctx, query, i.BankID, i.Date, i.OwnerID, i.ID).Scan(&i.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return income.ErrNotPending
		}

		return fmt.Errorf("confirming income: %w", err)
	}

	if adj != nil {
		if err := bankstore.Adjust(ctx, dbTx, i.OwnerID, *adj); err != nil {
			return err
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func importLockKey(ownerID string, minDate, maxDate time.Time) int64 {
	h := fnv.New64a()
	h.Write([]byte("incomes"))
	h.Write([]byte{0})
	h.Write([]byte(ownerID))
	h.Write([]byte{0})
	h.Write([]byte(minDate.Format(time.DateOnly)))
	h.Write([]byte{0})
	h.Write([]byte(maxDate.Format(time.DateOnly)))

	return int64(h.Sum64())
}

type dupKey struct {
	Date           string
	Amount         int64
	BankID         uuid.UUID
	RawDescription string
}

func keyOf(i *income.Income) dupKey {
	k := dupKey{Date: i.Date.Format(time.DateOnly), Amount: i.Amount, RawDescription: i.RawDescription}
	if i.BankID != nil {
		k.BankID = *i.BankID
	}

	return k
}

// ImportIncomes inserts the entries not already stored, holding an advisory
// lock on the batch's date range for the duration of the check and insert.
func (s *Store) ImportIncomes(ctx context.Context, ownerID string, incs []*income.Income) ([]*income.Income, error) {
	if len(incs) == 0 {
		return nil, nil
	}

	minDate, maxDate := incs[0].Date, incs[0].Date
	for _, i := range incs[1:] {
		if i.Date.Before(minDate) {
			minDate = i.Date
		}

		if i.Date.After(maxDate) {
			maxDate = i.Date
		}
	}

	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", importLockKey(ownerID, minDate, maxDate)); err != nil {
		return nil, fmt.Errorf("acquiring import lock: %w", err)
	}

	existing, err := list(ctx, dbTx, `SELECT `+selectIncomeColumns+`
		FROM incomes
		WHERE owner_id = $1 AND deleted_at IS NULL AND date >= $2 AND date <= $3`,
		ownerID, minDate, maxDate,
	)
	if err != nil {
		return nil, err
	}

	seen := make(map[dupKey]int, len(existing))
	for _, e := range existing {
		seen[keyOf(e)]++
	}

	var skipped []*income.Income

	for _, i := range incs {
		k := keyOf(i)
		if seen[k] > 0 {
			seen[k]--

			skipped = append(skipped, i)

			continue
		}

		if err := insertIncome(ctx, dbTx, i); err != nil {
			return nil, err
		}
	}

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("committing import: %w", err)
	}

	return skipped, nil
}
