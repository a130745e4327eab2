package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/carteira/internal/bank"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Execer is satisfied by *sql.DB and *sql.Tx.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type scanner interface {
	Scan(dest ...any) error
}

const selectAccountColumns = `id, owner_id, name, kind, balance, color, version, created_at, updated_at`

func scanAccount(s scanner) (*bank.Account, error) {
	var a bank.Account

	var kind string

	if err := s.Scan(
		&a.ID, &a.OwnerID, &a.Name, &kind, &a.Balance, &a.Color, &a.Version, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}

	a.Kind = bank.Kind(kind)

	return &a, nil
}

func (s *Store) CreateAccount(ctx context.Context, a *bank.Account) error {
	query := `
		INSERT INTO bank_accounts (owner_id, name, kind, balance, color, version, created_at)
		VALUES ($1, $2, $3, $4, $5, 1, NOW())
		RETURNING id, version, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		a.OwnerID, a.Name, a.Kind, a.Balance, a.Color,
	).Scan(&a.ID, &a.Version, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating bank account: %w", err)
	}

	return nil
}

func (s *Store) GetAccount(ctx context.Context, ownerID string, id uuid.UUID) (*bank.Account, error) {
	query := `SELECT ` + selectAccountColumns + ` FROM bank_accounts WHERE owner_id = $1 AND id = $2`

	a, err := scanAccount(s.db.QueryRowContext(ctx, query, ownerID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, bank.ErrNotFound
		}

		return nil, fmt.Errorf("getting bank account: %w", err)
	}

	return a, nil
}

func (s *Store) ListAccounts(ctx context.Context, ownerID string) ([]*bank.Account, error) {
	query := `SELECT ` + selectAccountColumns + ` FROM bank_accounts WHERE owner_id = $1 ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing bank accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*bank.Account

	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning bank account: %w", err)
		}

		accounts = append(accounts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bank accounts: %w", err)
	}

	return accounts, nil
}

// UpdateAccount writes the account only if its version is unchanged since it was read.
func (s *Store) UpdateAccount(ctx context.Context, a *bank.Account) error {
	query := `
		UPDATE bank_accounts
		SET name = $1, kind = $2, balance = $3, color = $4, version = version + 1, updated_at = NOW()
		WHERE owner_id = $5 AND id = $6 AND version = $7
		RETURNING version, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		a.Name, a.Kind, a.Balance, a.Color, a.OwnerID, a.ID, a.Version,
	).Scan(&a.Version, &a.UpdatedAt)
	if err == nil {
		return nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("updating bank account: %w", err)
	}

	if _, err := s.GetAccount(ctx, a.OwnerID, a.ID); err != nil {
		return err
	}

	return bank.ErrStale
}

func (s *Store) DeleteAccount(ctx context.Context, ownerID string, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM bank_accounts WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return fmt.Errorf("deleting bank account: %w", err)
	}

	return expectOne(res, bank.ErrNotFound)
}

func (s *Store) Adjust(ctx context.Context, ownerID string, adj bank.Adjustment) error {
	return Adjust(ctx, s.db, ownerID, adj)
}

// Adjust applies adj as a single atomic increment, so concurrent
// confirmations against the same account never overwrite each other.
// Pass a *sql.Tx to make the change part of a larger unit of work.
func Adjust(ctx context.Context, db Execer, ownerID string, adj bank.Adjustment) error {
	query := `
		UPDATE bank_accounts
		SET balance = balance + $1, version = version + 1, updated_at = NOW()
		WHERE owner_id = $2 AND id = $3
	`

	res, err := db.ExecContext(ctx, query, adj.Delta, ownerID, adj.AccountID)
	if err != nil {
		return fmt.Errorf("adjusting bank balance: %w", err)
	}

	return expectOne(res, bank.ErrNotFound)
}

func expectOne(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return notFound
	}

	return nil
}
