package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/carteira/internal/category"
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

const selectCategoryColumns = `id, owner_id, name, direction, color, icon, created_at`

func scanCategory(s scanner) (*category.Category, error) {
	var c category.Category

	var dir string

	if err := s.Scan(&c.ID, &c.OwnerID, &c.Name, &dir, &c.Color, &c.Icon, &c.CreatedAt); err != nil {
		return nil, err
	}

	c.Direction = category.Direction(dir)

	return &c, nil
}

func (s *Store) CreateCategories(ctx context.Context, cs []*category.Category) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO categories (owner_id, name, direction, color, icon, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	for _, c := range cs {
		if err := dbTx.QueryRowContext(ctx, query,
			c.OwnerID, c.Name, c.Direction, c.Color, c.Icon,
		).Scan(&c.ID, &c.CreatedAt); err != nil {
			return fmt.Errorf("creating category %q: %w", c.Name, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) GetCategory(ctx context.Context, ownerID string, id uuid.UUID) (*category.Category, error) {
	query := `SELECT ` + selectCategoryColumns + ` FROM categories WHERE owner_id = $1 AND id = $2`

	c, err := scanCategory(s.db.QueryRowContext(ctx, query, ownerID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, category.ErrNotFound
		}

		return nil, fmt.Errorf("getting category: %w", err)
	}

	return c, nil
}

func (s *Store) ListCategories(ctx context.Context, ownerID string, filter category.ListFilter) ([]*category.Category, error) {
	query := `SELECT ` + selectCategoryColumns + ` FROM categories WHERE owner_id = $1`
	args := []any{ownerID}

	if filter.Direction != nil {
		query += " AND direction = $2"

		args = append(args, *filter.Direction)
	}

	query += " ORDER BY direction ASC, name ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var cs []*category.Category

	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}

		cs = append(cs, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}

	return cs, nil
}

func (s *Store) UpdateCategory(ctx context.Context, c *category.Category) error {
	query := `
		UPDATE categories
		SET name = $1, direction = $2, color = $3, icon = $4
		WHERE owner_id = $5 AND id = $6
	`

	res, err := s.db.ExecContext(ctx, query, c.Name, c.Direction, c.Color, c.Icon, c.OwnerID, c.ID)
	if err != nil {
		return fmt.Errorf("updating category: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return category.ErrNotFound
	}

	return nil
}

// DeleteCategory removes a category unless a live income or expense still points at it.
// The usage check and the delete run in one transaction.
func (s *Store) DeleteCategory(ctx context.Context, ownerID string, id uuid.UUID) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	var locked uuid.UUID

	err = dbTx.QueryRowContext(ctx,
		`SELECT id FROM categories WHERE owner_id = $1 AND id = $2 FOR UPDATE`, ownerID, id,
	).Scan(&locked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return category.ErrNotFound
		}

		return fmt.Errorf("locking category: %w", err)
	}

	usageQuery := `
		SELECT
			EXISTS (SELECT 1 FROM expenses WHERE owner_id = $1 AND category_id = $2 AND deleted_at IS NULL)
			OR EXISTS (SELECT 1 FROM incomes WHERE owner_id = $1 AND category_id = $2 AND deleted_at IS NULL)
	`

	var inUse bool
	if err := dbTx.QueryRowContext(ctx, usageQuery, ownerID, id).Scan(&inUse); err != nil {
		return fmt.Errorf("checking category usage: %w", err)
	}

	if inUse {
		return category.ErrInUse
	}

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM categories WHERE owner_id = $1 AND id = $2`, ownerID, id); err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}
