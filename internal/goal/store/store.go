package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/carteira/internal/category"
	"github.com/MrJamesThe3rd/carteira/internal/goal"
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

const selectGoalColumns = `id, owner_id, category_id, direction, monthly_target, active, created_at, updated_at`

func scanGoal(s scanner) (*goal.Goal, error) {
	var g goal.Goal

	var dir string

	if err := s.Scan(&g.ID, &g.OwnerID, &g.CategoryID, &dir, &g.MonthlyTarget, &g.Active, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return nil, err
	}

	g.Direction = category.Direction(dir)

	return &g, nil
}

func (s *Store) CreateGoal(ctx context.Context, g *goal.Goal) error {
	query := `
		INSERT INTO category_goals (owner_id, category_id, direction, monthly_target, active, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		g.OwnerID, g.CategoryID, g.Direction, g.MonthlyTarget, g.Active,
	).Scan(&g.ID, &g.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating goal: %w", err)
	}

	return nil
}

func (s *Store) GetGoal(ctx context.Context, ownerID string, id uuid.UUID) (*goal.Goal, error) {
	query := `SELECT ` + selectGoalColumns + ` FROM category_goals WHERE owner_id = $1 AND id = $2`

	g, err := scanGoal(s.db.QueryRowContext(ctx, query, ownerID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, goal.ErrNotFound
		}

		return nil, fmt.Errorf("getting goal: %w", err)
	}

	return g, nil
}

func (s *Store) ListGoals(ctx context.Context, ownerID string, activeOnly bool) ([]*goal.Goal, error) {
	query := `SELECT ` + selectGoalColumns + ` FROM category_goals WHERE owner_id = $1`
	if activeOnly {
		query += " AND active"
	}

	query += " ORDER BY created_at ASC"

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	defer rows.Close()

	var goals []*goal.Goal

	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning goal: %w", err)
		}

		goals = append(goals, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating goals: %w", err)
	}

	return goals, nil
}

func (s *Store) UpdateGoal(ctx context.Context, g *goal.Goal) error {
	query := `
		UPDATE category_goals
		SET monthly_target = $1, active = $2, updated_at = NOW()
		WHERE owner_id = $3 AND id = $4
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query, g.MonthlyTarget, g.Active, g.OwnerID, g.ID).Scan(&g.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return goal.ErrNotFound
		}

		return fmt.Errorf("updating goal: %w", err)
	}

	return nil
}

func (s *Store) DeleteGoal(ctx context.Context, ownerID string, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM category_goals WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return fmt.Errorf("deleting goal: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return goal.ErrNotFound
	}

	return nil
}
