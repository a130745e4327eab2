package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/carteira/internal/user"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetUser(ctx context.Context, id string) (*user.User, error) {
	query := `SELECT id, email, display_name, created_at, updated_at FROM users WHERE id = $1`

	var u user.User

	err := s.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Email, &u.DisplayName, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrNotFound
		}

		return nil, fmt.Errorf("getting user: %w", err)
	}

	return &u, nil
}

func (s *Store) UpsertUser(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (id, email, display_name, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (id) DO UPDATE
			SET email = EXCLUDED.email, display_name = EXCLUDED.display_name, updated_at = NOW()
		RETURNING created_at, updated_at
	`

	if err := s.db.QueryRowContext(ctx, query, u.ID, u.Email, u.DisplayName).Scan(&u.CreatedAt, &u.UpdatedAt); err != nil {
		return fmt.Errorf("upserting user: %w", err)
	}

	return nil
}
