package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/carteira/internal/card"
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

const selectCardColumns = `id, owner_id, name, last_four, brand, credit_limit, closing_day, due_day, color, created_at, updated_at`

func scanCard(s scanner) (*card.Card, error) {
	var c card.Card

	var brand string

	if err := s.Scan(
		&c.ID, &c.OwnerID, &c.Name, &c.LastFour, &brand, &c.Limit, &c.ClosingDay, &c.DueDay, &c.Color,
		&c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}

	c.Brand = card.Brand(brand)

	return &c, nil
}

func (s *Store) CreateCard(ctx context.Context, c *card.Card) error {
	query := `
		INSERT INTO credit_cards (owner_id, name, last_four, brand, credit_limit, closing_day, due_day, color, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		c.OwnerID, c.Name, c.LastFour, c.Brand, c.Limit, c.ClosingDay, c.DueDay, c.Color,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating credit card: %w", err)
	}

	return nil
}

func (s *Store) GetCard(ctx context.Context, ownerID string, id uuid.UUID) (*card.Card, error) {
	query := `SELECT ` + selectCardColumns + ` FROM credit_cards WHERE owner_id = $1 AND id = $2`

	c, err := scanCard(s.db.QueryRowContext(ctx, query, ownerID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, card.ErrNotFound
		}

		return nil, fmt.Errorf("getting credit card: %w", err)
	}

	return c, nil
}

func (s *Store) ListCards(ctx context.Context, ownerID string) ([]*card.Card, error) {
	query := `SELECT ` + selectCardColumns + ` FROM credit_cards WHERE owner_id = $1 ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing credit cards: %w", err)
	}
	defer rows.Close()

	var cards []*card.Card

	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning credit card: %w", err)
		}

		cards = append(cards, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating credit cards: %w", err)
	}

	return cards, nil
}

func (s *Store) UpdateCard(ctx context.Context, c *card.Card) error {
	query := `
		UPDATE credit_cards
		SET name = $1, last_four = $2, brand = $3, credit_limit = $4, closing_day = $5, due_day = $6, color = $7,
			updated_at = NOW()
		WHERE owner_id = $8 AND id = $9
	`

	res, err := s.db.ExecContext(ctx, query,
		c.Name, c.LastFour, c.Brand, c.Limit, c.ClosingDay, c.DueDay, c.Color, c.OwnerID, c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating credit card: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return card.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteCard(ctx context.Context, ownerID string, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM credit_cards WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return fmt.Errorf("deleting credit card: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return card.ErrNotFound
	}

	return nil
}
