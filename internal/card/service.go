package card

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=card
type Repository interface {
	CreateCard(ctx context.Context, c *Card) error
	GetCard(ctx context.Context, ownerID string, id uuid.UUID) (*Card, error)
	ListCards(ctx context.Context, ownerID string) ([]*Card, error)
	UpdateCard(ctx context.Context, c *Card) error
	DeleteCard(ctx context.Context, ownerID string, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name       string
	LastFour   string
	Brand      Brand
	Limit      int64
	ClosingDay int
	DueDay     int
	Color      string
}

func (s *Service) Create(ctx context.Context, ownerID string, params CreateParams) (*Card, error) {
	c := &Card{
		OwnerID:    ownerID,
		Name:       params.Name,
		LastFour:   params.LastFour,
		Brand:      params.Brand,
		Limit:      params.Limit,
		ClosingDay: params.ClosingDay,
		DueDay:     params.DueDay,
		Color:      params.Color,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.CreateCard(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, ownerID string, id uuid.UUID) (*Card, error) {
	return s.repo.GetCard(ctx, ownerID, id)
}

func (s *Service) List(ctx context.Context, ownerID string) ([]*Card, error) {
	return s.repo.ListCards(ctx, ownerID)
}

func (s *Service) Update(ctx context.Context, c *Card) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return s.repo.UpdateCard(ctx, c)
}

func (s *Service) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	return s.repo.DeleteCard(ctx, ownerID, id)
}
