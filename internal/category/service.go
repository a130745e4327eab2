package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=category
type Repository interface {
	CreateCategories(ctx context.Context, cs []*Category) error
	GetCategory(ctx context.Context, ownerID string, id uuid.UUID) (*Category, error)
	ListCategories(ctx context.Context, ownerID string, filter ListFilter) ([]*Category, error)
	UpdateCategory(ctx context.Context, c *Category) error
	// DeleteCategory fails with ErrInUse while a live income or expense references the category.
	DeleteCategory(ctx context.Context, ownerID string, id uuid.UUID) error
}

type ListFilter struct {
	Direction *Direction
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name      string
	Direction Direction
	Color     string
	Icon      string
}

func (s *Service) Create(ctx context.Context, ownerID string, params CreateParams) (*Category, error) {
	c := &Category{
		OwnerID:   ownerID,
		Name:      params.Name,
		Direction: params.Direction,
		Color:     params.Color,
		Icon:      params.Icon,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.CreateCategories(ctx, []*Category{c}); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, ownerID string, id uuid.UUID) (*Category, error) {
	return s.repo.GetCategory(ctx, ownerID, id)
}

func (s *Service) List(ctx context.Context, ownerID string, filter ListFilter) ([]*Category, error) {
	return s.repo.ListCategories(ctx, ownerID, filter)
}

func (s *Service) Update(ctx context.Context, c *Category) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return s.repo.UpdateCategory(ctx, c)
}

func (s *Service) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	return s.repo.DeleteCategory(ctx, ownerID, id)
}

// InitializeDefaults seeds the starter categories when the owner has none.
// It returns the categories that were created, or nil when nothing was seeded.
func (s *Service) InitializeDefaults(ctx context.Context, ownerID string) ([]*Category, error) {
	existing, err := s.repo.ListCategories(ctx, ownerID, ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	if len(existing) > 0 {
		return nil, nil
	}

	defaults, err := Defaults(ownerID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateCategories(ctx, defaults); err != nil {
		return nil, fmt.Errorf("create default categories: %w", err)
	}

	return defaults, nil
}
