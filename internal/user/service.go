package user

import (
	"context"
	"errors"
	"time"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=user
type Repository interface {
	GetUser(ctx context.Context, id string) (*User, error)
	// UpsertUser inserts u or updates its profile fields, keeping CreatedAt.
	UpsertUser(ctx context.Context, u *User) error
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type UpsertParams struct {
	Email       string
	DisplayName string
}

func (s *Service) Get(ctx context.Context, ownerID string) (*User, error) {
	return s.repo.GetUser(ctx, ownerID)
}

func (s *Service) Upsert(ctx context.Context, ownerID string, params UpsertParams) (*User, error) {
	u := &User{ID: ownerID, Email: params.Email, DisplayName: params.DisplayName}
	if err := u.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.UpsertUser(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// MemberSince returns when the owner signed up. Owners without a profile
// start today, which leaves the forecast without history.
func (s *Service) MemberSince(ctx context.Context, ownerID string) (time.Time, error) {
	u, err := s.repo.GetUser(ctx, ownerID)
	if errors.Is(err, ErrNotFound) {
		return s.now(), nil
	}

	if err != nil {
		return time.Time{}, err
	}

	return u.CreatedAt, nil
}
