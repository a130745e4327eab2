package matching

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=matching
type Repository interface {
	CreateRule(ctx context.Context, r *Rule) error
	ListRules(ctx context.Context, ownerID string) ([]*Rule, error)
	DeleteRule(ctx context.Context, ownerID string, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggester resolves raw descriptions against a fixed set of rules, so a
// whole statement is matched with a single query.
type Suggester struct {
	rules []*Rule
}

func NewSuggester(rules []*Rule) *Suggester {
	return &Suggester{rules: rules}
}

// Suggest returns the best rule for raw, or nil when none applies.
func (s *Suggester) Suggest(raw string) *Rule {
	if s == nil {
		return nil
	}

	return Best(s.rules, raw)
}

// Suggester loads ownerID's rules for a batch of lookups.
func (s *Service) Suggester(ctx context.Context, ownerID string) (*Suggester, error) {
	rules, err := s.repo.ListRules(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return NewSuggester(rules), nil
}

// Suggest finds the best rule for a single raw description.
func (s *Service) Suggest(ctx context.Context, ownerID, rawDescription string) (*Rule, error) {
	sg, err := s.Suggester(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return sg.Suggest(rawDescription), nil
}

type LearnParams struct {
	Pattern     string
	Description string
	CategoryID  *uuid.UUID
}

// Learn remembers a new rule.
func (s *Service) Learn(ctx context.Context, ownerID string, params LearnParams) (*Rule, error) {
	r := &Rule{
		OwnerID:     ownerID,
		Pattern:     params.Pattern,
		Description: params.Description,
		CategoryID:  params.CategoryID,
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.CreateRule(ctx, r); err != nil {
		return nil, err
	}

	return r, nil
}

func (s *Service) List(ctx context.Context, ownerID string) ([]*Rule, error) {
	return s.repo.ListRules(ctx, ownerID)
}

func (s *Service) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	return s.repo.DeleteRule(ctx, ownerID, id)
}
