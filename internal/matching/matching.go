// Package matching remembers how raw statement descriptions should be
// renamed and categorized on import.
package matching

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/carteira/internal/validation"
)

var ErrNotFound = errors.New("matching rule not found")

const minPatternLen = 3

// Rule applies to every raw description containing Pattern, case-insensitively.
// The longest matching pattern wins.
type Rule struct {
	ID          uuid.UUID
	OwnerID     string
	Pattern     string
	Description string
	CategoryID  *uuid.UUID
	CreatedAt   time.Time
}

func (r *Rule) Validate() error {
	r.Pattern = strings.TrimSpace(r.Pattern)
	r.Description = strings.TrimSpace(r.Description)

	if len([]rune(r.Pattern)) < minPatternLen {
		return validation.New("pattern", "must have at least 3 characters")
	}

	if r.Description == "" && r.CategoryID == nil {
		return validation.New("description", "a description or a category is required")
	}

	return nil
}

// Matches reports whether raw contains the rule's pattern.
func (r *Rule) Matches(raw string) bool {
	return strings.Contains(strings.ToLower(raw), strings.ToLower(r.Pattern))
}

// Best returns the rule with the longest pattern matching raw, or nil.
func Best(rules []*Rule, raw string) *Rule {
	var best *Rule

	for _, r := range rules {
		if !r.Matches(raw) {
			continue
		}

		if best == nil || len(r.Pattern) > len(best.Pattern) {
			best = r
		}
	}

	return best
}
