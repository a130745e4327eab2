package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwnerLimiter_EvictsIdleOwners(t *testing.T) {
	now := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)

	l := newOwnerLimiter(1, 1)
	l.now = func() time.Time { return now }

	alice := l.get("alice")
	l.get("bob")
	require.Len(t, l.limiters, 2)

	now = now.Add(limiterIdle / 2)
	assert.Same(t, alice, l.get("alice"))

	// bob has been idle past the window, alice has not.
	now = now.Add(limiterIdle/2 + time.Minute)
	l.get("carol")

	assert.Len(t, l.limiters, 2)
	assert.Contains(t, l.limiters, "alice")
	assert.Contains(t, l.limiters, "carol")
	assert.NotContains(t, l.limiters, "bob")
}

func TestOwnerLimiter_KeepsStateWhileActive(t *testing.T) {
	now := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)

	l := newOwnerLimiter(0.001, 1)
	l.now = func() time.Time { return now }

	assert.True(t, l.get("alice").Allow())

	now = now.Add(limiterIdle / 2)
	l.get("alice")

	now = now.Add(limiterIdle/2 + time.Second)
	l.get("bob")
	require.Contains(t, l.limiters, "alice")

	now = now.Add(time.Second)
	assert.False(t, l.get("alice").Allow())
}
