package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhvu-dev/crm-backend/internal/models"
)

func newUser(email string) *models.User {
	return &models.User{
		FullName:      "Test User",
		Email:         email,
		Phone:         "0912345678",
		PasswordHash:  "hash",
		Role:          models.RoleSales,
		IsActive:      true,
		AgreedToTerms: true,
	}
}

func TestMemoryInsertAssignsMonotonicIDs(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	first, err := s.Insert(ctx, newUser("a@test.com"))
	require.NoError(t, err)
	second, err := s.Insert(ctx, newUser("b@test.com"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.False(t, first.CreatedAt.IsZero())
}

func TestMemoryInsertNormalizesEmail(t *testing.T) {
	s := NewMemoryStore()

	u, err := s.Insert(context.Background(), newUser("Jane@Test.com"))
	require.NoError(t, err)
	assert.Equal(t, "jane@test.com", u.Email)
}

func TestMemoryFindByEmailCaseInsensitive(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, err := s.Insert(ctx, newUser("jane@test.com"))
	require.NoError(t, err)

	for _, email := range []string{"jane@test.com", "Jane@Test.com", "JANE@TEST.COM"} {
		u, err := s.FindByEmail(ctx, email)
		require.NoError(t, err, "lookup %q", email)
		assert.Equal(t, "jane@test.com", u.Email)
	}

	_, err = s.FindByEmail(ctx, "nobody@test.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryFindByID(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	inserted, err := s.Insert(ctx, newUser("a@test.com"))
	require.NoError(t, err)

	found, err := s.FindByID(ctx, inserted.ID)
	require.NoError(t, err)
	assert.Equal(t, inserted.Email, found.Email)

	_, err = s.FindByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryUpdateLastLogin(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	u, err := s.Insert(ctx, newUser("a@test.com"))
	require.NoError(t, err)
	require.Nil(t, u.LastLoginAt)

	at := time.Now()
	require.NoError(t, s.UpdateLastLogin(ctx, u.ID, at, "127.0.0.1"))

	got, err := s.FindByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastLoginAt)
	assert.True(t, got.LastLoginAt.Equal(at))
	require.NotNil(t, got.LastLoginIP)
	assert.Equal(t, "127.0.0.1", *got.LastLoginIP)

	assert.ErrorIs(t, s.UpdateLastLogin(ctx, 999, at, "127.0.0.1"), ErrNotFound)
}

func TestMemoryReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	u, err := s.Insert(ctx, newUser("a@test.com"))
	require.NoError(t, err)

	u.FullName = "Mutated"

	got, err := s.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test User", got.FullName)
}
