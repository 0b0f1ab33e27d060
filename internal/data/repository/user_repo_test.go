package repository

import (
	"context"
	"testing"
	"time"

	"court-booking/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Update(t *testing.T) {
	ctx := context.Background()
	s := seed(t)
	users := s.repos.User

	phone := "08" + uuid.NewString()[:10]
	s.owner.Phone = &phone
	require.NoError(t, users.Update(ctx, s.owner))

	s.user.FullName = "Renamed"
	s.user.Phone = &phone
	s.user.UpdatedAt = time.Now()
	assert.ErrorIs(t, users.Update(ctx, s.user), domain.ErrPhoneTaken)

	s.user.Phone = nil
	require.NoError(t, users.Update(ctx, s.user))
	got, err := users.FindByID(ctx, s.user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.FullName)

	ghost := *s.user
	ghost.ID = uuid.New()
	assert.ErrorIs(t, users.Update(ctx, &ghost), domain.ErrUserNotFound)
}

func TestUserRepository_FindAll(t *testing.T) {
	ctx := context.Background()
	s := seed(t)
	users := s.repos.User

	total, err := users.CountAll(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, total, int64(2))

	page, err := users.FindAll(ctx, 1, 0)
	require.NoError(t, err)
	assert.Len(t, page, 1)
}
