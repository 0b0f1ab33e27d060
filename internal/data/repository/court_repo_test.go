package repository

import (
	"context"
	"testing"
	"time"

	"court-booking/internal/data/entity"
	"court-booking/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourtRepository_Delete(t *testing.T) {
	ctx := context.Background()
	s := seed(t)
	courts := s.repos.Court

	spare := &entity.Court{
		Base:           entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		OwnerID:        s.owner.ID,
		Name:           "Spare Court",
		Address:        "Test Street 2",
		PricePerHour:   decimal.NewFromInt(80),
		NumberOfCourts: 1,
		OpenTime:       "08:00",
		CloseTime:      "20:00",
		Status:         entity.CourtStatusActive,
	}
	require.NoError(t, courts.Create(ctx, spare))
	require.NoError(t, courts.Delete(ctx, spare.ID))

	gone, err := courts.FindByID(ctx, spare.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	assert.ErrorIs(t, courts.Delete(ctx, spare.ID), domain.ErrCourtNotFound)

	// a cancelled booking still counts as history
	b := s.booking("10:00", "11:00", 1)
	require.NoError(t, s.repos.Booking.CreateIfAvailable(ctx, b))
	require.NoError(t, s.repos.Booking.UpdateStatus(ctx, b.ID, entity.BookingStatusPending, entity.BookingStatusCancelled))

	assert.ErrorIs(t, courts.Delete(ctx, s.court.ID), domain.ErrCourtInUse)
	kept, err := courts.FindByID(ctx, s.court.ID)
	require.NoError(t, err)
	assert.NotNil(t, kept)
}
