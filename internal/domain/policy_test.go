package domain

import (
	"testing"

	"court-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPolicy(t *testing.T) {
	requester := Actor{ID: uuid.New(), Role: entity.RoleUser}
	owner := Actor{ID: uuid.New(), Role: entity.RoleOwner}
	admin := Actor{ID: uuid.New(), Role: entity.RoleAdmin}
	stranger := Actor{ID: uuid.New(), Role: entity.RoleUser}
	otherOwner := Actor{ID: uuid.New(), Role: entity.RoleOwner}

	parties := BookingParties{RequesterID: requester.ID, CourtOwnerID: owner.ID}

	tests := []struct {
		name                      string
		actor                     Actor
		view, cancel, updateState bool
	}{
		{"requester", requester, true, true, false},
		{"court owner", owner, true, true, true},
		{"admin", admin, true, true, true},
		{"stranger", stranger, false, false, false},
		{"owner of another court", otherOwner, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.view, CanView(parties, tt.actor))
			assert.Equal(t, tt.cancel, CanCancel(parties, tt.actor))
			assert.Equal(t, tt.updateState, CanUpdateStatus(parties, tt.actor))
		})
	}
}

func TestPolicy_CourtManagement(t *testing.T) {
	ownerID := uuid.New()

	assert.True(t, CanManageCourt(ownerID, Actor{ID: ownerID, Role: entity.RoleOwner}))
	assert.True(t, CanManageCourt(ownerID, Actor{ID: uuid.New(), Role: entity.RoleAdmin}))
	assert.False(t, CanManageCourt(ownerID, Actor{ID: uuid.New(), Role: entity.RoleOwner}))

	assert.True(t, CanOwnCourts(Actor{Role: entity.RoleOwner}))
	assert.True(t, CanOwnCourts(Actor{Role: entity.RoleAdmin}))
	assert.False(t, CanOwnCourts(Actor{Role: entity.RoleUser}))

	assert.True(t, CanListAllBookings(Actor{Role: entity.RoleAdmin}))
	assert.False(t, CanListAllBookings(Actor{Role: entity.RoleOwner}))
	assert.True(t, CanListUsers(Actor{Role: entity.RoleAdmin}))
	assert.False(t, CanListUsers(Actor{Role: entity.RoleOwner}))
	assert.False(t, CanListUsers(Actor{Role: entity.RoleUser}))
}

func TestPartiesOf(t *testing.T) {
	b := &entity.BookingDetail{
		Booking:      entity.Booking{UserID: uuid.New()},
		CourtOwnerID: uuid.New(),
	}

	p := PartiesOf(b)

	assert.Equal(t, b.UserID, p.RequesterID)
	assert.Equal(t, b.CourtOwnerID, p.CourtOwnerID)
}
