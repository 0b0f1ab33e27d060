package domain

import (
	"court-booking/internal/data/entity"

	"github.com/google/uuid"
)

// Actor is the identity performing a call.
type Actor struct {
	ID   uuid.UUID
	Role entity.UserRole
}

func (a Actor) IsAdmin() bool { return a.Role == entity.RoleAdmin }

// BookingParties names the two users attached to a booking.
type BookingParties struct {
	RequesterID  uuid.UUID
	CourtOwnerID uuid.UUID
}

func PartiesOf(b *entity.BookingDetail) BookingParties {
	return BookingParties{RequesterID: b.UserID, CourtOwnerID: b.CourtOwnerID}
}

// CanView admits admins, the requester and the court's owner.
func CanView(p BookingParties, a Actor) bool {
	return a.IsAdmin() || a.ID == p.RequesterID || a.ID == p.CourtOwnerID
}

func CanCancel(p BookingParties, a Actor) bool {
	return CanView(p, a)
}

// CanUpdateStatus admits admins and the court's owner. A requester can only cancel.
func CanUpdateStatus(p BookingParties, a Actor) bool {
	return a.IsAdmin() || a.ID == p.CourtOwnerID
}

// CanManageCourt admits admins and the court's owner. It gates court edits
// and the full booking list of a court.
func CanManageCourt(ownerID uuid.UUID, a Actor) bool {
	return a.IsAdmin() || a.ID == ownerID
}

// CanOwnCourts admits the roles that may register courts and list the
// bookings made on them.
func CanOwnCourts(a Actor) bool {
	return a.IsAdmin() || a.Role == entity.RoleOwner
}

func CanListAllBookings(a Actor) bool {
	return a.IsAdmin()
}

func CanListUsers(a Actor) bool {
	return a.IsAdmin()
}
