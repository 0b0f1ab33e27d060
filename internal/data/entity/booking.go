package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

type Booking struct {
	Base
	UserID      uuid.UUID       `db:"user_id"`
	CourtID     uuid.UUID       `db:"court_id"`
	BookingDate time.Time       `db:"booking_date"`
	StartTime   string          `db:"start_time"` // HH:mm
	EndTime     string          `db:"end_time"`   // HH:mm
	CourtNumber int             `db:"court_number"`
	TotalPrice  decimal.Decimal `db:"total_price"`
	Notes       *string         `db:"notes"`
	Status      BookingStatus   `db:"status"`
}

// BookingDetail is a booking joined with the requester and court fields
// needed for authorization and display.
type BookingDetail struct {
	Booking
	UserFullName string    `db:"user_full_name"`
	UserPhone    *string   `db:"user_phone"`
	CourtName    string    `db:"court_name"`
	CourtAddress string    `db:"court_address"`
	CourtOwnerID uuid.UUID `db:"court_owner_id"`
}
