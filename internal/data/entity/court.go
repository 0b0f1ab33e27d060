package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CourtStatus string

const (
	CourtStatusActive      CourtStatus = "active"
	CourtStatusInactive    CourtStatus = "inactive"
	CourtStatusMaintenance CourtStatus = "maintenance"
)

// Court is a facility holding NumberOfCourts physically distinct, numbered
// courts that share one price and one opening window.
type Court struct {
	Base
	OwnerID        uuid.UUID       `db:"owner_id"`
	Name           string          `db:"name"`
	Address        string          `db:"address"`
	Description    *string         `db:"description"`
	PricePerHour   decimal.Decimal `db:"price_per_hour"`
	NumberOfCourts int             `db:"number_of_courts"`
	Facilities     []string        `db:"facilities"`
	Images         []string        `db:"images"`
	OpenTime       string          `db:"open_time"`  // HH:mm
	CloseTime      string          `db:"close_time"` // HH:mm
	Status         CourtStatus     `db:"status"`
}
