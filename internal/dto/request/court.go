package request

import "github.com/shopspring/decimal"

type CreateCourtRequest struct {
	Name           string          `json:"name" validate:"required,max=200"`
	Address        string          `json:"address" validate:"required"`
	Description    *string         `json:"description,omitempty"`
	PricePerHour   decimal.Decimal `json:"price_per_hour" validate:"nonnegdecimal"`
	NumberOfCourts int             `json:"number_of_courts" validate:"required,min=1"`
	Facilities     []string        `json:"facilities,omitempty" validate:"omitempty,dive,required"`
	Images         []string        `json:"images,omitempty" validate:"omitempty,dive,required"`
	OpenTime       string          `json:"open_time" validate:"required,hhmm"`
	CloseTime      string          `json:"close_time" validate:"required,hhmm"`
}

// UpdateCourtRequest replaces every editable field of a court.
type UpdateCourtRequest struct {
	CreateCourtRequest
}

type UpdateCourtStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type CourtListRequest struct {
	PaginatedRequest
	Name     *string
	Address  *string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}
