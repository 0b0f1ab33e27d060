package request

// CreateBookingRequest carries the raw slot fields. Time and date formats,
// operating hours and court number are checked against the court later.
type CreateBookingRequest struct {
	CourtID     string  `json:"court_id" validate:"required,uuid"`
	BookingDate string  `json:"booking_date" validate:"required"`
	StartTime   string  `json:"start_time" validate:"required"`
	EndTime     string  `json:"end_time" validate:"required"`
	CourtNumber int     `json:"court_number"`
	Notes       *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
