package response

import (
	"time"

	"court-booking/internal/data/entity"
)

type BookingResponse struct {
	ID           string               `json:"id"`
	UserID       string               `json:"user_id"`
	UserFullName string               `json:"user_full_name"`
	UserPhone    *string              `json:"user_phone,omitempty"`
	CourtID      string               `json:"court_id"`
	CourtName    string               `json:"court_name"`
	CourtAddress string               `json:"court_address"`
	BookingDate  string               `json:"booking_date"`
	StartTime    string               `json:"start_time"`
	EndTime      string               `json:"end_time"`
	CourtNumber  int                  `json:"court_number"`
	TotalPrice   string               `json:"total_price"`
	Notes        *string              `json:"notes,omitempty"`
	Status       entity.BookingStatus `json:"status"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

func BookingToResponse(b *entity.BookingDetail) BookingResponse {
	return BookingResponse{
		ID:           b.ID.String(),
		UserID:       b.UserID.String(),
		UserFullName: b.UserFullName,
		UserPhone:    b.UserPhone,
		CourtID:      b.CourtID.String(),
		CourtName:    b.CourtName,
		CourtAddress: b.CourtAddress,
		BookingDate:  b.BookingDate.Format("2006-01-02"),
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
		CourtNumber:  b.CourtNumber,
		TotalPrice:   b.TotalPrice.StringFixed(2),
		Notes:        b.Notes,
		Status:       b.Status,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func BookingsToResponse(bookings []*entity.BookingDetail) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, BookingToResponse(b))
	}
	return out
}
