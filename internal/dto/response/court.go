package response

import (
	"time"

	"court-booking/internal/data/entity"
)

type CourtResponse struct {
	ID             string             `json:"id"`
	OwnerID        string             `json:"owner_id"`
	Name           string             `json:"name"`
	Address        string             `json:"address"`
	Description    *string            `json:"description,omitempty"`
	PricePerHour   string             `json:"price_per_hour"`
	NumberOfCourts int                `json:"number_of_courts"`
	Facilities     []string           `json:"facilities"`
	Images         []string           `json:"images"`
	OpenTime       string             `json:"open_time"`
	CloseTime      string             `json:"close_time"`
	Status         entity.CourtStatus `json:"status"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

func CourtToResponse(court *entity.Court) CourtResponse {
	return CourtResponse{
		ID:             court.ID.String(),
		OwnerID:        court.OwnerID.String(),
		Name:           court.Name,
		Address:        court.Address,
		Description:    court.Description,
		PricePerHour:   court.PricePerHour.StringFixed(2),
		NumberOfCourts: court.NumberOfCourts,
		Facilities:     emptyIfNil(court.Facilities),
		Images:         emptyIfNil(court.Images),
		OpenTime:       court.OpenTime,
		CloseTime:      court.CloseTime,
		Status:         court.Status,
		CreatedAt:      court.CreatedAt,
		UpdatedAt:      court.UpdatedAt,
	}
}

func CourtsToResponse(courts []*entity.Court) []CourtResponse {
	out := make([]CourtResponse, 0, len(courts))
	for _, c := range courts {
		out = append(out, CourtToResponse(c))
	}
	return out
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
