package usecase

import (
	"context"
	"time"

	"court-booking/internal/data/entity"
	"court-booking/internal/domain"

	"go.uber.org/zap"
)

// Routing keys of booking lifecycle events.
const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
	EventBookingCancelled     = "booking.cancelled"
)

const publishTimeout = 5 * time.Second

// EventPublisher delivers JSON events to interested consumers.
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishJSON(context.Context, string, any) error { return nil }

type BookingEvent struct {
	BookingID      string               `json:"booking_id"`
	UserID         string               `json:"user_id"`
	CourtID        string               `json:"court_id"`
	CourtOwnerID   string               `json:"court_owner_id"`
	BookingDate    string               `json:"booking_date"`
	StartTime      string               `json:"start_time"`
	EndTime        string               `json:"end_time"`
	CourtNumber    int                  `json:"court_number"`
	TotalPrice     string               `json:"total_price"`
	Status         entity.BookingStatus `json:"status"`
	PreviousStatus entity.BookingStatus `json:"previous_status,omitempty"`
	ActorID        string               `json:"actor_id"`
	OccurredAt     time.Time            `json:"occurred_at"`
}

func newBookingEvent(b *entity.BookingDetail, previous entity.BookingStatus, actor domain.Actor) BookingEvent {
	return BookingEvent{
		BookingID:      b.ID.String(),
		UserID:         b.UserID.String(),
		CourtID:        b.CourtID.String(),
		CourtOwnerID:   b.CourtOwnerID.String(),
		BookingDate:    domain.FormatDate(b.BookingDate),
		StartTime:      b.StartTime,
		EndTime:        b.EndTime,
		CourtNumber:    b.CourtNumber,
		TotalPrice:     b.TotalPrice.StringFixed(2),
		Status:         b.Status,
		PreviousStatus: previous,
		ActorID:        actor.ID.String(),
		OccurredAt:     time.Now().UTC(),
	}
}

// publish sends an event after the change is committed. Failures are logged
// and never reach the caller.
func publish(ctx context.Context, events EventPublisher, log *zap.Logger, key string, ev BookingEvent) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := events.PublishJSON(ctx, key, ev); err != nil {
		log.Warn("Failed to publish booking event",
			zap.Error(err),
			zap.String("event", key),
			zap.String("booking_id", ev.BookingID),
		)
	}
}
