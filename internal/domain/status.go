package domain

import (
	"fmt"
	"strings"

	"court-booking/internal/data/entity"
)

// Event is something that moves a booking between statuses.
type Event string

const (
	EventReset    Event = "reset"
	EventConfirm  Event = "confirm"
	EventCancel   Event = "cancel"
	EventComplete Event = "complete"
)

type transitionKey struct {
	from  entity.BookingStatus
	event Event
}

type transitionRule struct {
	to     entity.BookingStatus
	reject error
}

const (
	pending   = entity.BookingStatusPending
	confirmed = entity.BookingStatusConfirmed
	cancelled = entity.BookingStatusCancelled
	completed = entity.BookingStatusCompleted
)

// transitions is the full status graph. The only rejected move is cancelling
// a completed booking; owners and admins may otherwise set any status.
var transitions = map[transitionKey]transitionRule{
	{pending, EventReset}:    {to: pending},
	{pending, EventConfirm}:  {to: confirmed},
	{pending, EventCancel}:   {to: cancelled},
	{pending, EventComplete}: {to: completed},

	{confirmed, EventReset}:    {to: pending},
	{confirmed, EventConfirm}:  {to: confirmed},
	{confirmed, EventCancel}:   {to: cancelled},
	{confirmed, EventComplete}: {to: completed},

	{cancelled, EventReset}:    {to: pending},
	{cancelled, EventConfirm}:  {to: confirmed},
	{cancelled, EventCancel}:   {to: cancelled},
	{cancelled, EventComplete}: {to: completed},

	{completed, EventReset}:    {to: pending},
	{completed, EventConfirm}:  {to: confirmed},
	{completed, EventCancel}:   {reject: ErrAlreadyCompleted},
	{completed, EventComplete}: {to: completed},
}

// Transition applies ev to a booking currently in from.
func Transition(from entity.BookingStatus, ev Event) (entity.BookingStatus, error) {
	rule, ok := transitions[transitionKey{from: from, event: ev}]
	if !ok {
		return "", fmt.Errorf("%w: no transition from %s on %s", ErrInvalidStatus, from, ev)
	}
	if rule.reject != nil {
		return from, rule.reject
	}
	return rule.to, nil
}

// EventFor returns the event that moves a booking to target.
func EventFor(target entity.BookingStatus) (Event, error) {
	switch target {
	case pending:
		return EventReset, nil
	case confirmed:
		return EventConfirm, nil
	case cancelled:
		return EventCancel, nil
	case completed:
		return EventComplete, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, target)
}

// ParseBookingStatus accepts a status name in any letter case.
func ParseBookingStatus(s string) (entity.BookingStatus, error) {
	status := entity.BookingStatus(strings.ToLower(strings.TrimSpace(s)))
	if _, err := EventFor(status); err != nil {
		return "", err
	}
	return status, nil
}

// Occupies reports whether a booking in status holds its slot.
func Occupies(status entity.BookingStatus) bool {
	return status != cancelled
}

// ParseCourtStatus accepts a court status name in any letter case.
func ParseCourtStatus(s string) (entity.CourtStatus, error) {
	status := entity.CourtStatus(strings.ToLower(strings.TrimSpace(s)))
	switch status {
	case entity.CourtStatusActive, entity.CourtStatusInactive, entity.CourtStatusMaintenance:
		return status, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}
