package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrBookingNotFound = fmt.Errorf("booking %w", ErrNotFound)
	ErrCourtNotFound   = fmt.Errorf("court %w", ErrNotFound)
	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)
)

// Client input errors.
var (
	ErrValidation            = errors.New("validation failed")
	ErrMalformedTime         = errors.New("time must use HH:mm 24-hour format")
	ErrMalformedDate         = errors.New("date must use YYYY-MM-DD format")
	ErrInvalidTimeRange      = errors.New("start time must be before end time")
	ErrOutsideOperatingHours = errors.New("booking time is outside the court's operating hours")
	ErrInvalidCourtNumber    = errors.New("invalid court number")
	ErrPastDate              = errors.New("cannot book a date in the past")
	ErrInvalidStatus         = errors.New("invalid status")
	ErrInvalidOpeningHours   = errors.New("open time must be before close time")
)

var (
	ErrSlotUnavailable  = errors.New("court is already booked for this time slot")
	ErrAlreadyCompleted = errors.New("cannot cancel a completed booking")
	// ErrStatusChanged means the booking moved to another status between
	// being read and being written.
	ErrStatusChanged    = errors.New("booking status was changed concurrently")
	ErrCourtInUse       = errors.New("court has bookings and cannot be deleted")
)

var (
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account is deactivated")
	ErrEmailTaken         = errors.New("email already registered")
	ErrPhoneTaken         = errors.New("phone number already registered")
)
