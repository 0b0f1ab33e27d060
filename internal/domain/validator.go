package domain

import (
	"fmt"
	"time"

	"court-booking/internal/data/entity"

	"github.com/google/uuid"
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads the wall clock.
var SystemClock Clock = systemClock{}

// BookingInput is a reservation request as received from a client.
type BookingInput struct {
	CourtID     uuid.UUID
	BookingDate string // YYYY-MM-DD
	StartTime   string // HH:mm
	EndTime     string // HH:mm
	CourtNumber int
	Notes       *string
}

// ValidatedBooking is a reservation request that passed every check and is
// ready for conflict detection.
type ValidatedBooking struct {
	CourtID     uuid.UUID
	Date        time.Time
	Window      Window
	CourtNumber int
	Notes       *string
}

func (v *ValidatedBooking) Slot() SlotKey {
	return NewSlotKey(v.CourtID, v.Date, v.CourtNumber)
}

// Validator checks reservation requests against a court before any ledger access.
type Validator struct {
	clock Clock
	loc   *time.Location
}

// NewValidator builds a validator whose notion of "today" is taken from clock in loc.
func NewValidator(clock Clock, loc *time.Location) *Validator {
	if clock == nil {
		clock = SystemClock
	}
	if loc == nil {
		loc = time.Local
	}
	return &Validator{clock: clock, loc: loc}
}

// Now is the current wall-clock time in the validator's location.
func (v *Validator) Now() time.Time {
	return v.clock.Now().In(v.loc)
}

// Today is the current calendar date in the validator's location.
func (v *Validator) Today() time.Time {
	return DateOf(v.Now())
}

// Validate checks in against court. Only the calendar date is compared with
// today; a start time that already passed today is accepted.
func (v *Validator) Validate(in BookingInput, court *entity.Court) (*ValidatedBooking, error) {
	if court == nil {
		return nil, ErrCourtNotFound
	}

	date, err := ParseDate(in.BookingDate)
	if err != nil {
		return nil, err
	}

	window, err := ParseWindow(in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}

	hours, err := OpeningHours(court)
	if err != nil {
		return nil, err
	}

	if date.Before(v.Today()) {
		return nil, fmt.Errorf("%w: %s", ErrPastDate, in.BookingDate)
	}

	if window.Start < hours.Start || window.End > hours.End {
		return nil, fmt.Errorf("%w: requested %s, open %s", ErrOutsideOperatingHours, window, hours)
	}

	if window.Start >= window.End {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTimeRange, window)
	}

	if in.CourtNumber < 1 || in.CourtNumber > court.NumberOfCourts {
		return nil, fmt.Errorf("%w: %d, court has %d", ErrInvalidCourtNumber, in.CourtNumber, court.NumberOfCourts)
	}

	return &ValidatedBooking{
		CourtID:     court.ID,
		Date:        date,
		Window:      window,
		CourtNumber: in.CourtNumber,
		Notes:       in.Notes,
	}, nil
}

// OpeningHours parses a court's opening window.
func OpeningHours(court *entity.Court) (Window, error) {
	w, err := ParseWindow(court.OpenTime, court.CloseTime)
	if err != nil {
		return Window{}, fmt.Errorf("court %s opening hours: %w", court.ID, err)
	}
	return w, nil
}

// ValidateOpeningHours checks an opening window supplied for a court.
func ValidateOpeningHours(open, close string) (Window, error) {
	w, err := ParseWindow(open, close)
	if err != nil {
		return Window{}, err
	}
	if w.Start >= w.End {
		return Window{}, fmt.Errorf("%w: %s", ErrInvalidOpeningHours, w)
	}
	return w, nil
}
