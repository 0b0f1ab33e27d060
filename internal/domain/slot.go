package domain

import (
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Window is a half-open interval [Start, End) within one day.
type Window struct {
	Start TimeOfDay
	End   TimeOfDay
}

// ParseWindow parses both bounds of a window without checking their order.
func ParseWindow(start, end string) (Window, error) {
	s, err := ParseTimeOfDay(start)
	if err != nil {
		return Window{}, err
	}
	e, err := ParseTimeOfDay(end)
	if err != nil {
		return Window{}, err
	}
	return Window{Start: s, End: e}, nil
}

// Overlaps reports whether w and o share any minute. Windows that only touch
// (one ends at 10:00, the other starts at 10:00) do not overlap.
func (w Window) Overlaps(o Window) bool {
	return w.Start < o.End && w.End > o.Start
}

func (w Window) Duration() time.Duration {
	return time.Duration(w.End-w.Start) * time.Minute
}

func (w Window) String() string {
	return w.Start.String() + "-" + w.End.String()
}

// SlotKey identifies one physical court on one day: the unit of contention
// for booking creation.
type SlotKey struct {
	CourtID     uuid.UUID
	Date        string
	CourtNumber int
}

func NewSlotKey(courtID uuid.UUID, date time.Time, courtNumber int) SlotKey {
	return SlotKey{CourtID: courtID, Date: FormatDate(date), CourtNumber: courtNumber}
}

func (k SlotKey) String() string {
	return fmt.Sprintf("%s/%s/%d", k.CourtID, k.Date, k.CourtNumber)
}

// LockID folds the key into a signed 64-bit value usable as a Postgres
// advisory lock identifier.
func (k SlotKey) LockID() int64 {
	h := fnv.New64a()
	h.Write([]byte(k.String()))
	return int64(h.Sum64())
}

// SlotLocks is a set of mutexes keyed by SlotKey. Idle entries are dropped
// so the set only grows with the number of slots currently being written.
type SlotLocks struct {
	mu    sync.Mutex
	locks map[SlotKey]*slotLock
}

type slotLock struct {
	mu   sync.Mutex
	refs int
}

func NewSlotLocks() *SlotLocks {
	return &SlotLocks{locks: make(map[SlotKey]*slotLock)}
}

// Lock blocks until the caller holds key and returns the function that releases it.
func (l *SlotLocks) Lock(key SlotKey) (unlock func()) {
	l.mu.Lock()
	sl, ok := l.locks[key]
	if !ok {
		sl = &slotLock{}
		l.locks[key] = sl
	}
	sl.refs++
	l.mu.Unlock()

	sl.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			sl.mu.Unlock()

			l.mu.Lock()
			sl.refs--
			if sl.refs == 0 {
				delete(l.locks, key)
			}
			l.mu.Unlock()
		})
	}
}

// Len reports how many keys are held or awaited.
func (l *SlotLocks) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
