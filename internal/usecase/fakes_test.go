package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"court-booking/internal/data/entity"
	"court-booking/internal/data/repository"
	"court-booking/internal/domain"

	"github.com/google/uuid"
)

// memCourts is an in-memory CourtRepository. Courts listed in booked refuse
// deletion.
type memCourts struct {
	mu     sync.Mutex
	courts map[uuid.UUID]*entity.Court
	booked map[uuid.UUID]bool
}

func newMemCourts(courts ...*entity.Court) *memCourts {
	m := &memCourts{courts: make(map[uuid.UUID]*entity.Court), booked: make(map[uuid.UUID]bool)}
	for _, c := range courts {
		m.courts[c.ID] = c
	}
	return m
}

func (m *memCourts) Create(_ context.Context, court *entity.Court) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *court
	m.courts[court.ID] = &c
	return nil
}

func (m *memCourts) FindByID(_ context.Context, id uuid.UUID) (*entity.Court, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.courts[id]
	if !ok {
		return nil, nil
	}
	out := *c
	return &out, nil
}

func (m *memCourts) FindAll(_ context.Context, filter repository.CourtFilter, limit, offset int) ([]*entity.Court, error) {
	all := m.matching(filter)
	if offset >= len(all) {
		return []*entity.Court{}, nil
	}
	end := min(offset+limit, len(all))
	return all[offset:end], nil
}

func (m *memCourts) CountAll(_ context.Context, filter repository.CourtFilter) (int64, error) {
	return int64(len(m.matching(filter))), nil
}

func (m *memCourts) matching(filter repository.CourtFilter) []*entity.Court {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Court
	for _, c := range m.courts {
		if filter.Status != nil && c.Status != *filter.Status {
			continue
		}
		if filter.MinPrice != nil && c.PricePerHour.LessThan(*filter.MinPrice) {
			continue
		}
		if filter.MaxPrice != nil && c.PricePerHour.GreaterThan(*filter.MaxPrice) {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (m *memCourts) FindByOwner(_ context.Context, ownerID uuid.UUID) ([]*entity.Court, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Court
	for _, c := range m.courts {
		if c.OwnerID == ownerID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memCourts) Update(_ context.Context, court *entity.Court) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.courts[court.ID]; !ok {
		return domain.ErrCourtNotFound
	}
	c := *court
	m.courts[court.ID] = &c
	return nil
}

func (m *memCourts) UpdateStatus(_ context.Context, id uuid.UUID, status entity.CourtStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.courts[id]
	if !ok {
		return domain.ErrCourtNotFound
	}
	c.Status = status
	return nil
}

func (m *memCourts) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.courts[id]; !ok {
		return domain.ErrCourtNotFound
	}
	if m.booked[id] {
		return domain.ErrCourtInUse
	}
	delete(m.courts, id)
	return nil
}

// memBookings is an in-memory BookingRepository. Its check-then-insert is
// deliberately split into two critical sections so that only the caller's
// slot lock keeps concurrent requests apart.
type memBookings struct {
	mu       sync.Mutex
	courts   *memCourts
	bookings map[uuid.UUID]*entity.Booking
}

func newMemBookings(courts *memCourts) *memBookings {
	return &memBookings{courts: courts, bookings: make(map[uuid.UUID]*entity.Booking)}
}

func (m *memBookings) conflicts(b *entity.Booking) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	want, _ := domain.ParseWindow(b.StartTime, b.EndTime)
	for _, other := range m.bookings {
		if other.ID == b.ID || other.Status == entity.BookingStatusCancelled {
			continue
		}
		if other.CourtID != b.CourtID || other.CourtNumber != b.CourtNumber ||
			!other.BookingDate.Equal(b.BookingDate) {
			continue
		}
		w, _ := domain.ParseWindow(other.StartTime, other.EndTime)
		if w.Overlaps(want) {
			return true
		}
	}
	return false
}

func (m *memBookings) CreateIfAvailable(_ context.Context, booking *entity.Booking) error {
	if m.conflicts(booking) {
		return domain.ErrSlotUnavailable
	}
	time.Sleep(time.Millisecond)

	m.mu.Lock()
	defer m.mu.Unlock()
	b := *booking
	m.bookings[booking.ID] = &b
	return nil
}

func (m *memBookings) ReactivateIfAvailable(_ context.Context, booking *entity.Booking, status entity.BookingStatus) error {
	if m.conflicts(booking) {
		return domain.ErrSlotUnavailable
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[booking.ID]
	if !ok {
		return domain.ErrBookingNotFound
	}
	if b.Status != booking.Status {
		return domain.ErrStatusChanged
	}
	b.Status = status
	return nil
}

func (m *memBookings) detail(b *entity.Booking) *entity.BookingDetail {
	d := &entity.BookingDetail{Booking: *b}
	if c, _ := m.courts.FindByID(context.Background(), b.CourtID); c != nil {
		d.CourtName = c.Name
		d.CourtAddress = c.Address
		d.CourtOwnerID = c.OwnerID
	}
	return d
}

func (m *memBookings) FindByID(_ context.Context, id uuid.UUID) (*entity.BookingDetail, error) {
	m.mu.Lock()
	b, ok := m.bookings[id]
	var cp entity.Booking
	if ok {
		cp = *b
	}
	m.mu.Unlock()
	if !ok {
		return nil, nil
	}
	return m.detail(&cp), nil
}

func (m *memBookings) list(keep func(*entity.BookingDetail) bool) []*entity.BookingDetail {
	m.mu.Lock()
	all := make([]entity.Booking, 0, len(m.bookings))
	for _, b := range m.bookings {
		all = append(all, *b)
	}
	m.mu.Unlock()

	out := []*entity.BookingDetail{}
	for i := range all {
		if d := m.detail(&all[i]); keep(d) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out
}

func page(all []*entity.BookingDetail, limit, offset int) []*entity.BookingDetail {
	if offset >= len(all) {
		return []*entity.BookingDetail{}
	}
	return all[offset:min(offset+limit, len(all))]
}

func (m *memBookings) ListByUser(_ context.Context, userID uuid.UUID, limit, offset int) ([]*entity.BookingDetail, error) {
	return page(m.list(func(d *entity.BookingDetail) bool { return d.UserID == userID }), limit, offset), nil
}

func (m *memBookings) CountByUser(_ context.Context, userID uuid.UUID) (int64, error) {
	return int64(len(m.list(func(d *entity.BookingDetail) bool { return d.UserID == userID }))), nil
}

func (m *memBookings) ListByOwner(_ context.Context, ownerID uuid.UUID, limit, offset int) ([]*entity.BookingDetail, error) {
	return page(m.list(func(d *entity.BookingDetail) bool { return d.CourtOwnerID == ownerID }), limit, offset), nil
}

func (m *memBookings) CountByOwner(_ context.Context, ownerID uuid.UUID) (int64, error) {
	return int64(len(m.list(func(d *entity.BookingDetail) bool { return d.CourtOwnerID == ownerID }))), nil
}

func (m *memBookings) ListByCourt(_ context.Context, courtID uuid.UUID) ([]*entity.BookingDetail, error) {
	return m.list(func(d *entity.BookingDetail) bool { return d.CourtID == courtID }), nil
}

func (m *memBookings) ListAll(_ context.Context, limit, offset int) ([]*entity.BookingDetail, error) {
	return page(m.list(func(*entity.BookingDetail) bool { return true }), limit, offset), nil
}

func (m *memBookings) CountAll(_ context.Context) (int64, error) {
	return int64(len(m.list(func(*entity.BookingDetail) bool { return true }))), nil
}

func (m *memBookings) UpdateStatus(_ context.Context, id uuid.UUID, from, to entity.BookingStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return domain.ErrBookingNotFound
	}
	if b.Status != from {
		return domain.ErrStatusChanged
	}
	b.Status = to
	return nil
}

func (m *memBookings) CompleteFinished(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	today := domain.DateOf(now)
	clock := domain.TimeOfDay(now.Hour()*60 + now.Minute())

	var n int64
	for _, b := range m.bookings {
		if b.Status != entity.BookingStatusConfirmed {
			continue
		}
		end := domain.MustParseTimeOfDay(b.EndTime)
		if b.BookingDate.Before(today) || (b.BookingDate.Equal(today) && end <= clock) {
			b.Status = entity.BookingStatusCompleted
			n++
		}
	}
	return n, nil
}

func (m *memBookings) put(b *entity.Booking) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *b
	m.bookings[b.ID] = &cp
}

func (m *memBookings) status(id uuid.UUID) entity.BookingStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bookings[id].Status
}

// memUsers is an in-memory UserRepository.
type memUsers struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: make(map[uuid.UUID]*entity.User)}
}

func (m *memUsers) Create(_ context.Context, user *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := *user
	m.users[user.ID] = &u
	return nil
}

func (m *memUsers) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return m.first(func(u *entity.User) bool { return u.ID == id }), nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return m.first(func(u *entity.User) bool { return u.Email == email }), nil
}

func (m *memUsers) FindByPhone(_ context.Context, phone string) (*entity.User, error) {
	return m.first(func(u *entity.User) bool { return u.Phone != nil && *u.Phone == phone }), nil
}

func (m *memUsers) FindAll(_ context.Context, limit, offset int) ([]*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := make([]*entity.User, 0, len(m.users))
	for _, u := range m.users {
		cp := *u
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Email < all[j].Email })
	if offset >= len(all) {
		return []*entity.User{}, nil
	}
	return all[offset:min(offset+limit, len(all))], nil
}

func (m *memUsers) CountAll(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.users)), nil
}

func (m *memUsers) Update(_ context.Context, user *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	u := *user
	m.users[user.ID] = &u
	return nil
}

func (m *memUsers) first(match func(*entity.User) bool) *entity.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if match(u) {
			cp := *u
			return &cp
		}
	}
	return nil
}

// memSessions is an in-memory SessionRepository.
type memSessions struct {
	mu       sync.Mutex
	sessions map[string]*entity.Session
}

func newMemSessions() *memSessions {
	return &memSessions{sessions: make(map[string]*entity.Session)}
}

func (m *memSessions) Create(_ context.Context, session *entity.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := *session
	m.sessions[session.Token.String()] = &s
	return nil
}

func (m *memSessions) FindValidSession(_ context.Context, token string) (*entity.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[token]
	if !ok || !s.IsValid(time.Now()) {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *memSessions) Revoke(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[token]
	if !ok || s.RevokedAt != nil {
		return repository.ErrSessionNotFound
	}
	now := time.Now()
	s.RevokedAt = &now
	return nil
}

func (m *memSessions) CleanExpiredSessions(context.Context, time.Duration) (int64, error) {
	return 0, nil
}

// recordingPublisher keeps every published routing key.
type recordingPublisher struct {
	mu   sync.Mutex
	keys []string
	err  error
}

func (p *recordingPublisher) PublishJSON(_ context.Context, key string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	return p.err
}

func (p *recordingPublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.keys...)
}

var errBrokerDown = errors.New("broker down")
