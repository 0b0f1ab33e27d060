package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"court-booking/internal/data/entity"
	"court-booking/internal/domain"
	"court-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	// CreateIfAvailable inserts booking unless a non-cancelled booking on the
	// same court, date and court number overlaps it. The check and the insert
	// commit together or not at all.
	CreateIfAvailable(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.BookingDetail, error)

	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.BookingDetail, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*entity.BookingDetail, error)
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
	ListByCourt(ctx context.Context, courtID uuid.UUID) ([]*entity.BookingDetail, error)
	ListAll(ctx context.Context, limit, offset int) ([]*entity.BookingDetail, error)
	CountAll(ctx context.Context) (int64, error)

	// UpdateStatus moves a booking from one status to another. It returns
	// ErrStatusChanged when the stored status is no longer from.
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, from, to entity.BookingStatus) error
	// ReactivateIfAvailable moves a booking out of booking.Status into status
	// after checking its window is still free, under the same guarantees as
	// CreateIfAvailable.
	ReactivateIfAvailable(ctx context.Context, booking *entity.Booking, status entity.BookingStatus) error
	// CompleteFinished marks confirmed bookings whose end lies before now
	// (wall clock in the service timezone) as completed.
	CompleteFinished(ctx context.Context, now time.Time) (int64, error)
}

// rowQuerier is satisfied by both the pool and an open transaction.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingDetailSelect = `
	SELECT b.id, b.user_id, b.court_id, b.booking_date,
	       to_char(b.start_time, 'HH24:MI'), to_char(b.end_time, 'HH24:MI'),
	       b.court_number, b.total_price, b.notes, b.status, b.created_at, b.updated_at,
	       u.full_name, u.phone, c.name, c.address, c.owner_id
	FROM bookings b
	JOIN users u ON u.id = b.user_id
	JOIN courts c ON c.id = b.court_id`

func scanBookingDetail(row pgx.Row) (*entity.BookingDetail, error) {
	var b entity.BookingDetail
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.CourtID,
		&b.BookingDate,
		&b.StartTime,
		&b.EndTime,
		&b.CourtNumber,
		&b.TotalPrice,
		&b.Notes,
		&b.Status,
		&b.CreatedAt,
		&b.UpdatedAt,
		&b.UserFullName,
		&b.UserPhone,
		&b.CourtName,
		&b.CourtAddress,
		&b.CourtOwnerID,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// claimSlot takes the transaction-scoped advisory lock for the booking's
// slot and reports ErrSlotUnavailable if another live booking overlaps it.
func (r *bookingRepository) claimSlot(ctx context.Context, tx pgx.Tx, booking *entity.Booking) error {
	slot := domain.NewSlotKey(booking.CourtID, booking.BookingDate, booking.CourtNumber)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, slot.LockID()); err != nil {
		return fmt.Errorf("lock slot %s: %w", slot, err)
	}

	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE court_id = $1
			  AND booking_date = $2
			  AND court_number = $3
			  AND status <> 'cancelled'
			  AND start_time < $5::time
			  AND end_time > $4::time
			  AND id <> $6
		)
	`

	var taken bool
	err := tx.QueryRow(ctx, query,
		booking.CourtID,
		booking.BookingDate,
		booking.CourtNumber,
		booking.StartTime,
		booking.EndTime,
		booking.ID,
	).Scan(&taken)
	if err != nil {
		return fmt.Errorf("check slot %s: %w", slot, err)
	}

	if taken {
		r.log.Warn("Slot already taken",
			zap.String("slot", slot.String()),
			zap.String("start_time", booking.StartTime),
			zap.String("end_time", booking.EndTime),
		)
		return domain.ErrSlotUnavailable
	}

	return nil
}

func (r *bookingRepository) CreateIfAvailable(ctx context.Context, booking *entity.Booking) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := r.claimSlot(ctx, tx, booking); err != nil {
			return err
		}

		query := `
			INSERT INTO bookings (id, user_id, court_id, booking_date, start_time, end_time,
			                      court_number, total_price, notes, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5::time, $6::time, $7, $8, $9, $10, $11, $12)
		`

		_, err := tx.Exec(ctx, query,
			booking.ID,
			booking.UserID,
			booking.CourtID,
			booking.BookingDate,
			booking.StartTime,
			booking.EndTime,
			booking.CourtNumber,
			booking.TotalPrice,
			booking.Notes,
			booking.Status,
			booking.CreatedAt,
			booking.UpdatedAt,
		)
		return err
	})

	return r.slotError(err, "create booking", booking.ID)
}

func (r *bookingRepository) ReactivateIfAvailable(ctx context.Context, booking *entity.Booking, status entity.BookingStatus) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := r.claimSlot(ctx, tx, booking); err != nil {
			return err
		}

		return r.compareAndSetStatus(ctx, tx, booking.ID, booking.Status, status)
	})

	return r.slotError(err, "reactivate booking", booking.ID)
}

// slotError normalises errors from a slot-claiming or status-changing write.
// Losing a race to a concurrent writer surfaces as ErrSlotUnavailable.
func (r *bookingRepository) slotError(err error, op string, bookingID uuid.UUID) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrSlotUnavailable),
		errors.Is(err, domain.ErrStatusChanged),
		errors.Is(err, domain.ErrBookingNotFound):
		return err
	case isSlotContention(err):
		r.log.Warn("Slot claimed by concurrent writer",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return domain.ErrSlotUnavailable
	}

	r.log.Error("Failed to "+op,
		zap.Error(err),
		zap.String("booking_id", bookingID.String()),
	)
	return fmt.Errorf("%s %s: %w", op, bookingID, err)
}

// compareAndSetStatus writes to only while the row still holds from, so a
// decision taken on a stale read never lands.
func (r *bookingRepository) compareAndSetStatus(ctx context.Context, q rowQuerier, bookingID uuid.UUID, from, to entity.BookingStatus) error {
	query := `
		WITH updated AS (
			UPDATE bookings
			SET status = $3, updated_at = NOW()
			WHERE id = $1 AND status = $2
			RETURNING 1
		)
		SELECT EXISTS (SELECT 1 FROM updated),
		       EXISTS (SELECT 1 FROM bookings WHERE id = $1)
	`

	var updated, exists bool
	if err := q.QueryRow(ctx, query, bookingID, from, to).Scan(&updated, &exists); err != nil {
		return err
	}

	switch {
	case updated:
		return nil
	case !exists:
		return domain.ErrBookingNotFound
	}

	r.log.Info("Booking status changed concurrently",
		zap.String("booking_id", bookingID.String()),
		zap.String("expected", string(from)),
	)
	return fmt.Errorf("booking %s is no longer %s: %w", bookingID, from, domain.ErrStatusChanged)
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.BookingDetail, error) {
	booking, err := scanBookingDetail(r.db.QueryRow(ctx, bookingDetailSelect+` WHERE b.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id, err)
	}

	return booking, nil
}

func (r *bookingRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.BookingDetail, error) {
	query := bookingDetailSelect + `
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3`
	return r.list(ctx, "user", query, userID, limit, offset)
}

func (r *bookingRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	return r.count(ctx, "user", `SELECT COUNT(*) FROM bookings WHERE user_id = $1`, userID)
}

func (r *bookingRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*entity.BookingDetail, error) {
	query := bookingDetailSelect + `
		WHERE c.owner_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3`
	return r.list(ctx, "owner", query, ownerID, limit, offset)
}

func (r *bookingRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM bookings b
		JOIN courts c ON c.id = b.court_id
		WHERE c.owner_id = $1`
	return r.count(ctx, "owner", query, ownerID)
}

func (r *bookingRepository) ListByCourt(ctx context.Context, courtID uuid.UUID) ([]*entity.BookingDetail, error) {
	query := bookingDetailSelect + `
		WHERE b.court_id = $1
		ORDER BY b.created_at DESC`
	return r.list(ctx, "court", query, courtID)
}

func (r *bookingRepository) ListAll(ctx context.Context, limit, offset int) ([]*entity.BookingDetail, error) {
	query := bookingDetailSelect + `
		ORDER BY b.created_at DESC
		LIMIT $1 OFFSET $2`
	return r.list(ctx, "all", query, limit, offset)
}

func (r *bookingRepository) CountAll(ctx context.Context) (int64, error) {
	return r.count(ctx, "all", `SELECT COUNT(*) FROM bookings`)
}

func (r *bookingRepository) list(ctx context.Context, scope, query string, args ...any) ([]*entity.BookingDetail, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list bookings",
			zap.Error(err),
			zap.String("scope", scope),
		)
		return nil, fmt.Errorf("list %s bookings: %w", scope, err)
	}
	defer rows.Close()

	var bookings []*entity.BookingDetail
	for rows.Next() {
		booking, err := scanBookingDetail(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) count(ctx context.Context, scope, query string, args ...any) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings",
			zap.Error(err),
			zap.String("scope", scope),
		)
		return 0, fmt.Errorf("count %s bookings: %w", scope, err)
	}
	return count, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, from, to entity.BookingStatus) error {
	err := r.compareAndSetStatus(ctx, r.db, bookingID, from, to)
	return r.slotError(err, "update booking status", bookingID)
}

func (r *bookingRepository) CompleteFinished(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE bookings
		SET status = 'completed', updated_at = NOW()
		WHERE status = 'confirmed'
		  AND (booking_date < $1::date
		       OR (booking_date = $1::date AND end_time <= $2::time))
	`

	result, err := r.db.Exec(ctx, query, domain.FormatDate(now), now.Format("15:04"))
	if err != nil {
		r.log.Error("Failed to complete finished bookings", zap.Error(err))
		return 0, fmt.Errorf("complete finished bookings: %w", err)
	}

	return result.RowsAffected(), nil
}
