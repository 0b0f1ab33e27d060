package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"court-booking/internal/data/entity"
	"court-booking/internal/domain"
	"court-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CourtFilter narrows the public court listing. Nil fields are ignored.
type CourtFilter struct {
	Status   *entity.CourtStatus
	Name     *string
	Address  *string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

type CourtRepository interface {
	Create(ctx context.Context, court *entity.Court) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Court, error)
	FindAll(ctx context.Context, filter CourtFilter, limit, offset int) ([]*entity.Court, error)
	CountAll(ctx context.Context, filter CourtFilter) (int64, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Court, error)
	Update(ctx context.Context, court *entity.Court) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.CourtStatus) error
	// Delete removes a court that has never been booked. Courts with any
	// booking history return ErrCourtInUse.
	Delete(ctx context.Context, id uuid.UUID) error
}

type courtRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCourtRepository(db database.PgxIface, log *zap.Logger) CourtRepository {
	return &courtRepository{
		db:  db,
		log: log.With(zap.String("repository", "court")),
	}
}

// Times are read back as HH:mm so entities never carry seconds.
const courtColumns = `
	id, owner_id, name, address, description, price_per_hour, number_of_courts,
	facilities, images, to_char(open_time, 'HH24:MI'), to_char(close_time, 'HH24:MI'),
	status, created_at, updated_at`

func scanCourt(row pgx.Row) (*entity.Court, error) {
	var court entity.Court
	err := row.Scan(
		&court.ID,
		&court.OwnerID,
		&court.Name,
		&court.Address,
		&court.Description,
		&court.PricePerHour,
		&court.NumberOfCourts,
		&court.Facilities,
		&court.Images,
		&court.OpenTime,
		&court.CloseTime,
		&court.Status,
		&court.CreatedAt,
		&court.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &court, nil
}

func (r *courtRepository) Create(ctx context.Context, court *entity.Court) error {
	query := `
		INSERT INTO courts (id, owner_id, name, address, description, price_per_hour,
		                    number_of_courts, facilities, images, open_time, close_time,
		                    status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::time, $11::time, $12, $13, $14)
	`

	_, err := r.db.Exec(ctx, query,
		court.ID,
		court.OwnerID,
		court.Name,
		court.Address,
		court.Description,
		court.PricePerHour,
		court.NumberOfCourts,
		nonNil(court.Facilities),
		nonNil(court.Images),
		court.OpenTime,
		court.CloseTime,
		court.Status,
		court.CreatedAt,
		court.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create court",
			zap.Error(err),
			zap.String("name", court.Name),
			zap.String("owner_id", court.OwnerID.String()),
		)
		return fmt.Errorf("create court %s: %w", court.Name, err)
	}

	return nil
}

func (r *courtRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Court, error) {
	query := `SELECT ` + courtColumns + ` FROM courts WHERE id = $1`

	court, err := scanCourt(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find court by ID",
			zap.Error(err),
			zap.String("court_id", id.String()),
		)
		return nil, fmt.Errorf("find court by ID %s: %w", id, err)
	}

	return court, nil
}

// where renders filter as a WHERE clause starting at placeholder $1.
func (f CourtFilter) where() (string, []any) {
	var conds []string
	var args []any

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Status != nil {
		add("status = $%d", *f.Status)
	}
	if f.Name != nil && *f.Name != "" {
		add("name ILIKE $%d", "%"+*f.Name+"%")
	}
	if f.Address != nil && *f.Address != "" {
		add("address ILIKE $%d", "%"+*f.Address+"%")
	}
	if f.MinPrice != nil {
		add("price_per_hour >= $%d", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		add("price_per_hour <= $%d", *f.MaxPrice)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *courtRepository) FindAll(ctx context.Context, filter CourtFilter, limit, offset int) ([]*entity.Court, error) {
	where, args := filter.where()

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + courtColumns + ` FROM courts`)
	queryBuilder.WriteString(where)
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2))
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find all courts",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all courts limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	return r.collect(rows)
}

func (r *courtRepository) CountAll(ctx context.Context, filter CourtFilter) (int64, error) {
	where, args := filter.where()

	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM courts`+where, args...).Scan(&total)
	if err != nil {
		r.log.Error("Failed to count courts", zap.Error(err))
		return 0, fmt.Errorf("count all courts: %w", err)
	}

	return total, nil
}

func (r *courtRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Court, error) {
	query := `SELECT ` + courtColumns + ` FROM courts WHERE owner_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		r.log.Error("Failed to find courts by owner",
			zap.Error(err),
			zap.String("owner_id", ownerID.String()),
		)
		return nil, fmt.Errorf("find courts by owner %s: %w", ownerID, err)
	}
	defer rows.Close()

	return r.collect(rows)
}

func (r *courtRepository) collect(rows pgx.Rows) ([]*entity.Court, error) {
	var courts []*entity.Court
	for rows.Next() {
		court, err := scanCourt(rows)
		if err != nil {
			r.log.Error("Failed to scan court row", zap.Error(err))
			return nil, fmt.Errorf("scan court row: %w", err)
		}
		courts = append(courts, court)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate court rows: %w", err)
	}

	return courts, nil
}

func (r *courtRepository) Update(ctx context.Context, court *entity.Court) error {
	query := `
		UPDATE courts
		SET name = $2, address = $3, description = $4, price_per_hour = $5,
		    number_of_courts = $6, facilities = $7, images = $8,
		    open_time = $9::time, close_time = $10::time, updated_at = $11
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		court.ID,
		court.Name,
		court.Address,
		court.Description,
		court.PricePerHour,
		court.NumberOfCourts,
		nonNil(court.Facilities),
		nonNil(court.Images),
		court.OpenTime,
		court.CloseTime,
		court.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update court",
			zap.Error(err),
			zap.String("court_id", court.ID.String()),
		)
		return fmt.Errorf("update court %s: %w", court.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update court %s: %w", court.ID, domain.ErrCourtNotFound)
	}

	return nil
}

func (r *courtRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.CourtStatus) error {
	query := `UPDATE courts SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update court status",
			zap.Error(err),
			zap.String("court_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update court status %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update court status %s: %w", id, domain.ErrCourtNotFound)
	}

	return nil
}

func (r *courtRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		WITH deleted AS (
			DELETE FROM courts
			WHERE id = $1
			  AND NOT EXISTS (SELECT 1 FROM bookings WHERE court_id = $1)
			RETURNING 1
		)
		SELECT EXISTS (SELECT 1 FROM deleted),
		       EXISTS (SELECT 1 FROM courts WHERE id = $1)
	`

	var deleted, exists bool
	err := r.db.QueryRow(ctx, query, id).Scan(&deleted, &exists)
	if pgErr, ok := pgError(err); ok && pgErr.Code == pgForeignKeyViolation {
		// a booking was inserted after the NOT EXISTS check
		return domain.ErrCourtInUse
	}
	if err != nil {
		r.log.Error("Failed to delete court",
			zap.Error(err),
			zap.String("court_id", id.String()),
		)
		return fmt.Errorf("delete court %s: %w", id, err)
	}

	switch {
	case deleted:
		return nil
	case exists:
		return domain.ErrCourtInUse
	}
	return fmt.Errorf("delete court %s: %w", id, domain.ErrCourtNotFound)
}

// nonNil keeps NOT NULL array columns from receiving a SQL NULL.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
