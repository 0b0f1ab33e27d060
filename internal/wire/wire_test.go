package wire

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"court-booking/internal/data/repository"
	"court-booking/internal/usecase"
	"court-booking/pkg/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

var errNoDB = errors.New("no database in this test")

// pingOnlyDB answers pings and fails every query.
type pingOnlyDB struct{ pingErr error }

func (db *pingOnlyDB) Query(context.Context, string, ...any) (pgx.Rows, error) { return nil, errNoDB }
func (db *pingOnlyDB) QueryRow(context.Context, string, ...any) pgx.Row       { return errRow{} }
func (db *pingOnlyDB) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, errNoDB
}
func (db *pingOnlyDB) Begin(context.Context) (pgx.Tx, error) { return nil, errNoDB }
func (db *pingOnlyDB) Ping(context.Context) error            { return db.pingErr }
func (db *pingOnlyDB) Close()                                {}

type errRow struct{}

func (errRow) Scan(...any) error { return errNoDB }

func newTestApp(db *pingOnlyDB) *App {
	log := zap.NewNop()
	config := &utils.Config{Session: utils.SessionConfig{ExpiryHours: 24}}
	repos := repository.NewRepository(db, log)
	services := usecase.NewService(repos, config, usecase.NopPublisher{}, time.UTC, log)
	return Wiring(repos, services, db, config, log)
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestApp(&pingOnlyDB{}).Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	newTestApp(&pingOnlyDB{pingErr: errNoDB}).Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	router := newTestApp(&pingOnlyDB{}).Router

	routes := []struct{ method, path string }{
		{http.MethodPost, "/api/bookings"},
		{http.MethodGet, "/api/bookings/my"},
		{http.MethodGet, "/api/bookings/all"},
		{http.MethodDelete, "/api/bookings/0b0d2c4e-7f61-4d7c-9a57-1d1c1d7c0e11"},
		{http.MethodPost, "/api/courts"},
		{http.MethodGet, "/api/user/profile"},
		{http.MethodPut, "/api/user/profile"},
		{http.MethodGet, "/api/admin/users"},
		{http.MethodDelete, "/api/courts/0b0d2c4e-7f61-4d7c-9a57-1d1c1d7c0e11"},
		{http.MethodPost, "/api/logout"},
	}

	for _, rt := range routes {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(rt.method, rt.path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, rt.method+" "+rt.path)
	}
}

func TestPreflight(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestApp(&pingOnlyDB{}).Router.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/bookings", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
