package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"court-booking/internal/data/entity"
	"court-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubSessions struct {
	sessions map[string]*entity.Session
	err      error
}

func (s *stubSessions) Create(context.Context, *entity.Session) error { return nil }

func (s *stubSessions) FindValidSession(_ context.Context, token string) (*entity.Session, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.sessions[token], nil
}

func (s *stubSessions) Revoke(context.Context, string) error { return nil }

func (s *stubSessions) CleanExpiredSessions(context.Context, time.Duration) (int64, error) {
	return 0, nil
}

type stubUsers struct {
	users map[uuid.UUID]*entity.User
}

func (s *stubUsers) Create(context.Context, *entity.User) error { return nil }

func (s *stubUsers) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return s.users[id], nil
}

func (s *stubUsers) FindByEmail(context.Context, string) (*entity.User, error) { return nil, nil }
func (s *stubUsers) FindByPhone(context.Context, string) (*entity.User, error) { return nil, nil }
func (s *stubUsers) FindAll(context.Context, int, int) ([]*entity.User, error) { return nil, nil }
func (s *stubUsers) CountAll(context.Context) (int64, error)                   { return 0, nil }
func (s *stubUsers) Update(context.Context, *entity.User) error                { return nil }

func authFixture() (func(http.Handler) http.Handler, *stubSessions, *entity.User, string) {
	user := &entity.User{Base: entity.Base{ID: uuid.New()}, Role: entity.RoleOwner, IsActive: true}
	token := uuid.NewString()
	sessions := &stubSessions{sessions: map[string]*entity.Session{
		token: {UserID: user.ID, ExpiresAt: time.Now().Add(time.Hour)},
	}}
	users := &stubUsers{users: map[uuid.UUID]*entity.User{user.ID: user}}
	return AuthSession(sessions, users, zap.NewNop()), sessions, user, token
}

func TestAuthSession(t *testing.T) {
	auth, _, user, token := authFixture()

	var gotID uuid.UUID
	var gotRole, gotToken string
	handler := auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = utils.GetUserIDFromContext(r.Context())
		gotRole, _ = utils.GetRoleFromContext(r.Context())
		gotToken, _ = utils.GetTokenFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, user.ID, gotID)
	assert.Equal(t, string(entity.RoleOwner), gotRole)
	assert.Equal(t, token, gotToken)
}

func TestAuthSession_Rejects(t *testing.T) {
	auth, _, user, token := authFixture()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic " + token},
		{"no token", "Bearer "},
		{"unknown token", "Bearer " + uuid.NewString()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			auth(next).ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}

	t.Run("deactivated user", func(t *testing.T) {
		user.IsActive = false
		defer func() { user.IsActive = true }()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		auth(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAuthSession_StoreFailure(t *testing.T) {
	auth, sessions, _, token := authFixture()
	sessions.err = errors.New("pool closed")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	auth(http.NotFoundHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRequireRole(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	guard := RequireRole(zap.NewNop(), entity.RoleOwner, entity.RoleAdmin)(ok)

	serve := func(ctx context.Context) int {
		rec := httptest.NewRecorder()
		guard.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx))
		return rec.Code
	}

	assert.Equal(t, http.StatusUnauthorized, serve(context.Background()))
	assert.Equal(t, http.StatusForbidden, serve(utils.SetUserContext(context.Background(), uuid.New(), "user")))
	assert.Equal(t, http.StatusNoContent, serve(utils.SetUserContext(context.Background(), uuid.New(), "owner")))
	assert.Equal(t, http.StatusNoContent, serve(utils.SetUserContext(context.Background(), uuid.New(), "admin")))
}

func TestRecover(t *testing.T) {
	h := Recover(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCORS_Preflight(t *testing.T) {
	h := CORS()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("preflight must not reach the handler")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/bookings", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}
