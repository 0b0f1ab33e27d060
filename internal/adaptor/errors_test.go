package adaptor

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"court-booking/internal/domain"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{domain.ErrBookingNotFound, http.StatusNotFound},
		{fmt.Errorf("load court: %w", domain.ErrCourtNotFound), http.StatusNotFound},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: cannot view this booking", domain.ErrForbidden), http.StatusForbidden},
		{domain.ErrSlotUnavailable, http.StatusConflict},
		{fmt.Errorf("booking x is no longer confirmed: %w", domain.ErrStatusChanged), http.StatusConflict},
		{domain.ErrCourtInUse, http.StatusConflict},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrAccountDisabled, http.StatusUnauthorized},
		{domain.ErrUnauthenticated, http.StatusUnauthorized},
		{domain.ErrAlreadyCompleted, http.StatusBadRequest},
		{domain.ErrEmailTaken, http.StatusBadRequest},
		{domain.ErrInvalidTimeRange, http.StatusBadRequest},
		{domain.ErrInvalidOpeningHours, http.StatusBadRequest},
		{fmt.Errorf("%w: invalid court ID", domain.ErrValidation), http.StatusBadRequest},
		{errors.New("pool exhausted"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeServiceError(rec, zap.NewNop(), tt.err, "test")
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestWriteServiceError_HidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	writeServiceError(rec, zap.NewNop(), errors.New("password=hunter2 dial failed"), "test")

	assert.NotContains(t, rec.Body.String(), "hunter2")
}
