package adaptor

import (
	"errors"
	"net/http"

	"court-booking/internal/domain"
	"court-booking/pkg/utils"

	"go.uber.org/zap"
)

var badRequestErrors = []error{
	domain.ErrValidation,
	domain.ErrMalformedTime,
	domain.ErrMalformedDate,
	domain.ErrInvalidTimeRange,
	domain.ErrOutsideOperatingHours,
	domain.ErrInvalidCourtNumber,
	domain.ErrPastDate,
	domain.ErrInvalidStatus,
	domain.ErrInvalidOpeningHours,
	domain.ErrAlreadyCompleted,
	domain.ErrEmailTaken,
	domain.ErrPhoneTaken,
}

func isBadRequest(err error) bool {
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// writeServiceError maps a service error to its HTTP status. Anything not
// recognised is a 500 with a generic message.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	fields := []zap.Field{zap.Error(err), zap.String("operation", operation)}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		log.Warn(operation+" failed - not found", fields...)
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, domain.ErrForbidden):
		log.Warn(operation+" failed - forbidden", fields...)
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, domain.ErrSlotUnavailable):
		log.Warn(operation+" failed - slot unavailable", fields...)
		utils.ResponseConflict(w, domain.ErrSlotUnavailable.Error())

	case errors.Is(err, domain.ErrStatusChanged),
		errors.Is(err, domain.ErrCourtInUse):
		log.Warn(operation+" failed - conflict", fields...)
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrAccountDisabled):
		log.Warn(operation+" failed - unauthorized", fields...)
		utils.ResponseUnauthorized(w, err.Error())

	case isBadRequest(err):
		log.Warn("Invalid input for "+operation, fields...)
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation, fields...)
		utils.ResponseInternalError(w, "Internal server error")
	}
}
