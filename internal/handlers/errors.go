package handlers

import (
	"errors"
	"net/http"

	"taskflow/internal/logger"
	"taskflow/internal/service"

	"go.uber.org/zap"
)

// handleBusinessError writes the error response for a core error and
// reports whether it did. Non-business errors fall through to the
// caller's default handling.
func handleBusinessError(w http.ResponseWriter, err error) bool {
	var businessErr *service.BusinessError
	if !errors.As(err, &businessErr) {
		return false
	}

	statusCode := mapBusinessErrorToHTTP(businessErr.Code)

	logger.Warn("HTTP: business error",
		zap.String("error_code", businessErr.Code),
		zap.Int("http_status", statusCode))

	responseWithJSON(w, statusCode,
		toPayload("error", businessErr.Code),
		toPayload("message", businessErr.Message),
		toPayload("details", businessErr.Details),
	)
	return true
}

func mapBusinessErrorToHTTP(code string) int {
	switch code {
	case service.CodeValidation:
		return http.StatusBadRequest
	case service.CodeNotFound:
		return http.StatusNotFound
	case service.CodeDuplicateLog:
		return http.StatusConflict
	case service.CodeUnauthenticated:
		return http.StatusUnauthorized
	case service.CodePersistence:
		return http.StatusBadGateway
	default:
		return http.StatusBadRequest
	}
}
