package v1

import (
	"errors"
	"net/http"

	"github.com/finansmart/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the appropriate status for an error
func status(err error) int {
	if models.IsInternal(err) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, models.ErrCategoryNameNotUnique) ||
		errors.Is(err, models.ErrResourceInUse) ||
		errors.Is(err, models.ErrUniqueViolation) {
		return http.StatusConflict
	}

	return http.StatusBadRequest
}
