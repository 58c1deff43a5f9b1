// Package controller holds helpers shared by the admin and user
// controller packages.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quizmind/quizmind-api/internal/apperror"
	"github.com/quizmind/quizmind-api/internal/dto"
)

// RespondError translates a service error into the HTTP status dictated
// by the error taxonomy and writes the uniform error body.
func RespondError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperror.ErrTestInactive), errors.Is(err, apperror.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperror.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, apperror.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, apperror.ErrUnavailable):
		status = http.StatusInternalServerError
	}
	ctx.JSON(status, dto.ErrorResponse{Message: err.Error()})
}
