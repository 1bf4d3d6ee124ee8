package handler

import (
	"errors"
	"net/http"

	"clinical-study/internal/usecase"
	"clinical-study/pkg/response"
)

// writeError maps use case errors to status codes. Unexpected errors surface
// their message since the service is an internal tool.
func writeError(w http.ResponseWriter, err error) {
	var verr *usecase.ValidationError
	switch {
	case errors.As(err, &verr):
		response.ValidationError(w, verr.Message, verr.Fields)
	case errors.Is(err, usecase.ErrPatientNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, usecase.ErrAlreadySubmitted):
		response.Conflict(w, err.Error())
	case errors.Is(err, usecase.ErrInvalidCredentials), errors.Is(err, usecase.ErrInvalidToken):
		response.Unauthorized(w, err.Error())
	default:
		response.InternalServerError(w, err.Error())
	}
}
