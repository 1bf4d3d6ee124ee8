package handler

import (
	"encoding/json"
	"net/http"

	"clinical-study/internal/delivery/dto"
	"clinical-study/internal/delivery/http/middleware"
	"clinical-study/internal/usecase"
	"clinical-study/pkg/response"
	"clinical-study/pkg/validator"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	validator   *validator.CustomValidator
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, validator *validator.CustomValidator) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		validator:   validator,
	}
}

// Login handles staff login
// @Summary Login staff member
// @Description Check benutzername and passwort, optionally issuing a session token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 401 {object} response.ErrorBody
// @Router /login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, "benutzername and passwort are required", h.validator.FormatValidationErrors(err))
		return
	}

	resp, err := h.authUsecase.Login(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	resp.Status = response.StatusOK
	response.JSON(w, http.StatusOK, resp)
}

// Logout revokes the session token of the request.
// @Summary Logout staff member
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Fields
// @Router /logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	tokenID, ok := middleware.GetTokenIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}
	operatorID, _ := middleware.GetOperatorIDFromContext(r.Context())

	if err := h.authUsecase.Logout(r.Context(), operatorID, tokenID); err != nil {
		response.InternalServerError(w, "Failed to logout")
		return
	}

	response.Success(w, http.StatusOK, nil)
}
