package handler

import (
	"context"
	"net/http"
	"time"

	"clinical-study/internal/infrastructure/database"
	"clinical-study/pkg/response"

	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := database.Ping(ctx, h.db); err != nil {
		response.Error(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	response.Success(w, http.StatusOK, nil)
}
