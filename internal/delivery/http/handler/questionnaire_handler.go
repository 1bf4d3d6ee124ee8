package handler

import (
	"encoding/json"
	"net/http"

	"clinical-study/internal/delivery/dto"
	"clinical-study/internal/delivery/http/middleware"
	"clinical-study/internal/domain/entity"
	"clinical-study/internal/usecase"
	"clinical-study/pkg/response"
)

type QuestionnaireHandler struct {
	questionnaireUsecase usecase.QuestionnaireUsecase
}

func NewQuestionnaireHandler(questionnaireUsecase usecase.QuestionnaireUsecase) *QuestionnaireHandler {
	return &QuestionnaireHandler{
		questionnaireUsecase: questionnaireUsecase,
	}
}

// Submit returns the handler storing one questionnaire of kind. The operator
// of record comes from the auth middleware.
func (h *QuestionnaireHandler) Submit(kind entity.QuestionnaireKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.QuestionnaireRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request body")
			return
		}

		operatorID, ok := middleware.GetOperatorIDFromContext(r.Context())
		if !ok {
			response.Unauthorized(w, "")
			return
		}

		result, err := h.questionnaireUsecase.Submit(r.Context(), kind, operatorID, req)
		if err != nil {
			writeError(w, err)
			return
		}

		response.Success(w, http.StatusOK, response.Fields{
			result.IDKey: result.RecordID,
			"patientId":  result.PatientID,
		})
	}
}
