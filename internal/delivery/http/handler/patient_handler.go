package handler

import (
	"net/http"

	"clinical-study/internal/converter"
	"clinical-study/internal/delivery/dto"
	"clinical-study/internal/usecase"
	"clinical-study/pkg/form"
	"clinical-study/pkg/response"

	"github.com/gorilla/mux"
)

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
	}
}

func (h *PatientHandler) GetAllPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.patientUsecase.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, converter.PatientsToResponse(patients))
}

func (h *PatientHandler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	patient, err := h.patientUsecase.Create(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, &dto.PatientCreatedResponse{
		Status:    response.StatusOK,
		PatientID: patient.ID,
	})
}

// GetPatient returns the patient with all submitted questionnaires.
func (h *PatientHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	id, ok := form.PositiveID(form.Text(mux.Vars(r)["id"]))
	if !ok {
		response.BadRequest(w, "Invalid patient id")
		return
	}

	detail, err := h.patientUsecase.Detail(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, converter.PatientDetailToResponse(detail))
}

func (h *PatientHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.patientUsecase.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, converter.StatsToResponse(stats))
}
