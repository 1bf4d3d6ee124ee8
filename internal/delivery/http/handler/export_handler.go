package handler

import (
	"net/http"

	"clinical-study/internal/usecase"
	"clinical-study/pkg/response"
)

type ExportHandler struct {
	exportUsecase usecase.ExportUsecase
}

func NewExportHandler(exportUsecase usecase.ExportUsecase) *ExportHandler {
	return &ExportHandler{
		exportUsecase: exportUsecase,
	}
}

// DownloadCSV streams the study table as a CSV attachment.
func (h *ExportHandler) DownloadCSV(w http.ResponseWriter, r *http.Request) {
	body, err := h.exportUsecase.StudyCSV(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	response.Attachment(w, usecase.CSVContentType, h.exportUsecase.CSVFileName(), body)
}

func (h *ExportHandler) DownloadVariables(w http.ResponseWriter, r *http.Request) {
	response.Attachment(w, usecase.TextContentType, h.exportUsecase.VariablesFileName(), h.exportUsecase.VariableDescription())
}
