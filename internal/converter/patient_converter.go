package converter

import (
	"clinical-study/internal/delivery/dto"
	"clinical-study/internal/domain/entity"
	"clinical-study/pkg/response"
)

// PatientDetailToResponse converts a PatientDetail entity to PatientDetailResponse DTO
func PatientDetailToResponse(detail *entity.PatientDetail) *dto.PatientDetailResponse {
	if detail == nil {
		return nil
	}

	followUps := detail.FollowUps
	if followUps == nil {
		followUps = []entity.FollowUpRecord{}
	}

	return &dto.PatientDetailResponse{
		Status:     response.StatusOK,
		Patient:    detail.Patient,
		Stammdaten: detail.Baseline,
		Exposition: detail.Exposure,
		FollowUps:  followUps,
	}
}

func PatientsToResponse(patients []entity.Patient) *dto.PatientListResponse {
	if patients == nil {
		patients = []entity.Patient{}
	}
	return &dto.PatientListResponse{
		Status:   response.StatusOK,
		Patients: patients,
	}
}

func StatsToResponse(stats *entity.Stats) *dto.StatsResponse {
	return &dto.StatsResponse{
		Status:         response.StatusOK,
		PatientsTotal:  stats.PatientsTotal,
		FollowUpsTotal: stats.FollowUpsTotal,
	}
}
