package dto

import "clinical-study/internal/domain/entity"

type PatientListResponse struct {
	Status   string           `json:"status"`
	Patients []entity.Patient `json:"patients"`
}

type PatientCreatedResponse struct {
	Status    string `json:"status"`
	PatientID int64  `json:"patientId"`
}

// PatientDetailResponse renders absent questionnaires as null and an empty
// follow-up history as [].
type PatientDetailResponse struct {
	Status     string                  `json:"status"`
	Patient    entity.Patient          `json:"patient"`
	Stammdaten *entity.BaselineRecord  `json:"stammdaten"`
	Exposition *entity.ExposureRecord  `json:"exposition"`
	FollowUps  []entity.FollowUpRecord `json:"followups"`
}

type StatsResponse struct {
	Status         string `json:"status"`
	PatientsTotal  int64  `json:"patientsTotal"`
	FollowUpsTotal int64  `json:"followUpsTotal"`
}
