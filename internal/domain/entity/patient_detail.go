package entity

// PatientDetail is a patient together with every questionnaire row on file.
type PatientDetail struct {
	Patient   Patient
	Baseline  *BaselineRecord
	Exposure  *ExposureRecord
	FollowUps []FollowUpRecord
}
