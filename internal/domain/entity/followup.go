package entity

// FollowUpRecord is one outcome visit. Patients accumulate any number of them.
type FollowUpRecord struct {
	ID             int64   `gorm:"column:idFollowUp;primaryKey;autoIncrement" json:"idFollowUp"`
	CollectionDate Date    `gorm:"column:datumErhebung;not null" json:"datumErhebung"`
	Infarction     *string `gorm:"column:infarkt" json:"infarkt"`
	Deceased       *string `gorm:"column:verstorben" json:"verstorben"`
	InfarctionDate *Date   `gorm:"column:datumInfarkt" json:"datumInfarkt"`
	EmployeeID     int64   `gorm:"column:Mitarbeiter_idMitarbeiter;not null" json:"Mitarbeiter_idMitarbeiter"`
	PatientID      int64   `gorm:"column:Patient_idPatient;not null;index" json:"Patient_idPatient"`
}

func (FollowUpRecord) TableName() string {
	return "FollowUp"
}

func (r *FollowUpRecord) RecordID() int64 {
	return r.ID
}

func (r *FollowUpRecord) Attribute(patientID, employeeID int64) {
	r.PatientID = patientID
	r.EmployeeID = employeeID
}

// HadInfarction reports whether the visit recorded an infarction.
func (r *FollowUpRecord) HadInfarction() bool {
	return r.Infarction != nil && *r.Infarction == AnswerYes
}
