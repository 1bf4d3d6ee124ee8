package entity

// BaselineRecord is the one-time admission questionnaire (Stammdaten).
// At most one exists per patient, enforced by a unique index.
type BaselineRecord struct {
	ID            int64   `gorm:"column:idStammdaten;primaryKey;autoIncrement" json:"idStammdaten"`
	AdmissionDate Date    `gorm:"column:aufnahmedatum;not null" json:"aufnahmedatum"`
	StudyCenter   *string `gorm:"column:studienzentrum" json:"studienzentrum"`
	BirthDate     *Date   `gorm:"column:geburtsdatum" json:"geburtsdatum"`
	Height        *int64  `gorm:"column:groesse" json:"groesse"`
	Weight        *int64  `gorm:"column:gewicht" json:"gewicht"`
	EmployeeID    int64   `gorm:"column:Mitarbeiter_idMitarbeiter;not null" json:"Mitarbeiter_idMitarbeiter"`
	PatientID     int64   `gorm:"column:Patient_idPatient;not null;uniqueIndex" json:"Patient_idPatient"`
}

func (BaselineRecord) TableName() string {
	return "Stammdaten"
}

func (r *BaselineRecord) RecordID() int64 {
	return r.ID
}

func (r *BaselineRecord) Attribute(patientID, employeeID int64) {
	r.PatientID = patientID
	r.EmployeeID = employeeID
}
