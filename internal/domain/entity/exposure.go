package entity

// ExposureRecord is the lifestyle and risk-factor questionnaire (Exposition).
type ExposureRecord struct {
	ID                int64   `gorm:"column:idExpositionserhebung;primaryKey;autoIncrement" json:"idExpositionserhebung"`
	CollectionDate    Date    `gorm:"column:datumErhebung;not null" json:"datumErhebung"`
	Smoked            *string `gorm:"column:geraucht" json:"geraucht"`
	SmokingKind       *string `gorm:"column:sorteRauchen" json:"sorteRauchen"`
	SmokingStartAge   *int64  `gorm:"column:alterBeginn" json:"alterBeginn"`
	SmokingStopYears  *int64  `gorm:"column:rauchenEnde" json:"rauchenEnde"`
	CigarettesPerDay  *int64  `gorm:"column:anzahlZigTag" json:"anzahlZigTag"`
	AlcoholFrequency  *string `gorm:"column:oftAlkohol" json:"oftAlkohol"`
	AlcoholGramsDaily *int64  `gorm:"column:grammAlkohol" json:"grammAlkohol"`
	HealthConcerns    *string `gorm:"column:gesundBedenken" json:"gesundBedenken"`
	EmployeeID        int64   `gorm:"column:Mitarbeiter_idMitarbeiter;not null" json:"Mitarbeiter_idMitarbeiter"`
	PatientID         int64   `gorm:"column:Patient_idPatient;not null;uniqueIndex" json:"Patient_idPatient"`
}

func (ExposureRecord) TableName() string {
	return "Exposition"
}

func (r *ExposureRecord) RecordID() int64 {
	return r.ID
}

func (r *ExposureRecord) Attribute(patientID, employeeID int64) {
	r.PatientID = patientID
	r.EmployeeID = employeeID
}
