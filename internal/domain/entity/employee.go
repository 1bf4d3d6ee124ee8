package entity

// Employee is a study staff member (Mitarbeiter) and the writer of record of
// every questionnaire row.
type Employee struct {
	ID       int64  `gorm:"column:idMitarbeiter;primaryKey;autoIncrement" json:"idMitarbeiter"`
	Username string `gorm:"column:benutzername;type:varchar(45);uniqueIndex;not null" json:"benutzername"`
	Password string `gorm:"column:passwort;type:varchar(255);not null" json:"-"`
}

func (Employee) TableName() string {
	return "Mitarbeiter"
}
