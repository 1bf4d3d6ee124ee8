package entity

import (
	"database/sql/driver"
	"fmt"
	"strconv"
)

// Patient is the pseudonymous study participant. The completion flags cache
// whether at least one questionnaire row of the matching kind exists.
type Patient struct {
	ID                int64 `gorm:"column:idPatient;primaryKey;autoIncrement" json:"idPatient"`
	BaselineCompleted Flag  `gorm:"column:stammdatenAusgefüllt;not null" json:"stammdatenAusgefüllt"`
	ExposureCompleted Flag  `gorm:"column:expositionAusgefüllt;not null" json:"expositionAusgefüllt"`
	FollowUpCompleted Flag  `gorm:"column:followUpAusgefüllt;not null" json:"followUpAusgefüllt"`
}

func (Patient) TableName() string {
	return "Patient"
}

// Completion flag columns on the Patient table
const (
	ColumnBaselineCompleted = "stammdatenAusgefüllt"
	ColumnExposureCompleted = "expositionAusgefüllt"
	ColumnFollowUpCompleted = "followUpAusgefüllt"
)

// Flag is a boolean stored as a 0/1 integer column and rendered as 0/1 in JSON.
type Flag bool

const (
	FlagUnset Flag = false
	FlagSet   Flag = true
)

// Value implements driver.Valuer
func (f Flag) Value() (driver.Value, error) {
	if f {
		return int64(1), nil
	}
	return int64(0), nil
}

// Scan implements sql.Scanner
func (f *Flag) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*f = false
	case bool:
		*f = Flag(v)
	case int64:
		*f = v != 0
	case []byte:
		return f.parse(string(v))
	case string:
		return f.parse(v)
	default:
		return fmt.Errorf("cannot scan %T into Flag", value)
	}
	return nil
}

func (f *Flag) parse(s string) error {
	switch s {
	case "true", "TRUE", "t":
		*f = true
		return nil
	case "false", "FALSE", "f", "":
		*f = false
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("cannot scan %q into Flag: %w", s, err)
	}
	*f = n != 0
	return nil
}

func (f Flag) MarshalJSON() ([]byte, error) {
	if f {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

func (f *Flag) UnmarshalJSON(data []byte) error {
	return f.parse(string(data))
}
