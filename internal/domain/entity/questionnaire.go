package entity

// QuestionnaireKind names one of the three study questionnaires.
type QuestionnaireKind string

const (
	QuestionnaireBaseline QuestionnaireKind = "stammdaten"
	QuestionnaireExposure QuestionnaireKind = "exposition"
	QuestionnaireFollowUp QuestionnaireKind = "followup"
)

func (k QuestionnaireKind) String() string {
	return string(k)
}

// QuestionnaireRecord is a detail row written by a questionnaire submission.
type QuestionnaireRecord interface {
	TableName() string
	RecordID() int64
	// Attribute sets the owning patient and the employee of record.
	Attribute(patientID, employeeID int64)
}

// Answer values shared by several questionnaire fields
const (
	AnswerYes = "ja"
	AnswerNo  = "nein"
)
