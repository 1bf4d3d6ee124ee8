package usecase

import "errors"

var (
	ErrPatientNotFound      = errors.New("patient not found")
	ErrAlreadySubmitted     = errors.New("questionnaire already submitted")
	ErrOperatorMissing      = errors.New("operator account does not exist")
	ErrUnknownQuestionnaire = errors.New("unknown questionnaire")
	ErrInvalidCredentials   = errors.New("login failed")
	ErrInvalidToken         = errors.New("invalid or expired token")
	ErrUsernameTaken        = errors.New("username already exists")
	ErrUploadNotConfigured  = errors.New("export upload is not configured")
)

// ValidationError reports rejected input. Message names the first problem,
// Fields holds one message per offending field.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Message: message, Fields: map[string]string{field: message}}
}

// add records a field problem. The first one becomes the message.
func (e *ValidationError) add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; ok {
		return
	}
	e.Fields[field] = message
	if e.Message == "" {
		e.Message = message
	}
}

func (e *ValidationError) empty() bool {
	return len(e.Fields) == 0
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
