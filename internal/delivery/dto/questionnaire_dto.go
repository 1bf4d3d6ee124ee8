package dto

import "clinical-study/pkg/form"

// QuestionnaireRequest is a raw questionnaire body. Field values may be
// strings, numbers, booleans or null.
type QuestionnaireRequest = form.Input
