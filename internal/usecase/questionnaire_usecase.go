package usecase

import (
	"context"
	"errors"
	"fmt"

	"clinical-study/internal/domain/entity"
	"clinical-study/internal/domain/repository"
	"clinical-study/internal/infrastructure/metrics"
	"clinical-study/pkg/form"
	"clinical-study/pkg/validator"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SubmissionResult identifies the row written by a questionnaire submission.
type SubmissionResult struct {
	Kind      entity.QuestionnaireKind
	IDKey     string
	RecordID  int64
	PatientID int64
}

type QuestionnaireUsecase interface {
	// Submit validates input, then inserts the detail row and sets the
	// patient's completion flag in one transaction on behalf of operatorID.
	Submit(ctx context.Context, kind entity.QuestionnaireKind, operatorID int64, input form.Input) (*SubmissionResult, error)
}

type questionnaireUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	validator         *validator.CustomValidator
	metrics           *metrics.Metrics
	patientRepo       repository.PatientRepository
	employeeRepo      repository.EmployeeRepository
	questionnaireRepo repository.QuestionnaireRepository
}

func NewQuestionnaireUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	customValidator *validator.CustomValidator,
	collector *metrics.Metrics,
	patientRepo repository.PatientRepository,
	employeeRepo repository.EmployeeRepository,
	questionnaireRepo repository.QuestionnaireRepository,
) QuestionnaireUsecase {
	return &questionnaireUsecase{
		db:                db,
		log:               log,
		validator:         customValidator,
		metrics:           collector,
		patientRepo:       patientRepo,
		employeeRepo:      employeeRepo,
		questionnaireRepo: questionnaireRepo,
	}
}

func (u *questionnaireUsecase) Submit(ctx context.Context, kind entity.QuestionnaireKind, operatorID int64, input form.Input) (*SubmissionResult, error) {
	schema, ok := schemas[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownQuestionnaire, kind)
	}

	result, err := u.submit(ctx, schema, operatorID, input)
	u.metrics.ObserveSubmission(kind.String(), outcome(err))
	return result, err
}

func (u *questionnaireUsecase) submit(ctx context.Context, schema *questionnaireSchema, operatorID int64, input form.Input) (*SubmissionResult, error) {
	patientID, values, verr := u.validate(schema, input)
	if verr != nil {
		return nil, verr
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		u.log.Warnf("Failed to begin transaction: %+v", tx.Error)
		return nil, tx.Error
	}
	defer tx.Rollback()

	operatorExists, err := u.employeeRepo.Exists(ctx, tx, operatorID)
	if err != nil {
		u.log.Warnf("Failed to check operator: %+v", err)
		return nil, err
	}
	if !operatorExists {
		u.log.Errorf("Operator %d does not exist, check STUDY_DEFAULT_OPERATOR_ID", operatorID)
		return nil, fmt.Errorf("%w: Mitarbeiter %d", ErrOperatorMissing, operatorID)
	}

	patientExists, err := u.patientRepo.Exists(ctx, tx, patientID)
	if err != nil {
		u.log.Warnf("Failed to check patient: %+v", err)
		return nil, err
	}
	if !patientExists {
		return nil, fmt.Errorf("%w: %d", ErrPatientNotFound, patientID)
	}

	record := schema.build(values)
	record.Attribute(patientID, operatorID)

	if err := u.questionnaireRepo.Create(ctx, tx, record); err != nil {
		if schema.onePerPatient && errors.Is(err, repository.ErrDuplicateRecord) {
			return nil, fmt.Errorf("%w: %s for patient %d", ErrAlreadySubmitted, schema.kind, patientID)
		}
		u.log.Warnf("Failed to create %s record: %+v", schema.kind, err)
		return nil, err
	}

	if err := u.patientRepo.MarkCompleted(ctx, tx, patientID, schema.flagColumn); err != nil {
		u.log.Warnf("Failed to set %s flag: %+v", schema.flagColumn, err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit transaction: %+v", err)
		return nil, err
	}

	u.log.WithFields(logrus.Fields{
		"kind":       schema.kind,
		"patient_id": patientID,
		"record_id":  record.RecordID(),
		"operator":   operatorID,
	}).Info("Questionnaire submitted")

	return &SubmissionResult{
		Kind:      schema.kind,
		IDKey:     schema.idKey,
		RecordID:  record.RecordID(),
		PatientID: patientID,
	}, nil
}

// validate normalizes input and applies every rule that needs no storage
// access.
func (u *questionnaireUsecase) validate(schema *questionnaireSchema, input form.Input) (int64, form.Values, *ValidationError) {
	patientID, ok := form.PositiveID(input.Get(patientIDField))
	if !ok {
		return 0, form.Values{}, newValidationError(patientIDField, "patientId is missing or invalid")
	}

	values := form.Normalize(input, schema.fields)
	if !values.Present(schema.dateField) {
		return 0, form.Values{}, newValidationError(schema.dateField, schema.dateField+" is required")
	}

	verr := &ValidationError{}
	for _, f := range schema.fields {
		text := values.Text(f.Name)
		if text == nil {
			continue
		}
		if f.Kind == form.KindDate {
			if msg := u.validator.Var(f.Name, *text, dateRule); msg != "" {
				verr.add(f.Name, msg)
				continue
			}
		}
		if f.Rule != "" {
			if msg := u.validator.Var(f.Name, *text, f.Rule); msg != "" {
				verr.add(f.Name, msg)
			}
		}
	}
	if !verr.empty() {
		return 0, form.Values{}, verr
	}

	if schema.check != nil {
		if cerr := schema.check(values); cerr != nil {
			return 0, form.Values{}, cerr
		}
	}
	return patientID, values, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case IsValidation(err):
		return metrics.OutcomeInvalid
	case errors.Is(err, ErrPatientNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, ErrAlreadySubmitted):
		return metrics.OutcomeConflict
	default:
		return metrics.OutcomeError
	}
}
