package usecase

import (
	"context"
	"fmt"

	"clinical-study/internal/domain/entity"
	"clinical-study/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type PatientUsecase interface {
	List(ctx context.Context) ([]entity.Patient, error)
	Create(ctx context.Context) (*entity.Patient, error)
	Detail(ctx context.Context, id int64) (*entity.PatientDetail, error)
	Stats(ctx context.Context) (*entity.Stats, error)
}

type patientUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	patientRepo       repository.PatientRepository
	questionnaireRepo repository.QuestionnaireRepository
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	questionnaireRepo repository.QuestionnaireRepository,
) PatientUsecase {
	return &patientUsecase{
		db:                db,
		log:               log,
		patientRepo:       patientRepo,
		questionnaireRepo: questionnaireRepo,
	}
}

// List returns all patients, newest first.
func (u *patientUsecase) List(ctx context.Context) ([]entity.Patient, error) {
	patients, err := u.patientRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}
	return patients, nil
}

func (u *patientUsecase) Create(ctx context.Context) (*entity.Patient, error) {
	patient := &entity.Patient{
		BaselineCompleted: entity.FlagUnset,
		ExposureCompleted: entity.FlagUnset,
		FollowUpCompleted: entity.FlagUnset,
	}
	if err := u.patientRepo.Create(ctx, u.db, patient); err != nil {
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}
	u.log.WithField("patient_id", patient.ID).Info("Patient created")
	return patient, nil
}

// Detail reads the patient and its questionnaires. Questionnaire rows of a
// missing patient are never returned.
func (u *patientUsecase) Detail(ctx context.Context, id int64) (*entity.PatientDetail, error) {
	patient, err := u.patientRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, fmt.Errorf("%w: %d", ErrPatientNotFound, id)
	}

	baseline, err := u.questionnaireRepo.FindBaseline(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find baseline: %+v", err)
		return nil, err
	}

	exposure, err := u.questionnaireRepo.FindExposure(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find exposure: %+v", err)
		return nil, err
	}

	followUps, err := u.questionnaireRepo.FindFollowUps(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find follow-ups: %+v", err)
		return nil, err
	}

	return &entity.PatientDetail{
		Patient:   *patient,
		Baseline:  baseline,
		Exposure:  exposure,
		FollowUps: followUps,
	}, nil
}

func (u *patientUsecase) Stats(ctx context.Context) (*entity.Stats, error) {
	patients, err := u.patientRepo.Count(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to count patients: %+v", err)
		return nil, err
	}
	followUps, err := u.questionnaireRepo.CountFollowUps(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to count follow-ups: %+v", err)
		return nil, err
	}
	return &entity.Stats{PatientsTotal: patients, FollowUpsTotal: followUps}, nil
}
