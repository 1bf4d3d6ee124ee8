package repository

import (
	"context"
	"errors"

	"clinical-study/internal/domain/entity"
	domainRepo "clinical-study/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type questionnaireRepository struct{}

func NewQuestionnaireRepository() domainRepo.QuestionnaireRepository {
	return &questionnaireRepository{}
}

func (r *questionnaireRepository) Create(ctx context.Context, db *gorm.DB, record entity.QuestionnaireRecord) error {
	return translateError(db.WithContext(ctx).Create(record).Error)
}

func (r *questionnaireRepository) FindBaseline(ctx context.Context, db *gorm.DB, patientID int64) (*entity.BaselineRecord, error) {
	var record entity.BaselineRecord
	if err := firstByPatient(ctx, db, patientID, &record); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *questionnaireRepository) FindExposure(ctx context.Context, db *gorm.DB, patientID int64) (*entity.ExposureRecord, error) {
	var record entity.ExposureRecord
	if err := firstByPatient(ctx, db, patientID, &record); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// FindFollowUps returns the visits of one patient, newest collection date
// first. Visits on the same day are ordered by id, newest first.
func (r *questionnaireRepository) FindFollowUps(ctx context.Context, db *gorm.DB, patientID int64) ([]entity.FollowUpRecord, error) {
	records := []entity.FollowUpRecord{}
	err := db.WithContext(ctx).
		Where(map[string]interface{}{"Patient_idPatient": patientID}).
		Order(clause.OrderBy{Columns: []clause.OrderByColumn{
			{Column: clause.Column{Name: "datumErhebung"}, Desc: true},
			{Column: clause.Column{Name: "idFollowUp"}, Desc: true},
		}}).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *questionnaireRepository) CountFollowUps(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&entity.FollowUpRecord{}).Count(&total).Error
	return total, err
}

// firstByPatient loads the single row of a one-per-patient questionnaire.
// The lowest id wins should legacy data hold more than one.
func firstByPatient(ctx context.Context, db *gorm.DB, patientID int64, dest interface{}) error {
	return db.WithContext(ctx).
		Where(map[string]interface{}{"Patient_idPatient": patientID}).
		First(dest).Error
}
