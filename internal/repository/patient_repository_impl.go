package repository

import (
	"context"
	"errors"

	"clinical-study/internal/domain/entity"
	domainRepo "clinical-study/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) Create(ctx context.Context, db *gorm.DB, patient *entity.Patient) error {
	return db.WithContext(ctx).Create(patient).Error
}

func (r *patientRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Patient, error) {
	patients := []entity.Patient{}
	err := db.WithContext(ctx).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "idPatient"}, Desc: true}).
		Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepository) FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.WithContext(ctx).Where(map[string]interface{}{"idPatient": id}).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) Exists(ctx context.Context, db *gorm.DB, id int64) (bool, error) {
	var ids []int64
	err := db.WithContext(ctx).Model(&entity.Patient{}).
		Where(map[string]interface{}{"idPatient": id}).
		Limit(1).
		Pluck("idPatient", &ids).Error
	if err != nil {
		return false, err
	}
	return len(ids) > 0, nil
}

// MarkCompleted sets one completion flag. The flag is never cleared.
func (r *patientRepository) MarkCompleted(ctx context.Context, db *gorm.DB, id int64, flagColumn string) error {
	return db.WithContext(ctx).Model(&entity.Patient{}).
		Where(map[string]interface{}{"idPatient": id}).
		Update(flagColumn, entity.FlagSet).Error
}

func (r *patientRepository) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&entity.Patient{}).Count(&total).Error
	return total, err
}
