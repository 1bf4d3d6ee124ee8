package repository

import (
	"context"

	"clinical-study/internal/domain/entity"

	"gorm.io/gorm"
)

type PatientRepository interface {
	Create(ctx context.Context, db *gorm.DB, patient *entity.Patient) error
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.Patient, error)
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.Patient, error)
	Exists(ctx context.Context, db *gorm.DB, id int64) (bool, error)
	MarkCompleted(ctx context.Context, db *gorm.DB, id int64, flagColumn string) error
	Count(ctx context.Context, db *gorm.DB) (int64, error)
}
