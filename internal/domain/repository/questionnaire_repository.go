package repository

import (
	"context"

	"clinical-study/internal/domain/entity"

	"gorm.io/gorm"
)

type QuestionnaireRepository interface {
	// Create inserts a detail row and fills in its generated id.
	Create(ctx context.Context, db *gorm.DB, record entity.QuestionnaireRecord) error
	FindBaseline(ctx context.Context, db *gorm.DB, patientID int64) (*entity.BaselineRecord, error)
	FindExposure(ctx context.Context, db *gorm.DB, patientID int64) (*entity.ExposureRecord, error)
	FindFollowUps(ctx context.Context, db *gorm.DB, patientID int64) ([]entity.FollowUpRecord, error)
	CountFollowUps(ctx context.Context, db *gorm.DB) (int64, error)
}
