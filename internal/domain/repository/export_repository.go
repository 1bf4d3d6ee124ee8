package repository

import (
	"context"

	"clinical-study/internal/domain/entity"

	"gorm.io/gorm"
)

type ExportRepository interface {
	// StudyTable returns one row per follow-up joined with the patient's
	// baseline and exposure answers.
	StudyTable(ctx context.Context, db *gorm.DB) (*entity.ExportTable, error)
}
