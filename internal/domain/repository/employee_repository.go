package repository

import (
	"context"

	"clinical-study/internal/domain/entity"

	"gorm.io/gorm"
)

type EmployeeRepository interface {
	Create(ctx context.Context, db *gorm.DB, employee *entity.Employee) error
	FindByUsername(ctx context.Context, db *gorm.DB, username string) (*entity.Employee, error)
	Exists(ctx context.Context, db *gorm.DB, id int64) (bool, error)
}
