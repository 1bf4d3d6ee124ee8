package repository

import (
	"context"
	"errors"

	"clinical-study/internal/domain/entity"
	domainRepo "clinical-study/internal/domain/repository"

	"gorm.io/gorm"
)

type employeeRepository struct{}

func NewEmployeeRepository() domainRepo.EmployeeRepository {
	return &employeeRepository{}
}

func (r *employeeRepository) Create(ctx context.Context, db *gorm.DB, employee *entity.Employee) error {
	return translateError(db.WithContext(ctx).Create(employee).Error)
}

func (r *employeeRepository) FindByUsername(ctx context.Context, db *gorm.DB, username string) (*entity.Employee, error) {
	var employee entity.Employee
	err := db.WithContext(ctx).Where(map[string]interface{}{"benutzername": username}).First(&employee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) Exists(ctx context.Context, db *gorm.DB, id int64) (bool, error) {
	var ids []int64
	err := db.WithContext(ctx).Model(&entity.Employee{}).
		Where(map[string]interface{}{"idMitarbeiter": id}).
		Limit(1).
		Pluck("idMitarbeiter", &ids).Error
	if err != nil {
		return false, err
	}
	return len(ids) > 0, nil
}
