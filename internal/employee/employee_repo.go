package employee

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, e *Employee) error
	FindPageByCampus(ctx context.Context, campusID string, offset, limit int) ([]Employee, int64, error)
	FindByIDAndCampus(ctx context.Context, campusID, id string) (*Employee, error)
	Update(ctx context.Context, e *Employee) error
	Delete(ctx context.Context, campusID, id string) error
	EmailExists(ctx context.Context, email string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindPageByCampus(ctx context.Context, campusID string, offset, limit int) ([]Employee, int64, error) {
	var (
		employees []Employee
		total     int64
	)

	base := r.db.WithContext(ctx).Model(&Employee{}).Where("campus_id = ?", campusID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Where("campus_id = ?", campusID).
		Order("employee_code ASC").
		Offset(offset).
		Limit(limit).
		Find(&employees).Error
	return employees, total, err
}

func (r *repository) FindByIDAndCampus(ctx context.Context, campusID, id string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).
		Where("campus_id = ?", campusID).
		First(&e, "id = ?", id).Error
	return &e, err
}

func (r *repository) Update(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *repository) Delete(ctx context.Context, campusID, id string) error {
	return r.db.WithContext(ctx).
		Where("campus_id = ?", campusID).
		Delete(&Employee{}, "id = ?", id).Error
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}
