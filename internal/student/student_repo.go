package student

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=student_repo.go -destination=mock/student_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, s *Student) error
	FindPageByCampus(ctx context.Context, campusID string, offset, limit int) ([]Student, int64, error)
	FindByIDAndCampus(ctx context.Context, campusID, id string) (*Student, error)
	Update(ctx context.Context, s *Student) error
	Delete(ctx context.Context, campusID, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, s *Student) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindPageByCampus(ctx context.Context, campusID string, offset, limit int) ([]Student, int64, error) {
	var (
		students []Student
		total    int64
	)

	base := r.db.WithContext(ctx).Model(&Student{}).Where("campus_id = ?", campusID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Where("campus_id = ?", campusID).
		Order("roll_number ASC").
		Offset(offset).
		Limit(limit).
		Find(&students).Error
	return students, total, err
}

func (r *repository) FindByIDAndCampus(ctx context.Context, campusID, id string) (*Student, error) {
	var s Student
	err := r.db.WithContext(ctx).
		Where("campus_id = ?", campusID).
		First(&s, "id = ?", id).Error
	return &s, err
}

func (r *repository) Update(ctx context.Context, s *Student) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *repository) Delete(ctx context.Context, campusID, id string) error {
	return r.db.WithContext(ctx).
		Where("campus_id = ?", campusID).
		Delete(&Student{}, "id = ?", id).Error
}
