package campus

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=campus_repo.go -destination=mock/campus_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, c *Campus) error
	FindPage(ctx context.Context, offset, limit int) ([]Campus, int64, error)
	FindByID(ctx context.Context, id string) (*Campus, error)
	Update(ctx context.Context, c *Campus) error
	Delete(ctx context.Context, id string) error
	CodeExists(ctx context.Context, code string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *Campus) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindPage(ctx context.Context, offset, limit int) ([]Campus, int64, error) {
	var (
		campuses []Campus
		total    int64
	)

	if err := r.db.WithContext(ctx).Model(&Campus{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("name ASC").
		Offset(offset).
		Limit(limit).
		Find(&campuses).Error
	return campuses, total, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Campus, error) {
	var c Campus
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *repository) Update(ctx context.Context, c *Campus) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Campus{}, "id = ?", id).Error
}

func (r *repository) CodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Campus{}).
		Where("code = ?", code).
		Count(&count).Error
	return count > 0, err
}
