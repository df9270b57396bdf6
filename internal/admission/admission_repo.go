package admission

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=admission_repo.go -destination=mock/admission_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Application) error
	FindPageByCampus(ctx context.Context, campusID string, programID *string, offset, limit int) ([]Application, int64, error)
	FindByIDAndCampus(ctx context.Context, campusID, id string) (*Application, error)
	Update(ctx context.Context, a *Application) error
	Delete(ctx context.Context, campusID, id string) error
	EmailAppliedToProgram(ctx context.Context, campusID, programID, email string) (bool, error)
	FindForMeritRanking(ctx context.Context, campusID, programID string) ([]Application, error)
	UpdateMeritPlacement(ctx context.Context, id string, rank int, status string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx rebinds the repository's statements onto tx so they commit or roll
// back with the caller's transaction.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	db := r.db.Session(&gorm.Session{Context: r.db.Statement.Context, NewDB: true})
	db.Statement.ConnPool = tx
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *Application) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindPageByCampus(ctx context.Context, campusID string, programID *string, offset, limit int) ([]Application, int64, error) {
	var (
		applications []Application
		total        int64
	)

	base := r.db.WithContext(ctx).Model(&Application{}).Where("campus_id = ?", campusID)
	if programID != nil && *programID != "" {
		base = base.Where("program_id = ?", *programID)
	}
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := r.db.WithContext(ctx).Where("campus_id = ?", campusID)
	if programID != nil && *programID != "" {
		q = q.Where("program_id = ?", *programID)
	}
	err := q.Order("submitted_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&applications).Error
	return applications, total, err
}

func (r *repository) FindByIDAndCampus(ctx context.Context, campusID, id string) (*Application, error) {
	var a Application
	err := r.db.WithContext(ctx).
		Where("campus_id = ?", campusID).
		First(&a, "id = ?", id).Error
	return &a, err
}

func (r *repository) Update(ctx context.Context, a *Application) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *repository) Delete(ctx context.Context, campusID, id string) error {
	return r.db.WithContext(ctx).
		Where("campus_id = ?", campusID).
		Delete(&Application{}, "id = ?", id).Error
}

func (r *repository) EmailAppliedToProgram(ctx context.Context, campusID, programID, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Application{}).
		Where("campus_id = ?", campusID).
		Where("program_id = ?", programID).
		Where("email = ?", email).
		Where("status <> ?", StatusWithdrawn).
		Count(&count).Error
	return count > 0, err
}

// FindForMeritRanking returns candidates in ranking order: score descending,
// earlier submission wins ties.
func (r *repository) FindForMeritRanking(ctx context.Context, campusID, programID string) ([]Application, error) {
	var applications []Application
	err := r.db.WithContext(ctx).
		Where("campus_id = ?", campusID).
		Where("program_id = ?", programID).
		Where("status <> ?", StatusWithdrawn).
		Order("eligibility_score DESC, submitted_at ASC").
		Find(&applications).Error
	return applications, err
}

func (r *repository) UpdateMeritPlacement(ctx context.Context, id string, rank int, status string) error {
	return r.db.WithContext(ctx).
		Model(&Application{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"merit_rank": rank,
			"status":     status,
		}).Error
}
