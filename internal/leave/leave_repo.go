package leave

import (
	"context"
	"database/sql"
	"time"

	"go-uerp/internal/shared/approval"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	FindPageByCampus(ctx context.Context, campusID string, offset, limit int) ([]Leave, int64, error)
	FindByIDAndCampus(ctx context.Context, campusID, id string) (*Leave, error)
	UpdateStatusFrom(ctx context.Context, l *Leave, expectedStatus string) error
	Delete(ctx context.Context, campusID, id string) error
	EmployeeBelongsToCampus(ctx context.Context, campusID, employeeID string) (bool, error)
	HasOverlappingPeriod(ctx context.Context, campusID, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error)
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

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindPageByCampus(ctx context.Context, campusID string, offset, limit int) ([]Leave, int64, error) {
	var (
		leaves []Leave
		total  int64
	)

	base := r.db.WithContext(ctx).Model(&Leave{}).Where("campus_id = ?", campusID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Where("campus_id = ?", campusID).
		Order("start_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&leaves).Error
	return leaves, total, err
}

func (r *repository) FindByIDAndCampus(ctx context.Context, campusID, id string) (*Leave, error) {
	var l Leave
	err := r.db.WithContext(ctx).
		Where("campus_id = ?", campusID).
		First(&l, "id = ?", id).Error
	return &l, err
}

// UpdateStatusFrom persists a status transition conditionally on the status
// the caller observed. Zero rows affected means another actor decided the
// request first.
func (r *repository) UpdateStatusFrom(ctx context.Context, l *Leave, expectedStatus string) error {
	res := r.db.WithContext(ctx).
		Model(&Leave{}).
		Where("id = ? AND campus_id = ? AND status = ?", l.ID, l.CampusID, expectedStatus).
		Updates(map[string]any{
			"status":           l.Status,
			"approved_by":      l.ApprovedBy,
			"approved_at":      l.ApprovedAt,
			"rejection_reason": l.RejectionReason,
			"remarks":          l.Remarks,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return approval.ErrConcurrentTransition
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, campusID, id string) error {
	return r.db.WithContext(ctx).
		Where("campus_id = ?", campusID).
		Delete(&Leave{}, "id = ?", id).Error
}

func (r *repository) EmployeeBelongsToCampus(ctx context.Context, campusID, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Where("campus_id = ?", campusID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}

func (r *repository) HasOverlappingPeriod(ctx context.Context, campusID, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
	db := r.db.WithContext(ctx).
		Model(&Leave{}).
		Where("campus_id = ?", campusID).
		Where("employee_id = ?", employeeID).
		Where("status <> ?", approval.StatusCancelled).
		Where("NOT (end_date < ? OR start_date > ?)", startDate, endDate)

	if excludeID != nil && *excludeID != "" {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}
