package payroll

import (
	"context"
	"database/sql"
	"time"

	"go-uerp/internal/shared/approval"

	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, s *Salary) error
	FindPageByCampus(ctx context.Context, campusID string, offset, limit int) ([]Salary, int64, error)
	FindByIDAndCampus(ctx context.Context, campusID, id string) (*Salary, error)
	UpdateStatusFrom(ctx context.Context, s *Salary, expectedStatus string) error
	Delete(ctx context.Context, campusID, id string) error
	EmployeeBelongsToCampus(ctx context.Context, campusID, employeeID string) (bool, error)
	HasOverlappingPeriod(ctx context.Context, campusID, employeeID string, periodStart, periodEnd time.Time) (bool, error)
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

func (r *repository) Create(ctx context.Context, s *Salary) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindPageByCampus(ctx context.Context, campusID string, offset, limit int) ([]Salary, int64, error) {
	var (
		salaries []Salary
		total    int64
	)

	base := r.db.WithContext(ctx).Model(&Salary{}).Where("campus_id = ?", campusID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Where("campus_id = ?", campusID).
		Order("period_start DESC").
		Offset(offset).
		Limit(limit).
		Find(&salaries).Error
	return salaries, total, err
}

func (r *repository) FindByIDAndCampus(ctx context.Context, campusID, id string) (*Salary, error) {
	var s Salary
	err := r.db.WithContext(ctx).
		Where("campus_id = ?", campusID).
		First(&s, "id = ?", id).Error
	return &s, err
}

func (r *repository) UpdateStatusFrom(ctx context.Context, s *Salary, expectedStatus string) error {
	res := r.db.WithContext(ctx).
		Model(&Salary{}).
		Where("id = ? AND campus_id = ? AND status = ?", s.ID, s.CampusID, expectedStatus).
		Updates(map[string]any{
			"status":      s.Status,
			"approved_by": s.ApprovedBy,
			"approved_at": s.ApprovedAt,
			"paid_at":     s.PaidAt,
			"remarks":     s.Remarks,
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
		Delete(&Salary{}, "id = ?", id).Error
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

func (r *repository) HasOverlappingPeriod(ctx context.Context, campusID, employeeID string, periodStart, periodEnd time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Salary{}).
		Where("campus_id = ?", campusID).
		Where("employee_id = ?", employeeID).
		Where("NOT (period_end < ? OR period_start > ?)", periodStart, periodEnd).
		Count(&count).Error
	return count > 0, err
}
