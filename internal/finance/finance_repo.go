package finance

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=finance_repo.go -destination=mock/finance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateFee(ctx context.Context, f *Fee) error
	FindFeePageByCampus(ctx context.Context, campusID string, studentID *string, offset, limit int) ([]Fee, int64, error)
	FindFeeByIDAndCampus(ctx context.Context, campusID, id string) (*Fee, error)
	UpdateFeePayment(ctx context.Context, f *Fee) error
	DeleteFee(ctx context.Context, campusID, id string) error
	StudentBelongsToCampus(ctx context.Context, campusID, studentID string) (bool, error)

	CreatePayment(ctx context.Context, p *Payment) error
	FindPaymentsByFee(ctx context.Context, campusID, feeID string) ([]Payment, error)
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

func (r *repository) CreateFee(ctx context.Context, f *Fee) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *repository) FindFeePageByCampus(ctx context.Context, campusID string, studentID *string, offset, limit int) ([]Fee, int64, error) {
	var (
		fees  []Fee
		total int64
	)

	base := r.db.WithContext(ctx).Model(&Fee{}).Where("campus_id = ?", campusID)
	if studentID != nil && *studentID != "" {
		base = base.Where("student_id = ?", *studentID)
	}
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := r.db.WithContext(ctx).Where("campus_id = ?", campusID)
	if studentID != nil && *studentID != "" {
		q = q.Where("student_id = ?", *studentID)
	}
	err := q.Order("due_date ASC").
		Offset(offset).
		Limit(limit).
		Find(&fees).Error
	return fees, total, err
}

func (r *repository) FindFeeByIDAndCampus(ctx context.Context, campusID, id string) (*Fee, error) {
	var f Fee
	err := r.db.WithContext(ctx).
		Where("campus_id = ?", campusID).
		First(&f, "id = ?", id).Error
	return &f, err
}

func (r *repository) UpdateFeePayment(ctx context.Context, f *Fee) error {
	return r.db.WithContext(ctx).
		Model(&Fee{}).
		Where("id = ? AND campus_id = ?", f.ID, f.CampusID).
		Updates(map[string]any{
			"paid_amount": f.PaidAmount,
			"status":      f.Status,
		}).Error
}

func (r *repository) DeleteFee(ctx context.Context, campusID, id string) error {
	return r.db.WithContext(ctx).
		Where("campus_id = ?", campusID).
		Delete(&Fee{}, "id = ?", id).Error
}

func (r *repository) StudentBelongsToCampus(ctx context.Context, campusID, studentID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("students").
		Where("id = ?", studentID).
		Where("campus_id = ?", campusID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}

func (r *repository) CreatePayment(ctx context.Context, p *Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindPaymentsByFee(ctx context.Context, campusID, feeID string) ([]Payment, error) {
	var payments []Payment
	err := r.db.WithContext(ctx).
		Where("campus_id = ?", campusID).
		Where("fee_id = ?", feeID).
		Order("paid_at ASC").
		Find(&payments).Error
	return payments, err
}
