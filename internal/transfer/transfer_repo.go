package transfer

import (
	"context"
	"database/sql"

	"go-uerp/internal/shared/approval"

	"gorm.io/gorm"
)

//go:generate mockgen -source=transfer_repo.go -destination=mock/transfer_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, tr *Transfer) error
	FindPageByCampus(ctx context.Context, campusID string, offset, limit int) ([]Transfer, int64, error)
	FindByIDAndCampus(ctx context.Context, campusID, id string) (*Transfer, error)
	UpdateStatusFrom(ctx context.Context, tr *Transfer, expectedStatus string) error
	SubjectExistsInCampus(ctx context.Context, subjectType, subjectID, campusID string) (bool, error)
	CampusExists(ctx context.Context, campusID string) (bool, error)
	HasPendingTransfer(ctx context.Context, subjectType, subjectID string) (bool, error)
	MoveSubject(ctx context.Context, subjectType, subjectID, toCampusID string) error
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

func (r *repository) Create(ctx context.Context, tr *Transfer) error {
	return r.db.WithContext(ctx).Create(tr).Error
}

// FindPageByCampus lists transfers visible to a campus: those it sends and
// those it receives.
func (r *repository) FindPageByCampus(ctx context.Context, campusID string, offset, limit int) ([]Transfer, int64, error) {
	var (
		transfers []Transfer
		total     int64
	)

	base := r.db.WithContext(ctx).
		Model(&Transfer{}).
		Where("from_campus_id = ? OR to_campus_id = ?", campusID, campusID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Where("from_campus_id = ? OR to_campus_id = ?", campusID, campusID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&transfers).Error
	return transfers, total, err
}

func (r *repository) FindByIDAndCampus(ctx context.Context, campusID, id string) (*Transfer, error) {
	var tr Transfer
	err := r.db.WithContext(ctx).
		Where("from_campus_id = ? OR to_campus_id = ?", campusID, campusID).
		First(&tr, "id = ?", id).Error
	return &tr, err
}

func (r *repository) UpdateStatusFrom(ctx context.Context, tr *Transfer, expectedStatus string) error {
	res := r.db.WithContext(ctx).
		Model(&Transfer{}).
		Where("id = ? AND status = ?", tr.ID, expectedStatus).
		Updates(map[string]any{
			"status":           tr.Status,
			"approved_by":      tr.ApprovedBy,
			"approved_at":      tr.ApprovedAt,
			"rejection_reason": tr.RejectionReason,
			"remarks":          tr.Remarks,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return approval.ErrConcurrentTransition
	}
	return nil
}

func subjectTable(subjectType string) string {
	if subjectType == SubjectStudent {
		return "students"
	}
	return "employees"
}

func (r *repository) SubjectExistsInCampus(ctx context.Context, subjectType, subjectID, campusID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table(subjectTable(subjectType)).
		Where("id = ?", subjectID).
		Where("campus_id = ?", campusID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}

func (r *repository) CampusExists(ctx context.Context, campusID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("campuses").
		Where("id = ?", campusID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}

func (r *repository) HasPendingTransfer(ctx context.Context, subjectType, subjectID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Transfer{}).
		Where("subject_type = ?", subjectType).
		Where("subject_id = ?", subjectID).
		Where("status = ?", approval.StatusPending).
		Count(&count).Error
	return count > 0, err
}

// MoveSubject repoints the subject row at the destination campus. Called in
// the same transaction as the approval so the move and the decision commit
// together.
func (r *repository) MoveSubject(ctx context.Context, subjectType, subjectID, toCampusID string) error {
	return r.db.WithContext(ctx).
		Table(subjectTable(subjectType)).
		Where("id = ?", subjectID).
		Update("campus_id", toCampusID).Error
}
