package certification

import (
	"context"
	"database/sql"

	"go-uerp/internal/shared/approval"

	"gorm.io/gorm"
)

//go:generate mockgen -source=certification_repo.go -destination=mock/certification_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateRequest(ctx context.Context, cr *CertificateRequest) error
	FindRequestPageByCampus(ctx context.Context, campusID string, offset, limit int) ([]CertificateRequest, int64, error)
	FindRequestByIDAndCampus(ctx context.Context, campusID, id string) (*CertificateRequest, error)
	UpdateRequestStatusFrom(ctx context.Context, cr *CertificateRequest, expectedStatus string) error
	MarkFeePaid(ctx context.Context, campusID, id string) error
	StudentBelongsToCampus(ctx context.Context, campusID, studentID string) (bool, error)

	CreateCertificate(ctx context.Context, c *Certificate) error
	FindCertificateByRequest(ctx context.Context, requestID string) (*Certificate, error)
	FindCertificateByCode(ctx context.Context, verificationCode string) (*Certificate, error)
	FindCertificateByNumber(ctx context.Context, certificateNumber string) (*Certificate, error)
	MarkVerified(ctx context.Context, id string) error
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

func (r *repository) CreateRequest(ctx context.Context, cr *CertificateRequest) error {
	return r.db.WithContext(ctx).Create(cr).Error
}

func (r *repository) FindRequestPageByCampus(ctx context.Context, campusID string, offset, limit int) ([]CertificateRequest, int64, error) {
	var (
		requests []CertificateRequest
		total    int64
	)

	base := r.db.WithContext(ctx).Model(&CertificateRequest{}).Where("campus_id = ?", campusID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Where("campus_id = ?", campusID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&requests).Error
	return requests, total, err
}

func (r *repository) FindRequestByIDAndCampus(ctx context.Context, campusID, id string) (*CertificateRequest, error) {
	var cr CertificateRequest
	err := r.db.WithContext(ctx).
		Where("campus_id = ?", campusID).
		First(&cr, "id = ?", id).Error
	return &cr, err
}

func (r *repository) UpdateRequestStatusFrom(ctx context.Context, cr *CertificateRequest, expectedStatus string) error {
	res := r.db.WithContext(ctx).
		Model(&CertificateRequest{}).
		Where("id = ? AND campus_id = ? AND status = ?", cr.ID, cr.CampusID, expectedStatus).
		Updates(map[string]any{
			"status":           cr.Status,
			"approved_by":      cr.ApprovedBy,
			"approved_at":      cr.ApprovedAt,
			"rejection_reason": cr.RejectionReason,
			"remarks":          cr.Remarks,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return approval.ErrConcurrentTransition
	}
	return nil
}

func (r *repository) MarkFeePaid(ctx context.Context, campusID, id string) error {
	return r.db.WithContext(ctx).
		Model(&CertificateRequest{}).
		Where("id = ? AND campus_id = ?", id, campusID).
		Update("fee_paid", true).Error
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

func (r *repository) CreateCertificate(ctx context.Context, c *Certificate) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindCertificateByRequest(ctx context.Context, requestID string) (*Certificate, error) {
	var c Certificate
	err := r.db.WithContext(ctx).
		First(&c, "request_id = ?", requestID).Error
	return &c, err
}

func (r *repository) FindCertificateByCode(ctx context.Context, verificationCode string) (*Certificate, error) {
	var c Certificate
	err := r.db.WithContext(ctx).
		First(&c, "verification_code = ?", verificationCode).Error
	return &c, err
}

func (r *repository) FindCertificateByNumber(ctx context.Context, certificateNumber string) (*Certificate, error) {
	var c Certificate
	err := r.db.WithContext(ctx).
		First(&c, "certificate_number = ?", certificateNumber).Error
	return &c, err
}

// MarkVerified flips is_verified once; later verifications leave the first
// verification time untouched.
func (r *repository) MarkVerified(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&Certificate{}).
		Where("id = ? AND is_verified = false", id).
		Updates(map[string]any{
			"is_verified":       true,
			"first_verified_at": gorm.Expr("now()"),
		}).Error
}
