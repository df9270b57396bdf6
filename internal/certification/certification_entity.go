package certification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CertificateRequest is the approval-gated application; fee amounts are in
// the smallest currency unit.
type CertificateRequest struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CampusID  uuid.UUID `gorm:"type:uuid;not null;index:idx_cert_requests_campus_status"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;index:idx_cert_requests_student"`

	CertificateType string `gorm:"type:varchar(50);not null"`
	Purpose         string `gorm:"type:text"`
	FeeAmount       int64  `gorm:"type:bigint;not null;default:0"`
	FeePaid         bool   `gorm:"not null;default:false"`

	Status          string     `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_cert_requests_campus_status"`
	CreatedBy       uuid.UUID  `gorm:"type:uuid;not null"`
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	RejectionReason *string    `gorm:"type:text"`
	Remarks         *string    `gorm:"type:text"`

	CreatedAt  time.Time
	UpdatedAt  time.Time
	ApprovedAt *time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index:idx_cert_requests_deleted_at"`
}

type Certificate struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RequestID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_certificates_request"`
	CampusID  uuid.UUID `gorm:"type:uuid;not null;index:idx_certificates_campus"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;index:idx_certificates_student"`

	CertificateType   string `gorm:"type:varchar(50);not null"`
	CertificateNumber string `gorm:"type:varchar(40);not null;uniqueIndex:uq_certificates_number"`
	VerificationCode  string `gorm:"type:varchar(40);not null;uniqueIndex:uq_certificates_verification"`

	IsVerified      bool       `gorm:"not null;default:false"`
	FirstVerifiedAt *time.Time

	IssuedAt  time.Time `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
