package transfer

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SubjectStudent = "STUDENT"
	SubjectStaff   = "STAFF"
)

type Transfer struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SubjectType string    `gorm:"type:varchar(20);not null;index:idx_transfers_subject"`
	SubjectID   uuid.UUID `gorm:"type:uuid;not null;index:idx_transfers_subject"`

	FromCampusID uuid.UUID `gorm:"type:uuid;not null;index:idx_transfers_from_campus"`
	ToCampusID   uuid.UUID `gorm:"type:uuid;not null;index:idx_transfers_to_campus"`
	Reason       string    `gorm:"type:text"`

	Status          string     `gorm:"type:varchar(20);not null;default:'PENDING'"`
	CreatedBy       uuid.UUID  `gorm:"type:uuid;not null"`
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	RejectionReason *string    `gorm:"type:text"`
	Remarks         *string    `gorm:"type:text"`

	CreatedAt  time.Time
	UpdatedAt  time.Time
	ApprovedAt *time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index:idx_transfers_deleted_at"`
}
