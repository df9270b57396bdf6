package admission

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusApplied    = "APPLIED"
	StatusSelected   = "SELECTED"
	StatusWaitlisted = "WAITLISTED"
	StatusWithdrawn  = "WITHDRAWN"
)

type Application struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CampusID  uuid.UUID `gorm:"type:uuid;not null;index:idx_applications_campus_program"`
	ProgramID uuid.UUID `gorm:"type:uuid;not null;index:idx_applications_campus_program"`

	ApplicantName    string  `gorm:"type:varchar(255);not null"`
	Email            string  `gorm:"type:varchar(255);not null"`
	Phone            string  `gorm:"type:varchar(50)"`
	EligibilityScore float64 `gorm:"type:numeric(6,2);not null"`

	Status      string    `gorm:"type:varchar(20);not null;default:'APPLIED'"`
	MeritRank   *int      `gorm:"type:int"`
	SubmittedAt time.Time `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_applications_deleted_at"`
}
