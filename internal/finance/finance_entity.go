package finance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	FeeStatusUnpaid  = "UNPAID"
	FeeStatusPartial = "PARTIAL"
	FeeStatusPaid    = "PAID"
)

// Fee amounts are stored in the smallest currency unit.
type Fee struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CampusID  uuid.UUID `gorm:"type:uuid;not null;index:idx_fees_campus_status"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;index:idx_fees_student"`

	FeeType    string    `gorm:"type:varchar(50);not null"`
	Amount     int64     `gorm:"type:bigint;not null"`
	PaidAmount int64     `gorm:"type:bigint;not null;default:0"`
	DueDate    time.Time `gorm:"type:date;not null"`

	Status    string    `gorm:"type:varchar(20);not null;default:'UNPAID';index:idx_fees_campus_status"`
	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_fees_deleted_at"`
}

type Payment struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CampusID uuid.UUID `gorm:"type:uuid;not null;index:idx_payments_campus"`
	FeeID    uuid.UUID `gorm:"type:uuid;not null;index:idx_payments_fee"`

	Amount     int64     `gorm:"type:bigint;not null"`
	Method     string    `gorm:"type:varchar(30);not null"`
	Reference  *string   `gorm:"type:varchar(100)"`
	ReceivedBy uuid.UUID `gorm:"type:uuid;not null"`
	PaidAt     time.Time `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
