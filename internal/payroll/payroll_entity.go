package payroll

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Salary amounts are stored in the smallest currency unit to avoid floating
// point error.
type Salary struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CampusID   uuid.UUID `gorm:"type:uuid;not null;index:idx_salaries_campus_status"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_salaries_employee_period,unique"`

	PeriodStart time.Time `gorm:"type:date;not null;index:idx_salaries_employee_period,unique"`
	PeriodEnd   time.Time `gorm:"type:date;not null;index:idx_salaries_employee_period,unique"`

	BasicSalary     int64 `gorm:"type:bigint;not null;default:0"`
	HouseRent       int64 `gorm:"type:bigint;not null;default:0"`
	MedicalAllow    int64 `gorm:"type:bigint;not null;default:0"`
	TransportAllow  int64 `gorm:"type:bigint;not null;default:0"`
	OtherAllowances int64 `gorm:"type:bigint;not null;default:0"`
	ProvidentFund   int64 `gorm:"type:bigint;not null;default:0"`
	Tax             int64 `gorm:"type:bigint;not null;default:0"`
	OtherDeductions int64 `gorm:"type:bigint;not null;default:0"`
	GrossSalary     int64 `gorm:"type:bigint;not null;default:0"`
	NetSalary       int64 `gorm:"type:bigint;not null;default:0"`

	Status     string     `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_salaries_campus_status"`
	CreatedBy  uuid.UUID  `gorm:"type:uuid;not null"`
	ApprovedBy *uuid.UUID `gorm:"type:uuid"`
	Remarks    *string    `gorm:"type:text"`

	CreatedAt  time.Time
	UpdatedAt  time.Time
	ApprovedAt *time.Time `gorm:"index"`
	PaidAt     *time.Time `gorm:"index"`
	DeletedAt  gorm.DeletedAt `gorm:"index:idx_salaries_deleted_at"`
}
