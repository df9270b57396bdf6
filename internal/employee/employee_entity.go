package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CampusID uuid.UUID `gorm:"type:uuid;not null;index:idx_employees_campus"`

	EmployeeCode string `gorm:"type:varchar(20);not null;uniqueIndex:uq_employees_campus_code,composite:campus_id"`
	FullName     string `gorm:"type:varchar(150);not null"`
	Email        string `gorm:"type:varchar(150);not null;uniqueIndex:uq_employees_email"`
	Phone        string `gorm:"type:varchar(30)"`

	Designation string    `gorm:"type:varchar(100)"`
	Department  string    `gorm:"type:varchar(100)"`
	JoinDate    time.Time `gorm:"type:date;not null"`

	Status string `gorm:"type:varchar(20);not null;default:'ACTIVE';index:idx_employees_campus"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
