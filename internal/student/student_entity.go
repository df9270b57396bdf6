package student

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Student struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CampusID uuid.UUID `gorm:"type:uuid;not null;index:idx_students_campus"`

	RollNumber string `gorm:"type:varchar(20);not null;uniqueIndex:uq_students_campus_roll,composite:campus_id"`
	FullName   string `gorm:"type:varchar(150);not null"`
	Email      string `gorm:"type:varchar(150)"`
	Phone      string `gorm:"type:varchar(30)"`

	Program        string    `gorm:"type:varchar(100);not null"`
	EnrollmentDate time.Time `gorm:"type:date;not null"`

	Status string `gorm:"type:varchar(20);not null;default:'ACTIVE';index:idx_students_campus"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
