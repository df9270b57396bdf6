package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CampusID uuid.UUID `gorm:"type:uuid;not null;index"`

	// Set when the account belongs to a staff member
	EmployeeID *uuid.UUID `gorm:"type:uuid;index"`

	Email        string `gorm:"type:varchar(150);not null;uniqueIndex:uq_users_email"`
	PasswordHash string `gorm:"type:varchar(100);not null"`
	FullName     string `gorm:"type:varchar(150);not null"`
	Role         string `gorm:"type:varchar(30);not null;default:'STAFF'"`

	IsActive bool `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
