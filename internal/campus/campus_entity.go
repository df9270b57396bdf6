package campus

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Campus struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name string    `gorm:"type:varchar(150);not null"`
	Code string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_campuses_code"`

	City    string `gorm:"type:varchar(100)"`
	Address string `gorm:"type:text"`
	Phone   string `gorm:"type:varchar(30)"`

	IsActive bool `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
