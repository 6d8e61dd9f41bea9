package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Student is the enrollee record tied 1:1 to a User account, same lifecycle
// coupling as Teacher.
type Student struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"user"`
	RollNo    string    `gorm:"size:20;uniqueIndex;not null" json:"roll_no"`
	ClassName string    `gorm:"size:50" json:"class_name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (s *Student) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
