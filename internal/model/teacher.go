package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Teacher is the staff record tied 1:1 to a User account. Deleting the
// account removes the record.
type Teacher struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User       User      `gorm:"constraint:OnDelete:CASCADE" json:"user"`
	EmployeeID string    `gorm:"size:20;uniqueIndex;not null" json:"employee_id"`
	Department string    `gorm:"size:100" json:"department"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (t *Teacher) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
