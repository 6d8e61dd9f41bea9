package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Course keeps an optional assigned teacher (nulled when the teacher is
// deleted) and a many-to-many enrollment set. TotalLectures must be positive;
// the services enforce it on create and update.
type Course struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string     `gorm:"size:100;not null" json:"name"`
	Code          string     `gorm:"size:20;uniqueIndex;not null" json:"code"`
	TeacherID     *uuid.UUID `gorm:"type:uuid" json:"teacher_id"`
	Teacher       *Teacher   `gorm:"constraint:OnDelete:SET NULL" json:"teacher,omitempty"`
	Students      []Student  `gorm:"many2many:course_students;constraint:OnDelete:CASCADE" json:"students"`
	TotalLectures int        `gorm:"not null" json:"total_lectures"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
