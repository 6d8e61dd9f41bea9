package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttendanceStatus is the presence state of a single record. It is stored as
// one enum column; the legacy is_present/is_absent pair exists only at the
// JSON boundary.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	return s == AttendancePresent || s == AttendanceAbsent
}

// DateLayout is the calendar-day format used by attendance records.
const DateLayout = "2006-01-02"

// AttendanceRecord is the presence fact for one student, one course, one
// date. At most one record may exist per (course, student, date).
type AttendanceRecord struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID  uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_course_student_date" json:"course_id"`
	Course    Course           `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	StudentID uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_course_student_date" json:"student_id"`
	Student   Student          `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Date      string           `gorm:"size:10;not null;uniqueIndex:idx_attendance_course_student_date" json:"date"`
	Status    AttendanceStatus `gorm:"size:10;not null" json:"status"`
	CreatedAt time.Time        `gorm:"autoCreateTime" json:"created_at"`
}

func (r *AttendanceRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// IsPresent reports the legacy boolean view of Status.
func (r AttendanceRecord) IsPresent() bool {
	return r.Status == AttendancePresent
}

// Today returns the server's current date in DateLayout.
func Today() string {
	return time.Now().Format(DateLayout)
}
