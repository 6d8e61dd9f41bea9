package dto

import (
	"anoa.com/schoolattendance/internal/model"
	"github.com/google/uuid"
)

type TakeAttendanceInput struct {
	PresentStudentIDs []uuid.UUID `json:"present_student_ids"`
}

// AttendanceRecordResponse keeps the legacy is_present/is_absent pair at the
// serialization boundary; internally only Status is stored.
type AttendanceRecordResponse struct {
	StudentID uuid.UUID `json:"student_id"`
	Date      string    `json:"date"`
	IsPresent bool      `json:"is_present"`
	IsAbsent  bool      `json:"is_absent"`
}

func NewAttendanceRecordResponse(r *model.AttendanceRecord) AttendanceRecordResponse {
	present := r.IsPresent()
	return AttendanceRecordResponse{
		StudentID: r.StudentID,
		Date:      r.Date,
		IsPresent: present,
		IsAbsent:  !present,
	}
}

// AttendanceFormResponse is the JSON equivalent of the take-attendance form.
type AttendanceFormResponse struct {
	Course     *CourseResponse   `json:"course"`
	Students   []StudentResponse `json:"students"`
	Today      string            `json:"today"`
	TakenToday bool              `json:"taken_today"`
}

type TakeAttendanceResponse struct {
	CourseID uuid.UUID                  `json:"course_id"`
	Date     string                     `json:"date"`
	Records  []AttendanceRecordResponse `json:"records"`
}
