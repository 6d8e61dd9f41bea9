package dto

import (
	"anoa.com/schoolattendance/internal/model"
	"github.com/google/uuid"
)

type CreateCourseInput struct {
	Name          string      `json:"name" binding:"required,max=100"`
	Code          string      `json:"code" binding:"required,max=20"`
	TeacherID     *uuid.UUID  `json:"teacher_id"`
	StudentIDs    []uuid.UUID `json:"student_ids"`
	TotalLectures int         `json:"total_lectures"`
}

type UpdateCourseInput struct {
	Name          string      `json:"name" binding:"required,max=100"`
	Code          string      `json:"code" binding:"required,max=20"`
	TeacherID     *uuid.UUID  `json:"teacher_id"`
	StudentIDs    []uuid.UUID `json:"student_ids"`
	TotalLectures int         `json:"total_lectures"`
}

type CourseResponse struct {
	ID            uuid.UUID         `json:"id"`
	Name          string            `json:"name"`
	Code          string            `json:"code"`
	TotalLectures int               `json:"total_lectures"`
	Teacher       *TeacherResponse  `json:"teacher"`
	Students      []StudentResponse `json:"students"`
}

func NewCourseResponse(c *model.Course) *CourseResponse {
	resp := &CourseResponse{
		ID:            c.ID,
		Name:          c.Name,
		Code:          c.Code,
		TotalLectures: c.TotalLectures,
		Students:      []StudentResponse{},
	}

	if c.Teacher != nil {
		resp.Teacher = NewTeacherResponse(c.Teacher)
	}

	for i := range c.Students {
		resp.Students = append(resp.Students, *NewStudentResponse(&c.Students[i]))
	}

	return resp
}
