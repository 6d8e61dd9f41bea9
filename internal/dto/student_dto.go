package dto

import (
	"anoa.com/schoolattendance/internal/model"
	"github.com/google/uuid"
)

type CreateStudentInput struct {
	Username  string `json:"username" binding:"required,min=3,max=50"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"`
	Password  string `json:"password" binding:"required,min=6"`
	RollNo    string `json:"roll_no" binding:"required,max=20"`
	ClassName string `json:"class_name" binding:"required"`
}

type UpdateStudentInput struct {
	Username  string `json:"username" binding:"required,min=3,max=50"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"`
	Password  string `json:"password" binding:"omitempty,min=6"`
	RollNo    string `json:"roll_no" binding:"required,max=20"`
	ClassName string `json:"class_name" binding:"required"`
}

type StudentResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	RollNo    string    `json:"roll_no"`
	ClassName string    `json:"class_name"`
}

func NewStudentResponse(s *model.Student) *StudentResponse {
	return &StudentResponse{
		ID:        s.ID,
		Username:  s.User.Username,
		FirstName: s.User.FirstName,
		LastName:  s.User.LastName,
		RollNo:    s.RollNo,
		ClassName: s.ClassName,
	}
}
