package dto

import (
	"anoa.com/schoolattendance/internal/model"
	"github.com/google/uuid"
)

type CreateTeacherInput struct {
	Username   string `json:"username" binding:"required,min=3,max=50"`
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name"`
	Password   string `json:"password" binding:"required,min=6"`
	EmployeeID string `json:"employee_id" binding:"required,max=20"`
	Department string `json:"department" binding:"required"`
}

type UpdateTeacherInput struct {
	Username   string `json:"username" binding:"required,min=3,max=50"`
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name"`
	Password   string `json:"password" binding:"omitempty,min=6"`
	EmployeeID string `json:"employee_id" binding:"required,max=20"`
	Department string `json:"department" binding:"required"`
}

type TeacherResponse struct {
	ID         uuid.UUID `json:"id"`
	Username   string    `json:"username"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	EmployeeID string    `json:"employee_id"`
	Department string    `json:"department"`
}

func NewTeacherResponse(t *model.Teacher) *TeacherResponse {
	return &TeacherResponse{
		ID:         t.ID,
		Username:   t.User.Username,
		FirstName:  t.User.FirstName,
		LastName:   t.User.LastName,
		EmployeeID: t.EmployeeID,
		Department: t.Department,
	}
}
