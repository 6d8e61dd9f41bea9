package service

import (
	"context"
	"errors"
	"fmt"

	"anoa.com/schoolattendance/internal/dto"
	"anoa.com/schoolattendance/internal/model"
	"anoa.com/schoolattendance/internal/repository"
	"anoa.com/schoolattendance/pkg/apperror"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type TeacherService interface {
	List(ctx context.Context) ([]*dto.TeacherResponse, error)
	Create(ctx context.Context, input dto.CreateTeacherInput) (*dto.TeacherResponse, error)
	Update(ctx context.Context, id uuid.UUID, input dto.UpdateTeacherInput) (*dto.TeacherResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type teacherService struct {
	repo     repository.TeacherRepository
	userRepo repository.UserRepository
}

func NewTeacherService(repo repository.TeacherRepository, userRepo repository.UserRepository) TeacherService {
	return &teacherService{
		repo:     repo,
		userRepo: userRepo,
	}
}

func (s *teacherService) List(ctx context.Context) ([]*dto.TeacherResponse, error) {
	teachers, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.TeacherResponse, 0, len(teachers))
	for _, t := range teachers {
		response = append(response, dto.NewTeacherResponse(t))
	}

	return response, nil
}

// Create registers the account and the teacher record atomically. The role
// is always forced to TEACHER regardless of the system default.
func (s *teacherService) Create(ctx context.Context, input dto.CreateTeacherInput) (*dto.TeacherResponse, error) {
	if err := s.checkUnique(ctx, input.Username, input.EmployeeID, uuid.Nil, uuid.Nil); err != nil {
		return nil, err
	}

	role, err := s.userRepo.FindRoleByName(ctx, model.RoleTeacher)
	if err != nil {
		return nil, fmt.Errorf("role %s not found", model.RoleTeacher)
	}

	user, err := newIdentity(role, input.Username, input.FirstName, input.LastName, input.Password)
	if err != nil {
		return nil, err
	}

	teacher := &model.Teacher{
		EmployeeID: input.EmployeeID,
		Department: input.Department,
	}

	if err := s.repo.Create(ctx, user, teacher); err != nil {
		return nil, err
	}

	teacher.User = *user
	return dto.NewTeacherResponse(teacher), nil
}

func (s *teacherService) Update(ctx context.Context, id uuid.UUID, input dto.UpdateTeacherInput) (*dto.TeacherResponse, error) {
	teacher, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("teacher not found")
		}
		return nil, err
	}

	if err := s.checkUnique(ctx, input.Username, input.EmployeeID, teacher.UserID, teacher.ID); err != nil {
		return nil, err
	}

	user := teacher.User
	user.Username = input.Username
	user.FirstName = input.FirstName
	user.LastName = input.LastName

	// Password is changed only when a new value is supplied.
	if input.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hashed)
	}

	teacher.EmployeeID = input.EmployeeID
	teacher.Department = input.Department

	if err := s.repo.Update(ctx, &user, teacher); err != nil {
		return nil, err
	}

	teacher.User = user
	return dto.NewTeacherResponse(teacher), nil
}

// Delete removes the underlying account; the teacher record goes with it and
// the teacher's courses are left unassigned.
func (s *teacherService) Delete(ctx context.Context, id uuid.UUID) error {
	teacher, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("teacher not found")
		}
		return err
	}

	return s.repo.Delete(ctx, teacher)
}

func (s *teacherService) checkUnique(ctx context.Context, username, employeeID string, excludeUserID, excludeTeacherID uuid.UUID) error {
	taken, err := s.userRepo.UsernameTaken(ctx, username, excludeUserID)
	if err != nil {
		return err
	}
	if taken {
		return apperror.Conflict("username already exists")
	}

	taken, err = s.repo.EmployeeIDTaken(ctx, employeeID, excludeTeacherID)
	if err != nil {
		return err
	}
	if taken {
		return apperror.Conflict("employee ID already exists")
	}

	return nil
}
