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

type StudentService interface {
	List(ctx context.Context) ([]*dto.StudentResponse, error)
	Create(ctx context.Context, input dto.CreateStudentInput) (*dto.StudentResponse, error)
	Update(ctx context.Context, id uuid.UUID, input dto.UpdateStudentInput) (*dto.StudentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type studentService struct {
	repo     repository.StudentRepository
	userRepo repository.UserRepository
}

func NewStudentService(repo repository.StudentRepository, userRepo repository.UserRepository) StudentService {
	return &studentService{
		repo:     repo,
		userRepo: userRepo,
	}
}

func (s *studentService) List(ctx context.Context) ([]*dto.StudentResponse, error) {
	students, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.StudentResponse, 0, len(students))
	for _, st := range students {
		response = append(response, dto.NewStudentResponse(st))
	}

	return response, nil
}

func (s *studentService) Create(ctx context.Context, input dto.CreateStudentInput) (*dto.StudentResponse, error) {
	if err := s.checkUnique(ctx, input.Username, input.RollNo, uuid.Nil, uuid.Nil); err != nil {
		return nil, err
	}

	role, err := s.userRepo.FindRoleByName(ctx, model.RoleStudent)
	if err != nil {
		return nil, fmt.Errorf("role %s not found", model.RoleStudent)
	}

	user, err := newIdentity(role, input.Username, input.FirstName, input.LastName, input.Password)
	if err != nil {
		return nil, err
	}

	student := &model.Student{
		RollNo:    input.RollNo,
		ClassName: input.ClassName,
	}

	if err := s.repo.Create(ctx, user, student); err != nil {
		return nil, err
	}

	student.User = *user
	return dto.NewStudentResponse(student), nil
}

func (s *studentService) Update(ctx context.Context, id uuid.UUID, input dto.UpdateStudentInput) (*dto.StudentResponse, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("student not found")
		}
		return nil, err
	}

	if err := s.checkUnique(ctx, input.Username, input.RollNo, student.UserID, student.ID); err != nil {
		return nil, err
	}

	user := student.User
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

	student.RollNo = input.RollNo
	student.ClassName = input.ClassName

	if err := s.repo.Update(ctx, &user, student); err != nil {
		return nil, err
	}

	student.User = user
	return dto.NewStudentResponse(student), nil
}

func (s *studentService) Delete(ctx context.Context, id uuid.UUID) error {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("student not found")
		}
		return err
	}

	return s.repo.Delete(ctx, student)
}

func (s *studentService) checkUnique(ctx context.Context, username, rollNo string, excludeUserID, excludeStudentID uuid.UUID) error {
	taken, err := s.userRepo.UsernameTaken(ctx, username, excludeUserID)
	if err != nil {
		return err
	}
	if taken {
		return apperror.Conflict("username already exists")
	}

	taken, err = s.repo.RollNoTaken(ctx, rollNo, excludeStudentID)
	if err != nil {
		return err
	}
	if taken {
		return apperror.Conflict("roll number already exists")
	}

	return nil
}
