package service

import (
	"context"
	"errors"

	"anoa.com/schoolattendance/internal/dto"
	"anoa.com/schoolattendance/internal/model"
	"anoa.com/schoolattendance/internal/repository"
	"anoa.com/schoolattendance/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseService interface {
	List(ctx context.Context) ([]*dto.CourseResponse, error)
	Create(ctx context.Context, input dto.CreateCourseInput) (*dto.CourseResponse, error)
	Update(ctx context.Context, id uuid.UUID, input dto.UpdateCourseInput) (*dto.CourseResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type courseService struct {
	repo        repository.CourseRepository
	teacherRepo repository.TeacherRepository
	studentRepo repository.StudentRepository
}

func NewCourseService(repo repository.CourseRepository, teacherRepo repository.TeacherRepository, studentRepo repository.StudentRepository) CourseService {
	return &courseService{
		repo:        repo,
		teacherRepo: teacherRepo,
		studentRepo: studentRepo,
	}
}

func (s *courseService) List(ctx context.Context) ([]*dto.CourseResponse, error) {
	courses, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.CourseResponse, 0, len(courses))
	for _, c := range courses {
		response = append(response, dto.NewCourseResponse(c))
	}

	return response, nil
}

func (s *courseService) Create(ctx context.Context, input dto.CreateCourseInput) (*dto.CourseResponse, error) {
	if err := s.validate(ctx, input.Code, input.TotalLectures, uuid.Nil); err != nil {
		return nil, err
	}

	students, err := s.studentRepo.FindByIDs(ctx, input.StudentIDs)
	if err != nil {
		return nil, err
	}

	course := &model.Course{
		Name:          input.Name,
		Code:          input.Code,
		TeacherID:     s.resolveTeacher(ctx, input.TeacherID),
		Students:      students,
		TotalLectures: input.TotalLectures,
	}

	if err := s.repo.Create(ctx, course); err != nil {
		return nil, err
	}

	created, err := s.repo.FindByID(ctx, course.ID)
	if err != nil {
		return nil, err
	}

	return dto.NewCourseResponse(created), nil
}

// Update fully replaces the teacher assignment and the enrollment set.
func (s *courseService) Update(ctx context.Context, id uuid.UUID, input dto.UpdateCourseInput) (*dto.CourseResponse, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("course not found")
		}
		return nil, err
	}

	if err := s.validate(ctx, input.Code, input.TotalLectures, course.ID); err != nil {
		return nil, err
	}

	students, err := s.studentRepo.FindByIDs(ctx, input.StudentIDs)
	if err != nil {
		return nil, err
	}

	course.Name = input.Name
	course.Code = input.Code
	course.TeacherID = s.resolveTeacher(ctx, input.TeacherID)
	course.Teacher = nil
	course.TotalLectures = input.TotalLectures

	if err := s.repo.Update(ctx, course, students); err != nil {
		return nil, err
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return dto.NewCourseResponse(updated), nil
}

func (s *courseService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("course not found")
		}
		return err
	}

	return s.repo.Delete(ctx, id)
}

func (s *courseService) validate(ctx context.Context, code string, totalLectures int, excludeID uuid.UUID) error {
	taken, err := s.repo.CodeTaken(ctx, code, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return apperror.Conflict("course code already exists")
	}

	if totalLectures <= 0 {
		return apperror.BadRequest("total lectures must be greater than 0")
	}

	return nil
}

// resolveTeacher mirrors the lenient assignment of the original flow: an
// unknown teacher id leaves the course unassigned instead of failing.
func (s *courseService) resolveTeacher(ctx context.Context, teacherID *uuid.UUID) *uuid.UUID {
	if teacherID == nil {
		return nil
	}
	teacher, err := s.teacherRepo.FindByID(ctx, *teacherID)
	if err != nil {
		return nil
	}
	return &teacher.ID
}
