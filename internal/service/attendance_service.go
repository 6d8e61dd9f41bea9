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

type AttendanceService interface {
	Form(ctx context.Context, callerUserID, courseID uuid.UUID) (*dto.AttendanceFormResponse, error)
	Take(ctx context.Context, callerUserID, courseID uuid.UUID, input dto.TakeAttendanceInput) (*dto.TakeAttendanceResponse, error)
}

type attendanceService struct {
	repo        repository.AttendanceRepository
	courseRepo  repository.CourseRepository
	teacherRepo repository.TeacherRepository
}

func NewAttendanceService(repo repository.AttendanceRepository, courseRepo repository.CourseRepository, teacherRepo repository.TeacherRepository) AttendanceService {
	return &attendanceService{
		repo:        repo,
		courseRepo:  courseRepo,
		teacherRepo: teacherRepo,
	}
}

// Form returns the data the take-attendance page needs: the course, its
// enrolled students and whether today's attendance was already recorded.
func (s *attendanceService) Form(ctx context.Context, callerUserID, courseID uuid.UUID) (*dto.AttendanceFormResponse, error) {
	course, err := s.authorizeOwner(ctx, callerUserID, courseID)
	if err != nil {
		return nil, err
	}

	today := model.Today()
	taken, err := s.repo.ExistsForCourseDate(ctx, courseID, today)
	if err != nil {
		return nil, err
	}

	students := make([]dto.StudentResponse, 0, len(course.Students))
	for i := range course.Students {
		students = append(students, *dto.NewStudentResponse(&course.Students[i]))
	}

	return &dto.AttendanceFormResponse{
		Course:     dto.NewCourseResponse(course),
		Students:   students,
		Today:      today,
		TakenToday: taken,
	}, nil
}

// Take records today's attendance for every enrolled student, exactly once
// per course per calendar day. A second submission for the same day is
// rejected without writing anything.
func (s *attendanceService) Take(ctx context.Context, callerUserID, courseID uuid.UUID, input dto.TakeAttendanceInput) (*dto.TakeAttendanceResponse, error) {
	course, err := s.authorizeOwner(ctx, callerUserID, courseID)
	if err != nil {
		return nil, err
	}

	today := model.Today()
	taken, err := s.repo.ExistsForCourseDate(ctx, courseID, today)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperror.Conflict("attendance already taken for today")
	}

	present := make(map[uuid.UUID]bool, len(input.PresentStudentIDs))
	for _, id := range input.PresentStudentIDs {
		present[id] = true
	}

	records := make([]model.AttendanceRecord, 0, len(course.Students))
	for _, student := range course.Students {
		status := model.AttendanceAbsent
		if present[student.ID] {
			status = model.AttendancePresent
		}
		records = append(records, model.AttendanceRecord{
			CourseID:  course.ID,
			StudentID: student.ID,
			Date:      today,
			Status:    status,
		})
	}

	if err := s.repo.CreateBatch(ctx, records); err != nil {
		// A concurrent submission can slip past the pre-check and lose the
		// race on the uniqueness constraint; surface it as the same outcome.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("attendance already taken for today")
		}
		return nil, err
	}

	response := &dto.TakeAttendanceResponse{
		CourseID: course.ID,
		Date:     today,
		Records:  make([]dto.AttendanceRecordResponse, 0, len(records)),
	}
	for i := range records {
		response.Records = append(response.Records, dto.NewAttendanceRecordResponse(&records[i]))
	}

	return response, nil
}

// authorizeOwner checks that the caller has a teacher record and is the
// course's assigned teacher.
func (s *attendanceService) authorizeOwner(ctx context.Context, callerUserID, courseID uuid.UUID) (*model.Course, error) {
	teacher, err := s.teacherRepo.FindByUserID(ctx, callerUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Forbidden("teacher access required")
		}
		return nil, err
	}

	course, err := s.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("course not found")
		}
		return nil, err
	}

	if course.TeacherID == nil || *course.TeacherID != teacher.ID {
		return nil, apperror.Forbidden("not the assigned teacher of this course")
	}

	return course, nil
}
