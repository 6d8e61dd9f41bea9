package service

import (
	"context"
	"errors"
	"math"

	"anoa.com/schoolattendance/internal/dto"
	"anoa.com/schoolattendance/internal/repository"
	"anoa.com/schoolattendance/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DashboardService interface {
	Admin(ctx context.Context) (*dto.AdminDashboardResponse, error)
	Teacher(ctx context.Context, callerUserID uuid.UUID) (*dto.TeacherDashboardResponse, error)
	Student(ctx context.Context, callerUserID uuid.UUID) (*dto.StudentDashboardResponse, error)
}

type dashboardService struct {
	teacherRepo    repository.TeacherRepository
	studentRepo    repository.StudentRepository
	courseRepo     repository.CourseRepository
	attendanceRepo repository.AttendanceRepository
}

func NewDashboardService(
	teacherRepo repository.TeacherRepository,
	studentRepo repository.StudentRepository,
	courseRepo repository.CourseRepository,
	attendanceRepo repository.AttendanceRepository,
) DashboardService {
	return &dashboardService{
		teacherRepo:    teacherRepo,
		studentRepo:    studentRepo,
		courseRepo:     courseRepo,
		attendanceRepo: attendanceRepo,
	}
}

func (s *dashboardService) Admin(ctx context.Context) (*dto.AdminDashboardResponse, error) {
	teachers, err := s.teacherRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	students, err := s.studentRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	courses, err := s.courseRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.AdminDashboardResponse{
		Teachers: teachers,
		Students: students,
		Courses:  courses,
	}, nil
}

func (s *dashboardService) Teacher(ctx context.Context, callerUserID uuid.UUID) (*dto.TeacherDashboardResponse, error) {
	teacher, err := s.teacherRepo.FindByUserID(ctx, callerUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Forbidden("teacher access required")
		}
		return nil, err
	}

	courses, err := s.courseRepo.FindByTeacherID(ctx, teacher.ID)
	if err != nil {
		return nil, err
	}

	response := &dto.TeacherDashboardResponse{
		Teacher: dto.NewTeacherResponse(teacher),
		Courses: make([]dto.CourseResponse, 0, len(courses)),
	}
	for _, c := range courses {
		response.Courses = append(response.Courses, *dto.NewCourseResponse(c))
	}

	return response, nil
}

// Student computes the per-course attendance summary for the caller, one
// entry per enrolled course in course iteration order.
func (s *dashboardService) Student(ctx context.Context, callerUserID uuid.UUID) (*dto.StudentDashboardResponse, error) {
	student, err := s.studentRepo.FindByUserID(ctx, callerUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Forbidden("student access required")
		}
		return nil, err
	}

	courses, err := s.courseRepo.FindByStudentID(ctx, student.ID)
	if err != nil {
		return nil, err
	}

	response := &dto.StudentDashboardResponse{
		Student: dto.NewStudentResponse(student),
		Courses: make([]dto.StudentCourseSummary, 0, len(courses)),
	}

	for _, course := range courses {
		attended, err := s.attendanceRepo.CountPresent(ctx, course.ID, student.ID)
		if err != nil {
			return nil, err
		}

		total := course.TotalLectures

		var percentage float64
		if total > 0 {
			percentage = round2(float64(attended) / float64(total) * 100)
		}

		status := dto.StatusInProgress
		if total > 0 && attended >= int64(total) {
			status = dto.StatusCompleted
		}

		response.Courses = append(response.Courses, dto.StudentCourseSummary{
			Course:     *dto.NewCourseResponse(course),
			Attended:   attended,
			Total:      total,
			Percentage: percentage,
			Status:     status,
		})
	}

	return response, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
