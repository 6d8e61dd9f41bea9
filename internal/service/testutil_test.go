package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"anoa.com/schoolattendance/internal/dto"
	"anoa.com/schoolattendance/internal/model"
	"anoa.com/schoolattendance/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an isolated in-memory database, migrates the schema and
// seeds the three roles. The database name is derived from the test name so
// parallel tests never share state.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Role{},
		&model.User{},
		&model.Teacher{},
		&model.Student{},
		&model.Course{},
		&model.AttendanceRecord{},
	))

	roles := []model.Role{
		{Name: model.RoleAdmin},
		{Name: model.RoleTeacher},
		{Name: model.RoleStudent},
	}
	require.NoError(t, db.Create(&roles).Error)

	return db
}

type testEnv struct {
	db             *gorm.DB
	userRepo       repository.UserRepository
	teacherRepo    repository.TeacherRepository
	studentRepo    repository.StudentRepository
	courseRepo     repository.CourseRepository
	attendanceRepo repository.AttendanceRepository

	teachers   TeacherService
	students   StudentService
	courses    CourseService
	attendance AttendanceService
	dashboard  DashboardService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := setupTestDB(t)
	env := &testEnv{
		db:             db,
		userRepo:       repository.NewUserRepository(db),
		teacherRepo:    repository.NewTeacherRepository(db),
		studentRepo:    repository.NewStudentRepository(db),
		courseRepo:     repository.NewCourseRepository(db),
		attendanceRepo: repository.NewAttendanceRepository(db),
	}

	env.teachers = NewTeacherService(env.teacherRepo, env.userRepo)
	env.students = NewStudentService(env.studentRepo, env.userRepo)
	env.courses = NewCourseService(env.courseRepo, env.teacherRepo, env.studentRepo)
	env.attendance = NewAttendanceService(env.attendanceRepo, env.courseRepo, env.teacherRepo)
	env.dashboard = NewDashboardService(env.teacherRepo, env.studentRepo, env.courseRepo, env.attendanceRepo)

	return env
}

func (e *testEnv) createTeacher(t *testing.T, username, employeeID string) *dto.TeacherResponse {
	t.Helper()

	res, err := e.teachers.Create(context.Background(), dto.CreateTeacherInput{
		Username:   username,
		FirstName:  "Test",
		LastName:   "Teacher",
		Password:   "secret123",
		EmployeeID: employeeID,
		Department: "Mathematics",
	})
	require.NoError(t, err)
	return res
}

func (e *testEnv) createStudent(t *testing.T, username, rollNo string) *dto.StudentResponse {
	t.Helper()

	res, err := e.students.Create(context.Background(), dto.CreateStudentInput{
		Username:  username,
		FirstName: "Test",
		LastName:  "Student",
		Password:  "secret123",
		RollNo:    rollNo,
		ClassName: "10-A",
	})
	require.NoError(t, err)
	return res
}

func (e *testEnv) createCourse(t *testing.T, name, code string, teacherID *uuid.UUID, studentIDs []uuid.UUID, totalLectures int) *dto.CourseResponse {
	t.Helper()

	res, err := e.courses.Create(context.Background(), dto.CreateCourseInput{
		Name:          name,
		Code:          code,
		TeacherID:     teacherID,
		StudentIDs:    studentIDs,
		TotalLectures: totalLectures,
	})
	require.NoError(t, err)
	return res
}

// userIDOfTeacher resolves the account id behind a teacher record.
func (e *testEnv) userIDOfTeacher(t *testing.T, teacherID uuid.UUID) uuid.UUID {
	t.Helper()

	teacher, err := e.teacherRepo.FindByID(context.Background(), teacherID)
	require.NoError(t, err)
	return teacher.UserID
}

// userIDOfStudent resolves the account id behind a student record.
func (e *testEnv) userIDOfStudent(t *testing.T, studentID uuid.UUID) uuid.UUID {
	t.Helper()

	student, err := e.studentRepo.FindByID(context.Background(), studentID)
	require.NoError(t, err)
	return student.UserID
}
