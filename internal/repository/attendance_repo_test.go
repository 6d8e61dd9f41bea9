package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"anoa.com/schoolattendance/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

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

	return db
}

func seedCourseAndStudent(t *testing.T, db *gorm.DB) (uuid.UUID, uuid.UUID) {
	t.Helper()

	user := model.User{Username: "asmith", PasswordHash: "x", FirstName: "Alice"}
	require.NoError(t, db.Create(&user).Error)

	student := model.Student{UserID: user.ID, RollNo: "R001", ClassName: "10-A"}
	require.NoError(t, db.Create(&student).Error)

	course := model.Course{Name: "Algebra", Code: "MATH101", TotalLectures: 10}
	require.NoError(t, db.Create(&course).Error)

	return course.ID, student.ID
}

// The (course, student, date) uniqueness lives in the schema, not only in the
// service pre-check, so a lost race still cannot double-record a day.
func TestCreateBatchDuplicateDayRejected(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewAttendanceRepository(db)

	courseID, studentID := seedCourseAndStudent(t, db)

	first := []model.AttendanceRecord{{
		CourseID:  courseID,
		StudentID: studentID,
		Date:      "2026-01-05",
		Status:    model.AttendancePresent,
	}}
	require.NoError(t, repo.CreateBatch(ctx, first))

	second := []model.AttendanceRecord{{
		CourseID:  courseID,
		StudentID: studentID,
		Date:      "2026-01-05",
		Status:    model.AttendanceAbsent,
	}}
	err := repo.CreateBatch(ctx, second)
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// The failed batch rolled back; the original record is untouched.
	records, err := repo.FindByCourseDate(ctx, courseID, "2026-01-05")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, model.AttendancePresent, records[0].Status)
}

func TestCreateBatchAllowsDifferentDays(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewAttendanceRepository(db)

	courseID, studentID := seedCourseAndStudent(t, db)

	for _, date := range []string{"2026-01-05", "2026-01-06"} {
		err := repo.CreateBatch(ctx, []model.AttendanceRecord{{
			CourseID:  courseID,
			StudentID: studentID,
			Date:      date,
			Status:    model.AttendancePresent,
		}})
		require.NoError(t, err)
	}

	count, err := repo.CountPresent(ctx, courseID, studentID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestCountPresentIgnoresAbsences(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewAttendanceRepository(db)

	courseID, studentID := seedCourseAndStudent(t, db)

	require.NoError(t, repo.CreateBatch(ctx, []model.AttendanceRecord{
		{CourseID: courseID, StudentID: studentID, Date: "2026-01-05", Status: model.AttendancePresent},
	}))
	require.NoError(t, repo.CreateBatch(ctx, []model.AttendanceRecord{
		{CourseID: courseID, StudentID: studentID, Date: "2026-01-06", Status: model.AttendanceAbsent},
	}))

	count, err := repo.CountPresent(ctx, courseID, studentID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestCreateBatchEmptyIsNoop(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAttendanceRepository(db)

	require.NoError(t, repo.CreateBatch(context.Background(), nil))
}
