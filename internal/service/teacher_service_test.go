package service

import (
	"context"
	"testing"

	"anoa.com/schoolattendance/internal/dto"
	"anoa.com/schoolattendance/internal/model"
	"anoa.com/schoolattendance/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeacherCreateForcesTeacherRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created := env.createTeacher(t, "jdoe", "EMP001")

	teacher, err := env.teacherRepo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleTeacher, teacher.User.Role.Name)
	assert.Equal(t, "EMP001", teacher.EmployeeID)
	assert.NotEmpty(t, teacher.User.PasswordHash)
	assert.NotEqual(t, "secret123", teacher.User.PasswordHash)
}

func TestTeacherCreateDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createTeacher(t, "jdoe", "EMP001")

	_, err := env.teachers.Create(ctx, dto.CreateTeacherInput{
		Username:   "jdoe",
		FirstName:  "Other",
		Password:   "secret123",
		EmployeeID: "EMP002",
		Department: "Physics",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.EqualError(t, err, "username already exists")

	count, err := env.teacherRepo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestTeacherCreateDuplicateEmployeeID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createTeacher(t, "jdoe", "EMP001")

	_, err := env.teachers.Create(ctx, dto.CreateTeacherInput{
		Username:   "asmith",
		FirstName:  "Other",
		Password:   "secret123",
		EmployeeID: "EMP001",
		Department: "Physics",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.EqualError(t, err, "employee ID already exists")
}

func TestTeacherUpdateExcludesOwnRecord(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created := env.createTeacher(t, "jdoe", "EMP001")

	// Keeping the same username and employee id must not trip the
	// uniqueness checks.
	res, err := env.teachers.Update(ctx, created.ID, dto.UpdateTeacherInput{
		Username:   "jdoe",
		FirstName:  "John",
		LastName:   "Doe",
		EmployeeID: "EMP001",
		Department: "Chemistry",
	})
	require.NoError(t, err)
	assert.Equal(t, "Chemistry", res.Department)
	assert.Equal(t, "John", res.FirstName)
}

func TestTeacherUpdatePasswordOnlyWhenProvided(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created := env.createTeacher(t, "jdoe", "EMP001")
	before, err := env.teacherRepo.FindByID(ctx, created.ID)
	require.NoError(t, err)

	_, err = env.teachers.Update(ctx, created.ID, dto.UpdateTeacherInput{
		Username:   "jdoe",
		FirstName:  "Test",
		EmployeeID: "EMP001",
		Department: "Mathematics",
	})
	require.NoError(t, err)

	unchanged, err := env.teacherRepo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, before.User.PasswordHash, unchanged.User.PasswordHash)

	_, err = env.teachers.Update(ctx, created.ID, dto.UpdateTeacherInput{
		Username:   "jdoe",
		FirstName:  "Test",
		Password:   "newsecret",
		EmployeeID: "EMP001",
		Department: "Mathematics",
	})
	require.NoError(t, err)

	changed, err := env.teacherRepo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.NotEqual(t, before.User.PasswordHash, changed.User.PasswordHash)
}

func TestTeacherDeleteUnassignsCourses(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created := env.createTeacher(t, "jdoe", "EMP001")
	course := env.createCourse(t, "Algebra", "MATH101", &created.ID, nil, 10)

	require.NoError(t, env.teachers.Delete(ctx, created.ID))

	_, err := env.teacherRepo.FindByID(ctx, created.ID)
	assert.Error(t, err)

	var users int64
	require.NoError(t, env.db.Model(&model.User{}).Count(&users).Error)
	assert.EqualValues(t, 0, users)

	// The course survives, unassigned.
	kept, err := env.courseRepo.FindByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Nil(t, kept.TeacherID)
}

func TestTeacherDeleteNotFound(t *testing.T) {
	env := newTestEnv(t)

	err := env.teachers.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
