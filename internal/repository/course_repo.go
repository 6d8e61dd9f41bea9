package repository

import (
	"context"

	"anoa.com/schoolattendance/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Course, error)
	FindAll(ctx context.Context) ([]*model.Course, error)
	FindByTeacherID(ctx context.Context, teacherID uuid.UUID) ([]*model.Course, error)
	FindByStudentID(ctx context.Context, studentID uuid.UUID) ([]*model.Course, error)
	CodeTaken(ctx context.Context, code string, excludeID uuid.UUID) (bool, error)
	Update(ctx context.Context, course *model.Course, students []model.Student) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	var course model.Course
	if err := r.db.WithContext(ctx).
		Preload("Teacher.User").
		Preload("Students.User").
		Where("id = ?", id).
		First(&course).Error; err != nil {
		return nil, err
	}

	return &course, nil
}

func (r *courseRepository) FindAll(ctx context.Context) ([]*model.Course, error) {
	var courses []*model.Course
	if err := r.db.WithContext(ctx).
		Preload("Teacher.User").
		Preload("Students.User").
		Find(&courses).Error; err != nil {
		return nil, err
	}

	return courses, nil
}

func (r *courseRepository) FindByTeacherID(ctx context.Context, teacherID uuid.UUID) ([]*model.Course, error) {
	var courses []*model.Course
	if err := r.db.WithContext(ctx).
		Preload("Students.User").
		Where("teacher_id = ?", teacherID).
		Find(&courses).Error; err != nil {
		return nil, err
	}

	return courses, nil
}

func (r *courseRepository) FindByStudentID(ctx context.Context, studentID uuid.UUID) ([]*model.Course, error) {
	var courses []*model.Course
	if err := r.db.WithContext(ctx).
		Preload("Teacher.User").
		Joins("JOIN course_students ON course_students.course_id = courses.id").
		Where("course_students.student_id = ?", studentID).
		Find(&courses).Error; err != nil {
		return nil, err
	}

	return courses, nil
}

func (r *courseRepository) CodeTaken(ctx context.Context, code string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.Course{}).Where("code = ?", code)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// Update saves the course fields and fully replaces the enrollment set.
func (r *courseRepository) Update(ctx context.Context, course *model.Course, students []model.Student) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Students").Save(course).Error; err != nil {
			return err
		}
		return tx.Model(course).Association("Students").Replace(students)
	})
}

// Delete removes the course, its attendance records and its enrollment rows.
// Enrolled students are untouched.
func (r *courseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.AttendanceRecord{}, "course_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM course_students WHERE course_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Course{}, "id = ?", id).Error
	})
}

func (r *courseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Course{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
