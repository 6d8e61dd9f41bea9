package repository

import (
	"context"

	"anoa.com/schoolattendance/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttendanceRepository interface {
	CreateBatch(ctx context.Context, records []model.AttendanceRecord) error
	ExistsForCourseDate(ctx context.Context, courseID uuid.UUID, date string) (bool, error)
	CountForCourseDate(ctx context.Context, courseID uuid.UUID, date string) (int64, error)
	CountPresent(ctx context.Context, courseID, studentID uuid.UUID) (int64, error)
	FindByCourseDate(ctx context.Context, courseID uuid.UUID, date string) ([]model.AttendanceRecord, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

// CreateBatch writes the records in one transaction so a failed submission
// leaves no partial day behind.
func (r *attendanceRepository) CreateBatch(ctx context.Context, records []model.AttendanceRecord) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&records).Error
	})
}

func (r *attendanceRepository) ExistsForCourseDate(ctx context.Context, courseID uuid.UUID, date string) (bool, error) {
	count, err := r.CountForCourseDate(ctx, courseID, date)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *attendanceRepository) CountForCourseDate(ctx context.Context, courseID uuid.UUID, date string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.AttendanceRecord{}).
		Where("course_id = ? AND date = ?", courseID, date).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *attendanceRepository) CountPresent(ctx context.Context, courseID, studentID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.AttendanceRecord{}).
		Where("course_id = ? AND student_id = ? AND status = ?", courseID, studentID, model.AttendancePresent).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *attendanceRepository) FindByCourseDate(ctx context.Context, courseID uuid.UUID, date string) ([]model.AttendanceRecord, error) {
	var records []model.AttendanceRecord
	if err := r.db.WithContext(ctx).
		Where("course_id = ? AND date = ?", courseID, date).
		Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}
