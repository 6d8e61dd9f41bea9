package repository

import (
	"context"

	"anoa.com/schoolattendance/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudentRepository interface {
	Create(ctx context.Context, user *model.User, student *model.Student) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Student, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Student, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Student, error)
	FindAll(ctx context.Context) ([]*model.Student, error)
	RollNoTaken(ctx context.Context, rollNo string, excludeID uuid.UUID) (bool, error)
	Update(ctx context.Context, user *model.User, student *model.Student) error
	Delete(ctx context.Context, student *model.Student) error
	Count(ctx context.Context) (int64, error)
}

type studentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Create(ctx context.Context, user *model.User, student *model.Student) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		student.UserID = user.ID
		return tx.Create(student).Error
	})
}

func (r *studentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Student, error) {
	var student model.Student
	if err := r.db.WithContext(ctx).
		Preload("User.Role").
		Where("id = ?", id).
		First(&student).Error; err != nil {
		return nil, err
	}

	return &student, nil
}

func (r *studentRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Student, error) {
	var student model.Student
	if err := r.db.WithContext(ctx).
		Preload("User.Role").
		Where("user_id = ?", userID).
		First(&student).Error; err != nil {
		return nil, err
	}

	return &student, nil
}

func (r *studentRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Student, error) {
	var students []model.Student
	if len(ids) == 0 {
		return students, nil
	}
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("id IN ?", ids).
		Find(&students).Error; err != nil {
		return nil, err
	}

	return students, nil
}

func (r *studentRepository) FindAll(ctx context.Context) ([]*model.Student, error) {
	var students []*model.Student
	if err := r.db.WithContext(ctx).
		Preload("User.Role").
		Find(&students).Error; err != nil {
		return nil, err
	}

	return students, nil
}

func (r *studentRepository) RollNoTaken(ctx context.Context, rollNo string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.Student{}).Where("roll_no = ?", rollNo)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *studentRepository) Update(ctx context.Context, user *model.User, student *model.Student) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(user).Error; err != nil {
			return err
		}
		return tx.Save(student).Error
	})
}

// Delete removes the underlying account, the student record, the student's
// attendance history and enrollment rows. Courses the student was enrolled
// in survive.
func (r *studentRepository) Delete(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.AttendanceRecord{}, "student_id = ?", student.ID).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM course_students WHERE student_id = ?", student.ID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Student{}, "id = ?", student.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&model.User{}, "id = ?", student.UserID).Error
	})
}

func (r *studentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Student{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
