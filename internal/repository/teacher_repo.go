package repository

import (
	"context"

	"anoa.com/schoolattendance/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TeacherRepository interface {
	Create(ctx context.Context, user *model.User, teacher *model.Teacher) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Teacher, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Teacher, error)
	FindAll(ctx context.Context) ([]*model.Teacher, error)
	EmployeeIDTaken(ctx context.Context, employeeID string, excludeID uuid.UUID) (bool, error)
	Update(ctx context.Context, user *model.User, teacher *model.Teacher) error
	Delete(ctx context.Context, teacher *model.Teacher) error
	Count(ctx context.Context) (int64, error)
}

type teacherRepository struct {
	db *gorm.DB
}

func NewTeacherRepository(db *gorm.DB) TeacherRepository {
	return &teacherRepository{db: db}
}

func (r *teacherRepository) Create(ctx context.Context, user *model.User, teacher *model.Teacher) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		teacher.UserID = user.ID
		return tx.Create(teacher).Error
	})
}

func (r *teacherRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Teacher, error) {
	var teacher model.Teacher
	if err := r.db.WithContext(ctx).
		Preload("User.Role").
		Where("id = ?", id).
		First(&teacher).Error; err != nil {
		return nil, err
	}

	return &teacher, nil
}

func (r *teacherRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Teacher, error) {
	var teacher model.Teacher
	if err := r.db.WithContext(ctx).
		Preload("User.Role").
		Where("user_id = ?", userID).
		First(&teacher).Error; err != nil {
		return nil, err
	}

	return &teacher, nil
}

func (r *teacherRepository) FindAll(ctx context.Context) ([]*model.Teacher, error) {
	var teachers []*model.Teacher
	if err := r.db.WithContext(ctx).
		Preload("User.Role").
		Find(&teachers).Error; err != nil {
		return nil, err
	}

	return teachers, nil
}

func (r *teacherRepository) EmployeeIDTaken(ctx context.Context, employeeID string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.Teacher{}).Where("employee_id = ?", employeeID)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *teacherRepository) Update(ctx context.Context, user *model.User, teacher *model.Teacher) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(user).Error; err != nil {
			return err
		}
		return tx.Save(teacher).Error
	})
}

// Delete removes the underlying account and the teacher record, and clears
// the assignment on any of the teacher's courses. The courses themselves
// survive. Cleanup is explicit so it does not depend on database-level
// cascade support.
func (r *teacherRepository) Delete(ctx context.Context, teacher *model.Teacher) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Course{}).
			Where("teacher_id = ?", teacher.ID).
			Update("teacher_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Teacher{}, "id = ?", teacher.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&model.User{}, "id = ?", teacher.UserID).Error
	})
}

func (r *teacherRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Teacher{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
