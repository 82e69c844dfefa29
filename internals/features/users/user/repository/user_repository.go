package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "attendance_backend/internals/features/users/user/model"
	helper "attendance_backend/internals/helpers"
)

var (
	ErrNotFound            = errors.New("user not found")
	ErrDuplicateEmail      = errors.New("User with this email already exists")
	ErrDuplicateEmployeeID = errors.New("Employee ID already exists")
)

const (
	constraintEmail      = "uq_users_email"
	constraintEmployeeID = "uq_users_employee_id"
)

type UserRepository interface {
	Create(ctx context.Context, user *userModel.UserModel) error
	FindByID(ctx context.Context, id uuid.UUID) (*userModel.UserModel, error)
	FindByEmail(ctx context.Context, email string) (*userModel.UserModel, error)
	FindByEmployeeID(ctx context.Context, employeeID string) (*userModel.UserModel, error)
	ListByRole(ctx context.Context, role string) ([]userModel.UserModel, error)
	CountByRole(ctx context.Context, role string) (int64, error)
}

type GormUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

/* ====================== USER ====================== */

func (r *GormUserRepository) Create(ctx context.Context, user *userModel.UserModel) error {
	user.SetDefaultValues()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return MapDuplicate(err)
	}
	return nil
}

func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*userModel.UserModel, error) {
	return r.take(ctx, "id = ?", id)
}

func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*userModel.UserModel, error) {
	return r.take(ctx, "email = ?", email)
}

func (r *GormUserRepository) FindByEmployeeID(ctx context.Context, employeeID string) (*userModel.UserModel, error) {
	return r.take(ctx, "employee_id = ?", employeeID)
}

func (r *GormUserRepository) ListByRole(ctx context.Context, role string) ([]userModel.UserModel, error) {
	var users []userModel.UserModel
	err := r.db.WithContext(ctx).
		Where("role = ?", role).
		Order("employee_id ASC").
		Find(&users).Error
	return users, err
}

func (r *GormUserRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&userModel.UserModel{}).
		Where("role = ?", role).
		Count(&n).Error
	return n, err
}

func (r *GormUserRepository) take(ctx context.Context, query string, arg any) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := r.db.WithContext(ctx).Where(query, arg).Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// MapDuplicate turns a unique violation on users into the matching sentinel.
func MapDuplicate(err error) error {
	if !helper.IsDuplicateKey(err) {
		return err
	}
	constraint := strings.ToLower(helper.ViolatedConstraint(err))
	switch {
	case constraint == constraintEmployeeID, strings.Contains(constraint, "employee"):
		return ErrDuplicateEmployeeID
	case constraint == constraintEmail, strings.Contains(constraint, "email"):
		return ErrDuplicateEmail
	case strings.Contains(strings.ToLower(err.Error()), "employee_id"):
		return ErrDuplicateEmployeeID
	default:
		return ErrDuplicateEmail
	}
}
