package dto

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"attendance_backend/internals/constants"
	userDto "attendance_backend/internals/features/users/user/dto"
	userModel "attendance_backend/internals/features/users/user/model"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

// RegisterRequest — POST /auth/register
type RegisterRequest struct {
	Name          string   `json:"name" validate:"required,min=1,max=100"`
	Email         string   `json:"email" validate:"required,email,max=255"`
	Password      string   `json:"password" validate:"required,min=6,max=72"`
	// Role is taken from the public body, so anyone can register as MANAGER.
	// Known privilege-escalation gap until registration of managers is restricted.
	Role          string   `json:"role" validate:"omitempty,oneof=EMPLOYEE MANAGER"`
	EmployeeID    string   `json:"employeeId" validate:"required,max=50"`
	Department    *string  `json:"department" validate:"omitempty,max=100"`
	HourlyRate    *float64 `json:"hourlyRate" validate:"omitempty,gte=0"`
	MonthlySalary *float64 `json:"monthlySalary" validate:"omitempty,gte=0"`
}

// Normalize trims input and folds the email to lower case; names are NFC-normalised.
func (r *RegisterRequest) Normalize() {
	r.Name = norm.NFC.String(strings.TrimSpace(r.Name))
	r.Email = NormalizeEmail(r.Email)
	r.Role = strings.ToUpper(strings.TrimSpace(r.Role))
	r.EmployeeID = strings.TrimSpace(r.EmployeeID)
	if r.Department != nil {
		d := norm.NFC.String(strings.TrimSpace(*r.Department))
		if d == "" {
			r.Department = nil
		} else {
			r.Department = &d
		}
	}
}

// ToModel builds the user row; passwordHash must already be hashed.
func (r *RegisterRequest) ToModel(passwordHash string) *userModel.UserModel {
	role := r.Role
	if role == "" {
		role = constants.RoleEmployee
	}
	return &userModel.UserModel{
		Name:          r.Name,
		Email:         r.Email,
		Password:      passwordHash,
		Role:          role,
		EmployeeID:    r.EmployeeID,
		Department:    r.Department,
		HourlyRate:    nonZero(r.HourlyRate),
		MonthlySalary: nonZero(r.MonthlySalary),
	}
}

// LoginRequest — POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Email = NormalizeEmail(r.Email)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(email)))
}

func nonZero(v *float64) *float64 {
	if v == nil || *v == 0 {
		return nil
	}
	return v
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type AuthResponse struct {
	Message string               `json:"message"`
	User    userDto.UserResponse `json:"user"`
	Token   string               `json:"token"`
}

type MeResponse struct {
	User userDto.UserResponse `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
