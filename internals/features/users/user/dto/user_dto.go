package dto

import (
	"time"

	"github.com/google/uuid"

	uModel "attendance_backend/internals/features/users/user/model"
)

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

// UserResponse is the profile shape; the password hash never leaves the service.
type UserResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	EmployeeID    string    `json:"employeeId"`
	Department    *string   `json:"department"`
	HourlyRate    *float64  `json:"hourlyRate"`
	MonthlySalary *float64  `json:"monthlySalary"`
	CreatedAt     time.Time `json:"createdAt"`
}

func FromModel(m *uModel.UserModel) UserResponse {
	return UserResponse{
		ID:            m.ID,
		Name:          m.Name,
		Email:         m.Email,
		Role:          m.Role,
		EmployeeID:    m.EmployeeID,
		Department:    m.Department,
		HourlyRate:    m.HourlyRate,
		MonthlySalary: m.MonthlySalary,
		CreatedAt:     m.CreatedAt,
	}
}

// UserBrief is embedded in attendance rows shown to managers.
type UserBrief struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email,omitempty"`
	EmployeeID string    `json:"employeeId"`
	Department *string   `json:"department"`
}

func BriefFromModel(m *uModel.UserModel) *UserBrief {
	if m == nil {
		return nil
	}
	return &UserBrief{
		ID:         m.ID,
		Name:       m.Name,
		Email:      m.Email,
		EmployeeID: m.EmployeeID,
		Department: m.Department,
	}
}
