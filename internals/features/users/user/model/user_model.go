package model

import (
	"time"

	"github.com/google/uuid"

	"attendance_backend/internals/constants"
)

// UserModel merepresentasikan tabel users di database
type UserModel struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name          string    `gorm:"size:100;not null" json:"name"`
	Email         string    `gorm:"size:255;not null;uniqueIndex:uq_users_email" json:"email"`
	Password      string    `gorm:"not null" json:"-"`
	Role          string    `gorm:"type:varchar(20);not null;default:'EMPLOYEE';index:idx_users_role" json:"role"`
	EmployeeID    string    `gorm:"size:50;not null;uniqueIndex:uq_users_employee_id" json:"employeeId"`
	Department    *string   `gorm:"size:100" json:"department"`
	HourlyRate    *float64  `gorm:"type:numeric(10,2)" json:"hourlyRate"`
	MonthlySalary *float64  `gorm:"type:numeric(12,2)" json:"monthlySalary"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (UserModel) TableName() string {
	return "users"
}

// SetDefaultValues memastikan nilai default sebelum insert
func (u *UserModel) SetDefaultValues() {
	if u.Role == "" {
		u.Role = constants.RoleEmployee
	}
}

func (u *UserModel) IsManager() bool {
	return u.Role == constants.RoleManager
}

// DepartmentName returns the department or "" when unset.
func (u *UserModel) DepartmentName() string {
	if u.Department == nil {
		return ""
	}
	return *u.Department
}

// EffectiveMonthlySalary reports the monthly salary when it is set and positive.
func (u *UserModel) EffectiveMonthlySalary() (float64, bool) {
	if u.MonthlySalary == nil || *u.MonthlySalary <= 0 {
		return 0, false
	}
	return *u.MonthlySalary, true
}

// EffectiveHourlyRate reports the hourly rate when it is set and positive.
func (u *UserModel) EffectiveHourlyRate() (float64, bool) {
	if u.HourlyRate == nil || *u.HourlyRate <= 0 {
		return 0, false
	}
	return *u.HourlyRate, true
}
