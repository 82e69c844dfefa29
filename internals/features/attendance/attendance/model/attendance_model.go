package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	userModel "attendance_backend/internals/features/users/user/model"
	"attendance_backend/internals/helpers/dbtime"
)

type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusLate    Status = "LATE"
	StatusHalfDay Status = "HALF_DAY"
	StatusAbsent  Status = "ABSENT"
)

// Paid reports whether the day counts toward salary.
func (s Status) Paid() bool {
	return s == StatusPresent || s == StatusLate
}

// AttendanceModel is one employee's record for one calendar day.
type AttendanceModel struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_user_date,priority:1" json:"userId"`
	Date         datatypes.Date `gorm:"not null;uniqueIndex:uq_attendance_user_date,priority:2;index:idx_attendance_date" json:"date"`
	CheckInTime  *time.Time     `gorm:"type:timestamptz" json:"checkInTime"`
	CheckOutTime *time.Time     `gorm:"type:timestamptz" json:"checkOutTime"`
	TotalHours   *float64       `gorm:"type:numeric(6,2)" json:"totalHours"`
	Status       Status         `gorm:"type:varchar(16);not null;default:'ABSENT';index:idx_attendance_status" json:"status"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`

	User *userModel.UserModel `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:RESTRICT" json:"user,omitempty"`
}

func (AttendanceModel) TableName() string {
	return "attendances"
}

// DateKey is the record's calendar day as YYYY-MM-DD.
func (m *AttendanceModel) DateKey() string {
	return dbtime.DateKey(time.Time(m.Date))
}

// Day is the record's day bucket in loc.
func (m *AttendanceModel) Day(loc *time.Location) time.Time {
	return dbtime.FromDate(time.Time(m.Date), loc)
}

// HasCheckedIn is true for any record carrying a check-in that is not ABSENT.
func (m *AttendanceModel) HasCheckedIn() bool {
	return m.CheckInTime != nil && m.Status != StatusAbsent
}

func (m *AttendanceModel) Hours() float64 {
	if m.TotalHours == nil {
		return 0
	}
	return *m.TotalHours
}
