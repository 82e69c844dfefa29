package dto

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"attendance_backend/internals/features/attendance/attendance/model"
	"attendance_backend/internals/features/attendance/attendance/service"
	userDto "attendance_backend/internals/features/users/user/dto"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

// ListAllQuery — GET /attendance/all
type ListAllQuery struct {
	Date       string `query:"date" validate:"omitempty,datetime=2006-01-02"`
	Status     string `query:"status" validate:"omitempty,oneof=PRESENT LATE HALF_DAY ABSENT"`
	EmployeeID string `query:"employeeId" validate:"omitempty,max=50"`
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type AttendanceResponse struct {
	ID           uuid.UUID          `json:"id"`
	UserID       uuid.UUID          `json:"userId"`
	Date         string             `json:"date"`
	CheckInTime  *time.Time         `json:"checkInTime"`
	CheckOutTime *time.Time         `json:"checkOutTime"`
	TotalHours   *float64           `json:"totalHours"`
	Status       model.Status       `json:"status"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
	User         *userDto.UserBrief `json:"user,omitempty"`
}

func FromModel(m *model.AttendanceModel) AttendanceResponse {
	return AttendanceResponse{
		ID:           m.ID,
		UserID:       m.UserID,
		Date:         m.DateKey(),
		CheckInTime:  m.CheckInTime,
		CheckOutTime: m.CheckOutTime,
		TotalHours:   m.TotalHours,
		Status:       m.Status,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
		User:         userDto.BriefFromModel(m.User),
	}
}

func FromModels(rows []model.AttendanceModel) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out
}

type CheckResponse struct {
	Message    string             `json:"message"`
	Attendance AttendanceResponse `json:"attendance"`
}

type HistoryResponse struct {
	Attendances []AttendanceResponse `json:"attendances"`
}

type TodayResponse struct {
	Attendance *AttendanceResponse `json:"attendance"`
}

func NewTodayResponse(m *model.AttendanceModel) TodayResponse {
	if m == nil {
		return TodayResponse{}
	}
	r := FromModel(m)
	return TodayResponse{Attendance: &r}
}

type MonthlySummaryResponse struct {
	Summary service.Summary `json:"summary"`
	Month   int             `json:"month"`
	Year    int             `json:"year"`
}

type SalaryResponse struct {
	Salary      string  `json:"salary"`
	Month       int     `json:"month"`
	Year        int     `json:"year"`
	WorkingDays int     `json:"workingDays"`
	TotalHours  float64 `json:"totalHours"`
	Basis       string  `json:"basis"`
}

func NewSalaryResponse(r service.SalaryResult, year int, month time.Month) SalaryResponse {
	return SalaryResponse{
		Salary:      FormatMoney(r.Salary),
		Month:       int(month),
		Year:        year,
		WorkingDays: r.WorkingDays,
		TotalHours:  r.TotalHours,
		Basis:       string(r.Mode),
	}
}

// FormatMoney renders a value with exactly two decimals.
func FormatMoney(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
