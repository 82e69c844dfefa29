package dto

import (
	attendanceDto "attendance_backend/internals/features/attendance/attendance/dto"
	"attendance_backend/internals/features/attendance/report/service"
)

// ExportQuery — GET /attendance/export
type ExportQuery struct {
	StartDate string `query:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `query:"endDate" validate:"omitempty,datetime=2006-01-02"`
}

type TeamSummaryResponse struct {
	Summary service.TeamSummary `json:"summary"`
	Month   int                 `json:"month"`
	Year    int                 `json:"year"`
}

type DailyStatusResponse struct {
	Present []attendanceDto.AttendanceResponse `json:"present"`
	Absent  []attendanceDto.AttendanceResponse `json:"absent"`
	Total   int                                `json:"total"`
}

func NewDailyStatusResponse(s service.DailyStatus) DailyStatusResponse {
	return DailyStatusResponse{
		Present: attendanceDto.FromModels(s.Present),
		Absent:  attendanceDto.FromModels(s.Absent),
		Total:   s.Total,
	}
}

type TeamCalendarResponse struct {
	CalendarData map[string][]service.CalendarEntry `json:"calendarData"`
	Dates        []string                           `json:"dates"`
	Month        int                                `json:"month"`
	Year         int                                `json:"year"`
}
