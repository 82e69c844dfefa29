package dto

import (
	"fmt"

	"github.com/google/uuid"

	attendanceDto "attendance_backend/internals/features/attendance/attendance/dto"
	"attendance_backend/internals/features/dashboard/service"
)

/* =======================================================
   EMPLOYEE
   ======================================================= */

type EmployeeStatsResponse struct {
	TodayStatus       service.TodayStatus                `json:"todayStatus"`
	MonthStats        service.MonthStats                 `json:"monthStats"`
	TotalHours        string                             `json:"totalHours"`
	RecentAttendances []attendanceDto.AttendanceResponse `json:"recentAttendances"`
}

func NewEmployeeStatsResponse(d service.EmployeeDashboard) EmployeeStatsResponse {
	return EmployeeStatsResponse{
		TodayStatus:       d.TodayStatus,
		MonthStats:        d.MonthStats,
		TotalHours:        fmt.Sprintf("%.2f", d.TotalHours),
		RecentAttendances: attendanceDto.FromModels(d.RecentAttendances),
	}
}

/* =======================================================
   MANAGER
   ======================================================= */

type AbsentEmployee struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	EmployeeID string    `json:"employeeId"`
	Department *string   `json:"department"`
}

type ManagerStatsResponse struct {
	TotalEmployees  int64                             `json:"totalEmployees"`
	TodayStats      service.TodayStats                `json:"todayStats"`
	WeeklyTrend     []service.TrendPoint              `json:"weeklyTrend"`
	DepartmentStats map[string]service.DepartmentStat `json:"departmentStats"`
	AbsentEmployees []AbsentEmployee                  `json:"absentEmployees"`
}

func NewManagerStatsResponse(d service.ManagerDashboard) ManagerStatsResponse {
	absent := make([]AbsentEmployee, 0, len(d.AbsentEmployees))
	for _, u := range d.AbsentEmployees {
		absent = append(absent, AbsentEmployee{
			ID:         u.ID,
			Name:       u.Name,
			EmployeeID: u.EmployeeID,
			Department: u.Department,
		})
	}
	trend := d.WeeklyTrend
	if trend == nil {
		trend = []service.TrendPoint{}
	}
	depts := d.DepartmentStats
	if depts == nil {
		depts = map[string]service.DepartmentStat{}
	}
	return ManagerStatsResponse{
		TotalEmployees:  d.TotalEmployees,
		TodayStats:      d.TodayStats,
		WeeklyTrend:     trend,
		DepartmentStats: depts,
		AbsentEmployees: absent,
	}
}
