package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"attendance_backend/internals/constants"
	"attendance_backend/internals/features/attendance/attendance/model"
	"attendance_backend/internals/features/attendance/attendance/repository"
	attendanceService "attendance_backend/internals/features/attendance/attendance/service"
	userModel "attendance_backend/internals/features/users/user/model"
	"attendance_backend/internals/helpers/dbtime"
)

const (
	trendDays          = 7
	recentLookbackDays = 7
	UnassignedDept     = "Unassigned"
)

// UserDirectory is the slice of the user repository the dashboards need.
type UserDirectory interface {
	ListByRole(ctx context.Context, role string) ([]userModel.UserModel, error)
	CountByRole(ctx context.Context, role string) (int64, error)
}

type DashboardService struct {
	records repository.AttendanceRepository
	users   UserDirectory
	loc     *time.Location
	now     func() time.Time
}

func NewDashboardService(records repository.AttendanceRepository, users UserDirectory, loc *time.Location, now func() time.Time) *DashboardService {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &DashboardService{records: records, users: users, loc: loc, now: now}
}

func (s *DashboardService) Now() time.Time {
	return s.now().In(s.loc)
}

/* ==========================
   Employee
========================== */

type TodayStatus struct {
	CheckedIn    bool         `json:"checkedIn"`
	CheckedOut   bool         `json:"checkedOut"`
	Status       model.Status `json:"status,omitempty"`
	CheckInTime  *time.Time   `json:"checkInTime,omitempty"`
	CheckOutTime *time.Time   `json:"checkOutTime,omitempty"`
}

type MonthStats struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Late    int `json:"late"`
	HalfDay int `json:"halfDay"`
}

type EmployeeDashboard struct {
	TodayStatus       TodayStatus
	MonthStats        MonthStats
	TotalHours        float64
	RecentAttendances []model.AttendanceModel
}

func (s *DashboardService) EmployeeStats(ctx context.Context, userID uuid.UUID, at time.Time) (EmployeeDashboard, error) {
	today := dbtime.DayBucket(at, s.loc)
	var out EmployeeDashboard

	rec, err := s.records.FindByUserAndDate(ctx, userID, today)
	switch {
	case err == nil:
		out.TodayStatus = TodayStatus{
			CheckedIn:    rec.CheckInTime != nil,
			CheckedOut:   rec.CheckOutTime != nil,
			Status:       rec.Status,
			CheckInTime:  rec.CheckInTime,
			CheckOutTime: rec.CheckOutTime,
		}
	case !errors.Is(err, repository.ErrNotFound):
		return EmployeeDashboard{}, err
	}

	monthRows, err := s.records.List(ctx, repository.Filter{UserID: &userID}.InMonth(dbtime.MonthOf(today), s.loc))
	if err != nil {
		return EmployeeDashboard{}, err
	}
	sum := attendanceService.BuildDailySummary(monthRows)
	out.MonthStats = MonthStats{Present: sum.Present, Absent: sum.Absent, Late: sum.Late, HalfDay: sum.HalfDay}
	for i := range monthRows {
		out.TotalHours += monthRows[i].Hours()
	}

	from := today.AddDate(0, 0, -recentLookbackDays)
	out.RecentAttendances, err = s.records.List(ctx, repository.Filter{
		UserID: &userID,
		From:   &from,
		To:     &today,
		Order:  repository.OldestFirst,
	})
	if err != nil {
		return EmployeeDashboard{}, err
	}
	return out, nil
}

/* ==========================
   Manager
========================== */

type TodayStats struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Late    int `json:"late"`
}

type TrendPoint struct {
	Date    string `json:"date"`
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
}

type DepartmentStat struct {
	Total   int `json:"total"`
	Present int `json:"present"`
}

type ManagerDashboard struct {
	TotalEmployees  int64
	TodayStats      TodayStats
	WeeklyTrend     []TrendPoint
	DepartmentStats map[string]DepartmentStat
	AbsentEmployees []userModel.UserModel
}

func (s *DashboardService) ManagerStats(ctx context.Context, at time.Time) (ManagerDashboard, error) {
	today := dbtime.DayBucket(at, s.loc)

	total, err := s.users.CountByRole(ctx, constants.RoleEmployee)
	if err != nil {
		return ManagerDashboard{}, err
	}
	employees, err := s.users.ListByRole(ctx, constants.RoleEmployee)
	if err != nil {
		return ManagerDashboard{}, err
	}

	days := dbtime.LastDays(today, trendDays, s.loc)
	weekRows, err := s.records.List(ctx, repository.Filter{
		From:  &days[0],
		To:    &today,
		Order: repository.OldestFirst,
	})
	if err != nil {
		return ManagerDashboard{}, err
	}

	todayKey := dbtime.DateKey(today)
	var todayRows []model.AttendanceModel
	for _, rec := range weekRows {
		if rec.DateKey() == todayKey {
			todayRows = append(todayRows, rec)
		}
	}

	out := ManagerDashboard{
		TotalEmployees:  total,
		WeeklyTrend:     WeeklyTrend(weekRows, days),
		DepartmentStats: DepartmentStats(employees, todayRows),
		AbsentEmployees: AbsentEmployees(employees, todayRows),
	}
	for _, rec := range todayRows {
		if rec.HasCheckedIn() {
			out.TodayStats.Present++
		}
		if rec.Status == model.StatusLate {
			out.TodayStats.Late++
		}
	}
	// differs from daily-status on purpose: employees without a record count as absent here
	out.TodayStats.Absent = int(total) - out.TodayStats.Present
	return out, nil
}

// WeeklyTrend buckets rows into days (oldest first); PRESENT and LATE count as present.
func WeeklyTrend(rows []model.AttendanceModel, days []time.Time) []TrendPoint {
	points := make([]TrendPoint, len(days))
	index := make(map[string]int, len(days))
	for i, d := range days {
		key := dbtime.DateKey(d)
		points[i] = TrendPoint{Date: key}
		index[key] = i
	}
	for _, rec := range rows {
		i, ok := index[rec.DateKey()]
		if !ok {
			continue
		}
		switch rec.Status {
		case model.StatusPresent, model.StatusLate:
			points[i].Present++
		case model.StatusAbsent:
			points[i].Absent++
		}
	}
	return points
}

// DepartmentStats groups employees by department; present means checked in today.
func DepartmentStats(employees []userModel.UserModel, todayRows []model.AttendanceModel) map[string]DepartmentStat {
	checkedIn := checkedInUsers(todayRows)
	stats := make(map[string]DepartmentStat)
	for i := range employees {
		dept := employees[i].DepartmentName()
		if dept == "" {
			dept = UnassignedDept
		}
		st := stats[dept]
		st.Total++
		if checkedIn[employees[i].ID] {
			st.Present++
		}
		stats[dept] = st
	}
	return stats
}

// AbsentEmployees lists employees without a checked-in record today.
func AbsentEmployees(employees []userModel.UserModel, todayRows []model.AttendanceModel) []userModel.UserModel {
	checkedIn := checkedInUsers(todayRows)
	out := make([]userModel.UserModel, 0, len(employees))
	for _, u := range employees {
		if !checkedIn[u.ID] {
			out = append(out, u)
		}
	}
	return out
}

func checkedInUsers(rows []model.AttendanceModel) map[uuid.UUID]bool {
	set := make(map[uuid.UUID]bool, len(rows))
	for _, rec := range rows {
		if rec.CheckInTime != nil {
			set[rec.UserID] = true
		}
	}
	return set
}
