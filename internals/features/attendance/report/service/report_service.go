package service

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"attendance_backend/internals/features/attendance/attendance/model"
	"attendance_backend/internals/features/attendance/attendance/repository"
	attendanceService "attendance_backend/internals/features/attendance/attendance/service"
	"attendance_backend/internals/helpers/dbtime"
)

// ReportService aggregates attendance across the whole team for managers.
type ReportService struct {
	records repository.AttendanceRepository
	loc     *time.Location
	now     func() time.Time
}

func NewReportService(records repository.AttendanceRepository, loc *time.Location, now func() time.Time) *ReportService {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &ReportService{records: records, loc: loc, now: now}
}

func (s *ReportService) Now() time.Time {
	return s.now().In(s.loc)
}

func (s *ReportService) Location() *time.Location {
	return s.loc
}

type TeamSummary struct {
	TotalPresent int `json:"totalPresent"`
	TotalAbsent  int `json:"totalAbsent"`
	TotalLate    int `json:"totalLate"`
	TotalHalfDay int `json:"totalHalfDay"`
}

func (s *ReportService) TeamSummary(ctx context.Context, month dbtime.Month) (TeamSummary, error) {
	rows, err := s.records.List(ctx, repository.Filter{}.InMonth(month, s.loc))
	if err != nil {
		return TeamSummary{}, err
	}
	sum := attendanceService.BuildDailySummary(rows)
	return TeamSummary{
		TotalPresent: sum.Present,
		TotalAbsent:  sum.Absent,
		TotalLate:    sum.Late,
		TotalHalfDay: sum.HalfDay,
	}, nil
}

// DailyStatus partitions the day's records. Employees with no record appear in neither list.
type DailyStatus struct {
	Present []model.AttendanceModel
	Absent  []model.AttendanceModel
	Total   int
}

func (s *ReportService) DailyStatus(ctx context.Context, at time.Time) (DailyStatus, error) {
	day := dbtime.DayBucket(at, s.loc)
	rows, err := s.records.List(ctx, repository.Filter{WithUser: true, Order: repository.OldestFirst}.OnDay(day))
	if err != nil {
		return DailyStatus{}, err
	}

	out := DailyStatus{
		Present: []model.AttendanceModel{},
		Absent:  []model.AttendanceModel{},
		Total:   len(rows),
	}
	for _, rec := range rows {
		if rec.HasCheckedIn() {
			out.Present = append(out.Present, rec)
		} else {
			out.Absent = append(out.Absent, rec)
		}
	}
	return out, nil
}

type CalendarEntry struct {
	UserID       uuid.UUID    `json:"userId"`
	Name         string       `json:"name"`
	EmployeeID   string       `json:"employeeId"`
	Status       model.Status `json:"status"`
	CheckInTime  *time.Time   `json:"checkInTime"`
	CheckOutTime *time.Time   `json:"checkOutTime"`
}

type TeamCalendar struct {
	// Dates lists the keys of Days in ascending order.
	Dates []string
	Days  map[string][]CalendarEntry
}

func (s *ReportService) TeamCalendar(ctx context.Context, month dbtime.Month) (TeamCalendar, error) {
	f := repository.Filter{WithUser: true, Order: repository.OldestFirst}.InMonth(month, s.loc)
	rows, err := s.records.List(ctx, f)
	if err != nil {
		return TeamCalendar{}, err
	}

	cal := TeamCalendar{Dates: []string{}, Days: map[string][]CalendarEntry{}}
	for _, rec := range rows {
		key := rec.DateKey()
		if _, seen := cal.Days[key]; !seen {
			cal.Dates = append(cal.Dates, key)
		}
		entry := CalendarEntry{
			UserID:       rec.UserID,
			Status:       rec.Status,
			CheckInTime:  rec.CheckInTime,
			CheckOutTime: rec.CheckOutTime,
		}
		if rec.User != nil {
			entry.Name = rec.User.Name
			entry.EmployeeID = rec.User.EmployeeID
		}
		cal.Days[key] = append(cal.Days[key], entry)
	}
	return cal, nil
}

// Export writes every record between from and to (inclusive, either may be nil) as CSV, newest first.
func (s *ReportService) Export(ctx context.Context, from, to *time.Time, w io.Writer) error {
	f := repository.Filter{WithUser: true, Order: repository.NewestFirst}
	if from != nil {
		d := dbtime.DayBucket(*from, s.loc)
		f.From = &d
	}
	if to != nil {
		d := dbtime.DayBucket(*to, s.loc)
		f.To = &d
	}

	rows, err := s.records.List(ctx, f)
	if err != nil {
		return err
	}
	return WriteCSV(w, rows)
}
