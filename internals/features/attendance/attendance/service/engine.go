package service

import (
	"errors"
	"math"
	"time"

	"attendance_backend/internals/features/attendance/attendance/model"
	userModel "attendance_backend/internals/features/users/user/model"
)

const (
	// LateHour is the first local hour at which a check-in counts as late.
	LateHour = 10
	// HalfDayHours is the minimum worked time for a full day.
	HalfDayHours = 4.0
	// WorkingDaysPerMonth divides a monthly salary into a daily rate.
	WorkingDaysPerMonth = 22
)

var ErrInvalidInterval = errors.New("check-out time is before check-in time")

// DeriveCheckInStatus expects checkIn already in the business zone.
func DeriveCheckInStatus(checkIn time.Time) model.Status {
	if checkIn.Hour() >= LateHour {
		return model.StatusLate
	}
	return model.StatusPresent
}

// DeriveCheckoutStatus downgrades short days to HALF_DAY and keeps prior otherwise.
func DeriveCheckoutStatus(prior model.Status, totalHours float64) model.Status {
	if totalHours < HalfDayHours {
		return model.StatusHalfDay
	}
	return prior
}

// ComputeTotalHours returns the fractional hours between check-in and check-out.
func ComputeTotalHours(checkIn, checkOut time.Time) (float64, error) {
	if checkOut.Before(checkIn) {
		return 0, ErrInvalidInterval
	}
	return checkOut.Sub(checkIn).Hours(), nil
}

type SalaryMode string

const (
	SalaryMonthly SalaryMode = "monthly"
	SalaryHourly  SalaryMode = "hourly"
	SalaryNone    SalaryMode = "none"
)

type SalaryResult struct {
	Salary      float64
	WorkingDays int
	TotalHours  float64
	Mode        SalaryMode
}

// ComputeMonthlySalary pays PRESENT and LATE days only. A positive monthly salary wins
// over the hourly rate; neither set yields zero.
func ComputeMonthlySalary(user userModel.UserModel, records []model.AttendanceModel) SalaryResult {
	res := SalaryResult{Mode: SalaryNone}
	for i := range records {
		if !records[i].Status.Paid() {
			continue
		}
		res.WorkingDays++
		res.TotalHours += records[i].Hours()
	}

	if monthly, ok := user.EffectiveMonthlySalary(); ok {
		res.Mode = SalaryMonthly
		res.Salary = RoundTo2(monthly * float64(res.WorkingDays) / WorkingDaysPerMonth)
		return res
	}
	if rate, ok := user.EffectiveHourlyRate(); ok {
		res.Mode = SalaryHourly
		res.Salary = RoundTo2(res.TotalHours * rate)
	}
	return res
}

type Summary struct {
	Present   int `json:"present"`
	Absent    int `json:"absent"`
	Late      int `json:"late"`
	HalfDay   int `json:"halfDay"`
	TotalDays int `json:"totalDays"`
}

// BuildDailySummary counts records per status.
func BuildDailySummary(records []model.AttendanceModel) Summary {
	var s Summary
	for i := range records {
		switch records[i].Status {
		case model.StatusPresent:
			s.Present++
		case model.StatusAbsent:
			s.Absent++
		case model.StatusLate:
			s.Late++
		case model.StatusHalfDay:
			s.HalfDay++
		}
	}
	s.TotalDays = len(records)
	return s
}

func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
