package attendance

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"attendance_backend/internals/features/attendance/attendance/model"
	attendanceService "attendance_backend/internals/features/attendance/attendance/service"
	userModel "attendance_backend/internals/features/users/user/model"
	"attendance_backend/internals/helpers/dbtime"
)

const (
	DefaultDays        = 30
	DefaultPresentRate = 0.9
)

// Ledger is the part of the attendance ledger the seeder drives; every row
// goes through the same paths as live traffic.
type Ledger interface {
	CheckIn(ctx context.Context, userID uuid.UUID, at time.Time) (*model.AttendanceModel, error)
	CheckOut(ctx context.Context, userID uuid.UUID, at time.Time) (*model.AttendanceModel, error)
	MarkAbsent(ctx context.Context, userID uuid.UUID, day time.Time) (bool, error)
	Today(ctx context.Context, userID uuid.UUID, at time.Time) (*model.AttendanceModel, error)
}

type Options struct {
	Days        int
	PresentRate float64
	Rand        *rand.Rand
}

type Result struct {
	Present int
	Absent  int
	Skipped int
}

// SeedAttendance fills the last Days calendar days (weekdays only, today included)
// for each employee: check-in 08:00-10:59, check-out 17:00-18:59, otherwise ABSENT.
// Days that already have a record are skipped.
func SeedAttendance(ctx context.Context, ledger Ledger, employees []userModel.UserModel, today time.Time, loc *time.Location, opts Options) (Result, error) {
	if opts.Days <= 0 {
		opts.Days = DefaultDays
	}
	if opts.PresentRate <= 0 {
		opts.PresentRate = DefaultPresentRate
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	var res Result
	for _, day := range dbtime.LastDays(today, opts.Days, loc) {
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		for _, emp := range employees {
			existing, err := ledger.Today(ctx, emp.ID, day)
			if err != nil {
				return res, err
			}
			if existing != nil {
				res.Skipped++
				continue
			}

			if opts.Rand.Float64() >= opts.PresentRate {
				inserted, err := ledger.MarkAbsent(ctx, emp.ID, day)
				if err != nil {
					return res, err
				}
				if inserted {
					res.Absent++
				} else {
					res.Skipped++
				}
				continue
			}

			in := day.Add(time.Duration(8+opts.Rand.Intn(3))*time.Hour + time.Duration(opts.Rand.Intn(60))*time.Minute)
			out := day.Add(time.Duration(17+opts.Rand.Intn(2))*time.Hour + time.Duration(opts.Rand.Intn(60))*time.Minute)

			if _, err := ledger.CheckIn(ctx, emp.ID, in); err != nil {
				if errors.Is(err, attendanceService.ErrAlreadyCheckedIn) {
					res.Skipped++
					continue
				}
				return res, err
			}
			if _, err := ledger.CheckOut(ctx, emp.ID, out); err != nil {
				return res, err
			}
			res.Present++
		}
	}
	return res, nil
}
