package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"attendance_backend/internals/features/attendance/attendance/model"
	"attendance_backend/internals/features/attendance/attendance/repository"
	userModel "attendance_backend/internals/features/users/user/model"
	userRepo "attendance_backend/internals/features/users/user/repository"
	"attendance_backend/internals/helpers/dbtime"
)

var (
	ErrAlreadyCheckedIn  = errors.New("Already checked in today")
	ErrNotCheckedIn      = errors.New("Please check in first")
	ErrAlreadyCheckedOut = errors.New("Already checked out today")
	ErrUserNotFound      = errors.New("User not found")
)

// UserFinder is the slice of the user repository the ledger needs.
type UserFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*userModel.UserModel, error)
	FindByEmployeeID(ctx context.Context, employeeID string) (*userModel.UserModel, error)
}

// LedgerService records check-ins and check-outs and answers per-employee queries.
type LedgerService struct {
	records repository.AttendanceRepository
	users   UserFinder
	loc     *time.Location
	now     func() time.Time
}

func NewLedgerService(records repository.AttendanceRepository, users UserFinder, loc *time.Location, now func() time.Time) *LedgerService {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &LedgerService{records: records, users: users, loc: loc, now: now}
}

// Now is the current instant in the business zone.
func (s *LedgerService) Now() time.Time {
	return s.now().In(s.loc)
}

func (s *LedgerService) Location() *time.Location {
	return s.loc
}

/* ==========================
   Commands
========================== */

func (s *LedgerService) CheckIn(ctx context.Context, userID uuid.UUID, at time.Time) (*model.AttendanceModel, error) {
	at = at.In(s.loc)
	day := dbtime.DayBucket(at, s.loc)
	status := DeriveCheckInStatus(at)

	existing, err := s.records.FindByUserAndDate(ctx, userID, day)
	if errors.Is(err, repository.ErrNotFound) {
		rec := &model.AttendanceModel{
			UserID:      userID,
			Date:        datatypes.Date(day),
			CheckInTime: &at,
			Status:      status,
		}
		err = s.records.Create(ctx, rec)
		if err == nil {
			return rec, nil
		}
		if !errors.Is(err, repository.ErrDuplicate) {
			return nil, err
		}
		// lost the insert race; the winner may be a check-in or an ABSENT backfill
		existing, err = s.records.FindByUserAndDate(ctx, userID, day)
	}
	if err != nil {
		return nil, err
	}

	if existing.CheckInTime != nil {
		return nil, ErrAlreadyCheckedIn
	}
	claimed, err := s.records.ClaimCheckIn(ctx, existing.ID, at, status)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, ErrAlreadyCheckedIn
	}
	existing.CheckInTime = &at
	existing.Status = status
	return existing, nil
}

func (s *LedgerService) CheckOut(ctx context.Context, userID uuid.UUID, at time.Time) (*model.AttendanceModel, error) {
	at = at.In(s.loc)
	day := dbtime.DayBucket(at, s.loc)

	existing, err := s.records.FindByUserAndDate(ctx, userID, day)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotCheckedIn
	}
	if err != nil {
		return nil, err
	}
	if existing.CheckInTime == nil {
		return nil, ErrNotCheckedIn
	}
	if existing.CheckOutTime != nil {
		return nil, ErrAlreadyCheckedOut
	}

	hours, err := ComputeTotalHours(*existing.CheckInTime, at)
	if err != nil {
		return nil, err
	}
	status := DeriveCheckoutStatus(existing.Status, hours)
	stored := RoundTo2(hours)

	done, err := s.records.CompleteCheckOut(ctx, existing.ID, at, stored, status)
	if err != nil {
		return nil, err
	}
	if !done {
		return nil, ErrAlreadyCheckedOut
	}
	existing.CheckOutTime = &at
	existing.TotalHours = &stored
	existing.Status = status
	return existing, nil
}

// MarkAbsent writes an ABSENT row for the day unless the user already has one.
func (s *LedgerService) MarkAbsent(ctx context.Context, userID uuid.UUID, day time.Time) (bool, error) {
	rec := &model.AttendanceModel{
		UserID: userID,
		Date:   datatypes.Date(dbtime.DayBucket(day, s.loc)),
		Status: model.StatusAbsent,
	}
	return s.records.InsertIfMissing(ctx, rec)
}

/* ==========================
   Queries
========================== */

// History lists the user's records newest first, narrowed to month when given.
func (s *LedgerService) History(ctx context.Context, userID uuid.UUID, month *dbtime.Month) ([]model.AttendanceModel, error) {
	f := repository.Filter{UserID: &userID, Order: repository.NewestFirst}
	if month != nil {
		f = f.InMonth(*month, s.loc)
	}
	return s.records.List(ctx, f)
}

// EmployeeHistory is History with the owning user attached, for managers.
func (s *LedgerService) EmployeeHistory(ctx context.Context, userID uuid.UUID, month *dbtime.Month) ([]model.AttendanceModel, error) {
	f := repository.Filter{UserID: &userID, Order: repository.NewestFirst, WithUser: true}
	if month != nil {
		f = f.InMonth(*month, s.loc)
	}
	return s.records.List(ctx, f)
}

func (s *LedgerService) MonthlySummary(ctx context.Context, userID uuid.UUID, month dbtime.Month) (Summary, error) {
	rows, err := s.records.List(ctx, repository.Filter{UserID: &userID}.InMonth(month, s.loc))
	if err != nil {
		return Summary{}, err
	}
	return BuildDailySummary(rows), nil
}

// Today returns the user's record for at's day, or nil when there is none.
func (s *LedgerService) Today(ctx context.Context, userID uuid.UUID, at time.Time) (*model.AttendanceModel, error) {
	rec, err := s.records.FindByUserAndDate(ctx, userID, dbtime.DayBucket(at, s.loc))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return rec, err
}

func (s *LedgerService) MonthlySalary(ctx context.Context, userID uuid.UUID, month dbtime.Month) (SalaryResult, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return SalaryResult{}, ErrUserNotFound
		}
		return SalaryResult{}, err
	}

	f := repository.Filter{
		UserID:   &userID,
		Statuses: []model.Status{model.StatusPresent, model.StatusLate},
	}.InMonth(month, s.loc)
	rows, err := s.records.List(ctx, f)
	if err != nil {
		return SalaryResult{}, err
	}
	return ComputeMonthlySalary(*user, rows), nil
}

// ListFilter is the manager listing filter; zero values mean "any".
type ListFilter struct {
	Date       *time.Time
	Status     model.Status
	EmployeeID string
}

// ListAll returns every matching record newest first with users attached.
// An employeeId that matches no user yields an empty list.
func (s *LedgerService) ListAll(ctx context.Context, lf ListFilter) ([]model.AttendanceModel, error) {
	f := repository.Filter{Order: repository.NewestFirst, WithUser: true}

	if lf.Date != nil {
		f = f.OnDay(dbtime.DayBucket(*lf.Date, s.loc))
	}
	if lf.Status != "" {
		f.Statuses = []model.Status{lf.Status}
	}
	if lf.EmployeeID != "" {
		user, err := s.users.FindByEmployeeID(ctx, lf.EmployeeID)
		if errors.Is(err, userRepo.ErrNotFound) {
			return []model.AttendanceModel{}, nil
		}
		if err != nil {
			return nil, err
		}
		f.UserID = &user.ID
	}
	return s.records.List(ctx, f)
}
