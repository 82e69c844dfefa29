package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"attendance_backend/internals/features/attendance/attendance/model"
	helper "attendance_backend/internals/helpers"
	"attendance_backend/internals/helpers/dbtime"
)

var (
	ErrNotFound  = errors.New("attendance record not found")
	ErrDuplicate = errors.New("attendance record already exists for this day")
)

type Order int

const (
	NewestFirst Order = iota
	OldestFirst
)

// Filter narrows List. From and To are inclusive day buckets; nil means unbounded.
type Filter struct {
	UserID   *uuid.UUID
	From     *time.Time
	To       *time.Time
	Statuses []model.Status
	Order    Order
	WithUser bool
}

// OnDay restricts the filter to a single day.
func (f Filter) OnDay(day time.Time) Filter {
	f.From = &day
	f.To = &day
	return f
}

// InMonth restricts the filter to every day of m.
func (f Filter) InMonth(m dbtime.Month, loc *time.Location) Filter {
	first, last := m.Range(loc)
	f.From = &first
	f.To = &last
	return f
}

type AttendanceRepository interface {
	FindByUserAndDate(ctx context.Context, userID uuid.UUID, day time.Time) (*model.AttendanceModel, error)
	// Create fails with ErrDuplicate when the user already has a record for that day.
	Create(ctx context.Context, rec *model.AttendanceModel) error
	// InsertIfMissing is a no-op when the (user, day) slot is taken.
	InsertIfMissing(ctx context.Context, rec *model.AttendanceModel) (bool, error)
	// ClaimCheckIn sets check-in only while it is still unset.
	ClaimCheckIn(ctx context.Context, id uuid.UUID, at time.Time, status model.Status) (bool, error)
	// CompleteCheckOut sets check-out only while it is still unset.
	CompleteCheckOut(ctx context.Context, id uuid.UUID, at time.Time, totalHours float64, status model.Status) (bool, error)
	List(ctx context.Context, f Filter) ([]model.AttendanceModel, error)
}

type GormAttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) *GormAttendanceRepository {
	return &GormAttendanceRepository{db: db}
}

func (r *GormAttendanceRepository) FindByUserAndDate(ctx context.Context, userID uuid.UUID, day time.Time) (*model.AttendanceModel, error) {
	var rec model.AttendanceModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, dbtime.DateKey(day)).
		Take(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *GormAttendanceRepository) Create(ctx context.Context, rec *model.AttendanceModel) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		if helper.IsDuplicateKey(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *GormAttendanceRepository) InsertIfMissing(ctx context.Context, rec *model.AttendanceModel) (bool, error) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoNothing: true,
		}).
		Create(rec)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *GormAttendanceRepository) ClaimCheckIn(ctx context.Context, id uuid.UUID, at time.Time, status model.Status) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.AttendanceModel{}).
		Where("id = ? AND check_in_time IS NULL", id).
		Updates(map[string]any{
			"check_in_time": at,
			"status":        status,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *GormAttendanceRepository) CompleteCheckOut(ctx context.Context, id uuid.UUID, at time.Time, totalHours float64, status model.Status) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.AttendanceModel{}).
		Where("id = ? AND check_in_time IS NOT NULL AND check_out_time IS NULL", id).
		Updates(map[string]any{
			"check_out_time": at,
			"total_hours":    totalHours,
			"status":         status,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *GormAttendanceRepository) List(ctx context.Context, f Filter) ([]model.AttendanceModel, error) {
	q := r.db.WithContext(ctx).Model(&model.AttendanceModel{})

	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.From != nil {
		q = q.Where("date >= ?", dbtime.DateKey(*f.From))
	}
	if f.To != nil {
		q = q.Where("date <= ?", dbtime.DateKey(*f.To))
	}
	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			statuses[i] = string(s)
		}
		q = q.Where("status = ANY(?)", pq.Array(statuses))
	}
	if f.WithUser {
		q = q.Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email", "employee_id", "department")
		})
	}

	if f.Order == OldestFirst {
		q = q.Order("date ASC").Order("created_at ASC")
	} else {
		q = q.Order("date DESC").Order("created_at DESC")
	}

	var rows []model.AttendanceModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
