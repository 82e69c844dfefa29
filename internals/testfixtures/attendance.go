package testfixtures

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"attendance_backend/internals/features/attendance/attendance/model"
	attendanceRepo "attendance_backend/internals/features/attendance/attendance/repository"
	userModel "attendance_backend/internals/features/users/user/model"
	"attendance_backend/internals/helpers/dbtime"
)

// AttendanceStore is an in-memory attendance repository keyed by (user, day).
type AttendanceStore struct {
	mu      sync.Mutex
	records map[uuid.UUID]model.AttendanceModel
	users   *UserStore

	FailWith error
}

var _ attendanceRepo.AttendanceRepository = (*AttendanceStore)(nil)

// NewAttendanceStore links to users so List can preload the owning user.
func NewAttendanceStore(users *UserStore) *AttendanceStore {
	return &AttendanceStore{records: make(map[uuid.UUID]model.AttendanceModel), users: users}
}

func (s *AttendanceStore) FindByUserAndDate(ctx context.Context, userID uuid.UUID, day time.Time) (*model.AttendanceModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	if rec, ok := s.slot(userID, dbtime.DateKey(day)); ok {
		return &rec, nil
	}
	return nil, attendanceRepo.ErrNotFound
}

func (s *AttendanceStore) Create(ctx context.Context, rec *model.AttendanceModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	if _, taken := s.slot(rec.UserID, rec.DateKey()); taken {
		return attendanceRepo.ErrDuplicate
	}
	s.insert(rec)
	return nil
}

func (s *AttendanceStore) InsertIfMissing(ctx context.Context, rec *model.AttendanceModel) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return false, s.FailWith
	}
	if _, taken := s.slot(rec.UserID, rec.DateKey()); taken {
		return false, nil
	}
	s.insert(rec)
	return true, nil
}

func (s *AttendanceStore) ClaimCheckIn(ctx context.Context, id uuid.UUID, at time.Time, status model.Status) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return false, s.FailWith
	}
	rec, ok := s.records[id]
	if !ok || rec.CheckInTime != nil {
		return false, nil
	}
	rec.CheckInTime = &at
	rec.Status = status
	rec.UpdatedAt = time.Now()
	s.records[id] = rec
	return true, nil
}

func (s *AttendanceStore) CompleteCheckOut(ctx context.Context, id uuid.UUID, at time.Time, totalHours float64, status model.Status) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return false, s.FailWith
	}
	rec, ok := s.records[id]
	if !ok || rec.CheckInTime == nil || rec.CheckOutTime != nil {
		return false, nil
	}
	rec.CheckOutTime = &at
	rec.TotalHours = &totalHours
	rec.Status = status
	rec.UpdatedAt = time.Now()
	s.records[id] = rec
	return true, nil
}

func (s *AttendanceStore) List(ctx context.Context, f attendanceRepo.Filter) ([]model.AttendanceModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}

	var from, to string
	if f.From != nil {
		from = dbtime.DateKey(*f.From)
	}
	if f.To != nil {
		to = dbtime.DateKey(*f.To)
	}

	var out []model.AttendanceModel
	for _, rec := range s.records {
		key := rec.DateKey()
		if f.UserID != nil && rec.UserID != *f.UserID {
			continue
		}
		if from != "" && key < from {
			continue
		}
		if to != "" && key > to {
			continue
		}
		if len(f.Statuses) > 0 && !containsStatus(f.Statuses, rec.Status) {
			continue
		}
		if f.WithUser && s.users != nil {
			if u, err := s.users.FindByID(ctx, rec.UserID); err == nil {
				rec.User = &userModel.UserModel{
					ID:         u.ID,
					Name:       u.Name,
					Email:      u.Email,
					EmployeeID: u.EmployeeID,
					Department: u.Department,
				}
			}
		}
		out = append(out, rec)
	}

	sort.SliceStable(out, func(i, j int) bool {
		ki, kj := out[i].DateKey(), out[j].DateKey()
		if ki == kj {
			if f.Order == attendanceRepo.OldestFirst {
				return out[i].CreatedAt.Before(out[j].CreatedAt)
			}
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		if f.Order == attendanceRepo.OldestFirst {
			return ki < kj
		}
		return ki > kj
	})
	return out, nil
}

// Put stores rec as-is, replacing any record in the same slot. For arranging test state.
func (s *AttendanceStore) Put(rec model.AttendanceModel) model.AttendanceModel {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.slot(rec.UserID, rec.DateKey()); ok {
		delete(s.records, existing.ID)
	}
	s.insert(&rec)
	return rec
}

func (s *AttendanceStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func (s *AttendanceStore) slot(userID uuid.UUID, key string) (model.AttendanceModel, bool) {
	for _, rec := range s.records {
		if rec.UserID == userID && rec.DateKey() == key {
			return rec, true
		}
	}
	return model.AttendanceModel{}, false
}

func (s *AttendanceStore) insert(rec *model.AttendanceModel) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.Status == "" {
		rec.Status = model.StatusAbsent
	}
	now := time.Now()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	stored := *rec
	stored.User = nil
	s.records[rec.ID] = stored
}

func containsStatus(list []model.Status, s model.Status) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
