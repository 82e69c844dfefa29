package testfixtures

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	userModel "attendance_backend/internals/features/users/user/model"
	userRepo "attendance_backend/internals/features/users/user/repository"
)

// UserStore is an in-memory user repository enforcing unique email and employee id.
type UserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]userModel.UserModel

	// FailWith, when set, is returned by every call.
	FailWith error
}

var _ userRepo.UserRepository = (*UserStore)(nil)

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[uuid.UUID]userModel.UserModel)}
}

func (s *UserStore) Create(ctx context.Context, user *userModel.UserModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	for _, u := range s.users {
		if u.Email == user.Email {
			return userRepo.ErrDuplicateEmail
		}
		if u.EmployeeID == user.EmployeeID {
			return userRepo.ErrDuplicateEmployeeID
		}
	}
	user.SetDefaultValues()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	s.users[user.ID] = *user
	return nil
}

func (s *UserStore) FindByID(ctx context.Context, id uuid.UUID) (*userModel.UserModel, error) {
	return s.find(func(u userModel.UserModel) bool { return u.ID == id })
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*userModel.UserModel, error) {
	return s.find(func(u userModel.UserModel) bool { return u.Email == email })
}

func (s *UserStore) FindByEmployeeID(ctx context.Context, employeeID string) (*userModel.UserModel, error) {
	return s.find(func(u userModel.UserModel) bool { return u.EmployeeID == employeeID })
}

func (s *UserStore) ListByRole(ctx context.Context, role string) ([]userModel.UserModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	var out []userModel.UserModel
	for _, u := range s.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })
	return out, nil
}

func (s *UserStore) CountByRole(ctx context.Context, role string) (int64, error) {
	users, err := s.ListByRole(ctx, role)
	return int64(len(users)), err
}

func (s *UserStore) find(match func(userModel.UserModel) bool) (*userModel.UserModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	for _, u := range s.users {
		if match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, userRepo.ErrNotFound
}

// AddUser inserts a user with sensible defaults and returns it. Password is stored as given.
func (s *UserStore) AddUser(t interface{ Fatalf(string, ...any) }, u userModel.UserModel) userModel.UserModel {
	if u.Name == "" {
		u.Name = "Employee " + u.EmployeeID
	}
	if u.Email == "" {
		u.Email = u.EmployeeID + "@company.com"
	}
	if err := s.Create(context.Background(), &u); err != nil {
		t.Fatalf("add user %s: %v", u.EmployeeID, err)
	}
	return u
}

func StrPtr(s string) *string { return &s }

func FloatPtr(f float64) *float64 { return &f }
