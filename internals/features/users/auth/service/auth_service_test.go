package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"attendance_backend/internals/constants"
	"attendance_backend/internals/features/users/auth/dto"
	userRepo "attendance_backend/internals/features/users/user/repository"
	"attendance_backend/internals/testfixtures"
)

type authEnv struct {
	svc   *AuthService
	users *testfixtures.UserStore
	clock *testfixtures.Clock
}

func newAuthEnv(t *testing.T) authEnv {
	t.Helper()
	client, _ := setupTestRedis(t)
	clock := testfixtures.NewClock(time.Time{})
	tokens, err := NewTokenService(testSecret, DefaultTokenTTL, clock.NowFunc())
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	users := testfixtures.NewUserStore()
	return authEnv{
		svc:   NewAuthService(users, tokens, NewPasswordHasher(bcrypt.MinCost), NewRedisRevoker(client, clock.NowFunc())),
		users: users,
		clock: clock,
	}
}

func registerReq(email, employeeID string) dto.RegisterRequest {
	req := dto.RegisterRequest{
		Name:       "Alice Johnson",
		Email:      email,
		Password:   "secret123",
		EmployeeID: employeeID,
	}
	req.Normalize()
	return req
}

func TestAuthService_Register(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()

	user, token, err := env.svc.Register(ctx, registerReq(" Alice@Company.com ", "EMP001"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "alice@company.com" || user.Role != constants.RoleEmployee {
		t.Fatalf("unexpected user %+v", user)
	}
	if user.Password == "secret123" {
		t.Fatal("password must be stored hashed")
	}
	if token == "" {
		t.Fatal("expected token")
	}

	authed, err := env.svc.Authenticate(ctx, token)
	if err != nil || authed.ID != user.ID {
		t.Fatalf("Authenticate: %v %+v", err, authed)
	}

	t.Run("duplicate email", func(t *testing.T) {
		_, _, err := env.svc.Register(ctx, registerReq("alice@company.com", "EMP002"))
		if !errors.Is(err, userRepo.ErrDuplicateEmail) {
			t.Fatalf("expected ErrDuplicateEmail, got %v", err)
		}
	})

	t.Run("duplicate employee id", func(t *testing.T) {
		_, _, err := env.svc.Register(ctx, registerReq("bob@company.com", "EMP001"))
		if !errors.Is(err, userRepo.ErrDuplicateEmployeeID) {
			t.Fatalf("expected ErrDuplicateEmployeeID, got %v", err)
		}
	})

	t.Run("manager role accepted", func(t *testing.T) {
		req := registerReq("boss@company.com", "MGR001")
		req.Role = constants.RoleManager
		u, _, err := env.svc.Register(ctx, req)
		if err != nil || !u.IsManager() {
			t.Fatalf("Register manager: %v %+v", err, u)
		}
	})
}

func TestAuthService_Login(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()
	if _, _, err := env.svc.Register(ctx, registerReq("alice@company.com", "EMP001")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	t.Run("ok with different case", func(t *testing.T) {
		u, token, err := env.svc.Login(ctx, "ALICE@company.com", "secret123")
		if err != nil || token == "" || u.EmployeeID != "EMP001" {
			t.Fatalf("Login: %v", err)
		}
	})

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		_, _, errWrong := env.svc.Login(ctx, "alice@company.com", "nope")
		_, _, errUnknown := env.svc.Login(ctx, "ghost@company.com", "secret123")
		if !errors.Is(errWrong, ErrInvalidCredentials) || !errors.Is(errUnknown, ErrInvalidCredentials) {
			t.Fatalf("got %v / %v", errWrong, errUnknown)
		}
		if errWrong.Error() != errUnknown.Error() {
			t.Fatal("messages must not reveal which part was wrong")
		}
	})

	t.Run("store failure surfaces", func(t *testing.T) {
		boom := errors.New("db down")
		env.users.FailWith = boom
		defer func() { env.users.FailWith = nil }()
		if _, _, err := env.svc.Login(ctx, "alice@company.com", "secret123"); !errors.Is(err, boom) {
			t.Fatalf("expected store error, got %v", err)
		}
	})
}

func TestAuthService_LogoutRevokesOnlyThatToken(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()
	if _, _, err := env.svc.Register(ctx, registerReq("alice@company.com", "EMP001")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, first, _ := env.svc.Login(ctx, "alice@company.com", "secret123")
	_, second, _ := env.svc.Login(ctx, "alice@company.com", "secret123")

	if err := env.svc.Logout(ctx, first); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := env.svc.Authenticate(ctx, first); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("revoked token accepted: %v", err)
	}
	if _, err := env.svc.Authenticate(ctx, second); err != nil {
		t.Fatalf("other session should stay valid: %v", err)
	}
	if err := env.svc.Logout(ctx, "garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthService_AuthenticateExpired(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()
	_, token, err := env.svc.Register(ctx, registerReq("alice@company.com", "EMP001"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	env.clock.Advance(DefaultTokenTTL)
	if _, err := env.svc.Authenticate(ctx, token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
