package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"attendance_backend/internals/constants"
	userModel "attendance_backend/internals/features/users/user/model"
	"attendance_backend/internals/testfixtures"
)

const testSecret = "test-secret-with-enough-entropy-1234"

func TestTokenService_IssueAndParse(t *testing.T) {
	clock := testfixtures.NewClock(time.Time{})
	svc, err := NewTokenService(testSecret, time.Hour, clock.NowFunc())
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	user := &userModel.UserModel{ID: uuid.New(), Role: constants.RoleManager}

	raw, exp, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if !exp.Equal(clock.Now().Add(time.Hour)) {
		t.Fatalf("unexpected expiry %v", exp)
	}

	t.Run("valid", func(t *testing.T) {
		claims, err := svc.Parse(raw)
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		id, _ := claims.UserID()
		if id != user.ID || claims.Role != constants.RoleManager {
			t.Fatalf("unexpected claims %+v", claims)
		}
	})

	t.Run("distinct ids", func(t *testing.T) {
		other, _, _ := svc.Issue(user)
		if other == raw || svc.Fingerprint(other) == svc.Fingerprint(raw) {
			t.Fatal("tokens issued in the same second must differ")
		}
	})

	t.Run("expired", func(t *testing.T) {
		clock.Advance(time.Hour)
		defer clock.Advance(-time.Hour)
		if _, err := svc.Parse(raw); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, _ := NewTokenService("another-secret", time.Hour, clock.NowFunc())
		if _, err := other.Parse(raw); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("unexpected algorithm", func(t *testing.T) {
		claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(clock.Now().Add(time.Hour)),
		}}
		forged, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		if _, err := svc.Parse(forged); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := svc.Parse("not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})
}

func TestNewTokenService_RequiresSecret(t *testing.T) {
	if _, err := NewTokenService("  ", time.Hour, nil); err == nil {
		t.Fatal("expected error for empty secret")
	}
}
