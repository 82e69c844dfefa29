package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"attendance_backend/internals/features/users/auth/dto"
	userModel "attendance_backend/internals/features/users/user/model"
	userRepo "attendance_backend/internals/features/users/user/repository"
)

var ErrInvalidCredentials = errors.New("Invalid credentials")

// UserStore is the slice of the user repository auth needs.
type UserStore interface {
	Create(ctx context.Context, user *userModel.UserModel) error
	FindByID(ctx context.Context, id uuid.UUID) (*userModel.UserModel, error)
	FindByEmail(ctx context.Context, email string) (*userModel.UserModel, error)
}

type AuthService struct {
	users     UserStore
	tokens    *TokenService
	passwords *PasswordHasher
	revoker   Revoker
}

func NewAuthService(users UserStore, tokens *TokenService, passwords *PasswordHasher, revoker Revoker) *AuthService {
	return &AuthService{users: users, tokens: tokens, passwords: passwords, revoker: revoker}
}

// ========================== REGISTER ==========================
// Register expects a normalised, validated request.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*userModel.UserModel, string, error) {
	hash, err := s.passwords.Hash(req.Password)
	if err != nil {
		return nil, "", err
	}

	user := req.ToModel(hash)
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}
	log.Printf("[INFO] registered user %s (%s, %s)", user.ID, user.EmployeeID, user.Role)

	token, _, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// ========================== LOGIN ==========================
// Login answers ErrInvalidCredentials for both unknown emails and wrong passwords.
func (s *AuthService) Login(ctx context.Context, email, password string) (*userModel.UserModel, string, error) {
	user, err := s.users.FindByEmail(ctx, dto.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			s.passwords.Burn(password)
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	ok, err := s.passwords.Verify(user.Password, password)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return nil, "", ErrInvalidCredentials
	}

	token, _, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// ========================== AUTHENTICATE ==========================
// Authenticate resolves a bearer token to its user. Bad, expired, revoked
// tokens and deleted users all yield ErrInvalidToken.
func (s *AuthService) Authenticate(ctx context.Context, raw string) (*userModel.UserModel, error) {
	claims, err := s.tokens.Parse(raw)
	if err != nil {
		return nil, err
	}

	if s.revoker != nil {
		revoked, err := s.revoker.IsRevoked(ctx, s.tokens.Fingerprint(raw))
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, ErrInvalidToken
		}
	}

	id, _ := claims.UserID()
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

// ========================== LOGOUT ==========================
func (s *AuthService) Logout(ctx context.Context, raw string) error {
	claims, err := s.tokens.Parse(raw)
	if err != nil {
		return err
	}
	if s.revoker == nil {
		return nil
	}
	return s.revoker.Revoke(ctx, s.tokens.Fingerprint(raw), claims.ExpiresAt.Time)
}

func (s *AuthService) TokenTTL() time.Duration {
	return s.tokens.ttl
}
