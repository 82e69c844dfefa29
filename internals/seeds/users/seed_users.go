package users

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log"

	"github.com/bytedance/sonic"

	"attendance_backend/internals/constants"
	userModel "attendance_backend/internals/features/users/user/model"
	userRepo "attendance_backend/internals/features/users/user/repository"
)

//go:embed data_users.json
var defaultUsersJSON []byte

type UserSeed struct {
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Password      string   `json:"password"`
	Role          string   `json:"role"`
	EmployeeID    string   `json:"employeeId"`
	Department    *string  `json:"department"`
	MonthlySalary *float64 `json:"monthlySalary"`
	HourlyRate    *float64 `json:"hourlyRate"`
}

type Store interface {
	Create(ctx context.Context, user *userModel.UserModel) error
	FindByEmail(ctx context.Context, email string) (*userModel.UserModel, error)
}

type Hasher interface {
	Hash(password string) (string, error)
}

// DefaultUsers decodes the bundled accounts (one manager, five employees).
func DefaultUsers() ([]UserSeed, error) {
	var seeds []UserSeed
	if err := sonic.Unmarshal(defaultUsersJSON, &seeds); err != nil {
		return nil, fmt.Errorf("decode user seeds: %w", err)
	}
	return seeds, nil
}

// SeedUsers inserts every seed whose email is not taken yet and returns how many were created.
func SeedUsers(ctx context.Context, store Store, hasher Hasher, seeds []UserSeed) (int, error) {
	created := 0
	for _, data := range seeds {
		if !constants.IsValidRole(data.Role) {
			return created, fmt.Errorf("seed %s: invalid role %q", data.Email, data.Role)
		}

		_, err := store.FindByEmail(ctx, data.Email)
		if err == nil {
			log.Printf("[INFO] seed user %s already exists, skipped", data.Email)
			continue
		}
		if !errors.Is(err, userRepo.ErrNotFound) {
			return created, err
		}

		// 🔐 Hash password sebelum disimpan
		hashed, err := hasher.Hash(data.Password)
		if err != nil {
			return created, fmt.Errorf("hash password for %s: %w", data.Email, err)
		}

		newUser := userModel.UserModel{
			Name:          data.Name,
			Email:         data.Email,
			Password:      hashed,
			Role:          data.Role,
			EmployeeID:    data.EmployeeID,
			Department:    data.Department,
			MonthlySalary: data.MonthlySalary,
			HourlyRate:    data.HourlyRate,
		}
		if err := store.Create(ctx, &newUser); err != nil {
			return created, fmt.Errorf("insert user %s: %w", data.Email, err)
		}
		created++
		log.Printf("[INFO] seeded user %s (%s)", data.Email, data.EmployeeID)
	}
	return created, nil
}
