package users

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	authService "attendance_backend/internals/features/users/auth/service"
	"attendance_backend/internals/testfixtures"
)

func TestDefaultUsers(t *testing.T) {
	seeds, err := DefaultUsers()
	if err != nil {
		t.Fatalf("DefaultUsers: %v", err)
	}
	if len(seeds) != 6 {
		t.Fatalf("expected 6 seed users, got %d", len(seeds))
	}
	managers := 0
	for _, s := range seeds {
		if s.Role == "MANAGER" {
			managers++
		}
		if (s.MonthlySalary == nil) == (s.HourlyRate == nil) {
			t.Fatalf("%s must have exactly one compensation mode", s.EmployeeID)
		}
	}
	if managers != 1 {
		t.Fatalf("expected one manager, got %d", managers)
	}
}

func TestSeedUsers_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := testfixtures.NewUserStore()
	hasher := authService.NewPasswordHasher(bcrypt.MinCost)
	seeds, err := DefaultUsers()
	if err != nil {
		t.Fatalf("DefaultUsers: %v", err)
	}

	created, err := SeedUsers(ctx, store, hasher, seeds)
	if err != nil || created != 6 {
		t.Fatalf("first run: created=%d err=%v", created, err)
	}
	created, err = SeedUsers(ctx, store, hasher, seeds)
	if err != nil || created != 0 {
		t.Fatalf("second run: created=%d err=%v", created, err)
	}

	bob, err := store.FindByEmail(ctx, "bob@company.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if ok, _ := hasher.Verify(bob.Password, "employee123"); !ok {
		t.Fatal("seeded password should verify")
	}
	if rate, ok := bob.EffectiveHourlyRate(); !ok || rate != 25 {
		t.Fatalf("bob hourly rate %v %v", rate, ok)
	}
}

func TestSeedUsers_RejectsUnknownRole(t *testing.T) {
	seeds := []UserSeed{{Name: "X", Email: "x@company.com", Password: "p", Role: "ADMIN", EmployeeID: "X1"}}
	_, err := SeedUsers(context.Background(), testfixtures.NewUserStore(), authService.NewPasswordHasher(bcrypt.MinCost), seeds)
	if err == nil {
		t.Fatal("expected error for unknown role")
	}
}
