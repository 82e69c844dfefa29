package seeds

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"attendance_backend/internals/constants"
	attendanceRepo "attendance_backend/internals/features/attendance/attendance/repository"
	attendanceService "attendance_backend/internals/features/attendance/attendance/service"
	authService "attendance_backend/internals/features/users/auth/service"
	userRepo "attendance_backend/internals/features/users/user/repository"
	attendanceSeed "attendance_backend/internals/seeds/attendance"
	userSeed "attendance_backend/internals/seeds/users"
)

// RunAllSeeds loads the bundled accounts and a month of sample attendance.
func RunAllSeeds(ctx context.Context, db *gorm.DB, loc *time.Location, now func() time.Time) error {
	users := userRepo.NewUserRepository(db)
	records := attendanceRepo.NewAttendanceRepository(db)

	//* User
	seeds, err := userSeed.DefaultUsers()
	if err != nil {
		return err
	}
	created, err := userSeed.SeedUsers(ctx, users, authService.NewPasswordHasher(0), seeds)
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	log.Printf("[INFO] %d users created", created)

	//* Attendance
	employees, err := users.ListByRole(ctx, constants.RoleEmployee)
	if err != nil {
		return err
	}
	ledger := attendanceService.NewLedgerService(records, users, loc, now)
	res, err := attendanceSeed.SeedAttendance(ctx, ledger, employees, ledger.Now(), loc, attendanceSeed.Options{})
	if err != nil {
		return fmt.Errorf("seed attendance: %w", err)
	}
	log.Printf("[INFO] attendance seeded: %d present, %d absent, %d skipped", res.Present, res.Absent, res.Skipped)
	return nil
}
