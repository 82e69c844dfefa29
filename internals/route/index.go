// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceController "attendance_backend/internals/features/attendance/attendance/controller"
	reportController "attendance_backend/internals/features/attendance/report/controller"
	dashboardController "attendance_backend/internals/features/dashboard/controller"
	authController "attendance_backend/internals/features/users/auth/controller"
	"attendance_backend/internals/helpers/metrics"
	rateLimiter "attendance_backend/internals/middlewares"
	authMiddleware "attendance_backend/internals/middlewares/auth"
	routeDetails "attendance_backend/internals/route/details"
)

// Deps is everything the HTTP surface needs, built once in main.
type Deps struct {
	DB            *gorm.DB
	Metrics       *metrics.Metrics
	Authenticator authMiddleware.Authenticator
	Auth          *authController.AuthController
	Attendance    *attendanceController.AttendanceController
	Reports       *reportController.ReportController
	Dashboard     *dashboardController.DashboardController
}

func SetupRoutes(app *fiber.App, deps Deps) {
	startTime := time.Now()

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, deps.DB, deps.Metrics, startTime)

	// ===================== API =====================
	api := app.Group("/api", rateLimiter.GlobalRateLimiter())
	protect := authMiddleware.AuthMiddleware(deps.Authenticator)

	log.Println("[INFO] Mounting Auth routes...")
	routeDetails.AuthRoutes(api, deps.Auth, protect)

	log.Println("[INFO] Mounting Attendance routes...")
	routeDetails.AttendanceRoutes(api, deps.Attendance, deps.Reports, protect)

	log.Println("[INFO] Mounting Dashboard routes...")
	routeDetails.DashboardRoutes(api, deps.Dashboard, protect)

	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Route not found")
	})
}
