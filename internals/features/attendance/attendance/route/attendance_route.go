package route

import (
	"github.com/gofiber/fiber/v2"

	"attendance_backend/internals/constants"
	"attendance_backend/internals/features/attendance/attendance/controller"
	reportController "attendance_backend/internals/features/attendance/report/controller"
	authMiddleware "attendance_backend/internals/middlewares/auth"
)

// AttendanceRoutes mounts /attendance under api; every route requires protect.
func AttendanceRoutes(api fiber.Router, ctl *controller.AttendanceController, reports *reportController.ReportController, protect fiber.Handler) {
	g := api.Group("/attendance", protect)

	// 👤 Self (caller's own records)
	g.Post("/checkin", ctl.CheckIn)
	g.Post("/checkout", ctl.CheckOut)
	g.Get("/history", ctl.History)
	g.Get("/my-summary", ctl.MySummary)
	g.Get("/today", ctl.Today)
	g.Get("/salary", ctl.Salary)

	// 👔 Manager
	onlyManager := authMiddleware.OnlyRoles(
		constants.RoleErrorManager("team attendance"),
		constants.ManagerOnly...,
	)
	g.Get("/all", onlyManager, ctl.ListAll)
	g.Get("/employee/:id", onlyManager, ctl.EmployeeHistory)
	g.Get("/summary", onlyManager, reports.TeamSummary)
	g.Get("/export", onlyManager, reports.Export)
	g.Get("/daily-status", onlyManager, reports.DailyStatus)
	g.Get("/team-calendar", onlyManager, reports.TeamCalendar)
}
