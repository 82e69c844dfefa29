package details

import (
	"github.com/gofiber/fiber/v2"

	attendanceController "attendance_backend/internals/features/attendance/attendance/controller"
	attendanceRoute "attendance_backend/internals/features/attendance/attendance/route"
	reportController "attendance_backend/internals/features/attendance/report/controller"
)

func AttendanceRoutes(api fiber.Router, ctl *attendanceController.AttendanceController, reports *reportController.ReportController, protect fiber.Handler) {
	attendanceRoute.AttendanceRoutes(api, ctl, reports, protect)
}
