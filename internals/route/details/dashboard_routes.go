package details

import (
	"github.com/gofiber/fiber/v2"

	dashboardController "attendance_backend/internals/features/dashboard/controller"
	dashboardRoute "attendance_backend/internals/features/dashboard/route"
)

func DashboardRoutes(api fiber.Router, ctl *dashboardController.DashboardController, protect fiber.Handler) {
	dashboardRoute.DashboardRoutes(api, ctl, protect)
}
