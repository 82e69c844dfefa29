package route

import (
	"github.com/gofiber/fiber/v2"

	"attendance_backend/internals/constants"
	"attendance_backend/internals/features/dashboard/controller"
	authMiddleware "attendance_backend/internals/middlewares/auth"
)

func DashboardRoutes(api fiber.Router, ctl *controller.DashboardController, protect fiber.Handler) {
	g := api.Group("/dashboard", protect)

	g.Get("/employee", ctl.EmployeeStats)
	g.Get("/manager",
		authMiddleware.OnlyRoles(constants.RoleErrorManager("the manager dashboard"), constants.ManagerOnly...),
		ctl.ManagerStats,
	)
}
