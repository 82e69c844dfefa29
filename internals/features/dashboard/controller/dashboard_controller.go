package controller

import (
	"github.com/gofiber/fiber/v2"

	"attendance_backend/internals/features/dashboard/dto"
	"attendance_backend/internals/features/dashboard/service"
	helper "attendance_backend/internals/helpers"
)

type DashboardController struct {
	Dashboards *service.DashboardService
}

func NewDashboardController(svc *service.DashboardService) *DashboardController {
	return &DashboardController{Dashboards: svc}
}

// GET /dashboard/employee
func (ctl *DashboardController) EmployeeStats(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	stats, err := ctl.Dashboards.EmployeeStats(c.UserContext(), userID, ctl.Dashboards.Now())
	if err != nil {
		return helper.JsonInternalError(c, "Failed to get employee stats", err)
	}
	return helper.JsonOK(c, dto.NewEmployeeStatsResponse(stats))
}

// GET /dashboard/manager
func (ctl *DashboardController) ManagerStats(c *fiber.Ctx) error {
	stats, err := ctl.Dashboards.ManagerStats(c.UserContext(), ctl.Dashboards.Now())
	if err != nil {
		return helper.JsonInternalError(c, "Failed to get manager stats", err)
	}
	return helper.JsonOK(c, dto.NewManagerStatsResponse(stats))
}
