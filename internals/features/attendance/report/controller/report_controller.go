package controller

import (
	"bytes"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"attendance_backend/internals/features/attendance/report/dto"
	"attendance_backend/internals/features/attendance/report/service"
	helper "attendance_backend/internals/helpers"
)

type ReportController struct {
	Reports  *service.ReportService
	Validate *validator.Validate
}

func NewReportController(reports *service.ReportService) *ReportController {
	return &ReportController{Reports: reports, Validate: helper.NewValidator()}
}

// GET /attendance/summary?month=&year=
func (ctl *ReportController) TeamSummary(c *fiber.Ctx) error {
	month, err := helper.ResolveMonth(c, ctl.Reports.Now())
	if err != nil {
		return err
	}

	sum, err := ctl.Reports.TeamSummary(c.UserContext(), month)
	if err != nil {
		return helper.JsonInternalError(c, "Failed to get team summary", err)
	}
	return helper.JsonOK(c, dto.TeamSummaryResponse{
		Summary: sum,
		Month:   int(month.Month),
		Year:    month.Year,
	})
}

// GET /attendance/daily-status
func (ctl *ReportController) DailyStatus(c *fiber.Ctx) error {
	status, err := ctl.Reports.DailyStatus(c.UserContext(), ctl.Reports.Now())
	if err != nil {
		return helper.JsonInternalError(c, "Failed to get daily status", err)
	}
	return helper.JsonOK(c, dto.NewDailyStatusResponse(status))
}

// GET /attendance/team-calendar?month=&year=
func (ctl *ReportController) TeamCalendar(c *fiber.Ctx) error {
	month, err := helper.ResolveMonth(c, ctl.Reports.Now())
	if err != nil {
		return err
	}

	cal, err := ctl.Reports.TeamCalendar(c.UserContext(), month)
	if err != nil {
		return helper.JsonInternalError(c, "Failed to get team calendar", err)
	}
	return helper.JsonOK(c, dto.TeamCalendarResponse{
		CalendarData: cal.Days,
		Dates:        cal.Dates,
		Month:        int(month.Month),
		Year:         month.Year,
	})
}

// GET /attendance/export?startDate=&endDate=
func (ctl *ReportController) Export(c *fiber.Ctx) error {
	var q dto.ExportQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query parameters")
	}
	if err := ctl.Validate.Struct(&q); err != nil {
		return helper.JsonValidationError(c, helper.FormatValidationError(err))
	}

	from, err := helper.OptionalDate(c, "startDate", ctl.Reports.Location())
	if err != nil {
		return err
	}
	to, err := helper.OptionalDate(c, "endDate", ctl.Reports.Location())
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := ctl.Reports.Export(c.UserContext(), from, to, &buf); err != nil {
		return helper.JsonInternalError(c, "Failed to export attendance", err)
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, "attachment; filename=attendance-report.csv")
	return c.Status(fiber.StatusOK).Send(buf.Bytes())
}
