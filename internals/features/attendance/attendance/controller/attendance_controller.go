package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"attendance_backend/internals/features/attendance/attendance/dto"
	"attendance_backend/internals/features/attendance/attendance/model"
	"attendance_backend/internals/features/attendance/attendance/service"
	helper "attendance_backend/internals/helpers"
	"attendance_backend/internals/helpers/metrics"
)

type AttendanceController struct {
	Ledger   *service.LedgerService
	Validate *validator.Validate
	Metrics  *metrics.Metrics
}

func NewAttendanceController(ledger *service.LedgerService, m *metrics.Metrics) *AttendanceController {
	return &AttendanceController{
		Ledger:   ledger,
		Validate: helper.NewValidator(),
		Metrics:  m,
	}
}

// POST /attendance/checkin
func (ctl *AttendanceController) CheckIn(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	rec, err := ctl.Ledger.CheckIn(c.UserContext(), userID, ctl.Ledger.Now())
	if err != nil {
		return ledgerError(c, err, "Failed to check in")
	}
	ctl.Metrics.ObserveAttendance("checkin", string(rec.Status))

	return helper.JsonOK(c, dto.CheckResponse{
		Message:    "Checked in successfully",
		Attendance: dto.FromModel(rec),
	})
}

// POST /attendance/checkout
func (ctl *AttendanceController) CheckOut(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	rec, err := ctl.Ledger.CheckOut(c.UserContext(), userID, ctl.Ledger.Now())
	if err != nil {
		return ledgerError(c, err, "Failed to check out")
	}
	ctl.Metrics.ObserveAttendance("checkout", string(rec.Status))

	return helper.JsonOK(c, dto.CheckResponse{
		Message:    "Checked out successfully",
		Attendance: dto.FromModel(rec),
	})
}

// GET /attendance/history?month=&year=
func (ctl *AttendanceController) History(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	month, err := helper.OptionalMonth(c)
	if err != nil {
		return err
	}

	rows, err := ctl.Ledger.History(c.UserContext(), userID, month)
	if err != nil {
		return helper.JsonInternalError(c, "Failed to get attendance history", err)
	}
	return helper.JsonOK(c, dto.HistoryResponse{Attendances: dto.FromModels(rows)})
}

// GET /attendance/my-summary?month=&year=
func (ctl *AttendanceController) MySummary(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	month, err := helper.ResolveMonth(c, ctl.Ledger.Now())
	if err != nil {
		return err
	}

	summary, err := ctl.Ledger.MonthlySummary(c.UserContext(), userID, month)
	if err != nil {
		return helper.JsonInternalError(c, "Failed to get summary", err)
	}
	return helper.JsonOK(c, dto.MonthlySummaryResponse{
		Summary: summary,
		Month:   int(month.Month),
		Year:    month.Year,
	})
}

// GET /attendance/today
func (ctl *AttendanceController) Today(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	rec, err := ctl.Ledger.Today(c.UserContext(), userID, ctl.Ledger.Now())
	if err != nil {
		return helper.JsonInternalError(c, "Failed to get today's status", err)
	}
	return helper.JsonOK(c, dto.NewTodayResponse(rec))
}

// GET /attendance/salary?month=&year=
func (ctl *AttendanceController) Salary(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	month, err := helper.ResolveMonth(c, ctl.Ledger.Now())
	if err != nil {
		return err
	}

	res, err := ctl.Ledger.MonthlySalary(c.UserContext(), userID, month)
	if err != nil {
		return ledgerError(c, err, "Failed to calculate salary")
	}
	return helper.JsonOK(c, dto.NewSalaryResponse(res, month.Year, month.Month))
}

/* =======================================================
   MANAGER
   ======================================================= */

// GET /attendance/all?date=&status=&employeeId=
func (ctl *AttendanceController) ListAll(c *fiber.Ctx) error {
	var q dto.ListAllQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query parameters")
	}
	if err := ctl.Validate.Struct(&q); err != nil {
		return helper.JsonValidationError(c, helper.FormatValidationError(err))
	}

	date, err := helper.OptionalDate(c, "date", ctl.Ledger.Location())
	if err != nil {
		return err
	}
	filter := service.ListFilter{
		Date:       date,
		Status:     model.Status(q.Status),
		EmployeeID: q.EmployeeID,
	}

	rows, err := ctl.Ledger.ListAll(c.UserContext(), filter)
	if err != nil {
		return helper.JsonInternalError(c, "Failed to get attendance data", err)
	}
	return helper.JsonOK(c, dto.HistoryResponse{Attendances: dto.FromModels(rows)})
}

// GET /attendance/employee/:id?month=&year=
func (ctl *AttendanceController) EmployeeHistory(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid employee id")
	}
	month, err := helper.OptionalMonth(c)
	if err != nil {
		return err
	}

	rows, err := ctl.Ledger.EmployeeHistory(c.UserContext(), userID, month)
	if err != nil {
		return helper.JsonInternalError(c, "Failed to get employee attendance", err)
	}
	return helper.JsonOK(c, dto.HistoryResponse{Attendances: dto.FromModels(rows)})
}

func ledgerError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, service.ErrAlreadyCheckedIn),
		errors.Is(err, service.ErrNotCheckedIn),
		errors.Is(err, service.ErrAlreadyCheckedOut),
		errors.Is(err, service.ErrInvalidInterval):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	default:
		return helper.JsonInternalError(c, fallback, err)
	}
}
