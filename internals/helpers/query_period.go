package helper

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"attendance_backend/internals/helpers/dbtime"
)

// ResolveMonth reads ?month=&year=, defaulting each to now's value.
func ResolveMonth(c *fiber.Ctx, now time.Time) (dbtime.Month, error) {
	m := dbtime.MonthOf(now)

	if raw := strings.TrimSpace(c.Query("month")); raw != "" {
		month, err := parseMonth(raw)
		if err != nil {
			return dbtime.Month{}, err
		}
		m.Month = month
	}
	if raw := strings.TrimSpace(c.Query("year")); raw != "" {
		year, err := parseYear(raw)
		if err != nil {
			return dbtime.Month{}, err
		}
		m.Year = year
	}
	return m, nil
}

// OptionalMonth filters only when both month and year are present.
func OptionalMonth(c *fiber.Ctx) (*dbtime.Month, error) {
	rawMonth := strings.TrimSpace(c.Query("month"))
	rawYear := strings.TrimSpace(c.Query("year"))
	if rawMonth == "" || rawYear == "" {
		return nil, nil
	}
	month, err := parseMonth(rawMonth)
	if err != nil {
		return nil, err
	}
	year, err := parseYear(rawYear)
	if err != nil {
		return nil, err
	}
	return &dbtime.Month{Year: year, Month: month}, nil
}

// OptionalDate reads a YYYY-MM-DD query value as a day bucket in loc.
func OptionalDate(c *fiber.Ctx, key string, loc *time.Location) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	d, err := dbtime.ParseDate(raw, loc)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, key+" must be a date in YYYY-MM-DD format")
	}
	return &d, nil
}

func parseMonth(raw string) (time.Month, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > 12 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "month must be an integer between 1 and 12")
	}
	return time.Month(n), nil
}

func parseYear(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1970 || n > 9999 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "year must be an integer between 1970 and 9999")
	}
	return n, nil
}
