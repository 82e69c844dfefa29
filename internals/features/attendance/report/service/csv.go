package service

import (
	"io"
	"strconv"
	"strings"
	"time"

	"attendance_backend/internals/features/attendance/attendance/model"
)

const (
	notAvailable = "N/A"
	isoMillisUTC = "2006-01-02T15:04:05.000Z"
)

var csvHeader = []string{
	"Employee ID", "Name", "Department", "Date",
	"Check In", "Check Out", "Total Hours", "Status",
}

// WriteCSV renders rows in the export format. Fields are not quoted, so a comma inside a
// name or department shifts the columns of that line.
func WriteCSV(w io.Writer, rows []model.AttendanceModel) error {
	lines := make([]string, 0, len(rows))
	for i := range rows {
		lines = append(lines, strings.Join(csvFields(&rows[i]), ","))
	}
	_, err := io.WriteString(w, strings.Join(csvHeader, ",")+"\n"+strings.Join(lines, "\n"))
	return err
}

func csvFields(rec *model.AttendanceModel) []string {
	var employeeID, name, department string
	if rec.User != nil {
		employeeID = rec.User.EmployeeID
		name = rec.User.Name
		department = rec.User.DepartmentName()
	}
	if department == "" {
		department = notAvailable
	}

	return []string{
		employeeID,
		name,
		department,
		rec.DateKey(),
		csvTime(rec.CheckInTime),
		csvTime(rec.CheckOutTime),
		csvHours(rec.TotalHours),
		string(rec.Status),
	}
}

func csvTime(t *time.Time) string {
	if t == nil {
		return notAvailable
	}
	return t.UTC().Format(isoMillisUTC)
}

// zero hours render as N/A as well
func csvHours(h *float64) string {
	if h == nil || *h == 0 {
		return notAvailable
	}
	return strconv.FormatFloat(*h, 'f', -1, 64)
}
