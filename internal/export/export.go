// Package export renders measurements as CSV or XLSX files.
package export

import (
	"strconv"
	"time"

	"go-datamonitor/internal/model"
)

// Columns is the CSV header, in output order.
var Columns = []string{
	"Id",
	"ParameterName",
	"Value",
	"Unit",
	"Timestamp",
	"EngineeringUnit",
	"User",
	"Notes",
	"IsValid",
	"ValidationMessage",
}

// Format names accepted by Render.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// ContentType returns the MIME type for a format.
func ContentType(format string) string {
	if format == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// FileName builds the download name, e.g. datapoints_20260315_101500.csv.
func FileName(format string, at time.Time) string {
	return "datapoints_" + at.UTC().Format("20060102_150405") + "." + format
}

// Render encodes ms in the given format.
func Render(format string, ms []model.Measurement) ([]byte, error) {
	switch format {
	case FormatCSV:
		return CSV(ms)
	case FormatXLSX:
		return XLSX(ms)
	}
	return nil, &UnsupportedFormatError{Format: format}
}

type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return "unsupported export format " + strconv.Quote(e.Format)
}

// record is the text form of one row shared by both encoders.
func record(m *model.Measurement) []string {
	return []string{
		strconv.FormatUint(uint64(m.ID), 10),
		m.ParameterName,
		m.Value.StringFixed(model.ValuePlaces),
		m.UnitOfMeasure,
		m.Timestamp.UTC().Format(time.RFC3339),
		m.UnitName(),
		m.UserName(),
		deref(m.Notes),
		strconv.FormatBool(m.IsValid),
		deref(m.ValidationMessage),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
