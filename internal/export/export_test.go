package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"go-datamonitor/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func sample() []model.Measurement {
	notes := `Reading taken near "valve 3", after flush`
	msg := "Pressure cannot be negative"
	unit := &model.Unit{ID: 1, Name: "Process Engineering Unit A", Code: "PROC-A"}
	user := &model.User{ID: uuid.New(), FirstName: "System", LastName: "Administrator"}
	return []model.Measurement{
		{
			ID:            11,
			ParameterName: "Temperature",
			Value:         decimal.RequireFromString("25.5"),
			UnitOfMeasure: "°C",
			Timestamp:     time.Date(2026, 3, 15, 10, 15, 0, 0, time.UTC),
			Unit:          unit,
			User:          user,
			IsValid:       true,
		},
		{
			ID:                12,
			ParameterName:     "Pressure",
			Value:             decimal.RequireFromString("-1.25"),
			UnitOfMeasure:     "bar",
			Notes:             &notes,
			Timestamp:         time.Date(2026, 3, 15, 11, 0, 0, 0, time.FixedZone("CET", 3600)),
			Unit:              unit,
			User:              user,
			IsValid:           false,
			ValidationMessage: &msg,
		},
	}
}

func TestCSVLayout(t *testing.T) {
	out, err := CSV(sample())
	if err != nil {
		t.Fatalf("csv failed: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header and 2 rows, got %d", len(records))
	}
	if strings.Join(records[0], ",") != "Id,ParameterName,Value,Unit,Timestamp,EngineeringUnit,User,Notes,IsValid,ValidationMessage" {
		t.Fatalf("unexpected header: %v", records[0])
	}

	first := records[1]
	if first[0] != "11" || first[2] != "25.5000" || first[4] != "2026-03-15T10:15:00Z" || first[8] != "true" {
		t.Fatalf("unexpected first row: %v", first)
	}
	if first[5] != "Process Engineering Unit A" || first[6] != "System Administrator" || first[7] != "" || first[9] != "" {
		t.Fatalf("unexpected resolved names or empty fields: %v", first)
	}

	second := records[2]
	if second[2] != "-1.2500" || second[4] != "2026-03-15T10:00:00Z" {
		t.Fatalf("expected fixed decimals and UTC time, got %v", second)
	}
	if second[7] != `Reading taken near "valve 3", after flush` || second[8] != "false" {
		t.Fatalf("notes did not round-trip: %q", second[7])
	}
	if !bytes.Contains(out, []byte(`"Reading taken near ""valve 3"", after flush"`)) {
		t.Fatalf("expected RFC 4180 quoting in %q", out)
	}
}

func TestCSVIsDeterministic(t *testing.T) {
	a, _ := CSV(sample())
	b, _ := CSV(sample())
	if !bytes.Equal(a, b) {
		t.Fatalf("same input produced different bytes")
	}
}

func TestCSVEmpty(t *testing.T) {
	out, err := CSV(nil)
	if err != nil {
		t.Fatalf("csv failed: %v", err)
	}
	if string(out) != strings.Join(Columns, ",")+"\r\n" {
		t.Fatalf("unexpected empty export %q", out)
	}
}

func TestXLSXIsDeterministic(t *testing.T) {
	a, err := XLSX(sample())
	if err != nil {
		t.Fatalf("xlsx: %v", err)
	}
	b, err := XLSX(sample())
	if err != nil {
		t.Fatalf("xlsx: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("same input produced different bytes")
	}
}

func TestXLSXContents(t *testing.T) {
	out, err := XLSX(sample())
	if err != nil {
		t.Fatalf("xlsx failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not a workbook: %v", err)
	}
	defer f.Close()

	if sheets := f.GetSheetList(); len(sheets) != 1 || sheets[0] != SheetName {
		t.Fatalf("unexpected sheets: %v", sheets)
	}
	rows, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("read rows failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][9] != "Validation Message" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][1] != "Temperature" || rows[1][2] != "25.5" || rows[1][8] != "TRUE" {
		t.Fatalf("unexpected first row: %v", rows[1])
	}
	if rows[2][9] != "Pressure cannot be negative" {
		t.Fatalf("unexpected validation message: %v", rows[2])
	}

	width, err := f.GetColWidth(SheetName, "H")
	if err != nil {
		t.Fatalf("col width failed: %v", err)
	}
	want := float64(len([]rune(`Reading taken near "valve 3", after flush`)) + 2)
	if width != want {
		t.Fatalf("notes column width = %v, want %v", width, want)
	}
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	if _, err := Render("pdf", nil); err == nil {
		t.Fatalf("expected error for pdf")
	}
	if ContentType(FormatCSV) != "text/csv; charset=utf-8" {
		t.Fatalf("unexpected csv content type")
	}
	if got := FileName(FormatXLSX, time.Date(2026, 3, 15, 10, 15, 0, 0, time.UTC)); got != "datapoints_20260315_101500.xlsx" {
		t.Fatalf("unexpected file name %q", got)
	}
}
