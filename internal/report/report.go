// Package report renders the yearly driving report as an XLSX workbook.
package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"triplogs/internal/domain"
	"triplogs/internal/stats"
)

const sheet = "Report"

// Input is everything a yearly report needs, already loaded and filtered to
// one calendar year.
type Input struct {
	Year     int
	UserInfo domain.UserInfo
	Settings domain.Settings
	Trips    []domain.Trip
	Readings []domain.OdometerReading
	Vehicles []domain.Vehicle
}

// Filename returns the download filename for a yearly report.
func Filename(year int) string {
	return fmt.Sprintf("Trip_Logs_Report_%d.xlsx", year)
}

// Build renders the report workbook and returns its bytes.
//
// The sheet is laid out top to bottom: title block, user info, an annual
// summary table, then the data log interleaving the year's trips and
// odometer readings newest first.
func Build(in Input) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("report.Build: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("report.Build: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}})
	if err != nil {
		return nil, fmt.Errorf("report.Build: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("report.Build: %w", err)
	}

	widths := map[string]float64{
		"A": 14, "B": 10, "C": 10, "D": 12, "E": 10, "F": 10, "G": 10, "H": 22,
	}
	for col, w := range widths {
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return nil, fmt.Errorf("report.Build: %w", err)
		}
	}

	row := 1
	f.SetCellValue(sheet, cell("A", row), "Trip Logs")
	f.SetCellStyle(sheet, cell("A", row), cell("A", row), titleStyle)
	row++
	f.SetCellValue(sheet, cell("A", row), fmt.Sprintf("Yearly Driving Report: %d", in.Year))
	f.SetCellStyle(sheet, cell("A", row), cell("A", row), headerStyle)
	row += 2

	row = writeUserInfo(f, row, in.UserInfo)
	row = writeSummary(f, row, headerStyle, in)
	writeDataLog(f, row, headerStyle, in)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("report.Build: %w", err)
	}
	return buf.Bytes(), nil
}

func writeUserInfo(f *excelize.File, row int, info domain.UserInfo) int {
	lines := make([]string, 0, 4)
	if info.Name != "" {
		lines = append(lines, info.Name)
	}
	if info.Address != "" {
		lines = append(lines, info.Address)
	}
	if line := joinNonEmpty(info.CityState, info.ZipCode); line != "" {
		lines = append(lines, line)
	}
	if info.Country != "" {
		lines = append(lines, info.Country)
	}
	for _, line := range lines {
		f.SetCellValue(sheet, cell("A", row), line)
		row++
	}
	if len(lines) > 0 {
		row++
	}
	return row
}

func writeSummary(f *excelize.File, row int, headerStyle int, in Input) int {
	summary := stats.Summarize(in.Trips)
	deduction := stats.DeductionCents(summary.TotalDistance, in.Settings.DeductionRateCents)
	currency := in.Settings.Currency

	f.SetCellValue(sheet, cell("A", row), "Annual Summary")
	f.SetCellStyle(sheet, cell("A", row), cell("A", row), headerStyle)
	row++

	entries := []struct {
		label string
		value string
	}{
		{"Total Trips", fmt.Sprintf("%d", summary.TripCount)},
		{"Total Distance", fmt.Sprintf("%.1f %s", summary.TotalDistance, in.Settings.Unit)},
		{"Gross Earnings", domain.FormatCents(summary.GrossCents, currency)},
		{"Total Expenses", domain.FormatCents(summary.ExpensesCents, currency)},
		{"Net Earnings", domain.FormatCents(summary.NetCents, currency)},
		{"Total Deductions", domain.FormatCents(deduction, currency)},
	}
	for _, e := range entries {
		f.SetCellValue(sheet, cell("A", row), e.label)
		f.SetCellValue(sheet, cell("B", row), e.value)
		row++
	}
	return row + 1
}

func writeDataLog(f *excelize.File, row int, headerStyle int, in Input) {
	names := vehicleNames(in.Vehicles)
	currency := in.Settings.Currency

	f.SetCellValue(sheet, cell("A", row), "Data Log")
	f.SetCellStyle(sheet, cell("A", row), cell("A", row), headerStyle)
	row++

	headers := []string{"Date", "Duration", "Distance", "Gross", "Gasoline", "Tolls", "Food", "Vehicle"}
	for i, h := range headers {
		col := string(rune('A' + i))
		f.SetCellValue(sheet, cell(col, row), h)
	}
	f.SetCellStyle(sheet, cell("A", row), cell("H", row), headerStyle)
	row++

	for _, item := range stats.BuildTimeline(in.Trips, in.Readings, in.Year) {
		f.SetCellValue(sheet, cell("A", row), item.Date().Format("2006-01-02"))
		switch item.Kind {
		case stats.KindOdometer:
			r := item.Reading
			note := fmt.Sprintf("Odometer Update: %d for %s", r.Odometer, names.lookup(r.VehicleID))
			f.SetCellValue(sheet, cell("B", row), note)
			f.MergeCell(sheet, cell("B", row), cell("H", row))
		case stats.KindTrip:
			t := item.Trip
			minutes := stats.DurationMinutes(t.StartTime, t.EndTime)
			f.SetCellValue(sheet, cell("B", row), fmt.Sprintf("%dh %02dm", minutes/60, minutes%60))
			f.SetCellValue(sheet, cell("C", row), fmt.Sprintf("%.1f", t.Miles))
			f.SetCellValue(sheet, cell("D", row), domain.FormatCents(t.GrossCents, currency))
			f.SetCellValue(sheet, cell("E", row), domain.FormatCents(t.Expenses.GasolineCents, currency))
			f.SetCellValue(sheet, cell("F", row), domain.FormatCents(t.Expenses.TollsCents, currency))
			f.SetCellValue(sheet, cell("G", row), domain.FormatCents(t.Expenses.FoodCents, currency))
			if t.VehicleID != nil {
				f.SetCellValue(sheet, cell("H", row), names.lookup(*t.VehicleID))
			}
		}
		row++
	}
}

// nameIndex maps vehicle IDs to display names.
type nameIndex map[string]string

func vehicleNames(vehicles []domain.Vehicle) nameIndex {
	names := make(nameIndex, len(vehicles))
	for _, v := range vehicles {
		names[v.ID] = v.DisplayName()
	}
	return names
}

// lookup returns the display name for id, or "N/A" when the vehicle is not
// in the index anymore.
func (n nameIndex) lookup(id string) string {
	if name, ok := n[id]; ok {
		return name
	}
	return "N/A"
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + " " + b
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
