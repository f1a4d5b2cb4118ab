// Package export renders a published month view as an .xlsx timesheet.
package export

import (
	"fmt"
	"strings"

	"github.com/cmlabs-hris/attendance-portal/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-portal/internal/pkg/datekey"
	"github.com/xuri/excelize/v2"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var header = []string{
	"Date", "Weekday", "Type", "Holiday", "Requests",
	"Clock In", "Clock Out", "Break", "Working", "Late", "Early Leave", "Overtime", "Night",
}

var weekdayLabels = [...]string{"日", "月", "火", "水", "木", "金", "土"}

// SheetName returns the sheet name used for a month, "YYYY-MM".
func SheetName(view *calendar.MonthView) string {
	return datekey.Month{Year: view.Year, Month: view.Month}.Key()
}

// Filename returns the download name for the view's workbook.
func Filename(view *calendar.MonthView) string {
	return fmt.Sprintf("timesheet_%s_%s.xlsx", view.EmployeeID, SheetName(view))
}

// Timesheet writes one row per in-month day followed by a totals row. The
// caller owns the returned file and must Close it.
func Timesheet(view *calendar.MonthView) (*excelize.File, error) {
	if view == nil {
		return nil, calendar.ErrNoActiveView
	}

	f := excelize.NewFile()
	sheet := SheetName(view)

	index, err := f.NewSheet(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Border: []excelize.Border{{Type: "top", Color: "#000000", Style: 1}},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create totals style: %w", err)
	}

	if err := setRow(f, sheet, 1, toAny(header)); err != nil {
		f.Close()
		return nil, err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(header))
	f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle)

	row := 2
	for _, cell := range view.Cells {
		if !cell.InMonth {
			continue
		}
		d := view.Details[cell.Date]
		values := []any{
			cell.Date,
			weekdayLabels[cell.Weekday],
			string(cell.Classification),
			cell.HolidayLabel,
			badgeText(cell.Badges),
			d.ClockInDisplay,
			d.ClockOutDisplay,
			d.BreakDisplay,
			d.WorkingDisplay,
			d.LateDisplay,
			d.EarlyLeaveDisplay,
			d.OvertimeDisplay,
			d.NightDisplay,
		}
		if err := setRow(f, sheet, row, values); err != nil {
			f.Close()
			return nil, err
		}
		row++
	}

	s := view.Summary
	totals := []any{
		"Total",
		fmt.Sprintf("%d working days", s.WorkingDays),
		fmt.Sprintf("%d attended", s.AttendedDays),
		"",
		fmt.Sprintf("leave %s days", s.PaidLeaveDays.String()),
		"", "", "",
		s.WorkingDisplay,
		fmt.Sprintf("%d", s.LateCount),
		fmt.Sprintf("%d", s.EarlyLeaveCount),
		s.OvertimeDisplay,
		s.NightDisplay,
	}
	if err := setRow(f, sheet, row, totals); err != nil {
		f.Close()
		return nil, err
	}
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", lastCol, row), totalStyle)

	f.SetColWidth(sheet, "A", "A", 12)
	f.SetColWidth(sheet, "D", "E", 28)
	f.SetColWidth(sheet, "F", lastCol, 11)
	f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	return f, nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

func badgeText(badges []calendar.Badge) string {
	parts := make([]string, 0, len(badges))
	for _, b := range badges {
		parts = append(parts, fmt.Sprintf("%s(%s)", b.Label, b.StatusLabel))
	}
	return strings.Join(parts, ", ")
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
