// Package export renders attendance data into downloadable spreadsheets.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const timesheetSheet = "Timesheet"

var timesheetHeaders = []string{"Login ID", "Name", "Date", "Clock In", "Clock Out", "Break (min)", "Hours", "Status", "Notes"}

// TimesheetRow is one attendance record as it appears in the workbook.
type TimesheetRow struct {
	LoginID      string
	FullName     string
	Date         time.Time
	ClockIn      *time.Time
	ClockOut     *time.Time
	BreakMinutes int
	Hours        decimal.Decimal
	Status       string
	Notes        string
}

// Timesheet builds an .xlsx workbook with a header row, one row per record
// and a total-hours footer. Clock times are rendered in loc.
func Timesheet(rows []TimesheetRow, loc *time.Location) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", timesheetSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create style: %w", err)
	}

	for i, header := range timesheetHeaders {
		if err := setCell(f, i+1, 1, header); err != nil {
			return nil, err
		}
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(timesheetHeaders), 1)
	if err := f.SetCellStyle(timesheetSheet, "A1", lastHeader, bold); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	total := decimal.Zero
	for i, row := range rows {
		r := i + 2
		hours := row.Hours.Round(2)
		total = total.Add(row.Hours)

		values := []any{
			row.LoginID,
			row.FullName,
			row.Date.Format(time.DateOnly),
			clockText(row.ClockIn, loc),
			clockText(row.ClockOut, loc),
			row.BreakMinutes,
			hours.InexactFloat64(),
			row.Status,
			row.Notes,
		}
		for c, v := range values {
			if err := setCell(f, c+1, r, v); err != nil {
				return nil, err
			}
		}
	}

	footer := len(rows) + 2
	if err := setCell(f, 6, footer, "Total"); err != nil {
		return nil, err
	}
	if err := setCell(f, 7, footer, total.Round(2).InexactFloat64()); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(timesheetSheet, fmt.Sprintf("F%d", footer), fmt.Sprintf("G%d", footer), bold); err != nil {
		return nil, fmt.Errorf("style footer: %w", err)
	}

	if err := f.SetColWidth(timesheetSheet, "A", "I", 14); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}
	if err := f.SetPanes(timesheetSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("freeze header: %w", err)
	}

	return f.WriteToBuffer()
}

func setCell(f *excelize.File, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(timesheetSheet, cell, value); err != nil {
		return fmt.Errorf("set %s: %w", cell, err)
	}
	return nil
}

func clockText(t *time.Time, loc *time.Location) string {
	if t == nil {
		return ""
	}
	return t.In(loc).Format("15:04")
}
