package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestTimesheet(t *testing.T) {
	in := time.Date(2024, 3, 4, 2, 0, 0, 0, time.UTC)
	out := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	wib := time.FixedZone("WIB", 7*3600)

	rows := []TimesheetRow{
		{
			LoginID:      "EMP001",
			FullName:     "Ayu Lestari",
			Date:         time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
			ClockIn:      &in,
			ClockOut:     &out,
			BreakMinutes: 30,
			Hours:        decimal.RequireFromString("7.5"),
			Status:       "present",
		},
		{
			LoginID:  "EMP002",
			FullName: "Budi Santoso",
			Date:     time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
			Hours:    decimal.Zero,
			Status:   "absent",
			Notes:    "Marked absent automatically",
		},
	}

	buf, err := Timesheet(rows, wib)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, timesheetSheet, f.GetSheetName(0))

	got, err := f.GetRows(timesheetSheet)
	require.NoError(t, err)
	require.Len(t, got, 4)

	assert.Equal(t, timesheetHeaders, got[0])
	assert.Equal(t, []string{"EMP001", "Ayu Lestari", "2024-03-04", "09:00", "17:00", "30", "7.5", "present"}, got[1])
	assert.Equal(t, "absent", got[2][7])
	assert.Equal(t, "Marked absent automatically", got[2][8])
	assert.Equal(t, "Total", got[3][5])
	assert.Equal(t, "7.5", got[3][6])
}

func TestTimesheet_Empty(t *testing.T) {
	buf, err := Timesheet(nil, time.UTC)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	got, err := f.GetRows(timesheetSheet)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "0", got[1][6])
}
