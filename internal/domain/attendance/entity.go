package attendance

import (
	"time"

	"github.com/cmlabs-hris/office-backend-go/internal/pkg/timeacct"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusAbsent  Status = "absent"
	StatusHalfDay Status = "half_day"
)

func Statuses() []string {
	return []string{string(StatusPresent), string(StatusLate), string(StatusAbsent), string(StatusHalfDay)}
}

type Attendance struct {
	ID         string
	UserID     string
	Date       time.Time
	ClockIn    *time.Time
	ClockOut   *time.Time
	BreakStart *time.Time
	BreakEnd   *time.Time
	TotalHours decimal.Decimal
	Status     Status
	Notes      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO / Join
	UserLoginID  *string
	UserFullName *string
}

func (a *Attendance) Work() timeacct.Interval {
	return timeacct.Interval{Start: a.ClockIn, End: a.ClockOut}
}

func (a *Attendance) Break() timeacct.Interval {
	return timeacct.Interval{Start: a.BreakStart, End: a.BreakEnd}
}

// Recalculate derives TotalHours from the stored timestamps.
func (a *Attendance) Recalculate() {
	a.TotalHours = timeacct.WorkedHours(a.Work(), a.Break())
}

// Summary aggregates attendance over a date range.
type Summary struct {
	TotalHours decimal.Decimal
	Records    int
	ByStatus   map[Status]int
}
