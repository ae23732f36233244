package overtime

import (
	"fmt"
	"time"

	"github.com/nexter-rh/nexter-backend-go/internal/pkg/calendar"
	"github.com/shopspring/decimal"
)

// MonthlyHours is the legal monthly workload used to derive the hourly rate.
var MonthlyHours = decimal.NewFromInt(220)

var (
	sixty   = decimal.NewFromInt(60)
	hundred = decimal.NewFromInt(100)
)

// Calculation holds the derived values of one overtime entry, rounded to
// cents (hours to two places).
type Calculation struct {
	Hours      decimal.Decimal
	HourlyRate decimal.Decimal
	Pay        decimal.Decimal
	DSR        decimal.Decimal
}

func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Hours returns the time between clockIn and clockOut ("HH:MM"). A clock-out
// earlier than the clock-in rolls over to the next day.
func Hours(clockIn, clockOut string) (decimal.Decimal, error) {
	in, err := parseClock(clockIn)
	if err != nil {
		return decimal.Zero, err
	}
	out, err := parseClock(clockOut)
	if err != nil {
		return decimal.Zero, err
	}
	if in == out {
		return decimal.Zero, ErrInvalidInterval
	}
	minutes := out - in
	if minutes < 0 {
		minutes += 24 * 60
	}
	return decimal.NewFromInt(int64(minutes)).Div(sixty), nil
}

// DSR spreads pay over the working days (Monday-Saturday) of date's month and
// credits it for each rest day (Sunday).
func DSR(pay decimal.Decimal, date time.Time) decimal.Decimal {
	working := calendar.WorkingDaysInMonth(date)
	if working == 0 {
		return decimal.Zero
	}
	rest := calendar.RestDaysInMonth(date)
	return pay.Div(decimal.NewFromInt(int64(working))).Mul(decimal.NewFromInt(int64(rest)))
}

// Calculate derives hours, hourly rate (salary/220), pay with the tier
// surcharge and DSR for one entry.
func Calculate(salary decimal.Decimal, date time.Time, clockIn, clockOut string, tier Tier) (Calculation, error) {
	if !tier.Valid() {
		return Calculation{}, fmt.Errorf("invalid overtime tier %d", tier)
	}
	hours, err := Hours(clockIn, clockOut)
	if err != nil {
		return Calculation{}, err
	}

	rate := salary.Div(MonthlyHours)
	factor := decimal.NewFromInt(1).Add(decimal.NewFromInt(int64(tier)).Div(hundred))
	pay := hours.Mul(rate).Mul(factor)

	return Calculation{
		Hours:      hours.Round(2),
		HourlyRate: rate.Round(2),
		Pay:        pay.Round(2),
		DSR:        DSR(pay, date).Round(2),
	}, nil
}
