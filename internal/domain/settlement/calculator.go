package settlement

import (
	"fmt"
	"sort"
	"time"

	"github.com/nexter-rh/nexter-backend-go/internal/domain/employee"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/finance"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/calendar"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

var (
	three         = decimal.NewFromInt(3)
	twelve        = decimal.NewFromInt(12)
	thirty        = decimal.NewFromInt(30)
	daysPerMonth  = decimal.RequireFromString("30.44")
	inssRate      = decimal.RequireFromString("0.075")
	fgtsRate      = decimal.RequireFromString("0.08")
	vestingMonths = twelve
)

func seeded(v decimal.Decimal) LineItem {
	return LineItem{Value: v}
}

func zeroLines(codes ...string) Lines {
	lines := make(Lines, len(codes))
	for _, c := range codes {
		lines[c] = LineItem{Value: decimal.Zero}
	}
	return lines
}

// Calculate seeds every settlement line for e terminated on terminationDate.
// Values keep full precision; Round brings them to cents for storage.
func Calculate(e employee.Employee, terminationDate time.Time) (Settlement, error) {
	var errs validator.ValidationErrors
	if e.ID == "" {
		errs.Add("employee_id", "employee is required")
	}
	if terminationDate.IsZero() {
		errs.Add("termination_date", "termination_date is required")
	} else if calendar.Day(terminationDate).Before(calendar.Day(e.AdmissionDate)) {
		errs.Add("termination_date", "termination_date must not be before admission_date")
	}
	if err := errs.Err(); err != nil {
		return Settlement{}, err
	}

	term := calendar.Day(terminationDate)
	admission := calendar.Day(e.AdmissionDate)
	salary := e.Salary

	days := term.Day()
	balance := salary.Div(thirty).Mul(decimal.NewFromInt(int64(days)))
	if term.Equal(admission) {
		balance = decimal.Zero
	}

	months := int(term.Month())
	thirteenth := salary.Div(twelve).Mul(decimal.NewFromInt(int64(months)))
	vacation := salary.Div(twelve).Mul(decimal.NewFromInt(int64(months)))
	vacationThird := vacation.Div(three)

	tenure := decimal.NewFromInt(int64(calendar.DaysBetween(admission, term))).Div(daysPerMonth)
	vested := decimal.Zero
	if tenure.GreaterThan(vestingMonths) {
		vested = salary
	}
	vestedThird := vested.Div(three)

	s := Settlement{
		CompanyID:       e.CompanyID,
		EmployeeID:      e.ID,
		EmployeeName:    e.Name,
		EmployeeCPF:     e.CPF,
		AdmissionDate:   admission,
		TerminationDate: term,
		Salary:          salary,
		DaysWorked:      days,
		MonthsWorked:    months,
		TenureMonths:    tenure.Round(2),
		Earnings:        zeroLines(EarningLines...),
		Deductions:      zeroLines(DeductionLines...),
		Employer:        zeroLines(EmployerLines...),
	}

	s.Earnings[LineBalanceOfSalary] = seeded(balance)
	s.Earnings[LineProportionalThirteenth] = seeded(thirteenth)
	s.Earnings[LineProportionalVacation] = seeded(vacation)
	s.Earnings[LineVacationThird] = seeded(vacationThird)
	s.Earnings[LineVestedVacation] = seeded(vested)
	s.Earnings[LineVestedVacationThird] = seeded(vestedThird)

	s.Deductions[LineINSS] = seeded(s.Earnings.Sum().Mul(inssRate))
	s.Employer[LineFGTS] = seeded(balance.Add(thirteenth).Mul(fgtsRate))

	s.Recompute()
	return s, nil
}

// ApplyOverrides replaces line values with operator input and re-sums the
// totals. Unknown codes and negative values are rejected without changes.
func ApplyOverrides(s *Settlement, overrides map[string]decimal.Decimal) error {
	var errs validator.ValidationErrors
	for _, code := range sortedKeys(overrides) {
		if _, ok := s.Line(code); !ok {
			errs.Add("overrides."+code, "unknown settlement line")
			continue
		}
		if overrides[code].IsNegative() {
			errs.Add("overrides."+code, "value must not be negative")
		}
	}
	if err := errs.Err(); err != nil {
		return err
	}

	for code, value := range overrides {
		item := LineItem{Value: value.Round(2), Overridden: true}
		switch {
		case hasCode(s.Earnings, code):
			s.Earnings[code] = item
		case hasCode(s.Deductions, code):
			s.Deductions[code] = item
		default:
			s.Employer[code] = item
		}
	}
	s.Recompute()
	return nil
}

func hasCode(l Lines, code string) bool {
	_, ok := l[code]
	return ok
}

func sortedKeys(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FinancialEntries builds the payables generated by confirming s: net amount,
// FGTS and FGTS penalty, each only when positive.
func FinancialEntries(s Settlement) []finance.Entry {
	candidates := []struct {
		amount      decimal.Decimal
		subCategory string
		reason      string
	}{
		{s.NetAmount, finance.SubCategorySettlements, "Rescisão - valor líquido"},
		{s.Employer[LineFGTS].Value, finance.SubCategoryCharges, "FGTS rescisório"},
		{s.Employer[LineFGTSPenalty].Value, finance.SubCategorySettlements, "Multa rescisória do FGTS"},
	}

	var entries []finance.Entry
	for _, c := range candidates {
		amount := c.amount.Round(2)
		if !amount.IsPositive() {
			continue
		}
		entries = append(entries, finance.Entry{
			CompanyID:    s.CompanyID,
			EmployeeID:   s.EmployeeID,
			Origin:       finance.OriginPayroll,
			SubCategory:  c.subCategory,
			DueDate:      s.TerminationDate,
			Amount:       amount,
			Status:       finance.StatusPending,
			Reason:       fmt.Sprintf("%s (%s)", c.reason, s.EmployeeName),
			SettlementID: s.ID,
			CreatedBy:    s.CreatedBy,
		})
	}
	return entries
}
