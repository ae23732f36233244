package settlement

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Line codes. Earnings and deductions feed the totals; employer lines are
// charges paid by the company on top of the net amount.
const (
	LineBalanceOfSalary        = "balance_of_salary"
	LineProportionalThirteenth = "proportional_thirteenth"
	LineProportionalVacation   = "proportional_vacation"
	LineVacationThird          = "vacation_third"
	LineVestedVacation         = "vested_vacation"
	LineVestedVacationThird    = "vested_vacation_third"
	LineOvertime               = "overtime"
	LineDSR                    = "dsr"
	LineNoticeIndemnity        = "notice_indemnity"
	LineOtherEarnings          = "other_earnings"

	LineINSS              = "inss"
	LineIRRF              = "irrf"
	LinePharmacyDeduction = "pharmacy_deduction"
	LineAdvanceDeduction  = "advance_deduction"
	LineUnionDiscount     = "union_discount"
	LineOtherDeductions   = "other_deductions"

	LineFGTS        = "fgts"
	LineFGTSPenalty = "fgts_penalty"
)

var (
	EarningLines = []string{
		LineBalanceOfSalary,
		LineProportionalThirteenth,
		LineProportionalVacation,
		LineVacationThird,
		LineVestedVacation,
		LineVestedVacationThird,
		LineOvertime,
		LineDSR,
		LineNoticeIndemnity,
		LineOtherEarnings,
	}
	DeductionLines = []string{
		LineINSS,
		LineIRRF,
		LinePharmacyDeduction,
		LineAdvanceDeduction,
		LineUnionDiscount,
		LineOtherDeductions,
	}
	EmployerLines = []string{LineFGTS, LineFGTSPenalty}
)

// LineItem is one settlement component. Overridden marks values typed by an
// operator instead of seeded by the calculator.
type LineItem struct {
	Value      decimal.Decimal `json:"value"`
	Overridden bool            `json:"overridden"`
}

type Lines map[string]LineItem

// Sum adds the current values of all lines.
func (l Lines) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, item := range l {
		total = total.Add(item.Value)
	}
	return total
}

// Codes returns the line codes in a stable order.
func (l Lines) Codes() []string {
	codes := make([]string, 0, len(l))
	for c := range l {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

type Settlement struct {
	ID              string          `json:"id"`
	CompanyID       string          `json:"company_id"`
	EmployeeID      string          `json:"employee_id"`
	EmployeeName    string          `json:"employee_name"`
	EmployeeCPF     string          `json:"employee_cpf"`
	AdmissionDate   time.Time       `json:"admission_date"`
	TerminationDate time.Time       `json:"termination_date"`
	Salary          decimal.Decimal `json:"salary"`
	DaysWorked      int             `json:"days_worked"`
	MonthsWorked    int             `json:"months_worked"`
	TenureMonths    decimal.Decimal `json:"tenure_months"`
	Earnings        Lines           `json:"earnings"`
	Deductions      Lines           `json:"deductions"`
	Employer        Lines           `json:"employer"`
	TotalEarnings   decimal.Decimal `json:"total_earnings"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetAmount       decimal.Decimal `json:"net_amount"`
	CreatedBy       string          `json:"created_by,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Recompute re-sums the totals from the current line values. Seeded formulas
// are not re-applied.
func (s *Settlement) Recompute() {
	s.TotalEarnings = s.Earnings.Sum()
	s.TotalDeductions = s.Deductions.Sum()
	s.NetAmount = s.TotalEarnings.Sub(s.TotalDeductions)
}

// Round brings every line and total to cents. Totals are rounded from the
// full precision sums, not re-summed from the rounded lines.
func (s *Settlement) Round() {
	for _, group := range []Lines{s.Earnings, s.Deductions, s.Employer} {
		for code, item := range group {
			item.Value = item.Value.Round(2)
			group[code] = item
		}
	}
	s.TotalEarnings = s.TotalEarnings.Round(2)
	s.TotalDeductions = s.TotalDeductions.Round(2)
	s.NetAmount = s.TotalEarnings.Sub(s.TotalDeductions)
}

// Line finds a line by code in any group.
func (s Settlement) Line(code string) (LineItem, bool) {
	for _, group := range []Lines{s.Earnings, s.Deductions, s.Employer} {
		if item, ok := group[code]; ok {
			return item, true
		}
	}
	return LineItem{}, false
}
