// Package payroll estimates the monthly employer burden of an employee.
package payroll

import (
	"github.com/nexter-rh/nexter-backend-go/internal/domain/company"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/employee"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
	three   = decimal.NewFromInt(3)

	FGTSRate                        = decimal.RequireFromString("0.08")
	DefaultUnionDuesRate            = decimal.RequireFromString("0.8")
	DefaultEmployerContributionRate = decimal.NewFromInt(20)
	DefaultINCRARate                = decimal.RequireFromString("0.2")
	MealVoucherValue                = decimal.NewFromInt(260)
)

// CostBreakdown lists every accrual of the monthly employer cost.
type CostBreakdown struct {
	Salary               decimal.Decimal `json:"salary"`
	FGTS                 decimal.Decimal `json:"fgts"`
	VacationProvision    decimal.Decimal `json:"vacation_provision"`
	VacationThird        decimal.Decimal `json:"vacation_third"`
	FGTSOnVacation       decimal.Decimal `json:"fgts_on_vacation"`
	ThirteenthProvision  decimal.Decimal `json:"thirteenth_provision"`
	FGTSOnThirteenth     decimal.Decimal `json:"fgts_on_thirteenth"`
	UnionDues            decimal.Decimal `json:"union_dues"`
	EmployerContribution decimal.Decimal `json:"employer_contribution"`
	WorkplaceInsurance   decimal.Decimal `json:"workplace_insurance"`
	INCRA                decimal.Decimal `json:"incra"`
	MealVoucher          decimal.Decimal `json:"meal_voucher"`
	OffBooksSalary       decimal.Decimal `json:"off_books_salary"`
	Total                decimal.Decimal `json:"total"`
}

func rateOrDefault(rate *decimal.Decimal, fallback decimal.Decimal) decimal.Decimal {
	if rate == nil {
		return fallback
	}
	return *rate
}

func percent(base, rate decimal.Decimal) decimal.Decimal {
	return base.Mul(rate).Div(hundred)
}

// EmployerCost computes the fully loaded monthly cost. The total is rounded
// to cents; the components are kept at full precision.
func EmployerCost(e employee.Employee, c company.Company) CostBreakdown {
	salary := e.Salary
	b := CostBreakdown{
		Salary:            salary,
		FGTS:              salary.Mul(FGTSRate),
		VacationProvision: salary.Div(twelve),
		OffBooksSalary:    e.OffBooksSalary,
	}
	b.VacationThird = b.VacationProvision.Div(three)
	b.FGTSOnVacation = b.VacationProvision.Mul(FGTSRate)
	b.ThirteenthProvision = salary.Div(twelve)
	b.FGTSOnThirteenth = b.ThirteenthProvision.Mul(FGTSRate)

	chargeBase := salary.Add(b.VacationProvision).Add(b.ThirteenthProvision)
	tax := c.Tax
	if tax.UnionDuesEnabled {
		b.UnionDues = percent(chargeBase, rateOrDefault(tax.UnionDuesRate, DefaultUnionDuesRate))
	}
	if tax.EmployerContributionEnabled {
		b.EmployerContribution = percent(chargeBase, rateOrDefault(tax.EmployerContributionRate, DefaultEmployerContributionRate))
		b.WorkplaceInsurance = percent(salary, tax.RATRate.Mul(decimal.NewFromInt(2)))
		b.INCRA = percent(salary, rateOrDefault(tax.ThirdPartyRate, DefaultINCRARate))
	}
	if e.Benefits.MealVoucher {
		b.MealVoucher = MealVoucherValue
	}

	b.Total = decimal.Sum(b.Salary,
		b.FGTS,
		b.VacationProvision,
		b.VacationThird,
		b.FGTSOnVacation,
		b.ThirteenthProvision,
		b.FGTSOnThirteenth,
		b.UnionDues,
		b.EmployerContribution,
		b.WorkplaceInsurance,
		b.INCRA,
		b.MealVoucher,
		b.OffBooksSalary,
	).Round(2)
	return b
}
