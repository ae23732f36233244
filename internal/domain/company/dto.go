package company

import (
	"strings"

	"github.com/nexter-rh/nexter-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type TaxConfigRequest struct {
	UnionDuesEnabled            bool             `json:"union_dues_enabled"`
	UnionDuesRate               *decimal.Decimal `json:"union_dues_rate,omitempty"`
	EmployerContributionEnabled bool             `json:"employer_contribution_enabled"`
	EmployerContributionRate    *decimal.Decimal `json:"employer_contribution_rate,omitempty"`
	RATRate                     decimal.Decimal  `json:"rat_rate"`
	ThirdPartyRate              *decimal.Decimal `json:"third_party_rate,omitempty"`
}

func (t TaxConfigRequest) validate(errs *validator.ValidationErrors) {
	hundred := decimal.NewFromInt(100)
	check := func(field string, v *decimal.Decimal) {
		if v == nil {
			return
		}
		if v.IsNegative() || v.GreaterThan(hundred) {
			errs.Add(field, field+" must be between 0 and 100")
		}
	}
	check("tax.union_dues_rate", t.UnionDuesRate)
	check("tax.employer_contribution_rate", t.EmployerContributionRate)
	check("tax.rat_rate", &t.RATRate)
	check("tax.third_party_rate", t.ThirdPartyRate)
}

func (t TaxConfigRequest) ToConfig() TaxConfig {
	return TaxConfig(t)
}

type CreateCompanyRequest struct {
	Name      string           `json:"name"`
	CNPJ      string           `json:"cnpj"`
	Sectors   []string         `json:"sectors,omitempty"`
	JobTitles []string         `json:"job_titles,omitempty"`
	Tax       TaxConfigRequest `json:"tax"`
}

func (r *CreateCompanyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	}
	if len(r.Name) > 255 {
		errs.Add("name", "name must not exceed 255 characters")
	}
	if !validator.IsValidCNPJ(r.CNPJ) {
		errs.Add("cnpj", "cnpj is invalid")
	}
	validateNames(&errs, "sectors", r.Sectors)
	validateNames(&errs, "job_titles", r.JobTitles)
	r.Tax.validate(&errs)

	return errs.Err()
}

type UpdateCompanyRequest struct {
	Name      *string           `json:"name,omitempty"`
	CNPJ      *string           `json:"cnpj,omitempty"`
	Sectors   []string          `json:"sectors,omitempty"`
	JobTitles []string          `json:"job_titles,omitempty"`
	Tax       *TaxConfigRequest `json:"tax,omitempty"`
}

func (r *UpdateCompanyRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs.Add("name", "name must not be empty")
	}
	if r.CNPJ != nil && !validator.IsValidCNPJ(*r.CNPJ) {
		errs.Add("cnpj", "cnpj is invalid")
	}
	validateNames(&errs, "sectors", r.Sectors)
	validateNames(&errs, "job_titles", r.JobTitles)
	if r.Tax != nil {
		r.Tax.validate(&errs)
	}

	return errs.Err()
}

func validateNames(errs *validator.ValidationErrors, field string, names []string) {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		key := strings.ToLower(strings.TrimSpace(n))
		if key == "" {
			errs.Add(field, field+" must not contain empty names")
			return
		}
		if seen[key] {
			errs.Add(field, field+" must not contain duplicates")
			return
		}
		seen[key] = true
	}
}
