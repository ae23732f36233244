package company

import (
	"time"

	"github.com/shopspring/decimal"
)

type Company struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CNPJ      string    `json:"cnpj"`
	Sectors   []string  `json:"sectors"`
	JobTitles []string  `json:"job_titles"`
	Tax       TaxConfig `json:"tax"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TaxConfig holds the employer burden settings. Rates are percentages
// (0.8 means 0.8%); a nil rate falls back to the statutory default.
type TaxConfig struct {
	UnionDuesEnabled            bool             `json:"union_dues_enabled"`
	UnionDuesRate               *decimal.Decimal `json:"union_dues_rate,omitempty"`
	EmployerContributionEnabled bool             `json:"employer_contribution_enabled"`
	EmployerContributionRate    *decimal.Decimal `json:"employer_contribution_rate,omitempty"`
	RATRate                     decimal.Decimal  `json:"rat_rate"`
	ThirdPartyRate              *decimal.Decimal `json:"third_party_rate,omitempty"`
}

func (c Company) HasSector(name string) bool {
	for _, s := range c.Sectors {
		if s == name {
			return true
		}
	}
	return false
}

func (c Company) HasJobTitle(name string) bool {
	for _, j := range c.JobTitles {
		if j == name {
			return true
		}
	}
	return false
}
