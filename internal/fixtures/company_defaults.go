package fixtures

import (
	"github.com/nexter-rh/nexter-backend-go/internal/domain/company"
	"github.com/shopspring/decimal"
)

// ==========================================
// SECTORS
// ==========================================

// GetDefaultSectors returns the sectors a new company starts with
func GetDefaultSectors() []string {
	return []string{
		"Administrativo",
		"Financeiro",
		"Recursos Humanos",
		"Comercial",
		"Produção",
		"Logística",
		"Manutenção",
	}
}

// ==========================================
// JOB TITLES
// ==========================================

// GetDefaultJobTitles returns the job titles a new company starts with
func GetDefaultJobTitles() []string {
	return []string{
		"Diretor",
		"Gerente",
		"Supervisor",
		"Analista",
		"Assistente",
		"Auxiliar",
		"Operador",
		"Motorista",
		"Estagiário",
	}
}

// ==========================================
// TAX CONFIGURATION
// ==========================================

// GetDefaultTaxConfig returns the burden settings of a company that did not
// send its own: no union dues, employer contribution on, RAT 2%
func GetDefaultTaxConfig() company.TaxConfig {
	return company.TaxConfig{
		UnionDuesEnabled:            false,
		EmployerContributionEnabled: true,
		RATRate:                     decimal.NewFromInt(2),
	}
}

// ApplyCompanyDefaults fills the empty lists of c with the defaults above
func ApplyCompanyDefaults(c *company.Company) {
	if len(c.Sectors) == 0 {
		c.Sectors = GetDefaultSectors()
	}
	if len(c.JobTitles) == 0 {
		c.JobTitles = GetDefaultJobTitles()
	}
}
