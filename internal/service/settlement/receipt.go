package settlement

import (
	"fmt"

	"github.com/nexter-rh/nexter-backend-go/internal/domain/company"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/settlement"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/printer"
)

var lineLabels = map[string]string{
	settlement.LineBalanceOfSalary:        "Saldo de salário",
	settlement.LineProportionalThirteenth: "13º salário proporcional",
	settlement.LineProportionalVacation:   "Férias proporcionais",
	settlement.LineVacationThird:          "1/3 de férias proporcionais",
	settlement.LineVestedVacation:         "Férias vencidas",
	settlement.LineVestedVacationThird:    "1/3 de férias vencidas",
	settlement.LineOvertime:               "Horas extras",
	settlement.LineDSR:                    "DSR",
	settlement.LineNoticeIndemnity:        "Aviso prévio indenizado",
	settlement.LineOtherEarnings:          "Outros proventos",
	settlement.LineINSS:                   "INSS",
	settlement.LineIRRF:                   "IRRF",
	settlement.LinePharmacyDeduction:      "Farmácia",
	settlement.LineAdvanceDeduction:       "Adiantamento",
	settlement.LineUnionDiscount:          "Contribuição sindical",
	settlement.LineOtherDeductions:        "Outros descontos",
	settlement.LineFGTS:                   "FGTS",
	settlement.LineFGTSPenalty:            "Multa do FGTS",
}

func label(code string, item settlement.LineItem) string {
	l, ok := lineLabels[code]
	if !ok {
		l = code
	}
	if item.Overridden {
		l += " *"
	}
	return l
}

// writeLines prints the non-zero lines of group in the order of codes.
func writeLines(doc *printer.Document, group settlement.Lines, codes []string) {
	for _, code := range codes {
		item, ok := group[code]
		if !ok || item.Value.IsZero() {
			continue
		}
		doc.Line(label(code, item), printer.Money(item.Value))
	}
}

func renderReceipt(s settlement.Settlement, c company.Company) ([]byte, error) {
	doc := printer.New("Termo de Rescisão do Contrato de Trabalho",
		fmt.Sprintf("%s - CNPJ %s", c.Name, c.CNPJ))

	doc.Field("Funcionário", s.EmployeeName)
	doc.Field("CPF", s.EmployeeCPF)
	doc.Field("Admissão", printer.Date(s.AdmissionDate))
	doc.Field("Desligamento", printer.Date(s.TerminationDate))
	doc.Field("Salário base", printer.Money(s.Salary))
	doc.Field("Tempo de casa (meses)", s.TenureMonths.StringFixed(2))

	doc.Section("Proventos")
	writeLines(doc, s.Earnings, settlement.EarningLines)
	doc.Total("Total de proventos", printer.Money(s.TotalEarnings))

	doc.Section("Descontos")
	writeLines(doc, s.Deductions, settlement.DeductionLines)
	doc.Total("Total de descontos", printer.Money(s.TotalDeductions))

	doc.Section("Líquido a receber")
	doc.Total("Valor líquido", printer.Money(s.NetAmount))

	doc.Section("Encargos do empregador")
	writeLines(doc, s.Employer, settlement.EmployerLines)

	doc.Signature(s.EmployeeName)
	return doc.Bytes()
}
