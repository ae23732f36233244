package report

import (
	"fmt"

	"github.com/nexter-rh/nexter-backend-go/internal/domain/report"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/printer"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/spreadsheet"
	"github.com/shopspring/decimal"
)

var kindTitles = map[report.Kind]string{
	report.KindOvertime:     "Relatório de horas extras",
	report.KindAbsences:     "Relatório de faltas",
	report.KindCertificates: "Relatório de atestados",
}

var groupLabels = map[report.GroupBy]string{
	report.GroupBySector:   "Setor",
	report.GroupByEmployee: "Colaborador",
	report.GroupByMonth:    "Mês",
}

var medalLabels = map[report.Medal]string{
	report.MedalGold:   "Ouro",
	report.MedalSilver: "Prata",
	report.MedalBronze: "Bronze",
}

func formatMetric(metric report.Metric, v decimal.Decimal) string {
	switch metric {
	case report.MetricAmount:
		return printer.Money(v)
	case report.MetricCount:
		return v.StringFixed(0)
	default:
		return v.StringFixed(2)
	}
}

func renderPDF(rep report.AggregateReport) ([]byte, error) {
	doc := printer.New(kindTitles[rep.Kind], fmt.Sprintf("Período de %s a %s", rep.From, rep.To))

	doc.Section("Ranking")
	rows := make([][]string, 0, len(rep.Ranking))
	for _, r := range rep.Ranking {
		rows = append(rows, []string{
			fmt.Sprintf("%dº %s", r.Position, r.Label),
			medalLabels[r.Medal],
			formatMetric(rep.Metric, r.Value),
		})
	}
	doc.Table([]string{groupLabels[rep.GroupBy], "Destaque", string(rep.Metric)}, rows)

	doc.Section("Totais por grupo")
	rows = make([][]string, 0, len(rep.Groups))
	for _, g := range rep.Groups {
		rows = append(rows, []string{
			g.Label,
			g.Hours.StringFixed(2),
			g.Days.StringFixed(2),
			printer.Money(g.Amount),
			fmt.Sprint(g.Count),
		})
	}
	doc.Table([]string{groupLabels[rep.GroupBy], "Horas", "Dias", "Valor", "Registros"}, rows)
	doc.Total("Total", formatMetric(rep.Metric, rep.Total))

	return doc.Bytes()
}

func renderXLSX(rep report.AggregateReport) ([]byte, error) {
	groups := spreadsheet.Sheet{
		Name:    "Grupos",
		Headers: []string{groupLabels[rep.GroupBy], "Horas", "Dias", "Valor", "Registros"},
	}
	for _, g := range rep.Groups {
		groups.Rows = append(groups.Rows, []any{
			g.Label,
			g.Hours.InexactFloat64(),
			g.Days.InexactFloat64(),
			g.Amount.InexactFloat64(),
			g.Count,
		})
	}

	ranking := spreadsheet.Sheet{
		Name:    "Ranking",
		Headers: []string{"Posição", groupLabels[rep.GroupBy], "Destaque", string(rep.Metric)},
	}
	for _, r := range rep.Ranking {
		ranking.Rows = append(ranking.Rows, []any{r.Position, r.Label, medalLabels[r.Medal], r.Value.InexactFloat64()})
	}

	return spreadsheet.Build(groups, ranking)
}
