// Package output provides utilities for formatting and displaying unit
// analytics results.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/iwvelando/unit-analytics/pkg/analytics"
	"github.com/iwvelando/unit-analytics/pkg/format"
	"github.com/iwvelando/unit-analytics/pkg/portfolio"
)

// metricColumns are the CSV columns after the unit name, in order.
var metricColumns = []string{
	"totalCost", "maintenanceAmount", "downPayment", "handoverPayment", "paidUntilHandover",
	"annualRent", "noi", "annualCashFlow",
	"capRate", "roi", "roe",
	"paybackPeriodFromHandover", "totalPaybackPeriod", "paybackPeriod",
	"futureValue", "appreciationAmount", "npv",
}

func metricValues(raw analytics.RawMetrics) []float64 {
	return []float64{
		raw.TotalCost, raw.MaintenanceAmount, raw.DownPayment, raw.HandoverPayment, raw.PaidUntilHandover,
		raw.AnnualRent, raw.NOI, raw.AnnualCashFlow,
		raw.CapRate, raw.ROI, raw.ROE,
		raw.PaybackPeriodFromHandover, raw.TotalPaybackPeriod, raw.PaybackPeriod,
		raw.FutureValue, raw.AppreciationAmount, raw.NPV,
	}
}

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(entries []portfolio.Entry, summary portfolio.Summary, f format.Formatter) {
	fmt.Print(PrettyString(entries, summary, f))
}

// PrettyString renders the human-readable report.
func PrettyString(entries []portfolio.Entry, summary portfolio.Summary, f format.Formatter) string {
	if f == nil {
		f = format.Default()
	}

	var b strings.Builder
	for _, entry := range entries {
		res := entry.Result
		m := res.Formatted
		fmt.Fprintf(&b, "--- Results for unit %s ---\n", entry.Name)
		line(&b, "Total cost", m.TotalCost)
		line(&b, "Maintenance", m.MaintenanceAmount)
		line(&b, "Down payment", m.DownPayment)
		line(&b, "Handover payment", m.HandoverPayment)
		line(&b, "Paid until handover", m.PaidUntilHandover)
		if res.HasRent {
			line(&b, "Annual rent", m.AnnualRent)
			line(&b, "NOI", m.NOI)
			line(&b, "Annual cash flow", m.AnnualCashFlow)
		}
		if res.ShowAdvancedMetrics {
			line(&b, "Cap rate %", withRating(m.CapRate, res.Analysis.CapRate))
			line(&b, "ROI %", withRating(m.ROI, res.Analysis.ROI))
			line(&b, "ROE %", withRating(m.ROE, res.Analysis.ROE))
		}
		if len(res.Table()) > 0 {
			line(&b, "Payback from handover", withRating(m.PaybackPeriodFromHandover, res.Analysis.PaybackPeriod))
			line(&b, "Payback from contract", m.TotalPaybackPeriod)
			line(&b, "Payback after financing", m.PaybackPeriod)
		}
		if res.ShowAppreciation {
			line(&b, "Future value", m.FutureValue)
			line(&b, "Appreciation", m.AppreciationAmount)
		}
		if res.ShowNPV {
			line(&b, "NPV", withRating(m.NPV, res.Analysis.NPV))
		}
		if table := res.Table(); len(table) > 0 {
			b.WriteString("\n")
			writeTable(&b, table, f)
		}
		b.WriteString("\n")
	}

	if len(entries) > 1 {
		fmt.Fprintf(&b, "--- Portfolio summary (%d units) ---\n", summary.Units)
		line(&b, "Total price", f.Number(summary.TotalPrice))
		line(&b, "Total cost", f.Number(summary.TotalCost))
		line(&b, "Paid until handover", f.Number(summary.PaidUntilHandover))
		line(&b, "Annual NOI", f.Number(summary.AnnualNOI))
		line(&b, "Annual cash flow", f.Number(summary.AnnualCashFlow))
		line(&b, "Cap rate %", f.Number(summary.CapRate))
		line(&b, "ROI %", f.Number(summary.ROI))
		if summary.FutureValue > 0 {
			line(&b, "Future value", f.Number(summary.FutureValue))
		}
		if summary.NPVUnits > 0 {
			line(&b, fmt.Sprintf("NPV (%d units)", summary.NPVUnits), f.Number(summary.NPV))
		}
		if summary.CashFlowUnits > 0 {
			line(&b, fmt.Sprintf("Break-even (%d units)", summary.CashFlowUnits), f.Number(summary.BreakEven))
		}
	}

	return b.String()
}

func line(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "%-26s| %s\n", label, value)
}

func withRating(value string, r *analytics.Rating) string {
	if r == nil {
		return value
	}
	return fmt.Sprintf("%s (%s)", value, r.Key)
}

func writeTable(b *strings.Builder, table []analytics.CashFlowRow, f format.Formatter) {
	b.WriteString("Year | Rent          | Expenses      | Installments  | Net           | Cumulative\n")
	b.WriteString("____ | _____________ | _____________ | _____________ | _____________ | _____________\n")
	for _, row := range table {
		fmt.Fprintf(b, "%4d | %13s | %13s | %13s | %13s | %13s\n",
			row.Year,
			f.Number(row.Rent),
			f.Number(row.Expenses),
			f.Number(row.Installments),
			f.Number(row.NetCashFlow),
			f.Number(row.CumulativeCashFlow),
		)
	}
}

// CsvFormat outputs the per-unit metrics in comma-separated value format.
func CsvFormat(entries []portfolio.Entry) {
	fmt.Print(CsvString(entries))
}

// CsvString renders one row per unit. Undefined values are left empty.
func CsvString(entries []portfolio.Entry) string {
	records := make([][]string, 0, len(entries)+1)
	records = append(records, append([]string{"unit"}, metricColumns...))
	for _, entry := range entries {
		record := []string{entry.Name}
		for _, v := range metricValues(entry.Result.Raw) {
			record = append(record, csvNumber(v))
		}
		records = append(records, record)
	}
	return writeCSV(records)
}

// CashFlowCsvString renders every unit's 20-year table as long-form rows.
func CashFlowCsvString(entries []portfolio.Entry) string {
	records := [][]string{{"unit", "year", "rent", "expenses", "installments", "netCashFlow", "cumulativeCashFlow"}}
	for _, entry := range entries {
		for _, row := range entry.Result.Table() {
			records = append(records, []string{
				entry.Name,
				strconv.Itoa(row.Year),
				csvNumber(row.Rent),
				csvNumber(row.Expenses),
				csvNumber(row.Installments),
				csvNumber(row.NetCashFlow),
				csvNumber(row.CumulativeCashFlow),
			})
		}
	}
	return writeCSV(records)
}

func writeCSV(records [][]string) string {
	var b strings.Builder
	w := csv.NewWriter(&b)
	// strings.Builder writes never fail
	_ = w.WriteAll(records)
	return b.String()
}

func csvNumber(v float64) string {
	if finite(v) == nil {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// JSONReport is the document written by JSONFormat.
type JSONReport struct {
	Units   []ResultView `json:"units"`
	Summary SummaryView  `json:"summary"`
}

// JSONFormat outputs the results and summary as indented JSON.
func JSONFormat(entries []portfolio.Entry, summary portfolio.Summary) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(JSONReport{Units: NewResultViews(entries), Summary: NewSummaryView(summary)}); err != nil {
		return fmt.Errorf("failed to encode JSON report: %w", err)
	}
	return nil
}
