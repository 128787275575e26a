package analytics

import (
	"math"

	"github.com/iwvelando/unit-analytics/pkg/constants"
)

// CashFlowRow is one year of the post-handover cash-flow ledger. Year 0 is the
// handover year and carries only the handover outlay.
type CashFlowRow struct {
	Year               int     `json:"year"`
	Rent               float64 `json:"rent"`
	Expenses           float64 `json:"expenses"`
	Installments       float64 `json:"installments"`
	NetCashFlow        float64 `json:"netCashFlow"`
	CumulativeCashFlow float64 `json:"cumulativeCashFlow"`
}

// BuildCashFlowTable returns rows for years 0 through MaxProjectionYears. It
// returns nil unless both dates are present and rent is positive.
func BuildCashFlowTable(p ParsedInput, s Schedule, r Ratios) []CashFlowRow {
	if !s.HasDates || p.MonthlyRent <= 0 {
		return nil
	}

	rows := make([]CashFlowRow, 0, constants.MaxProjectionYears+1)
	cumulative := -s.PaidUntilHandover
	rows = append(rows, CashFlowRow{
		Year:               0,
		NetCashFlow:        -s.PaidUntilHandover,
		CumulativeCashFlow: cumulative,
	})

	growth := 1 + p.AnnualRentIncreasePct/constants.PercentageMultiplier
	for year := 1; year <= constants.MaxProjectionYears; year++ {
		row := CashFlowRow{
			Year:     year,
			Rent:     r.AnnualRent * math.Pow(growth, float64(year-1)),
			Expenses: p.AnnualOperatingExpenses,
		}
		if s.YearsToHandover+float64(year) <= s.InstallmentSpanYears {
			row.Installments = s.AnnualInstallment
		}
		row.NetCashFlow = row.Rent - row.Expenses - row.Installments
		cumulative += row.NetCashFlow
		row.CumulativeCashFlow = cumulative
		rows = append(rows, row)
	}
	return rows
}

// Horizons exposes table as prefix views keyed by horizon length. Every
// horizon maps to an empty, non-nil slice when table is empty.
func Horizons(table []CashFlowRow) map[int][]CashFlowRow {
	views := make(map[int][]CashFlowRow, len(constants.ProjectionHorizons))
	for _, h := range constants.ProjectionHorizons {
		if len(table) == 0 {
			views[h] = []CashFlowRow{}
			continue
		}
		n := h + 1
		if n > len(table) {
			n = len(table)
		}
		views[h] = table[:n:n]
	}
	return views
}
