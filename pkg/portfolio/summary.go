// Package portfolio aggregates per-unit analytics into a single roll-up.
package portfolio

import (
	"github.com/iwvelando/unit-analytics/pkg/analytics"
	"github.com/iwvelando/unit-analytics/pkg/constants"
	"github.com/iwvelando/unit-analytics/pkg/mathutil"
)

// Entry is one analyzed unit.
type Entry struct {
	Name   string           `json:"name"`
	Result analytics.Result `json:"-"`
}

// Summary captures the combined figures for a set of units.
type Summary struct {
	Units             int     `json:"units"`
	TotalPrice        float64 `json:"totalPrice"`
	TotalCost         float64 `json:"totalCost"`
	PaidUntilHandover float64 `json:"paidUntilHandover"`
	AnnualNOI         float64 `json:"annualNoi"`
	AnnualCashFlow    float64 `json:"annualCashFlow"`
	FutureValue       float64 `json:"futureValue"`

	// NPV sums only units that show an NPV; NPVUnits counts them.
	NPV      float64 `json:"npv"`
	NPVUnits int     `json:"npvUnits"`

	CapRate float64 `json:"capRate"`
	ROI     float64 `json:"roi"`

	// CashFlow is the element-wise sum of every unit's 20-year table.
	CashFlow      []analytics.CashFlowRow `json:"cashFlow"`
	CashFlowUnits int                     `json:"cashFlowUnits"`
	// BreakEven is +Inf when the combined table never turns non-negative or
	// no unit has a table.
	BreakEven float64 `json:"-"`
}

// Summarize rolls entries up into a Summary. Ratios are recomputed from the
// sums rather than averaged.
func Summarize(entries []Entry) Summary {
	var s Summary
	s.Units = len(entries)

	for _, e := range entries {
		raw := e.Result.Raw
		s.TotalPrice += raw.TotalCost - raw.MaintenanceAmount
		s.TotalCost += raw.TotalCost
		s.PaidUntilHandover += raw.PaidUntilHandover
		s.AnnualNOI += raw.NOI
		s.AnnualCashFlow += raw.AnnualCashFlow
		if e.Result.ShowAppreciation {
			s.FutureValue += raw.FutureValue
		}
		if e.Result.ShowNPV {
			s.NPV += raw.NPV
			s.NPVUnits++
		}

		table := e.Result.Table()
		if len(table) == 0 {
			continue
		}
		s.CashFlowUnits++
		s.CashFlow = addTable(s.CashFlow, table)
	}

	s.CapRate = mathutil.CalculatePercentage(s.AnnualNOI, s.TotalPrice)
	s.ROI = mathutil.CalculatePercentage(s.AnnualNOI, s.TotalCost)
	s.BreakEven = analytics.BreakEven(s.CashFlow)
	return s
}

// addTable adds table into acc row by row and returns acc. A nil acc starts a
// fresh table.
func addTable(acc, table []analytics.CashFlowRow) []analytics.CashFlowRow {
	if acc == nil {
		acc = make([]analytics.CashFlowRow, constants.MaxProjectionYears+1)
		for i := range acc {
			acc[i].Year = i
		}
	}
	for i, row := range table {
		if i >= len(acc) {
			break
		}
		acc[i].Rent += row.Rent
		acc[i].Expenses += row.Expenses
		acc[i].Installments += row.Installments
		acc[i].NetCashFlow += row.NetCashFlow
		acc[i].CumulativeCashFlow += row.CumulativeCashFlow
	}
	return acc
}
