package analytics

import (
	"math"

	"github.com/iwvelando/unit-analytics/pkg/mathutil"
)

// BreakEven returns the fractional number of years after handover at which
// cumulative cash flow first reaches zero, interpolating linearly inside the
// crossing year. It returns +Inf when the table never breaks even.
func BreakEven(table []CashFlowRow) float64 {
	for i, row := range table {
		if row.CumulativeCashFlow < 0 {
			continue
		}
		if i == 0 {
			return 0
		}
		prev := table[i-1]
		if row.NetCashFlow <= 0 {
			return float64(row.Year)
		}
		costToCover := -prev.CumulativeCashFlow
		return float64(prev.Year) + costToCover/row.NetCashFlow
	}
	return math.Inf(1)
}

// Payback holds the payback period measured from handover, from contract
// signing, and from the end of the installment plan.
type Payback struct {
	FromHandover float64 `json:"fromHandover"`
	FromContract float64 `json:"fromContract"`
	// AfterFinancing is FromContract less the installment span, floored at 0.
	AfterFinancing float64 `json:"afterFinancing"`
}

// ComputePayback derives the payback figures for a break-even point measured
// from handover. Infinite input stays infinite.
func ComputePayback(breakEven float64, s Schedule) Payback {
	total := s.YearsToHandover + breakEven
	return Payback{
		FromHandover:   breakEven,
		FromContract:   total,
		AfterFinancing: mathutil.Max(0, total-s.InstallmentSpanYears),
	}
}
