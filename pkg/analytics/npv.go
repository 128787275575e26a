package analytics

import (
	"math"

	"github.com/iwvelando/unit-analytics/pkg/constants"
)

// NPVYear is one discounted year of the NPV evaluation.
type NPVYear struct {
	Year         int     `json:"year"`
	Installments float64 `json:"installments"`
	Rent         float64 `json:"rent"`
	Expenses     float64 `json:"expenses"`
	TerminalSale float64 `json:"terminalSale"`
	NetCashFlow  float64 `json:"netCashFlow"`
	Discounted   float64 `json:"discounted"`
}

// NPVBreakdown is the net present value together with its yearly components.
type NPVBreakdown struct {
	InitialOutlay float64   `json:"initialOutlay"`
	Years         []NPVYear `json:"years"`
	NPV           float64   `json:"npv"`
}

// ComputeNPV discounts the unit's cash flows over the appreciation horizon.
//
// Time 0 is the undiscounted handover outlay. Year y pays the annual
// installment while contract-relative time yearsToHandover+y is inside the
// installment span, earns rent net of expenses once y is past handover, and
// the final year also receives the appreciated sale value.
func ComputeNPV(p ParsedInput, s Schedule, r Ratios, a Appreciation) NPVBreakdown {
	b := NPVBreakdown{
		InitialOutlay: -s.PaidUntilHandover,
		NPV:           -s.PaidUntilHandover,
	}

	growth := 1 + p.AnnualRentIncreasePct/constants.PercentageMultiplier
	discount := 1 + p.DiscountRatePct/constants.PercentageMultiplier

	for y := 1; float64(y) <= p.AppreciationYears; y++ {
		year := float64(y)
		row := NPVYear{Year: y}

		if s.YearsToHandover+year <= s.InstallmentSpanYears {
			row.Installments = s.AnnualInstallment
		}

		if year > s.YearsToHandover {
			yearsSinceHandover := year - s.YearsToHandover
			step := math.Max(0, math.Floor(yearsSinceHandover-constants.BoundaryEpsilon))
			row.Rent = r.AnnualRent * math.Pow(growth, step)
			row.Expenses = p.AnnualOperatingExpenses
		}

		if year == p.AppreciationYears {
			row.TerminalSale = a.FutureValue
		}

		row.NetCashFlow = row.Rent - row.Expenses - row.Installments + row.TerminalSale
		row.Discounted = row.NetCashFlow / math.Pow(discount, year)
		b.NPV += row.Discounted
		b.Years = append(b.Years, row)
	}

	return b
}

func showNPV(p ParsedInput) bool {
	return p.DiscountRatePct > 0 && p.AppreciationYears > 0
}
