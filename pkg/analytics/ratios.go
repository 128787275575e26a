package analytics

import (
	"github.com/iwvelando/unit-analytics/pkg/constants"
	"github.com/iwvelando/unit-analytics/pkg/mathutil"
)

// Ratios holds the income, expense and return figures for the first
// stabilised year.
type Ratios struct {
	AnnualRent     float64 `json:"annualRent"`
	NOI            float64 `json:"noi"`
	CapRate        float64 `json:"capRate"`
	ROI            float64 `json:"roi"`
	AnnualCashFlow float64 `json:"annualCashFlow"`
	ROE            float64 `json:"roe"`
}

// ComputeRatios derives NOI, cap rate, ROI and ROE. Zero denominators yield a
// zero ratio.
func ComputeRatios(p ParsedInput, s Schedule) Ratios {
	var r Ratios
	r.AnnualRent = p.MonthlyRent * constants.MonthsPerYear
	r.NOI = r.AnnualRent - p.AnnualOperatingExpenses
	r.CapRate = mathutil.CalculatePercentage(r.NOI, p.Price)
	r.ROI = mathutil.CalculatePercentage(r.NOI, s.TotalCost)
	r.AnnualCashFlow = r.NOI - s.AnnualInstallment
	r.ROE = mathutil.CalculatePercentage(r.AnnualCashFlow, s.PaidUntilHandover)
	return r
}

// showAdvancedMetrics gates ROI, ROE and cap rate on both rent and operating
// expenses being present.
func showAdvancedMetrics(p ParsedInput) bool {
	return p.MonthlyRent > 0 && p.AnnualOperatingExpenses > 0
}
