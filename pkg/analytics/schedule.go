package analytics

import (
	"math"

	"github.com/iwvelando/unit-analytics/pkg/constants"
	"github.com/iwvelando/unit-analytics/pkg/datetime"
	"github.com/iwvelando/unit-analytics/pkg/mathutil"
)

// Schedule is the cost and payment-plan breakdown derived from a ParsedInput.
type Schedule struct {
	DownPayment          float64 `json:"downPayment"`
	HandoverPayment      float64 `json:"handoverPayment"`
	MaintenanceAmount    float64 `json:"maintenanceAmount"`
	TotalCost            float64 `json:"totalCost"`
	InstallmentPrincipal float64 `json:"installmentPrincipal"`
	NumberOfInstallments float64 `json:"numberOfInstallments"`
	InstallmentsPerYear  float64 `json:"installmentsPerYear"`
	AnnualInstallment    float64 `json:"annualInstallment"`
	InstallmentSpanYears float64 `json:"installmentSpanYears"`

	// YearsToHandover is the day-count distance from contract to handover.
	YearsToHandover float64 `json:"yearsToHandover"`
	// InstallmentsUntilHandover counts whole installment periods by calendar
	// months, independently of YearsToHandover.
	InstallmentsUntilHandover int     `json:"installmentsUntilHandover"`
	PaidUntilHandover         float64 `json:"paidUntilHandover"`

	HasDates    bool `json:"hasDates"`
	ValidTiming bool `json:"validTiming"`
}

// BuildSchedule derives the cost breakdown and handover timing for p.
func BuildSchedule(p ParsedInput) Schedule {
	var s Schedule

	s.MaintenanceAmount = mathutil.ApplyPercentage(p.Price, p.MaintenancePct)
	s.TotalCost = p.Price + s.MaintenanceAmount
	s.DownPayment = mathutil.ApplyPercentage(p.Price, p.DownPaymentPct)
	s.HandoverPayment = mathutil.ApplyPercentage(p.Price, p.HandoverPaymentPct)
	s.InstallmentPrincipal = p.Price - s.DownPayment - s.HandoverPayment

	if p.InstallmentAmount > 0 && s.InstallmentPrincipal > 0 {
		s.NumberOfInstallments = s.InstallmentPrincipal / p.InstallmentAmount
	}

	freq := float64(p.FrequencyMonths)
	s.InstallmentsPerYear = constants.MonthsPerYear / freq
	s.AnnualInstallment = p.InstallmentAmount * s.InstallmentsPerYear
	s.InstallmentSpanYears = s.NumberOfInstallments * freq / constants.MonthsPerYear

	s.HasDates = p.HasDates()
	if s.HasDates && p.HandoverDate.After(p.ContractDate) {
		s.ValidTiming = true
		s.YearsToHandover = datetime.YearsBetween(p.ContractDate, p.HandoverDate)
		months := datetime.MonthsBetween(p.ContractDate, p.HandoverDate)
		s.InstallmentsUntilHandover = int(math.Floor(float64(months) / freq))
	}

	s.PaidUntilHandover = s.DownPayment +
		p.InstallmentAmount*float64(s.InstallmentsUntilHandover) +
		s.HandoverPayment +
		s.MaintenanceAmount

	return s
}
