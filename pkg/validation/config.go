// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/iwvelando/unit-analytics/pkg/analytics"
	"github.com/iwvelando/unit-analytics/pkg/constants"
	"github.com/iwvelando/unit-analytics/pkg/datetime"
)

// ValidateNumber returns a warning when value is present but is not a plain
// decimal number, naming what the analytics engine will read it as.
func ValidateNumber(unitName, field, value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	if _, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return ""
	}
	return fmt.Sprintf("Unit '%s' field '%s' value '%s' is not a plain number and will be read as %g",
		unitName, field, value, analytics.ParseNumber(value))
}

// ValidateDate returns a warning when value is present but not an ISO date.
func ValidateDate(unitName, field, value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	if _, ok := datetime.ParseDate(value); ok {
		return ""
	}
	return fmt.Sprintf("Unit '%s' field '%s' value '%s' is not a %s date - timing metrics disabled",
		unitName, field, value, constants.DateLayout)
}

// ValidateUnit checks a unit for inputs the engine will silently coerce and
// returns one warning per finding.
func ValidateUnit(unitName string, in analytics.UnitInput) []string {
	var warnings []string

	numbers := []struct {
		field string
		value string
	}{
		{"totalPrice", in.TotalPrice},
		{"downPaymentPct", in.DownPaymentPct},
		{"installmentAmount", in.InstallmentAmount},
		{"installmentFrequency", in.InstallmentFrequency},
		{"maintenancePct", in.MaintenancePct},
		{"handoverPaymentPct", in.HandoverPaymentPct},
		{"monthlyRent", in.MonthlyRent},
		{"annualRentIncreasePct", in.AnnualRentIncreasePct},
		{"annualOperatingExpenses", in.AnnualOperatingExpenses},
		{"appreciationRatePct", in.AppreciationRatePct},
		{"appreciationYears", in.AppreciationYears},
		{"discountRatePct", in.DiscountRatePct},
	}
	for _, n := range numbers {
		if w := ValidateNumber(unitName, n.field, n.value); w != "" {
			warnings = append(warnings, w)
		}
	}

	for _, d := range []struct{ field, value string }{
		{"contractDate", in.ContractDate},
		{"handoverDate", in.HandoverDate},
	} {
		if w := ValidateDate(unitName, d.field, d.value); w != "" {
			warnings = append(warnings, w)
		}
	}

	p := analytics.Normalize(in)

	if p.Price <= 0 {
		warnings = append(warnings, fmt.Sprintf("Unit '%s' has no positive total price - cost metrics will be zero", unitName))
	}

	switch p.FrequencyMonths {
	case constants.MonthlyFrequency, constants.QuarterlyFrequency, constants.SemiAnnualFrequency, constants.AnnualFrequency:
	default:
		warnings = append(warnings, fmt.Sprintf("Unit '%s' installment frequency of %d months is not one of 1, 3, 6 or 12",
			unitName, p.FrequencyMonths))
	}

	if p.DownPaymentPct+p.HandoverPaymentPct > constants.PercentageMultiplier {
		warnings = append(warnings, fmt.Sprintf("Unit '%s' down payment and handover payment exceed 100%% of the price (%g%% + %g%%)",
			unitName, p.DownPaymentPct, p.HandoverPaymentPct))
	}

	if p.HasDates() && !p.HandoverDate.After(p.ContractDate) {
		warnings = append(warnings, fmt.Sprintf("Unit '%s' handover date %s is not after contract date %s - handover timing treated as zero",
			unitName, p.HandoverDate.Format(constants.DateLayout), p.ContractDate.Format(constants.DateLayout)))
	}

	if p.MonthlyRent > 0 && !p.HasDates() {
		warnings = append(warnings, fmt.Sprintf("Unit '%s' has rent but is missing contract or handover date - no cash-flow projection",
			unitName))
	}

	if p.AppreciationYears > 0 && p.AppreciationYears != math.Trunc(p.AppreciationYears) {
		warnings = append(warnings, fmt.Sprintf("Unit '%s' appreciation horizon of %g years is fractional - NPV omits the terminal sale value",
			unitName, p.AppreciationYears))
	}

	return warnings
}
