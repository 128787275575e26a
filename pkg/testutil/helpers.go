// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/unit-analytics/pkg/analytics"
	"github.com/iwvelando/unit-analytics/pkg/portfolio"
)

// FindUnit finds a unit by name in the entries slice.
// Returns a pointer to the entry if found, nil otherwise.
func FindUnit(entries []portfolio.Entry, name string) *portfolio.Entry {
	for i := range entries {
		if entries[i].Name == name {
			return &entries[i]
		}
	}
	return nil
}

// OffPlanUnit is a two-year off-plan unit on a quarterly plan with rent and
// operating expenses. Its paid-until-handover total is 1,190,000.
func OffPlanUnit() analytics.UnitInput {
	return analytics.UnitInput{
		TotalPrice:              "2500000",
		DownPaymentPct:          "20",
		InstallmentAmount:       "30000",
		InstallmentFrequency:    "3",
		MaintenancePct:          "8",
		HandoverPaymentPct:      "10",
		ContractDate:            "2024-01-01",
		HandoverDate:            "2026-01-01",
		MonthlyRent:             "12000",
		AnnualRentIncreasePct:   "10",
		AnnualOperatingExpenses: "5000",
	}
}
