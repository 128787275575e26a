package analytics

// sampleUnit is an off-plan unit two years from handover on a quarterly plan.
func sampleUnit() UnitInput {
	return UnitInput{
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

// readyUnit is a fully paid unit without dates, used for hand-checked NPVs.
func readyUnit() UnitInput {
	return UnitInput{
		TotalPrice:              "100000",
		DownPaymentPct:          "100",
		MonthlyRent:             "1000",
		AnnualOperatingExpenses: "2000",
		AppreciationRatePct:     "0",
		AppreciationYears:       "2",
		DiscountRatePct:         "10",
	}
}
