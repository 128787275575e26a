// Package analytics computes investment metrics for a single off-plan or
// rented property unit: cost breakdown, return ratios, appreciation, NPV, a
// 20-year cash-flow projection and payback periods.
//
// Every function in this package is pure. Compute never returns an error;
// malformed input degrades to zeroed or disabled metrics.
package analytics

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/unit-analytics/pkg/constants"
	"github.com/iwvelando/unit-analytics/pkg/datetime"
)

// UnitInput is the raw, caller-supplied description of a unit. Numeric fields
// are free-form text and dates are ISO YYYY-MM-DD strings.
type UnitInput struct {
	TotalPrice              string `json:"totalPrice" yaml:"totalPrice" mapstructure:"totalPrice"`
	DownPaymentPct          string `json:"downPaymentPct" yaml:"downPaymentPct" mapstructure:"downPaymentPct"`
	InstallmentAmount       string `json:"installmentAmount" yaml:"installmentAmount" mapstructure:"installmentAmount"`
	InstallmentFrequency    string `json:"installmentFrequency" yaml:"installmentFrequency" mapstructure:"installmentFrequency"` // months
	MaintenancePct          string `json:"maintenancePct" yaml:"maintenancePct" mapstructure:"maintenancePct"`
	HandoverPaymentPct      string `json:"handoverPaymentPct" yaml:"handoverPaymentPct" mapstructure:"handoverPaymentPct"`
	ContractDate            string `json:"contractDate" yaml:"contractDate" mapstructure:"contractDate"`
	HandoverDate            string `json:"handoverDate" yaml:"handoverDate" mapstructure:"handoverDate"`
	MonthlyRent             string `json:"monthlyRent" yaml:"monthlyRent" mapstructure:"monthlyRent"`
	AnnualRentIncreasePct   string `json:"annualRentIncreasePct" yaml:"annualRentIncreasePct" mapstructure:"annualRentIncreasePct"`
	AnnualOperatingExpenses string `json:"annualOperatingExpenses" yaml:"annualOperatingExpenses" mapstructure:"annualOperatingExpenses"`
	AppreciationRatePct     string `json:"appreciationRatePct" yaml:"appreciationRatePct" mapstructure:"appreciationRatePct"`
	AppreciationYears       string `json:"appreciationYears" yaml:"appreciationYears" mapstructure:"appreciationYears"`
	DiscountRatePct         string `json:"discountRatePct" yaml:"discountRatePct" mapstructure:"discountRatePct"`
}

// ParsedInput holds the numeric view of a UnitInput.
type ParsedInput struct {
	Price                   float64
	DownPaymentPct          float64
	InstallmentAmount       float64
	FrequencyMonths         int
	MaintenancePct          float64
	HandoverPaymentPct      float64
	MonthlyRent             float64
	AnnualRentIncreasePct   float64
	AnnualOperatingExpenses float64
	AppreciationRatePct     float64
	AppreciationYears       float64
	DiscountRatePct         float64

	ContractDate    time.Time
	HandoverDate    time.Time
	HasContractDate bool
	HasHandoverDate bool
}

// HasDates reports whether both contract and handover dates parsed.
func (p ParsedInput) HasDates() bool {
	return p.HasContractDate && p.HasHandoverDate
}

// Normalize coerces every field of in to its numeric or date form. It never
// fails: unparseable numbers become 0, the installment frequency defaults to
// quarterly and unparseable dates are marked absent.
func Normalize(in UnitInput) ParsedInput {
	p := ParsedInput{
		Price:                   ParseNumber(in.TotalPrice),
		DownPaymentPct:          ParseNumber(in.DownPaymentPct),
		InstallmentAmount:       ParseNumber(in.InstallmentAmount),
		FrequencyMonths:         ParseFrequency(in.InstallmentFrequency),
		MaintenancePct:          ParseNumber(in.MaintenancePct),
		HandoverPaymentPct:      ParseNumber(in.HandoverPaymentPct),
		MonthlyRent:             ParseNumber(in.MonthlyRent),
		AnnualRentIncreasePct:   ParseNumber(in.AnnualRentIncreasePct),
		AnnualOperatingExpenses: ParseNumber(in.AnnualOperatingExpenses),
		AppreciationRatePct:     ParseNumber(in.AppreciationRatePct),
		AppreciationYears:       ParseNumber(in.AppreciationYears),
		DiscountRatePct:         ParseNumber(in.DiscountRatePct),
	}
	p.ContractDate, p.HasContractDate = datetime.ParseDate(in.ContractDate)
	p.HandoverDate, p.HasHandoverDate = datetime.ParseDate(in.HandoverDate)
	return p
}

// ParseNumber parses the longest leading decimal number in s, the way a
// lenient form field would: "12,000" yields 12 and "5%" yields 5. Empty or
// non-numeric text yields 0.
func ParseNumber(s string) float64 {
	prefix := numericPrefix(strings.TrimSpace(s), true)
	if prefix == "" {
		return 0
	}
	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ParseFrequency parses the leading integer of s as a month count. Missing,
// non-numeric or non-positive values default to quarterly, as do digit runs
// too large for an int.
func ParseFrequency(s string) int {
	prefix := numericPrefix(strings.TrimSpace(s), false)
	if prefix == "" {
		return constants.QuarterlyFrequency
	}
	v, err := strconv.Atoi(prefix)
	if err != nil || v <= 0 {
		return constants.QuarterlyFrequency
	}
	return v
}

// numericPrefix returns the longest prefix of s that forms a number: an
// optional sign, digits and, when fractional is set, a decimal part and an
// exponent. The result is empty when no digit is found.
func numericPrefix(s string, fractional bool) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if fractional && i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits+frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return ""
	}
	if fractional && i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		exp := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			exp++
		}
		if exp > 0 {
			i = j
		}
	}
	return s[:i]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
