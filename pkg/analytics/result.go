package analytics

import (
	"math"

	"github.com/iwvelando/unit-analytics/pkg/constants"
	"github.com/iwvelando/unit-analytics/pkg/format"
)

// RawMetrics holds every headline metric as a number. Payback periods are
// +Inf when cumulative cash flow never turns non-negative.
type RawMetrics struct {
	TotalCost         float64
	MaintenanceAmount float64
	DownPayment       float64
	HandoverPayment   float64
	PaidUntilHandover float64

	AnnualRent     float64
	NOI            float64
	AnnualCashFlow float64

	// PaybackPeriod is measured from the end of the installment plan.
	PaybackPeriod             float64
	PaybackPeriodFromHandover float64
	TotalPaybackPeriod        float64

	ROI     float64
	ROE     float64
	CapRate float64

	FutureValue        float64
	AppreciationAmount float64
	NPV                float64
}

// FormattedMetrics mirrors RawMetrics as display strings.
type FormattedMetrics struct {
	TotalCost         string `json:"totalCost"`
	MaintenanceAmount string `json:"maintenanceAmount"`
	DownPayment       string `json:"downPayment"`
	HandoverPayment   string `json:"handoverPayment"`
	PaidUntilHandover string `json:"paidUntilHandover"`

	AnnualRent     string `json:"annualRent"`
	NOI            string `json:"noi"`
	AnnualCashFlow string `json:"annualCashFlow"`

	PaybackPeriod             string `json:"paybackPeriod"`
	PaybackPeriodFromHandover string `json:"paybackPeriodFromHandover"`
	TotalPaybackPeriod        string `json:"totalPaybackPeriod"`

	ROI     string `json:"roi"`
	ROE     string `json:"roe"`
	CapRate string `json:"capRate"`

	FutureValue        string `json:"futureValue"`
	AppreciationAmount string `json:"appreciationAmount"`
	NPV                string `json:"npv"`
}

// Analysis holds the qualitative rating of each rated metric; nil means the
// metric is hidden or has no meaningful rating.
type Analysis struct {
	ROI           *Rating `json:"roi"`
	ROE           *Rating `json:"roe"`
	CapRate       *Rating `json:"capRate"`
	PaybackPeriod *Rating `json:"paybackPeriod"`
	NPV           *Rating `json:"npv"`
}

// Result is the complete analytics output for one unit.
type Result struct {
	Formatted          FormattedMetrics
	Raw                RawMetrics
	CashFlowProjection map[int][]CashFlowRow
	Analysis           Analysis

	HasRent             bool
	ShowAdvancedMetrics bool
	ShowAppreciation    bool
	ShowNPV             bool

	Schedule     Schedule
	Ratios       Ratios
	NPVBreakdown *NPVBreakdown
}

// Table returns the full 20-year cash-flow table, or nil when none was built.
func (r Result) Table() []CashFlowRow {
	rows := r.CashFlowProjection[constants.MaxProjectionYears]
	if len(rows) == 0 {
		return nil
	}
	return rows
}

// Compute runs the full analytics pipeline on in. A nil formatter uses
// format.Default.
func Compute(in UnitInput, f format.Formatter) Result {
	if f == nil {
		f = format.Default()
	}

	p := Normalize(in)
	schedule := BuildSchedule(p)
	ratios := ComputeRatios(p, schedule)
	appreciation := ProjectAppreciation(p)
	table := BuildCashFlowTable(p, schedule, ratios)
	payback := ComputePayback(BreakEven(table), schedule)

	res := Result{
		CashFlowProjection:  Horizons(table),
		HasRent:             p.MonthlyRent > 0,
		ShowAdvancedMetrics: showAdvancedMetrics(p),
		ShowAppreciation:    showAppreciation(p),
		ShowNPV:             showNPV(p),
		Schedule:            schedule,
		Ratios:              ratios,
	}

	res.Raw = RawMetrics{
		TotalCost:                 schedule.TotalCost,
		MaintenanceAmount:         schedule.MaintenanceAmount,
		DownPayment:               schedule.DownPayment,
		HandoverPayment:           schedule.HandoverPayment,
		PaidUntilHandover:         schedule.PaidUntilHandover,
		AnnualRent:                ratios.AnnualRent,
		NOI:                       ratios.NOI,
		AnnualCashFlow:            ratios.AnnualCashFlow,
		PaybackPeriod:             payback.AfterFinancing,
		PaybackPeriodFromHandover: payback.FromHandover,
		TotalPaybackPeriod:        payback.FromContract,
		ROI:                       ratios.ROI,
		ROE:                       ratios.ROE,
		CapRate:                   ratios.CapRate,
		FutureValue:               appreciation.FutureValue,
		AppreciationAmount:        appreciation.AppreciationAmount,
	}

	if res.ShowNPV {
		breakdown := ComputeNPV(p, schedule, ratios, appreciation)
		res.NPVBreakdown = &breakdown
		res.Raw.NPV = breakdown.NPV
		res.Analysis.NPV = ClassifyNPV(breakdown.NPV)
	}

	if res.ShowAdvancedMetrics {
		res.Analysis.ROI = ClassifyRatio(ratios.ROI, ROIBands)
		res.Analysis.ROE = ClassifyRatio(ratios.ROE, ROEBands)
		res.Analysis.CapRate = ClassifyRatio(ratios.CapRate, CapRateBands)
	}

	if res.HasRent && !math.IsInf(payback.FromHandover, 0) {
		res.Analysis.PaybackPeriod = Classify(payback.FromHandover, PaybackBands)
	}

	res.Formatted = FormatMetrics(res.Raw, f)
	return res
}

// FormatMetrics renders every raw metric through f.
func FormatMetrics(raw RawMetrics, f format.Formatter) FormattedMetrics {
	return FormattedMetrics{
		TotalCost:                 f.Number(raw.TotalCost),
		MaintenanceAmount:         f.Number(raw.MaintenanceAmount),
		DownPayment:               f.Number(raw.DownPayment),
		HandoverPayment:           f.Number(raw.HandoverPayment),
		PaidUntilHandover:         f.Number(raw.PaidUntilHandover),
		AnnualRent:                f.Number(raw.AnnualRent),
		NOI:                       f.Number(raw.NOI),
		AnnualCashFlow:            f.Number(raw.AnnualCashFlow),
		PaybackPeriod:             f.Number(raw.PaybackPeriod),
		PaybackPeriodFromHandover: f.Number(raw.PaybackPeriodFromHandover),
		TotalPaybackPeriod:        f.Number(raw.TotalPaybackPeriod),
		ROI:                       f.Number(raw.ROI),
		ROE:                       f.Number(raw.ROE),
		CapRate:                   f.Number(raw.CapRate),
		FutureValue:               f.Number(raw.FutureValue),
		AppreciationAmount:        f.Number(raw.AppreciationAmount),
		NPV:                       f.Number(raw.NPV),
	}
}
