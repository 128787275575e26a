package output

import (
	"math"

	"github.com/iwvelando/unit-analytics/pkg/analytics"
	"github.com/iwvelando/unit-analytics/pkg/portfolio"
)

// RawView mirrors analytics.RawMetrics for JSON encoding. Non-finite values
// (a payback that never happens, an overflowing rent) encode as null. The
// other views follow the same rule so encoding/json never sees Inf or NaN.
type RawView struct {
	TotalCost         *float64 `json:"totalCost"`
	MaintenanceAmount *float64 `json:"maintenanceAmount"`
	DownPayment       *float64 `json:"downPayment"`
	HandoverPayment   *float64 `json:"handoverPayment"`
	PaidUntilHandover *float64 `json:"paidUntilHandover"`

	AnnualRent     *float64 `json:"annualRent"`
	NOI            *float64 `json:"noi"`
	AnnualCashFlow *float64 `json:"annualCashFlow"`

	PaybackPeriod             *float64 `json:"paybackPeriod"`
	PaybackPeriodFromHandover *float64 `json:"paybackPeriodFromHandover"`
	TotalPaybackPeriod        *float64 `json:"totalPaybackPeriod"`

	ROI     *float64 `json:"roi"`
	ROE     *float64 `json:"roe"`
	CapRate *float64 `json:"capRate"`

	FutureValue        *float64 `json:"futureValue"`
	AppreciationAmount *float64 `json:"appreciationAmount"`
	NPV                *float64 `json:"npv"`
}

// ResultView is the JSON shape of one analyzed unit.
type ResultView struct {
	Name               string                          `json:"name,omitempty"`
	Formatted          analytics.FormattedMetrics      `json:"formatted"`
	Raw                RawView                         `json:"raw"`
	CashFlowProjection map[int][]CashFlowRowView `json:"cashFlowProjection"`
	Analysis           analytics.Analysis        `json:"analysis"`

	HasRent             bool `json:"hasRent"`
	ShowAdvancedMetrics bool `json:"showAdvancedMetrics"`
	ShowAppreciation    bool `json:"showAppreciation"`
	ShowNPV             bool `json:"showNpv"`

	NPVBreakdown *NPVBreakdownView `json:"npvBreakdown,omitempty"`
}

// CashFlowRowView mirrors analytics.CashFlowRow with nullable amounts.
type CashFlowRowView struct {
	Year               int      `json:"year"`
	Rent               *float64 `json:"rent"`
	Expenses           *float64 `json:"expenses"`
	Installments       *float64 `json:"installments"`
	NetCashFlow        *float64 `json:"netCashFlow"`
	CumulativeCashFlow *float64 `json:"cumulativeCashFlow"`
}

// NPVYearView mirrors analytics.NPVYear with nullable amounts.
type NPVYearView struct {
	Year         int      `json:"year"`
	Installments *float64 `json:"installments"`
	Rent         *float64 `json:"rent"`
	Expenses     *float64 `json:"expenses"`
	TerminalSale *float64 `json:"terminalSale"`
	NetCashFlow  *float64 `json:"netCashFlow"`
	Discounted   *float64 `json:"discounted"`
}

// NPVBreakdownView mirrors analytics.NPVBreakdown.
type NPVBreakdownView struct {
	InitialOutlay *float64      `json:"initialOutlay"`
	Years         []NPVYearView `json:"years"`
	NPV           *float64      `json:"npv"`
}

// SummaryView is the JSON shape of a portfolio summary.
type SummaryView struct {
	Units             int      `json:"units"`
	TotalPrice        *float64 `json:"totalPrice"`
	TotalCost         *float64 `json:"totalCost"`
	PaidUntilHandover *float64 `json:"paidUntilHandover"`
	AnnualNOI         *float64 `json:"annualNoi"`
	AnnualCashFlow    *float64 `json:"annualCashFlow"`
	FutureValue       *float64 `json:"futureValue"`
	NPV               *float64 `json:"npv"`
	NPVUnits          int      `json:"npvUnits"`
	CapRate           *float64 `json:"capRate"`
	ROI               *float64 `json:"roi"`

	CashFlow      []CashFlowRowView `json:"cashFlow"`
	CashFlowUnits int               `json:"cashFlowUnits"`
	BreakEven     *float64          `json:"breakEven"`
}

// NewResultView converts a result into its JSON-safe view.
func NewResultView(name string, res analytics.Result) ResultView {
	raw := res.Raw
	return ResultView{
		Name:      name,
		Formatted: res.Formatted,
		Raw: RawView{
			TotalCost:                 finite(raw.TotalCost),
			MaintenanceAmount:         finite(raw.MaintenanceAmount),
			DownPayment:               finite(raw.DownPayment),
			HandoverPayment:           finite(raw.HandoverPayment),
			PaidUntilHandover:         finite(raw.PaidUntilHandover),
			AnnualRent:                finite(raw.AnnualRent),
			NOI:                       finite(raw.NOI),
			AnnualCashFlow:            finite(raw.AnnualCashFlow),
			PaybackPeriod:             finite(raw.PaybackPeriod),
			PaybackPeriodFromHandover: finite(raw.PaybackPeriodFromHandover),
			TotalPaybackPeriod:        finite(raw.TotalPaybackPeriod),
			ROI:                       finite(raw.ROI),
			ROE:                       finite(raw.ROE),
			CapRate:                   finite(raw.CapRate),
			FutureValue:               finite(raw.FutureValue),
			AppreciationAmount:        finite(raw.AppreciationAmount),
			NPV:                       finite(raw.NPV),
		},
		CashFlowProjection:  newProjectionView(res.CashFlowProjection),
		Analysis:            res.Analysis,
		HasRent:             res.HasRent,
		ShowAdvancedMetrics: res.ShowAdvancedMetrics,
		ShowAppreciation:    res.ShowAppreciation,
		ShowNPV:             res.ShowNPV,
		NPVBreakdown:        newNPVBreakdownView(res.NPVBreakdown),
	}
}

// NewResultViews converts every entry in order.
func NewResultViews(entries []portfolio.Entry) []ResultView {
	views := make([]ResultView, 0, len(entries))
	for _, e := range entries {
		views = append(views, NewResultView(e.Name, e.Result))
	}
	return views
}

// NewSummaryView converts a summary into its JSON-safe view.
func NewSummaryView(s portfolio.Summary) SummaryView {
	return SummaryView{
		Units:             s.Units,
		TotalPrice:        finite(s.TotalPrice),
		TotalCost:         finite(s.TotalCost),
		PaidUntilHandover: finite(s.PaidUntilHandover),
		AnnualNOI:         finite(s.AnnualNOI),
		AnnualCashFlow:    finite(s.AnnualCashFlow),
		FutureValue:       finite(s.FutureValue),
		NPV:               finite(s.NPV),
		NPVUnits:          s.NPVUnits,
		CapRate:           finite(s.CapRate),
		ROI:               finite(s.ROI),
		CashFlow:          newRowViews(s.CashFlow),
		CashFlowUnits:     s.CashFlowUnits,
		BreakEven:         finite(s.BreakEven),
	}
}

func newRowViews(rows []analytics.CashFlowRow) []CashFlowRowView {
	views := make([]CashFlowRowView, 0, len(rows))
	for _, r := range rows {
		views = append(views, CashFlowRowView{
			Year:               r.Year,
			Rent:               finite(r.Rent),
			Expenses:           finite(r.Expenses),
			Installments:       finite(r.Installments),
			NetCashFlow:        finite(r.NetCashFlow),
			CumulativeCashFlow: finite(r.CumulativeCashFlow),
		})
	}
	return views
}

func newProjectionView(projection map[int][]analytics.CashFlowRow) map[int][]CashFlowRowView {
	if projection == nil {
		return nil
	}
	views := make(map[int][]CashFlowRowView, len(projection))
	for horizon, rows := range projection {
		views[horizon] = newRowViews(rows)
	}
	return views
}

func newNPVBreakdownView(b *analytics.NPVBreakdown) *NPVBreakdownView {
	if b == nil {
		return nil
	}
	view := &NPVBreakdownView{
		InitialOutlay: finite(b.InitialOutlay),
		Years:         make([]NPVYearView, 0, len(b.Years)),
		NPV:           finite(b.NPV),
	}
	for _, y := range b.Years {
		view.Years = append(view.Years, NPVYearView{
			Year:         y.Year,
			Installments: finite(y.Installments),
			Rent:         finite(y.Rent),
			Expenses:     finite(y.Expenses),
			TerminalSale: finite(y.TerminalSale),
			NetCashFlow:  finite(y.NetCashFlow),
			Discounted:   finite(y.Discounted),
		})
	}
	return view
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
