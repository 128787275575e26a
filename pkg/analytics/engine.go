package analytics

import (
	"github.com/iwvelando/unit-analytics/pkg/format"
	"go.uber.org/zap"
)

// Engine runs Compute with a fixed formatter and logs a summary of each
// result. It holds no per-call state and is safe for concurrent use.
type Engine struct {
	logger    *zap.Logger
	formatter format.Formatter
}

// NewEngine creates an engine with the given logger and formatter.
// A nil logger becomes a no-op logger and a nil formatter uses format.Default.
func NewEngine(logger *zap.Logger, formatter format.Formatter) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if formatter == nil {
		formatter = format.Default()
	}
	return &Engine{logger: logger, formatter: formatter}
}

// Analyze computes the analytics for a named unit.
func (e *Engine) Analyze(name string, in UnitInput) Result {
	res := Compute(in, e.formatter)

	e.logger.Debug("unit analyzed",
		zap.String("op", "analytics.Analyze"),
		zap.String("unit", name),
		zap.Float64("totalCost", res.Raw.TotalCost),
		zap.Float64("paidUntilHandover", res.Raw.PaidUntilHandover),
		zap.Float64("npv", res.Raw.NPV),
		zap.Bool("hasRent", res.HasRent),
		zap.Bool("showNpv", res.ShowNPV),
		zap.Int("cashFlowRows", len(res.Table())),
	)
	if !res.Schedule.HasDates && (in.ContractDate != "" || in.HandoverDate != "") {
		e.logger.Debug("unit dates incomplete or unparseable, timing metrics disabled",
			zap.String("op", "analytics.Analyze"),
			zap.String("unit", name),
			zap.String("contractDate", in.ContractDate),
			zap.String("handoverDate", in.HandoverDate),
		)
	}

	return res
}

// Formatter returns the formatter used by the engine.
func (e *Engine) Formatter() format.Formatter {
	return e.formatter
}
