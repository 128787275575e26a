// Package evaluation runs the analytics engine over every active unit of a
// configuration and rolls the results up into a portfolio summary.
package evaluation

import (
	"context"
	"fmt"

	"github.com/iwvelando/unit-analytics/internal/config"
	"github.com/iwvelando/unit-analytics/pkg/analytics"
	"github.com/iwvelando/unit-analytics/pkg/portfolio"
	"go.uber.org/zap"
)

// Report holds the per-unit results, in configuration order, and their
// roll-up.
type Report struct {
	Units   []portfolio.Entry
	Summary portfolio.Summary
}

// Evaluate analyzes every active unit in conf. It only fails when ctx is
// cancelled before all units are analyzed.
func Evaluate(ctx context.Context, logger *zap.Logger, conf config.Configuration) (Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	engine := analytics.NewEngine(logger, conf.Formatter())

	var report Report
	for _, unit := range conf.Units {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("evaluation interrupted before unit %s: %w", unit.Name, err)
		}
		if !unit.Active {
			logger.Debug(fmt.Sprintf("skipping unit %s because it is inactive", unit.Name),
				zap.String("op", "evaluation.Evaluate"),
			)
			continue
		}

		report.Units = append(report.Units, portfolio.Entry{
			Name:   unit.Name,
			Result: engine.Analyze(unit.Name, unit.UnitInput),
		})
	}

	report.Summary = portfolio.Summarize(report.Units)
	logger.Debug("portfolio evaluated",
		zap.String("op", "evaluation.Evaluate"),
		zap.Int("units", report.Summary.Units),
		zap.Float64("totalCost", report.Summary.TotalCost),
		zap.Float64("breakEven", report.Summary.BreakEven),
	)

	return report, nil
}
