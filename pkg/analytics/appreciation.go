package analytics

import (
	"github.com/iwvelando/unit-analytics/pkg/mathutil"
)

// Appreciation is the projected sale value of the unit.
type Appreciation struct {
	FutureValue        float64 `json:"futureValue"`
	AppreciationAmount float64 `json:"appreciationAmount"`
}

// ProjectAppreciation compounds the price at the appreciation rate over the
// appreciation horizon. Without a positive horizon the value stays at price.
func ProjectAppreciation(p ParsedInput) Appreciation {
	fv := p.Price
	if p.AppreciationYears > 0 {
		fv = mathutil.Compound(p.Price, p.AppreciationRatePct, p.AppreciationYears)
	}
	return Appreciation{
		FutureValue:        fv,
		AppreciationAmount: fv - p.Price,
	}
}

func showAppreciation(p ParsedInput) bool {
	return p.AppreciationRatePct > 0 && p.AppreciationYears > 0
}
