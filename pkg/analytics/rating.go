package analytics

import (
	"math"

	"github.com/iwvelando/unit-analytics/pkg/mathutil"
)

// Rating keys.
const (
	RatingLow       = "low"
	RatingAverage   = "average"
	RatingGood      = "good"
	RatingVeryGood  = "veryGood"
	RatingExcellent = "excellent"

	RatingProfitable   = "profitable"
	RatingBreakEven    = "breakEven"
	RatingUnprofitable = "unprofitable"
)

// Rating is a qualitative verdict on a single metric.
type Rating struct {
	Key          string `json:"ratingKey"`
	ColorClasses string `json:"colorClasses"`
}

// Band is one entry of an ordered threshold table. A value belongs to the
// first band whose UpperBound it does not exceed.
type Band struct {
	UpperBound float64
	Key        string
}

var inf = math.Inf(1)

// Threshold tables, in percent for ratios and years for payback.
var (
	CapRateBands = []Band{
		{4, RatingLow},
		{6, RatingAverage},
		{8, RatingGood},
		{10, RatingVeryGood},
		{inf, RatingExcellent},
	}
	ROIBands = []Band{
		{3, RatingLow},
		{5, RatingAverage},
		{7, RatingGood},
		{10, RatingVeryGood},
		{inf, RatingExcellent},
	}
	ROEBands = []Band{
		{5, RatingLow},
		{10, RatingAverage},
		{15, RatingGood},
		{20, RatingVeryGood},
		{inf, RatingExcellent},
	}
	// PaybackBands rate shorter paybacks higher.
	PaybackBands = []Band{
		{8, RatingExcellent},
		{12, RatingVeryGood},
		{16, RatingGood},
		{20, RatingAverage},
		{inf, RatingLow},
	}
)

var colorClasses = map[string]string{
	RatingLow:          "text-red-700 bg-red-100",
	RatingAverage:      "text-yellow-700 bg-yellow-100",
	RatingGood:         "text-blue-700 bg-blue-100",
	RatingVeryGood:     "text-green-700 bg-green-100",
	RatingExcellent:    "text-emerald-700 bg-emerald-100",
	RatingProfitable:   "text-green-700 bg-green-100",
	RatingBreakEven:    "text-yellow-700 bg-yellow-100",
	RatingUnprofitable: "text-red-700 bg-red-100",
}

// Classify maps value onto bands. It returns nil for non-finite values or an
// empty table.
func Classify(value float64, bands []Band) *Rating {
	if !mathutil.IsFinite(value) {
		return nil
	}
	for _, b := range bands {
		if value <= b.UpperBound {
			return newRating(b.Key)
		}
	}
	return nil
}

// ClassifyRatio rates a positively-oriented ratio; non-positive ratios get no
// rating.
func ClassifyRatio(value float64, bands []Band) *Rating {
	if value <= 0 {
		return nil
	}
	return Classify(value, bands)
}

// ClassifyNPV rates an NPV as profitable, break-even or unprofitable with a
// one-cent dead band around zero.
func ClassifyNPV(npv float64) *Rating {
	switch {
	case !mathutil.IsFinite(npv):
		return nil
	case mathutil.IsPositive(npv):
		return newRating(RatingProfitable)
	case mathutil.IsNegative(npv):
		return newRating(RatingUnprofitable)
	default:
		return newRating(RatingBreakEven)
	}
}

func newRating(key string) *Rating {
	return &Rating{Key: key, ColorClasses: colorClasses[key]}
}
