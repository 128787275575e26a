// Package format renders analytics numbers for display.
package format

import (
	"math"

	"github.com/iwvelando/unit-analytics/pkg/constants"
	"github.com/iwvelando/unit-analytics/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders a number as a display string. Implementations must not
// panic on NaN or infinite input.
type Formatter interface {
	Number(value float64) string
}

// NumberFormatter renders fixed two-decimal, digit-grouped numbers for a
// single locale.
type NumberFormatter struct {
	printer      *message.Printer
	notAvailable string
}

// NewNumberFormatter builds a formatter for the given BCP 47 locale. An
// unparseable locale falls back to English and an empty sentinel to "N/A".
func NewNumberFormatter(locale, notAvailable string) *NumberFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	if notAvailable == "" {
		notAvailable = constants.NotAvailable
	}
	return &NumberFormatter{
		printer:      message.NewPrinter(tag),
		notAvailable: notAvailable,
	}
}

// Default returns the locale-neutral English formatter ("2,700,000.00").
func Default() *NumberFormatter {
	return NewNumberFormatter(constants.DefaultLocale, constants.NotAvailable)
}

// Number returns value with two decimals and thousands separators, or the
// sentinel for non-finite values.
func (f *NumberFormatter) Number(value float64) string {
	if !mathutil.IsFinite(value) {
		return f.notAvailable
	}
	// avoid rendering "-0.00"
	if math.Abs(value) < 0.005 {
		value = 0
	}
	return f.printer.Sprintf("%.2f", value)
}

// Percent renders value followed by a percent sign.
func (f *NumberFormatter) Percent(value float64) string {
	if !mathutil.IsFinite(value) {
		return f.notAvailable
	}
	return f.Number(value) + "%"
}

// NotAvailable returns the sentinel used for non-finite values.
func (f *NumberFormatter) NotAvailable() string {
	return f.notAvailable
}
