// Package config defines conversion utilities for configuration objects.
package config

import (
	"strings"

	"github.com/iwvelando/unit-analytics/pkg/constants"
	"github.com/iwvelando/unit-analytics/pkg/format"
)

// FormatterFromConfig builds the number formatter described by the formatting
// section. Empty fields fall back to English grouping and "N/A".
func FormatterFromConfig(fc FormattingConfig) *format.NumberFormatter {
	locale := strings.TrimSpace(fc.Locale)
	if locale == "" {
		locale = constants.DefaultLocale
	}
	return format.NewNumberFormatter(locale, fc.NotAvailable)
}

// Formatter returns the number formatter for this configuration.
func (conf *Configuration) Formatter() *format.NumberFormatter {
	if conf == nil {
		return format.Default()
	}
	return FormatterFromConfig(conf.Formatting)
}

// OutputFormat returns the configured output format, defaulting to pretty.
func (conf *Configuration) OutputFormat() string {
	if conf == nil || strings.TrimSpace(conf.Output.Format) == "" {
		return constants.OutputFormatPretty
	}
	return strings.TrimSpace(conf.Output.Format)
}
