// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	"github.com/iwvelando/unit-analytics/pkg/analytics"
	"github.com/iwvelando/unit-analytics/pkg/constants"
	"github.com/iwvelando/unit-analytics/pkg/validation"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// DateLayout is the format expected for contract and handover dates.
const DateLayout = constants.DateLayout

// Configuration holds all configuration for unit-analytics.
type Configuration struct {
	Units      []Unit           `yaml:"units"`
	Logging    LoggingConfig    `yaml:"logging,omitempty"`
	Output     OutputConfig     `yaml:"output,omitempty"`
	Formatting FormattingConfig `yaml:"formatting,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// FormattingConfig controls how numbers are rendered for display.
type FormattingConfig struct {
	Locale       string `yaml:"locale,omitempty"`
	NotAvailable string `yaml:"notAvailable,omitempty"`
}

// Unit is one property to analyze. Inactive units are skipped.
type Unit struct {
	Name                string `yaml:"name"`
	Active              bool   `yaml:"active"`
	analytics.UnitInput `yaml:",inline" mapstructure:",squash"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("UNIT_ANALYTICS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("formatting.locale", constants.DefaultLocale)
	v.SetDefault("formatting.notAvailable", constants.NotAvailable)
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		timeToDateStringHookFunc(),
	))
	if err := v.Unmarshal(&configuration, hook); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	for i := range configuration.Units {
		if strings.TrimSpace(configuration.Units[i].Name) == "" {
			configuration.Units[i].Name = fmt.Sprintf("unit %d", i+1)
		}
	}

	return &configuration, nil
}

// timeToDateStringHookFunc renders unquoted YAML dates, which the YAML
// decoder turns into time.Time, back into DateLayout strings.
func timeToDateStringHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if t.Kind() != reflect.String {
			return data, nil
		}
		switch v := data.(type) {
		case time.Time:
			return v.Format(DateLayout), nil
		case *time.Time:
			if v == nil {
				return "", nil
			}
			return v.Format(DateLayout), nil
		}
		return data, nil
	}
}

// ActiveUnits returns the units marked active, in configuration order.
func (conf *Configuration) ActiveUnits() []Unit {
	var units []Unit
	for _, unit := range conf.Units {
		if unit.Active {
			units = append(units, unit)
		}
	}
	return units
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Warnings never prevent analysis.
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if conf.Output.Format != "" {
		if err := validation.ValidateOutputFormat(conf.Output.Format); err != nil {
			warnings = append(warnings, err.Error())
		}
	}

	if len(conf.ActiveUnits()) == 0 {
		warnings = append(warnings, "no active units configured")
	}

	seen := make(map[string]bool)
	for _, unit := range conf.Units {
		if seen[unit.Name] {
			warnings = append(warnings, fmt.Sprintf("Unit '%s' is defined more than once", unit.Name))
		}
		seen[unit.Name] = true

		if !unit.Active {
			continue
		}
		warnings = append(warnings, validation.ValidateUnit(unit.Name, unit.UnitInput)...)
	}

	return warnings
}
