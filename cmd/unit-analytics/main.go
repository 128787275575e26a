package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/iwvelando/unit-analytics/internal/config"
	"github.com/iwvelando/unit-analytics/internal/evaluation"
	"github.com/iwvelando/unit-analytics/internal/logging"
	"github.com/iwvelando/unit-analytics/pkg/constants"
	"github.com/iwvelando/unit-analytics/pkg/output"
	"github.com/iwvelando/unit-analytics/pkg/validation"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// configPath picks the flag value, then the environment, then the default.
func configPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(constants.ConfigEnvVar); env != "" {
		return env
	}
	return constants.DefaultConfigFile
}

func main() {
	// A missing .env is fine
	_ = godotenv.Load()

	configLocation := flag.String("config", "", "path to configuration file (default $"+constants.ConfigEnvVar+" or "+constants.DefaultConfigFile+")")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	path := configPath(*configLocation)

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(path)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", path, err)
		os.Exit(1)
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI override takes precedence over config
	outputFormat := conf.OutputFormat()
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}

	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	report, err := evaluation.Evaluate(context.Background(), logger, *conf)
	if err != nil {
		logger.Fatal("failed to compute analytics",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(report.Units, report.Summary, conf.Formatter())
	case constants.OutputFormatCSV:
		output.CsvFormat(report.Units)
	case constants.OutputFormatJSON:
		if err := output.JSONFormat(report.Units, report.Summary); err != nil {
			logger.Fatal("failed to write output",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}
}
