// Package main provides the gosmooth command line tool: load a series from
// CSV, fit a state space model and print the forecast.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sartorproj/gosmooth/es"
	"github.com/sartorproj/gosmooth/gum"
	"github.com/sartorproj/gosmooth/ssoe"
	"github.com/sartorproj/gosmooth/timeseries"
)

var version = "0.1.0"

// Shared flags
var (
	csvPath     string
	csvColumn   string
	csvID       string
	csvIDColumn string
	frequency   int
	configPath  string
	horizon     int
	format      string
	verbose     bool
)

// Model flags
var (
	etsModel  string
	etsPeriod int
	gumOrders string
	gumLags   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gosmooth",
	Short: "Single source of error state space forecasting",
	Long: `gosmooth fits state space models with a single source of error to a
time series loaded from CSV and prints the forecast.

Models:
  - fit: any lag structure described by a YAML configuration
  - ets: exponential smoothing by model code (ANN, AAN, MMM, ...)
  - gum: generalized univariate model with every block estimated`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Fit the model described by the configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(func(series *timeseries.Series, settings *ssoe.Config, logger *zap.Logger) (*ssoe.Result, error) {
			return ssoe.Fit(series, settings, ssoe.WithLogger(logger))
		})
	},
}

var etsCmd = &cobra.Command{
	Use:   "ets",
	Short: "Fit an exponential smoothing model",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := es.Parse(strings.ToUpper(etsModel), etsPeriod)
		if err != nil {
			return err
		}
		model, err := es.New(cfg)
		if err != nil {
			return err
		}
		return run(func(series *timeseries.Series, settings *ssoe.Config, logger *zap.Logger) (*ssoe.Result, error) {
			model.Settings = settings
			if err := model.Fit(series, ssoe.WithLogger(logger)); err != nil {
				return nil, err
			}
			return model.Result(), nil
		})
	},
}

var gumCmd = &cobra.Command{
	Use:   "gum",
	Short: "Fit a generalized univariate model",
	RunE: func(cmd *cobra.Command, args []string) error {
		orders, err := parseInts(gumOrders)
		if err != nil {
			return fmt.Errorf("orders: %w", err)
		}
		lags, err := parseInts(gumLags)
		if err != nil {
			return fmt.Errorf("lags: %w", err)
		}
		model, err := gum.New(orders, lags)
		if err != nil {
			return err
		}
		return run(func(series *timeseries.Series, settings *ssoe.Config, logger *zap.Logger) (*ssoe.Result, error) {
			model.Settings = settings
			if err := model.Fit(series, ssoe.WithLogger(logger)); err != nil {
				return nil, err
			}
			return model.Result(), nil
		})
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&csvPath, "csv", "", "CSV file with the series (required)")
	pf.StringVar(&csvColumn, "column", "y", "Value column")
	pf.StringVar(&csvIDColumn, "id-column", "", "Column identifying the series")
	pf.StringVar(&csvID, "id", "", "Series to keep when --id-column is set")
	pf.IntVar(&frequency, "frequency", 1, "Seasonal frequency of the series")
	pf.StringVar(&configPath, "config", "", "YAML model configuration")
	pf.IntVar(&horizon, "horizon", 0, "Forecast horizon (overrides the configuration)")
	pf.StringVarP(&format, "format", "o", "table", "Output format: table or json")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Log estimation diagnostics")

	etsCmd.Flags().StringVarP(&etsModel, "model", "m", "ANN", "Model code: error, trend and season letters")
	etsCmd.Flags().IntVar(&etsPeriod, "period", 0, "Season length (default: the series frequency)")

	gumCmd.Flags().StringVar(&gumOrders, "orders", "1", "Comma separated orders")
	gumCmd.Flags().StringVar(&gumLags, "lags", "1", "Comma separated lags")

	rootCmd.AddCommand(fitCmd, etsCmd, gumCmd)
}

type fitFunc func(series *timeseries.Series, settings *ssoe.Config, logger *zap.Logger) (*ssoe.Result, error)

func run(fit fitFunc) error {
	if csvPath == "" {
		return fmt.Errorf("--csv is required")
	}
	logger := newLogger(verbose)
	defer logger.Sync() //nolint:errcheck

	settings, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if horizon > 0 {
		settings.Horizon = horizon
	}

	opts := timeseries.DefaultCSVOptions()
	opts.ValueColumn = csvColumn
	opts.IDColumn = csvIDColumn
	opts.IDFilter = csvID
	opts.Frequency = frequency
	opts.KeepMissing = true
	series, err := timeseries.LoadCSV(csvPath, opts)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", csvPath, err)
	}
	summary := summarize(series)
	logger.Info("series loaded",
		zap.String("file", csvPath),
		zap.Int("observations", summary.Observed),
		zap.Int("zeros", summary.Zeros),
		zap.Int("frequency", series.Frequency))

	res, err := fit(series, settings, logger)
	if err != nil {
		return err
	}
	report := newReport(res)
	report.Series = summary
	return writeReport(os.Stdout, report, format)
}

// loadConfig reads a YAML configuration over the defaults. An empty path
// returns the defaults.
func loadConfig(path string) (*ssoe.Config, error) {
	cfg := ssoe.DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

func parseInts(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
