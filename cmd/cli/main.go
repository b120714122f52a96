package main

import (
	"fmt"
	"os"

	"statreport/adapters/chart"
	"statreport/adapters/excel"
	"statreport/app"
	"statreport/internal"
	"statreport/internal/config"
	"statreport/internal/statistics"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// pipeline is everything a command needs to load and report on a file.
type pipeline struct {
	config  *config.Config
	logger  *internal.Logger
	reader  *excel.DataReader
	reports *app.ReportService
}

func newPipeline(cfgFile string, verbose bool) (*pipeline, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	logger := cfg.NewLogger()
	if verbose {
		logger.SetLevel(internal.LogLevelDebug)
	}

	engine := statistics.NewEngine(logger)
	renderer := chart.NewRenderer(cfg.ChartOptions(), logger)
	reports := app.NewReportService(engine, renderer, app.ServiceOptions{
		Report:        cfg.ReportOptions(),
		RenderWorkers: cfg.Charts.RenderWorkers,
	}, logger)

	return &pipeline{
		config:  cfg,
		logger:  logger,
		reader:  excel.NewDataReader(cfg.ReaderConfig()),
		reports: reports,
	}, nil
}

func newRootCmd() *cobra.Command {
	var cfgFile string
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "statreport-cli",
		Short:         "Descriptive statistics reports for spreadsheets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./statreport.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	load := func() (*pipeline, error) { return newPipeline(cfgFile, verbose) }
	rootCmd.AddCommand(
		newColumnsCmd(load),
		newSummarizeCmd(load),
		newReportCmd(load),
		newSampleCmd(),
	)
	return rootCmd
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: .env: %v\n", err)
	}

	if err := newRootCmd().Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
