package main

import (
	"fmt"
	"os"

	"statreport/adapters/excel"
	"statreport/internal/testkit"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type loader func() (*pipeline, error)

func newColumnsCmd(load loader) *cobra.Command {
	var head int

	cmd := &cobra.Command{
		Use:   "columns FILE",
		Short: "List the columns of a spreadsheet with their kind and missing counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := load()
			if err != nil {
				return err
			}
			ds, err := p.reader.LoadFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printColumns(cmd.OutOrStdout(), ds, head)
			return nil
		},
	}
	cmd.Flags().IntVar(&head, "head", 0, "also print the first N rows")
	return cmd
}

func newSummarizeCmd(load loader) *cobra.Command {
	var flags requestFlags

	cmd := &cobra.Command{
		Use:   "summarize FILE",
		Short: "Print summaries, correlations and frequency tables",
		Long: `Print the statistics of the selected columns without rendering charts.

Example:
  statreport-cli summarize sales.xlsx -n price,qty -c region --correlation -p drop_rows`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := load()
			if err != nil {
				return err
			}
			ds, err := p.reader.LoadFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			req, err := flags.build(cmd, ds)
			if err != nil {
				return err
			}
			result, err := p.reports.Analyze(cmd.Context(), ds, req)
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), result)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newReportCmd(load loader) *cobra.Command {
	var flags requestFlags
	var outDir string

	cmd := &cobra.Command{
		Use:   "report FILE",
		Short: "Write the PDF report and every chart as PNG",
		Long: `Write istatistik_raporu.pdf plus <column>_<chart>.png files into the output directory.

Example:
  statreport-cli report survey.csv --all --theme darkgrid -o out/`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := load()
			if err != nil {
				return err
			}
			ds, err := p.reader.LoadFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			req, err := flags.build(cmd, ds)
			if err != nil {
				return err
			}
			doc, art, err := p.reports.ExportPDF(cmd.Context(), ds, req)
			if err != nil {
				return err
			}
			paths, err := art.WriteFiles(outDir, doc)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, path := range paths {
				color.New(color.FgGreen).Fprintln(out, "wrote", path)
			}
			for _, c := range art.Charts {
				if c.Placeholder {
					color.New(color.FgYellow).Fprintf(out, "%s could not be drawn, a placeholder was written\n", c.Name)
				}
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&outDir, "output", "o", ".", "output directory")
	return cmd
}

func newSampleCmd() *cobra.Command {
	config := testkit.DefaultShoppingConfig()

	cmd := &cobra.Command{
		Use:   "sample FILE",
		Short: "Write a deterministic demo dataset as .xlsx or .csv",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.MissingRate < 0 || config.MissingRate > 1 {
				return fmt.Errorf("--missing-rate must be between 0 and 1")
			}
			ds, err := testkit.NewShoppingDataGenerator(config).Generate()
			if err != nil {
				return err
			}

			fh, err := os.Create(args[0])
			if err != nil {
				return err
			}
			if err := excel.WriteFile(fh, args[0], ds); err != nil {
				fh.Close()
				os.Remove(args[0])
				return err
			}
			if err := fh.Close(); err != nil {
				return err
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "wrote %s (%d rows)\n", args[0], ds.Rows())
			return nil
		},
	}
	cmd.Flags().IntVar(&config.OrderCount, "rows", config.OrderCount, "number of orders")
	cmd.Flags().Float64Var(&config.MissingRate, "missing-rate", config.MissingRate, "share of cells left empty in the sparse columns")
	cmd.Flags().Int64Var(&config.Seed, "seed", config.Seed, "random seed")
	return cmd
}
