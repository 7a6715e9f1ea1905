package main

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/jpalmerr/pwsboard/internal/dataset"
	"github.com/jpalmerr/pwsboard/internal/figure"
	"github.com/jpalmerr/pwsboard/internal/source"
)

// inspectCmd downloads the dataset and prints per-year statistics.
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print per-year summary statistics of the dataset",
	Long: `Download and reshape the dataset exactly as serve would, then print one
row per year: reporting states, missing cells, and the population minimum,
1st percentile, mean, 99th percentile, maximum and total.

The 1st and 99th percentiles are the map's color bounds for that year.

Example:
  pwsboard inspect
  pwsboard inspect --source ./pws.csv
  pwsboard inspect -c config.yaml`,
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringP("config", "c", "", "path to config file")
	inspectCmd.Flags().String("source", "", "dataset URL or path (overrides config)")
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("source") {
		cfg.Source, _ = cmd.Flags().GetString("source")
	}

	client := source.NewClient(0)
	defer client.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ds, err := source.NewLoader(client, cfg.FetchTimeout.Duration(), logger).Load(cmd.Context(), cfg.Source)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Dataset %s: %d records, %d states, %d years\n",
		ds.ID(), ds.Len(), len(ds.States()), len(ds.Years()))
	renderSummary(out, dataset.Summarize(ds))
	return nil
}

// renderSummary writes the per-year table.
func renderSummary(w io.Writer, rows []dataset.YearSummary) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Year", "States", "Missing", "Min", "P1", "Mean", "P99", "Max", "Total"})

	for _, r := range rows {
		t.AppendRow(table.Row{
			strconv.Itoa(r.Year),
			r.States,
			r.Missing,
			figure.FormatPopulation(r.Min),
			figure.FormatPopulation(r.P1),
			figure.FormatPopulation(r.Mean),
			figure.FormatPopulation(r.P99),
			figure.FormatPopulation(r.Max),
			figure.FormatPopulation(r.Total),
		})
	}

	numeric := make([]table.ColumnConfig, 0, 8)
	for i := 2; i <= 9; i++ {
		numeric = append(numeric, table.ColumnConfig{Number: i, Align: text.AlignRight})
	}
	t.SetColumnConfigs(numeric)
	t.Render()
}
