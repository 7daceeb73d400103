package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"github.com/ptek/dv/chart"
	"github.com/ptek/dv/dexcom"
	"github.com/ptek/dv/hourly"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "dv <csv-file>",
		Short: "Plot hourly glucose levels from a Dexcom CSV export",
		Long: `dv reads a Dexcom CSV export, buckets the glucose readings by hour of the
day and renders the hourly mean and the 5th, 25th, 75th and 95th percentiles
as a smoothed line chart.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return renderExport(args[0], outPath, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "plot.png", "path of the PNG file to write")
	return cmd
}

//renderExport runs the whole pipeline: load csvPath, aggregate by hour, print
//the statistics table to stdout and write the chart to outPath. A file without
//usable readings is not an error; it prints a notice and writes no chart.
func renderExport(csvPath, outPath string, stdout io.Writer) error {
	inFile, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("failed to open input file %v : %v", csvPath, err)
	}
	defer func() {
		if err := inFile.Close(); err != nil {
			log.Printf("Failed to close %v : %v", inFile.Name(), err)
		}
	}()

	readings, skipped, err := dexcom.ReadExport(bufio.NewReader(inFile))
	if err != nil {
		return fmt.Errorf("failed to parse %v : %v", csvPath, err)
	}
	if skipped > 0 {
		log.Printf("Skipped %v rows without a usable timestamp or glucose value", skipped)
	}
	if len(readings) == 0 {
		fmt.Fprintf(stdout, "No glucose readings in %v, nothing to plot\n", csvPath)
		return nil
	}

	stats := hourly.Compute(readings)
	printStats(stdout, stats)

	outFile, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create output file %v : %v", outPath, err)
	}
	if err := chart.PlotAndStore(stats, outFile); err != nil {
		_ = outFile.Close()
		return fmt.Errorf("failed to render chart : %v", err)
	}
	if err := outFile.Close(); err != nil {
		return fmt.Errorf("failed to close output file %v : %v", outPath, err)
	}
	fmt.Fprintf(stdout, "Wrote %v\n", outPath)
	return nil
}

func printStats(w io.Writer, stats []hourly.Stats) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Hour\tMean\tP5\tP25\tP75\tP95")
	for _, s := range stats {
		fmt.Fprintf(tw, "%v\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\n", s.Hour, s.Mean, s.P5, s.P25, s.P75, s.P95)
	}
	if err := tw.Flush(); err != nil {
		log.Printf("Failed to flush statistics table : %v", err)
	}
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
