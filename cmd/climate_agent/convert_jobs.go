package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/climate-careers/internal/ingestion"
	"github.com/jonathan/climate-careers/internal/observability"
	"github.com/spf13/cobra"
)

var (
	convertInput   string
	convertOutput  string
	convertVerbose bool
)

var convertJobsCmd = &cobra.Command{
	Use:   "convert-jobs",
	Short: "Convert a jobs CSV export into the dataset JSON",
	Long:  `Read a raw jobs CSV export, derive category paths and compatibility fields, and write the jobs dataset the server loads.`,
	RunE:  runConvertJobs,
}

func init() {
	convertJobsCmd.Flags().StringVar(&convertInput, "input", "", "Path to the jobs CSV export (required)")
	convertJobsCmd.Flags().StringVar(&convertOutput, "output", "data/jobs.json", "Path to write the dataset JSON")
	convertJobsCmd.Flags().BoolVarP(&convertVerbose, "verbose", "v", false, "Print a dataset summary after converting")
	_ = convertJobsCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(convertJobsCmd)
}

func runConvertJobs(_ *cobra.Command, _ []string) error {
	ds, skipped, err := ingestion.ConvertCSVFile(convertInput)
	if err != nil {
		return err
	}
	if skipped > 0 {
		fmt.Fprintf(os.Stderr, "Warning: skipped %d malformed rows\n", skipped)
	}
	if convertVerbose {
		observability.NewPrinter(os.Stdout).PrintDatasetSummary(ds)
	}

	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}
	if err := os.WriteFile(convertOutput, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", convertOutput, err)
	}

	fmt.Printf("Converted %d jobs (%d sectors) to %s\n",
		ds.Metadata.TotalJobs, len(ds.Metadata.Sectors), convertOutput)
	return nil
}
