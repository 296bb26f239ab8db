package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/climate-careers/internal/observability"
	"github.com/jonathan/climate-careers/internal/store"
	"github.com/jonathan/climate-careers/internal/taxonomy"
	"github.com/spf13/cobra"
)

var (
	enrichTaxonomyFile  string
	enrichChangelogFile string
	enrichJobsFile      string
	enrichJobsOutput    string
	enrichIndexOutput   string
	enrichVerbose       bool
)

var enrichTaxonomyCmd = &cobra.Command{
	Use:   "enrich-taxonomy",
	Short: "Build the keyword index and enrich jobs with taxonomy data",
	Long: `Read the climate taxonomy source, build the keyword index, score sector
emissions impact, and annotate every job in the dataset with matched taxonomy
nodes and an impact score. Optionally cross-checks the taxonomy against the
structural changelog workbook.`,
	RunE: runEnrichTaxonomy,
}

func init() {
	enrichTaxonomyCmd.Flags().StringVar(&enrichTaxonomyFile, "taxonomy", "", "Path to the taxonomy source JSON (required)")
	enrichTaxonomyCmd.Flags().StringVar(&enrichChangelogFile, "changelog", "", "Path to the structural changelog xlsx (optional)")
	enrichTaxonomyCmd.Flags().StringVar(&enrichJobsFile, "jobs", "", "Path to the jobs dataset JSON (required)")
	enrichTaxonomyCmd.Flags().StringVar(&enrichJobsOutput, "jobs-output", "data/jobs_with_taxonomy.json", "Path to write the enriched jobs dataset")
	enrichTaxonomyCmd.Flags().StringVar(&enrichIndexOutput, "index-output", "data/keyword_index.json", "Path to write the keyword index")
	enrichTaxonomyCmd.Flags().BoolVarP(&enrichVerbose, "verbose", "v", false, "Print impact and coverage summaries")
	_ = enrichTaxonomyCmd.MarkFlagRequired("taxonomy")
	_ = enrichTaxonomyCmd.MarkFlagRequired("jobs")
	rootCmd.AddCommand(enrichTaxonomyCmd)
}

func runEnrichTaxonomy(_ *cobra.Command, _ []string) error {
	sectors, err := taxonomy.LoadSectors(enrichTaxonomyFile)
	if err != nil {
		return err
	}
	fmt.Printf("Loaded %d sectors from %s\n", len(sectors), enrichTaxonomyFile)

	if enrichChangelogFile != "" {
		changelog, err := taxonomy.ReadChangelog(enrichChangelogFile)
		if err != nil {
			return err
		}
		fmt.Printf("Changelog: %d imperatives, %d moonshots, %d tech categories\n",
			len(changelog.Imperatives), len(changelog.Moonshots), len(changelog.TechCategories))
	}

	data, err := os.ReadFile(enrichJobsFile)
	if err != nil {
		return fmt.Errorf("failed to read jobs dataset %s: %w", enrichJobsFile, err)
	}
	var ds store.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return fmt.Errorf("failed to parse jobs dataset: %w", err)
	}

	index := taxonomy.BuildKeywordIndex(sectors)
	impacts := taxonomy.SectorImpactScores(sectors)
	enriched := taxonomy.EnrichJobs(ds.Jobs, index, impacts)

	total := len(ds.Jobs)
	fmt.Printf("Enriched %d of %d jobs (%.1f%%) with %d keywords\n",
		enriched, total, float64(enriched)/float64(total)*100, len(index))

	if enrichVerbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintSectorImpacts(impacts)
		printer.PrintEnrichmentSummary(enriched, total, len(index))
	}

	if err := writeJSON(enrichIndexOutput, index); err != nil {
		return err
	}
	if err := writeJSON(enrichJobsOutput, &ds); err != nil {
		return err
	}

	fmt.Printf("Wrote %s and %s\n", enrichIndexOutput, enrichJobsOutput)
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
