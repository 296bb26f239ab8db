// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/climate-careers/internal/store"
	"github.com/jonathan/climate-careers/internal/taxonomy"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintDatasetSummary outputs a human-readable summary of a converted dataset.
func (p *Printer) PrintDatasetSummary(ds *store.Dataset) {
	if ds == nil || len(ds.Jobs) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Jobs:     %d\n", ds.Metadata.TotalJobs))
	if ds.Metadata.Source != "" {
		sb.WriteString(fmt.Sprintf("Source:   %s\n", ds.Metadata.Source))
	}
	sb.WriteString("\n")

	if len(ds.Metadata.Sectors) > 0 {
		sb.WriteString("Sectors:\n")
		count := min(len(ds.Metadata.Sectors), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", ds.Metadata.Sectors[i]))
		}
		if len(ds.Metadata.Sectors) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(ds.Metadata.Sectors)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(ds.Metadata.Locations) > 0 {
		sb.WriteString("Locations:\n")
		count := min(len(ds.Metadata.Locations), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", ds.Metadata.Locations[i]))
		}
		if len(ds.Metadata.Locations) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(ds.Metadata.Locations)-3))
		}
	}

	p.printBox("CONVERTED DATASET", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSectorImpacts outputs the emissions-derived impact scores per sector,
// highest share first.
func (p *Printer) PrintSectorImpacts(impacts map[string]taxonomy.SectorImpact) {
	if len(impacts) == 0 {
		return
	}

	names := make([]string, 0, len(impacts))
	for name := range impacts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if impacts[names[i]].ImpactScore != impacts[names[j]].ImpactScore {
			return impacts[names[i]].ImpactScore > impacts[names[j]].ImpactScore
		}
		return names[i] < names[j]
	})

	var sb strings.Builder
	for i, name := range names {
		impact := impacts[name]
		label := name
		if len(label) > 30 {
			label = label[:27] + "..."
		}
		sb.WriteString(fmt.Sprintf("%-30s %5.1f%% (%.1f Gt)", label, impact.ImpactScore, impact.EmissionsGt))
		if i < len(names)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("SECTOR IMPACT SCORES", sb.String())
}

// PrintEnrichmentSummary outputs taxonomy coverage after job enrichment.
func (p *Printer) PrintEnrichmentSummary(enriched, total, keywords int) {
	if total == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Jobs enriched:  %d of %d (%.1f%%)\n", enriched, total, float64(enriched)/float64(total)*100))
	sb.WriteString(fmt.Sprintf("Index keywords: %d", keywords))

	p.printBox("TAXONOMY ENRICHMENT", sb.String())
}
