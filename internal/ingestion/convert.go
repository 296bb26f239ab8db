// Package ingestion converts raw job exports into the dataset format the
// store loads. The source is a CSV export with comma-separated list columns;
// the output is the jobs JSON file with derived category paths and legacy
// compatibility fields.
package ingestion

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jonathan/climate-careers/internal/store"
	"github.com/jonathan/climate-careers/internal/types"
)

// maxMetadataLocations caps the location sample stored in dataset metadata.
const maxMetadataLocations = 50

// listColumns are CSV columns holding comma-separated values.
var listColumns = map[string]bool{
	"climate_sectors":                true,
	"climate_opportunity_areas":      true,
	"climate_innovation_imperatives": true,
	"applicable_majors":              true,
	"skills":                         true,
}

// ConvertCSV reads a jobs CSV export and builds the dataset. Rows with a
// column-count mismatch are skipped and counted, not fatal.
func ConvertCSV(r io.Reader, source string) (*store.Dataset, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, 0, fmt.Errorf("CSV has no data rows")
	}

	headers := records[0]
	var jobs []types.Job
	skipped := 0

	for _, row := range records[1:] {
		if len(row) != len(headers) {
			skipped++
			continue
		}

		fields := make(map[string]string, len(headers))
		lists := make(map[string][]string)
		for i, header := range headers {
			value := strings.TrimSpace(row[i])
			if value == "null" || value == "None" {
				value = ""
			}
			if listColumns[header] {
				lists[header] = splitList(value)
			} else {
				fields[header] = value
			}
		}

		job := types.Job{
			Title:            fields["title"],
			Company:          fields["company"],
			Location:         fields["location"],
			URL:              fields["url"],
			ExperienceLevel:  fields["experience_level"],
			CompanyStage:     fields["company_stage"],
			ApplicableMajors: lists["applicable_majors"],
			Tags:             splitList(fields["tags"]),
		}

		// Category paths are the cross product of sectors and opportunity
		// areas; a sector with no areas stands alone.
		sectors := lists["climate_sectors"]
		areas := lists["climate_opportunity_areas"]
		for _, sector := range sectors {
			if len(areas) == 0 {
				job.ClimateCategories = append(job.ClimateCategories, sector)
				continue
			}
			for _, area := range areas {
				job.ClimateCategories = append(job.ClimateCategories, sector+types.CategorySeparator+area)
			}
		}

		// Legacy text fields kept for search compatibility.
		job.SkillsKeywords = strings.Join(lists["skills"], ", ")
		job.WorkAreas = strings.Join(areas, ", ")

		jobs = append(jobs, job)
	}

	if len(jobs) == 0 {
		return nil, skipped, fmt.Errorf("no valid job rows in CSV")
	}

	ds := &store.Dataset{
		Jobs: jobs,
		Metadata: store.Metadata{
			TotalJobs:   len(jobs),
			Source:      source,
			ConvertedAt: time.Now().UTC().Format(time.RFC3339),
			Sectors:     collectSectors(jobs),
			Locations:   collectLocations(jobs, maxMetadataLocations),
		},
	}
	return ds, skipped, nil
}

// ConvertCSVFile converts a CSV export on disk.
func ConvertCSVFile(path string) (*store.Dataset, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open CSV %s: %w", path, err)
	}
	defer f.Close()
	return ConvertCSV(f, strings.TrimPrefix(path, "./"))
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func collectSectors(jobs []types.Job) []string {
	seen := make(map[string]bool)
	var out []string
	for _, job := range jobs {
		for _, cat := range job.ClimateCategories {
			sector := types.CategorySector(cat)
			if !seen[sector] {
				seen[sector] = true
				out = append(out, sector)
			}
		}
	}
	return out
}

func collectLocations(jobs []types.Job, limit int) []string {
	seen := make(map[string]bool)
	var out []string
	for _, job := range jobs {
		if job.Location == "" || seen[job.Location] {
			continue
		}
		seen[job.Location] = true
		out = append(out, job.Location)
		if len(out) == limit {
			break
		}
	}
	return out
}
