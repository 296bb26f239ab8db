package prompts

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/climate-careers/internal/types"
)

const maxTableCategories = 2

// Markdown tables break on pipes and other punctuation inside cell values,
// so cells are stripped down to word characters. Locations keep commas.
var (
	cellSanitizer     = regexp.MustCompile(`[^\w\s-]`)
	locationSanitizer = regexp.MustCompile(`[^\w\s,-]`)
)

// FormatJobsTable renders matched jobs as a pipe-delimited table for the
// model to echo back verbatim. Jobs carrying matched categories get a
// category column in place of the sector and impact columns.
func FormatJobsTable(jobs []types.MatchedJob) string {
	if len(jobs) == 0 {
		return ""
	}

	hasCategoryMatches := false
	for _, job := range jobs {
		if len(job.MatchedCategories) > 0 {
			hasCategoryMatches = true
			break
		}
	}

	var b strings.Builder
	if hasCategoryMatches {
		b.WriteString("\nPOSITION | COMPANY | LOCATION | CLIMATE CATEGORIES | LEVEL | APPLY\n")
	} else {
		b.WriteString("\nPOSITION | COMPANY | LOCATION | SECTOR | IMPACT | LEVEL | DEADLINE | APPLY\n")
	}
	b.WriteString("--- | --- | --- | --- | --- | --- | --- | ---\n")

	for _, job := range jobs {
		title := cellSanitizer.ReplaceAllString(job.Title, "")
		company := cellSanitizer.ReplaceAllString(job.Company, "")
		location := job.Location
		if location == "" {
			location = "Not specified"
		}
		location = locationSanitizer.ReplaceAllString(location, "")
		level := job.ExperienceLevel
		if level == "" {
			level = "Various"
		}
		level = cellSanitizer.ReplaceAllString(level, "")

		if hasCategoryMatches {
			categories := "Various"
			if len(job.MatchedCategories) > 0 {
				var names []string
				for _, cat := range job.MatchedCategories {
					if len(names) == maxTableCategories {
						break
					}
					segments := types.CategorySegments(cat)
					names = append(names, segments[len(segments)-1])
				}
				categories = strings.Join(names, ", ")
			}
			fmt.Fprintf(&b, "%s | %s | %s | %s | %s | %s\n",
				title, company, location, categories, level, job.URL)
		} else {
			sector := "General Climate Tech"
			impact := "N/A"
			if job.Taxonomy != nil {
				if job.Taxonomy.EmissionsCategory != "" {
					sector = job.Taxonomy.EmissionsCategory
				}
				if job.Taxonomy.ImpactScore > 0 {
					impact = fmt.Sprintf("%v%%", job.Taxonomy.ImpactScore)
				}
			}
			fmt.Fprintf(&b, "%s | %s | %s | %s | %s | %s | Rolling | %s\n",
				title, company, location, sector, impact, level, job.URL)
		}
	}

	if hasCategoryMatches {
		b.WriteString("\nCLIMATE CATEGORIES: Specific technology/solution areas within climate-tech sectors (e.g., Energy Storage, Carbon Capture, etc.)\n")
		b.WriteString("All jobs shown have been specifically tagged with categories matching your search.\n")
	} else {
		b.WriteString("\nIMPACT SCORE: Relative emissions reduction potential based on sector (Manufacturing: 46.4%, Electricity: 23.1%, Transportation: 16.3%, Food/Ag: 7.8%, Buildings: 6.4%)\n")
		b.WriteString("DEADLINE: Check job posting for specific application deadlines.\n")
	}

	return b.String()
}
