package prompts

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/climate-careers/internal/taxonomy"
	"github.com/jonathan/climate-careers/internal/types"
)

const (
	maxCategoryDetails  = 5
	maxPromptImperative = 5
	maxPromptMoonshots  = 3
	maxRelatedAreas     = 3
	maxCategoryKeywords = 8
)

var categoryPhrase = regexp.MustCompile(`(?i)show me jobs in|jobs in|find jobs in|list jobs in`)

// BuildPrompt assembles the full counselor prompt: the static knowledge base,
// per-query taxonomy context, an optional job table, and the response-format
// contract that matches the query type.
func BuildPrompt(ctx QueryContext, userQuery string, jobs []types.MatchedJob, isJobQuery bool, categoryContext string) string {
	tableNote := ""
	adviceRule := MustGet("climate.json", "advice_rule")
	if isJobQuery {
		tableNote = "(excluding job tables)"
		adviceRule = ""
	}

	var b strings.Builder
	b.WriteString(Format(MustGet("climate.json", "system_core"), map[string]string{
		"TableNote":  tableNote,
		"AdviceRule": adviceRule,
	}))

	if categoryContext != "" {
		b.WriteString(categoryContext)
		b.WriteString(MustGet("climate.json", "category_note"))
	}

	if len(ctx.Sectors) > 0 {
		b.WriteString("\n**Relevant Context for this Query:**\n\n")
		for _, sector := range ctx.Sectors {
			fmt.Fprintf(&b, "**%s Sector:**\n%s\n\n", sector.Name, sector.Description)
		}
	}

	if len(ctx.Imperatives) > 0 {
		b.WriteString("**Relevant Innovation Imperatives:**\n")
		for _, imp := range ctx.Imperatives {
			fmt.Fprintf(&b, "- %s\n", imp)
		}
		b.WriteString("\n")
	}

	if len(ctx.Moonshots) > 0 {
		b.WriteString("**Relevant Moonshot Technologies:**\n")
		for _, ms := range ctx.Moonshots {
			fmt.Fprintf(&b, "- %s\n", ms)
		}
		b.WriteString("\n")
	}

	if len(jobs) > 0 {
		hasCategoryMatches := false
		for _, job := range jobs {
			if len(job.MatchedCategories) > 0 {
				hasCategoryMatches = true
				break
			}
		}

		if hasCategoryMatches {
			subject := strings.TrimSpace(categoryPhrase.ReplaceAllString(userQuery, ""))
			b.WriteString("\n**CATEGORY-SPECIFIC JOB MATCHES:**\n")
			fmt.Fprintf(&b, "These jobs were matched based on their specific climate category tags. Each job below is directly tagged with categories matching %q.\n\n", subject)
		} else {
			b.WriteString("\nRELEVANT CLIMATE-TECH JOB OPPORTUNITIES:\n")
		}

		b.WriteString(FormatJobsTable(jobs))

		if hasCategoryMatches {
			b.WriteString("\n**CATEGORY MATCH DETAILS:**\n")
			for i, job := range jobs {
				if i == maxCategoryDetails {
					break
				}
				if len(job.MatchedCategories) > 0 {
					fmt.Fprintf(&b, "- %s at %s: %s\n", job.Title, job.Company, strings.Join(job.MatchedCategories, ", "))
				}
			}
			b.WriteString("\n")
		}

		writeJobTaxonomySummary(&b, jobs)
	}

	fmt.Fprintf(&b, "\nUser Question: %s\n\n", userQuery)

	if len(jobs) > 0 {
		b.WriteString(MustGet("climate.json", "format_jobs"))
	} else {
		b.WriteString(MustGet("climate.json", "format_advice"))
	}

	return b.String()
}

// writeJobTaxonomySummary lists the imperatives and moonshots attached to the
// matched jobs so the model can connect roles to near-term and breakthrough
// climate work.
func writeJobTaxonomySummary(b *strings.Builder, jobs []types.MatchedJob) {
	seenImp := make(map[string]bool)
	seenMs := make(map[string]bool)
	var imperatives, moonshots []string

	for _, job := range jobs {
		if job.Taxonomy == nil {
			continue
		}
		for _, imp := range job.Taxonomy.InnovationImperatives {
			if !seenImp[imp] {
				seenImp[imp] = true
				imperatives = append(imperatives, imp)
			}
		}
		for _, ms := range job.Taxonomy.Moonshots {
			if !seenMs[ms] {
				seenMs[ms] = true
				moonshots = append(moonshots, ms)
			}
		}
	}

	if len(imperatives) > 0 {
		b.WriteString("\nINNOVATION IMPERATIVES (Critical Near-Term Needs):\n")
		for i, imp := range imperatives {
			if i == maxPromptImperative {
				break
			}
			fmt.Fprintf(b, "- %s\n", imp)
		}
	}

	if len(moonshots) > 0 {
		b.WriteString("\nRELATED MOONSHOTS (High-Risk, High-Reward Technologies):\n")
		for i, ms := range moonshots {
			if i == maxPromptMoonshots {
				break
			}
			fmt.Fprintf(b, "- %s\n", ms)
		}
	}
}

// FormatCategoryContext renders detected taxonomy categories, with job counts
// and sibling areas, as a prompt section.
func FormatCategoryContext(matches []taxonomy.CategoryMatch, idx *taxonomy.Index) string {
	if len(matches) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n**DETECTED CLIMATE CATEGORIES:**\n")

	for _, match := range matches {
		segments := types.CategorySegments(match.Path)
		sector := segments[0]

		fmt.Fprintf(&b, "\n\U0001F4CD **%s**\n", match.Path)
		fmt.Fprintf(&b, "   - Sector: %s\n", sector)
		if len(segments) > 1 {
			fmt.Fprintf(&b, "   - Focus Area: %s\n", segments[1])
		}
		if len(segments) > 2 {
			fmt.Fprintf(&b, "   - Technology: %s\n", segments[2])
		}
		fmt.Fprintf(&b, "   - Available Jobs: %d\n", match.Info.JobCount)

		keywords := match.Info.Keywords
		if len(keywords) > maxCategoryKeywords {
			keywords = keywords[:maxCategoryKeywords]
		}
		fmt.Fprintf(&b, "   - Related Keywords: %s\n", strings.Join(keywords, ", "))

		related := idx.RelatedCategories(match.Path)
		if len(related) > 0 {
			fmt.Fprintf(&b, "   - Related Areas in %s:\n", sector)
			for i, rel := range related {
				if i == maxRelatedAreas {
					break
				}
				relSegments := types.CategorySegments(rel.Path)
				fmt.Fprintf(&b, "     \u2022 %s (%d jobs)\n",
					strings.Join(relSegments[1:], types.CategorySeparator), rel.JobCount)
			}
		}
	}

	return b.String()
}
