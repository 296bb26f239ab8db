package taxonomy

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/jonathan/climate-careers/internal/types"
)

// SectorImpact holds the emissions-derived impact figures for one sector.
type SectorImpact struct {
	EmissionsGt      float64 `json:"emissions_gt"`
	ImpactScore      float64 `json:"impact_score"`
	OpportunityAreas int     `json:"opportunity_areas"`
}

// ParseEmissionsGt parses an "N Gt" emissions figure; malformed values count as 0.
func ParseEmissionsGt(value string) float64 {
	trimmed := strings.TrimSuffix(strings.TrimSpace(value), " Gt")
	gt, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0
	}
	return gt
}

// SectorImpactScores computes each sector's impact score as its share of the
// total 2050 emissions at stake, as a percentage rounded to one decimal.
func SectorImpactScores(sectors []types.TaxonomySector) map[string]SectorImpact {
	total := 0.0
	for _, sector := range sectors {
		total += ParseEmissionsGt(sector.EmissionsAtStake2050)
	}

	scores := make(map[string]SectorImpact, len(sectors))
	for _, sector := range sectors {
		gt := ParseEmissionsGt(sector.EmissionsAtStake2050)
		score := 0.0
		if gt > 0 && total > 0 {
			score = round1(gt / total * 100)
		}
		scores[sector.SectorName] = SectorImpact{
			EmissionsGt:      gt,
			ImpactScore:      score,
			OpportunityAreas: len(sector.OpportunityAreas),
		}
	}
	return scores
}

// BuildKeywordIndex flattens the taxonomy source into the keyword map.
// A keyword keeps the type of the first node that introduced it; sectors,
// areas and node names accumulate without duplicates.
func BuildKeywordIndex(sectors []types.TaxonomySector) map[string]types.KeywordEntry {
	index := make(map[string]types.KeywordEntry)

	entryFor := func(keyword, keywordType, readiness string) types.KeywordEntry {
		key := strings.ToLower(keyword)
		if entry, ok := index[key]; ok {
			return entry
		}
		return types.KeywordEntry{Type: keywordType, Readiness: readiness}
	}

	for _, sector := range sectors {
		for _, area := range sector.OpportunityAreas {
			for _, imperative := range area.InnovationImperatives {
				for _, keyword := range imperative.Keywords {
					key := strings.ToLower(keyword)
					entry := entryFor(keyword, types.KeywordTypeInnovationImperative, "")
					entry.Sectors = appendUnique(entry.Sectors, sector.SectorName)
					entry.OpportunityAreas = appendUnique(entry.OpportunityAreas, area.AreaName)
					entry.Imperatives = appendUnique(entry.Imperatives, imperative.SubjectName)
					index[key] = entry
				}
			}
			for _, moonshot := range area.Moonshots {
				for _, keyword := range moonshot.Keywords {
					key := strings.ToLower(keyword)
					entry := entryFor(keyword, types.KeywordTypeMoonshot, "")
					entry.Sectors = appendUnique(entry.Sectors, sector.SectorName)
					entry.OpportunityAreas = appendUnique(entry.OpportunityAreas, area.AreaName)
					entry.Moonshots = appendUnique(entry.Moonshots, moonshot.Name)
					index[key] = entry
				}
			}
			for _, tech := range area.TechCategories {
				for _, keyword := range tech.Keywords {
					key := strings.ToLower(keyword)
					entry := entryFor(keyword, types.KeywordTypeTechCategory, tech.Readiness)
					entry.Sectors = appendUnique(entry.Sectors, sector.SectorName)
					entry.TechCategories = appendUnique(entry.TechCategories, tech.ClusterName)
					index[key] = entry
				}
			}
		}
	}
	return index
}

// EnrichJobs attaches taxonomy annotations to each job by substring-matching
// every indexed keyword against the job's search text. The impact score is
// the mean impact of the matched sectors, boosted by 1.2x when innovation
// imperatives matched and 1.1x when tech categories matched, rounded to one
// decimal at each step. Returns the number of jobs that matched a sector.
func EnrichJobs(jobs []types.Job, index map[string]types.KeywordEntry, impacts map[string]SectorImpact) int {
	enriched := 0

	// Scan keywords in sorted order so the accumulated annotations (and the
	// emissions category, the first matched sector) come out identical run
	// to run; map iteration order would reshuffle the output artifacts.
	sortedKeywords := make([]string, 0, len(index))
	for keyword := range index {
		sortedKeywords = append(sortedKeywords, keyword)
	}
	sort.Strings(sortedKeywords)

	for i := range jobs {
		jobText := jobs[i].SearchText()

		var keywords, sectors, areas, imperatives, moonshots, techCategories []string
		for _, keyword := range sortedKeywords {
			entry := index[keyword]
			if !strings.Contains(jobText, keyword) {
				continue
			}
			keywords = append(keywords, keyword)
			for _, s := range entry.Sectors {
				sectors = appendUnique(sectors, s)
			}
			for _, a := range entry.OpportunityAreas {
				areas = appendUnique(areas, a)
			}
			for _, imp := range entry.Imperatives {
				imperatives = appendUnique(imperatives, imp)
			}
			for _, m := range entry.Moonshots {
				moonshots = appendUnique(moonshots, m)
			}
			for _, tc := range entry.TechCategories {
				techCategories = appendUnique(techCategories, tc)
			}
		}

		impactScore := 0.0
		if len(sectors) > 0 {
			for _, sector := range sectors {
				impactScore += impacts[sector].ImpactScore
			}
			impactScore = round1(impactScore / float64(len(sectors)))
		}
		if len(imperatives) > 0 {
			impactScore = round1(impactScore * 1.2)
		}
		if len(techCategories) > 0 {
			impactScore = round1(impactScore * 1.1)
		}

		tax := &types.JobTaxonomy{
			MatchedKeywords:       keywords,
			Sectors:               sectors,
			OpportunityAreas:      areas,
			InnovationImperatives: imperatives,
			Moonshots:             moonshots,
			TechCategories:        techCategories,
			ImpactScore:           impactScore,
		}
		if len(sectors) > 0 {
			tax.EmissionsCategory = sectors[0]
			enriched++
		}
		jobs[i].Taxonomy = tax
	}

	return enriched
}

func appendUnique(list []string, value string) []string {
	for _, existing := range list {
		if existing == value {
			return list
		}
	}
	return append(list, value)
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
