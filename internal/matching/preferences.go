package matching

import (
	"sort"
	"strings"

	"github.com/jonathan/climate-careers/internal/types"
)

// Risk appetite bonus added to the match score when a job's company stage or
// tags fit the chosen appetite. The bonus only re-ranks; it never removes jobs.
const riskAppetiteBonus = 10

// ApplyPreferences refines an already matched job list with user preferences,
// in order: sector filter, years-of-experience filter, risk-appetite bonus.
// Each filter narrows the surviving set; the bonus re-sorts by updated score.
func ApplyPreferences(jobs []types.MatchedJob, prefs *types.Preferences) []types.MatchedJob {
	if prefs == nil {
		return jobs
	}

	filtered := jobs
	if len(prefs.Sectors) > 0 {
		filtered = filterBySectors(filtered, prefs.Sectors)
	}
	if prefs.YearsExperience != "" {
		filtered = filterByYearsExperience(filtered, prefs.YearsExperience)
	}
	if prefs.RiskAppetite != "" {
		filtered = applyRiskBonus(filtered, prefs.RiskAppetite)
	}
	return filtered
}

// filterBySectors keeps jobs whose climate categories include at least one of
// the selected top-level sectors (case-insensitive).
func filterBySectors(jobs []types.MatchedJob, sectors []string) []types.MatchedJob {
	selected := make(map[string]bool, len(sectors))
	for _, sector := range sectors {
		selected[strings.ToLower(sector)] = true
	}

	var out []types.MatchedJob
	for _, job := range jobs {
		for _, cat := range job.ClimateCategories {
			if selected[strings.ToLower(types.CategorySector(cat))] {
				out = append(out, job)
				break
			}
		}
	}
	return out
}

// filterByYearsExperience keeps jobs whose experience level matches the
// fixed substring mapping for the chosen experience band. Unrecognized bands
// keep nothing.
func filterByYearsExperience(jobs []types.MatchedJob, years string) []types.MatchedJob {
	var out []types.MatchedJob
	for _, job := range jobs {
		if experienceLevelFitsBand(strings.ToLower(job.ExperienceLevel), years) {
			out = append(out, job)
		}
	}
	return out
}

func experienceLevelFitsBand(level, years string) bool {
	has := func(s string) bool { return strings.Contains(level, s) }

	switch years {
	case "0-3":
		return has("intern") || has("junior") || has("entry") || has("entry-level")
	case "3-5":
		return has("junior") || has("mid") || has("intermediate") || has("associate")
	case "5-7":
		return has("senior") && !has("director") && !has("vp") && !has("c-suite")
	case "7+":
		return has("director") || has("vp") || has("vice president") ||
			has("c-suite") || has("executive") || has("principal") ||
			has("head of") || has("chief") || (has("lead") && has("manager"))
	default:
		return false
	}
}

// applyRiskBonus adds the flat bonus to jobs whose company stage or tags fit
// the chosen appetite, then re-sorts by the updated scores.
func applyRiskBonus(jobs []types.MatchedJob, appetite string) []types.MatchedJob {
	out := make([]types.MatchedJob, len(jobs))
	copy(out, jobs)

	for i := range out {
		if companyFitsAppetite(&out[i].Job, appetite) {
			out[i].MatchScore += riskAppetiteBonus
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchScore > out[j].MatchScore
	})
	return out
}

// companyFitsAppetite checks company stage by substring and tags by exact
// element equality, both lowercased, per appetite.
func companyFitsAppetite(job *types.Job, appetite string) bool {
	stage := strings.ToLower(job.CompanyStage)
	tags := make(map[string]bool, len(job.Tags))
	for _, tag := range job.Tags {
		tags[strings.ToLower(tag)] = true
	}

	switch appetite {
	case "moonshot":
		return strings.Contains(stage, "seed") || strings.Contains(stage, "series a") ||
			tags["moonshot"] || tags["deep tech"] || tags["r&d"] || tags["lab"]
	case "essential":
		return strings.Contains(stage, "series b") || strings.Contains(stage, "series c") ||
			strings.Contains(stage, "growth") || tags["scaling"]
	case "established":
		return strings.Contains(stage, "series d+") || strings.Contains(stage, "public") ||
			strings.Contains(stage, "established") || tags["mature"]
	default:
		return false
	}
}
