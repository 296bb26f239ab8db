// Package resume extracts structured candidate profiles from resume files:
// PDF text extraction, LLM-based field extraction, and deterministic
// normalization of the extracted profile.
package resume

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/jonathan/climate-careers/internal/types"
)

// climateKeywords flag a role as climate-related when any of them appears in
// the role's industry, company, or title.
var climateKeywords = []string{
	"climate", "sustainability", "sustainable", "energy", "renewable", "clean tech",
	"clean energy", "environmental", "environment", "carbon", "green", "esg",
	"cleantech", "decarbon", "solar", "wind", "battery", "ev", "electric vehicle",
}

var yearPattern = regexp.MustCompile(`(\d{4})`)

// DeduplicateSkills trims and deduplicates skills case-insensitively,
// preserving the first-seen casing.
func DeduplicateSkills(skills []string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if !seen[key] {
			seen[key] = true
			out = append(out, trimmed)
		}
	}
	return out
}

// NormalizeIndustries trims and deduplicates industry names
// case-insensitively, preserving the first-seen casing.
func NormalizeIndustries(industries []string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(industries))
	for _, ind := range industries {
		trimmed := strings.TrimSpace(ind)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if !seen[key] {
			seen[key] = true
			out = append(out, trimmed)
		}
	}
	return out
}

func isClimateRelated(text string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, kw := range climateKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// ParseDurationYears resolves the duration of a role. An explicit positive
// duration wins; otherwise the first 4-digit year in each date is used, with
// an open-ended role counted up to the current year. Returns 0 when no
// duration can be derived.
func ParseDurationYears(startDate, endDate string, durationYears float64) float64 {
	if durationYears > 0 {
		return durationYears
	}

	startYear, okStart := yearFrom(startDate)
	endYear, okEnd := yearFrom(endDate)

	if okStart && okEnd {
		return math.Max(0, float64(endYear-startYear))
	}
	if okStart && endDate == "" {
		return math.Max(0, float64(time.Now().Year()-startYear))
	}
	return 0
}

func yearFrom(s string) (int, bool) {
	match := yearPattern.FindString(strings.TrimSpace(s))
	if match == "" {
		return 0, false
	}
	year := 0
	for _, r := range match {
		year = year*10 + int(r-'0')
	}
	return year, true
}

// ComputeTotalWorkforceYears sums role durations, rounded to one decimal.
func ComputeTotalWorkforceYears(work []types.WorkExperience) float64 {
	total := 0.0
	for _, job := range work {
		total += ParseDurationYears(job.StartDate, job.EndDate, job.DurationYears)
	}
	return round1(total)
}

// ComputeClimateYears sums the durations of climate-related roles, rounded to
// one decimal. A role counts when its industry, company, or title mentions a
// climate keyword.
func ComputeClimateYears(work []types.WorkExperience) float64 {
	total := 0.0
	for _, job := range work {
		if isClimateRelated(strings.TrimSpace(job.Industry)) ||
			isClimateRelated(strings.TrimSpace(job.Company)) ||
			isClimateRelated(strings.TrimSpace(job.Title)) {
			total += ParseDurationYears(job.StartDate, job.EndDate, job.DurationYears)
		}
	}
	return round1(total)
}

// EngineerLevelFromYears maps total workforce years to a seniority band.
func EngineerLevelFromYears(years float64) string {
	switch {
	case years < 0:
		return types.LevelUnknown
	case years < 2:
		return types.LevelJunior
	case years <= 5:
		return types.LevelMid
	default:
		return types.LevelSenior
	}
}

// Normalize applies post-extraction cleanup to a profile: skill and industry
// deduplication, per-role skill cleanup, and recomputed workforce totals and
// seniority. The computed fields override whatever the model returned.
func Normalize(profile *types.ResumeProfile) {
	profile.Skills = DeduplicateSkills(profile.Skills)
	profile.IndustriesWorkedIn = NormalizeIndustries(profile.IndustriesWorkedIn)

	for i := range profile.WorkExperience {
		job := &profile.WorkExperience[i]
		job.Industry = strings.TrimSpace(job.Industry)
		job.Skills = DeduplicateSkills(job.Skills)
		if job.DurationYears < 0 {
			job.DurationYears = 0
		}
	}

	totalYears := ComputeTotalWorkforceYears(profile.WorkExperience)
	climateYears := ComputeClimateYears(profile.WorkExperience)

	profile.TotalYearsInWorkforce = totalYears
	profile.TotalYearsInThisWorkforce = climateYears
	profile.EngineerLevel = EngineerLevelFromYears(totalYears)
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
