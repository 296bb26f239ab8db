// Package types provides type definitions for structured data used throughout the climate-careers system.
package types

import "strings"

// CategorySeparator joins the segments of a climate category path
// (e.g. "Electricity > Energy Storage > Chemical").
const CategorySeparator = " > "

// Job represents a single climate-tech job record. Jobs are loaded once at
// startup and are immutable for the lifetime of the process; search results
// carry derived annotations in MatchedJob instead of mutating the record.
type Job struct {
	Title           string   `json:"title"`
	Company         string   `json:"company"`
	Location        string   `json:"location,omitempty"`
	URL             string   `json:"url,omitempty"`
	ExperienceLevel string   `json:"experience_level,omitempty"`

	// ClimateCategories holds ' > '-delimited paths (Sector > Area > Technology),
	// one to three levels deep. The sector is always the first segment.
	ClimateCategories []string `json:"climate_categories,omitempty"`

	// ApplicableMajors lists academic majors this job is suitable for.
	ApplicableMajors []string `json:"applicable_majors,omitempty"`

	// SkillsKeywords and WorkAreas are legacy comma-joined free-text fields
	// kept for text matching compatibility with older datasets.
	SkillsKeywords string `json:"skills_keywords,omitempty"`
	WorkAreas      string `json:"work_areas,omitempty"`

	// CompanyStage and Tags feed the risk-appetite re-ranking bonus.
	CompanyStage string   `json:"company_stage,omitempty"`
	Tags         []string `json:"tags,omitempty"`

	// Taxonomy is attached by the offline enrichment step; absent for jobs
	// that never matched a taxonomy keyword.
	Taxonomy *JobTaxonomy `json:"taxonomy,omitempty"`
}

// JobTaxonomy holds the taxonomy annotations attached to a job by the
// enrichment tool.
type JobTaxonomy struct {
	MatchedKeywords       []string `json:"matched_keywords"`
	Sectors               []string `json:"sectors"`
	OpportunityAreas      []string `json:"opportunity_areas"`
	InnovationImperatives []string `json:"innovation_imperatives"`
	Moonshots             []string `json:"moonshots"`
	TechCategories        []string `json:"tech_categories"`
	ImpactScore           float64  `json:"impact_score"`
	EmissionsCategory     string   `json:"emissions_category,omitempty"`
}

// MatchedJob is a job plus the match annotations produced by a search.
// It embeds the job by value so the store's copy is never touched.
type MatchedJob struct {
	Job
	MatchScore        int      `json:"match_score"`
	MatchedCategories []string `json:"matched_categories,omitempty"`
	MatchedSkills     []string `json:"matched_skills,omitempty"`
	MatchedMajor      string   `json:"matched_major,omitempty"`
}

// SearchText returns the lowercased concatenation of title, skills keywords,
// work areas and company used by every substring-based matcher.
func (j *Job) SearchText() string {
	return strings.ToLower(j.Title + " " + j.SkillsKeywords + " " + j.WorkAreas + " " + j.Company)
}

// Sectors returns the distinct top-level segments of the job's climate
// category paths, in first-seen order.
func (j *Job) Sectors() []string {
	var out []string
	seen := make(map[string]bool)
	for _, cat := range j.ClimateCategories {
		sector := CategorySector(cat)
		if sector == "" || seen[sector] {
			continue
		}
		seen[sector] = true
		out = append(out, sector)
	}
	return out
}

// ImpactScore returns the taxonomy impact score, or 0 when no taxonomy is attached.
func (j *Job) ImpactScore() float64 {
	if j.Taxonomy == nil {
		return 0
	}
	return j.Taxonomy.ImpactScore
}

// CategorySector returns the first segment of a category path.
func CategorySector(path string) string {
	segments := strings.Split(path, CategorySeparator)
	return segments[0]
}

// CategorySegments splits a category path into its segments.
func CategorySegments(path string) []string {
	return strings.Split(path, CategorySeparator)
}
