package types

// Keyword taxonomy entry types.
const (
	KeywordTypeInnovationImperative = "innovation_imperative"
	KeywordTypeMoonshot             = "moonshot"
	KeywordTypeTechCategory         = "tech_category"
)

// KeywordEntry maps a lowercase keyword to the taxonomy nodes it denotes.
// The keyword index is built once (offline or at startup) and read-only afterward.
type KeywordEntry struct {
	Sectors          []string `json:"sectors"`
	OpportunityAreas []string `json:"opportunity_areas"`
	Imperatives      []string `json:"imperatives"`
	Moonshots        []string `json:"moonshots"`
	TechCategories   []string `json:"tech_categories"`
	Type             string   `json:"type"`
	Readiness        string   `json:"readiness,omitempty"`
}

// CategoryInfo describes one category path in the category taxonomy file:
// the keywords that denote it and how many jobs carry it.
type CategoryInfo struct {
	Keywords []string `json:"keywords"`
	JobCount int      `json:"jobCount"`
}

// Taxonomy source structures, mirroring the climate taxonomy reference data
// (sector > opportunity area > imperatives/moonshots/tech categories).

// TaxonomySector is one sector of the climate taxonomy source.
type TaxonomySector struct {
	SectorName           string                `json:"sector_name"`
	EmissionsAtStake2050 string                `json:"emissions_at_stake_2050,omitempty"`
	AreaDescription      string                `json:"area_description,omitempty"`
	OpportunityAreas     []TaxonomyOpportunity `json:"opportunity_areas,omitempty"`
}

// TaxonomyOpportunity is one opportunity area within a sector.
type TaxonomyOpportunity struct {
	AreaName              string               `json:"area_name"`
	AreaDescription       string               `json:"area_description,omitempty"`
	InnovationImperatives []TaxonomyImperative `json:"innovation_imperatives,omitempty"`
	Moonshots             []TaxonomyMoonshot   `json:"moonshots,omitempty"`
	TechCategories        []TaxonomyTechGroup  `json:"tech_categories,omitempty"`
	ViableSolutions       []string             `json:"viable_solutions,omitempty"`
}

// TaxonomyImperative is a near-term innovation imperative with its keywords.
type TaxonomyImperative struct {
	SubjectName      string   `json:"subject_name"`
	Description      string   `json:"description,omitempty"`
	Keywords         []string `json:"keywords,omitempty"`
	RelatedResources []string `json:"related_resources,omitempty"`
}

// TaxonomyMoonshot is a breakthrough technology bet with its keywords.
type TaxonomyMoonshot struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
}

// TaxonomyTechGroup is an established technology cluster with its keywords.
type TaxonomyTechGroup struct {
	ClusterName string   `json:"cluster_name"`
	Readiness   string   `json:"readiness,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
}
