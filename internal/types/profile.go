package types

// EngineerLevel values inferred from total workforce years.
const (
	LevelJunior  = "junior"
	LevelMid     = "mid"
	LevelSenior  = "senior"
	LevelUnknown = "unknown"
)

// WorkExperience is a single role extracted from a resume.
type WorkExperience struct {
	Title         string   `json:"title"`
	Company       string   `json:"company"`
	Industry      string   `json:"industry"`
	StartDate     string   `json:"start_date"`
	EndDate       string   `json:"end_date"`
	DurationYears float64  `json:"duration_years"`
	Skills        []string `json:"skills"`
}

// ResumeProfile is the structured profile extracted from an uploaded resume.
// It is created per request by the LLM extraction step and never persisted.
type ResumeProfile struct {
	Name  string `json:"name"`
	Email string `json:"email"`

	// Skills and IndustriesWorkedIn are deduplicated case-insensitively with
	// the first-seen casing preserved.
	Skills             []string `json:"skills"`
	AreasOfInterest    []string `json:"areas_of_interest"`
	IndustriesWorkedIn []string `json:"industries_worked_in"`

	TotalYearsInWorkforce     float64 `json:"total_years_in_workforce"`
	TotalYearsInThisWorkforce float64 `json:"total_years_in_this_workforce"`

	IsStudent                 bool   `json:"is_student"`
	IsPivotingIntoClimateTech bool   `json:"is_pivoting_into_climate_tech"`
	EngineerLevel             string `json:"engineer_level"`

	WorkExperience []WorkExperience `json:"work_experience"`
}
