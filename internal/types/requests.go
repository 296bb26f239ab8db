package types

import "github.com/go-playground/validator/v10"

// ChatRequest represents the request body for /api/chat.
type ChatRequest struct {
	Message string `json:"message" validate:"required,min=1"`
}

// CategoryJobsRequest represents the request body for /api/category-jobs.
type CategoryJobsRequest struct {
	Category string `json:"category" validate:"required,min=1"`
}

// MajorJobsRequest represents the request body for /api/major-jobs.
type MajorJobsRequest struct {
	Major string `json:"major" validate:"required,min=1"`
}

// Preferences holds the post-match refinement preferences supplied by the user.
// Field names follow the client wire format.
type Preferences struct {
	Sectors         []string `json:"sectors,omitempty"`
	RiskAppetite    string   `json:"riskAppetite,omitempty" validate:"omitempty,oneof=moonshot essential established"`
	YearsExperience string   `json:"yearsExperience,omitempty" validate:"omitempty,oneof=0-3 3-5 5-7 7+"`
}

// MatchPreferencesRequest represents the request body for /api/match-jobs-with-preferences.
type MatchPreferencesRequest struct {
	Profile     *ResumeProfile `json:"profile" validate:"required"`
	Preferences *Preferences   `json:"preferences"`
}

// Validate validates the ChatRequest using the validator.
func (r *ChatRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the CategoryJobsRequest using the validator.
func (r *CategoryJobsRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the MajorJobsRequest using the validator.
func (r *MajorJobsRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the MatchPreferencesRequest using the validator.
func (r *MatchPreferencesRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
