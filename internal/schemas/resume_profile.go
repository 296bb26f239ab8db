package schemas

import _ "embed"

//go:embed resume_profile.schema.json
var resumeProfileSchema string

// ValidateResumeProfile checks extracted resume JSON against the profile
// schema before it is decoded into a struct. Model output that drifts from
// the contract fails here with field-level errors instead of producing a
// half-populated profile.
func ValidateResumeProfile(jsonContent string) error {
	return ValidateJSONString(resumeProfileSchema, jsonContent)
}
