package matching

import (
	"sort"
	"strings"

	"github.com/jonathan/climate-careers/internal/types"
)

// Additive score weights for resume matching.
const (
	scoreSkillMatch    = 5
	scoreInterestMatch = 3
	scoreIndustryMatch = 2
	scoreLevelMatch    = 3

	minSkillLen    = 2
	minInterestLen = 3
)

// MatchResume scores every job against a parsed resume profile and returns
// the top 20 by descending score.
//
// Per job: +5 per resume skill (longer than 2 chars) found in the job's
// search text, +3 per interest and +2 per industry (each longer than 3
// chars), and a flat +3 when the profile's engineer level is a substring of
// the job's experience level. Matching skills are recorded in scan order.
func (m *Matcher) MatchResume(profile *types.ResumeProfile) []types.MatchedJob {
	skills := lowercaseAll(profile.Skills)
	interests := lowercaseAll(profile.AreasOfInterest)
	industries := lowercaseAll(profile.IndustriesWorkedIn)

	level := profile.EngineerLevel
	if level == "" {
		level = types.LevelUnknown
	}

	var matched []types.MatchedJob
	for _, job := range m.jobs {
		jobText := job.SearchText()
		score := 0
		var matchedSkills []string

		for _, skill := range skills {
			if len(skill) > minSkillLen && strings.Contains(jobText, skill) {
				score += scoreSkillMatch
				matchedSkills = append(matchedSkills, skill)
			}
		}
		for _, interest := range interests {
			if len(interest) > minInterestLen && strings.Contains(jobText, interest) {
				score += scoreInterestMatch
			}
		}
		for _, industry := range industries {
			if len(industry) > minInterestLen && strings.Contains(jobText, industry) {
				score += scoreIndustryMatch
			}
		}

		if level != types.LevelUnknown && strings.Contains(strings.ToLower(job.ExperienceLevel), level) {
			score += scoreLevelMatch
		}

		if score > 0 {
			matched = append(matched, types.MatchedJob{
				Job:           job,
				MatchScore:    score,
				MatchedSkills: matchedSkills,
			})
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].MatchScore > matched[j].MatchScore
	})

	if len(matched) > maxResumeResults {
		matched = matched[:maxResumeResults]
	}
	return matched
}

func lowercaseAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		out = append(out, strings.ToLower(value))
	}
	return out
}
