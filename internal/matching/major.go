package matching

import (
	"sort"
	"strings"

	"github.com/jonathan/climate-careers/internal/types"
)

// experienceLevelRank orders known experience levels from most junior to most
// senior. Unrecognized labels sort last.
var experienceLevelRank = map[string]int{
	"Internship":     1,
	"Entry-Level":    2,
	"Associate":      3,
	"Senior":         4,
	"Lead/Principal": 5,
	"Executive":      6,
}

const unknownLevelRank = 999

// LevelRank returns the sort rank for an experience-level label.
func LevelRank(level string) int {
	if rank, ok := experienceLevelRank[level]; ok {
		return rank
	}
	return unknownLevelRank
}

// SearchByMajor returns every job listing the given academic major
// (case-insensitive equality against applicable_majors), sorted by experience
// level ascending then company name. There is no result cap: users browsing
// by major expect to see all opportunities.
func (m *Matcher) SearchByMajor(major string) []types.MatchedJob {
	var matched []types.MatchedJob
	for _, job := range m.jobs {
		if len(job.ApplicableMajors) == 0 {
			continue
		}
		for _, applicable := range job.ApplicableMajors {
			if strings.EqualFold(applicable, major) {
				matched = append(matched, types.MatchedJob{Job: job, MatchedMajor: major})
				break
			}
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		rankI, rankJ := LevelRank(matched[i].ExperienceLevel), LevelRank(matched[j].ExperienceLevel)
		if rankI != rankJ {
			return rankI < rankJ
		}
		return matched[i].Company < matched[j].Company
	})

	return matched
}
