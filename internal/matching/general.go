package matching

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/climate-careers/internal/types"
)

// Additive score weights for the general keyword matcher.
const (
	scoreSectorHit      = 3
	scoreImperativeHit  = 2
	scoreAreaHit        = 2
	scoreKeywordHit     = 1
	scoreTraditionalHit = 1
)

// categoryRequestPattern captures the category text of phrasings like
// "show me jobs in Electricity > Energy Storage".
var categoryRequestPattern = regexp.MustCompile(`(?i)(?:show me jobs in|jobs in|find jobs in|list jobs in)\s+(.+)`)

// SearchGeneral searches jobs by free-text query. Queries phrased as a
// category request are first delegated to SearchByCategory with the captured
// category text; general matching only runs when that yields nothing.
//
// Scoring is additive across independent signals: taxonomy sectors (+3),
// innovation imperatives (+2), opportunity areas (+2) and matched keywords
// (+1) found as substrings of the query, plus at most one point for a
// traditional keyword hit (a query token longer than 3 characters appearing
// in the job's search text, skills keywords or work areas). The ranking key
// is matchScore*10 + impact score, descending, with ties left in job store
// order. Returns the top 10.
func (m *Matcher) SearchGeneral(query string) []types.MatchedJob {
	if captured := categoryRequestPattern.FindStringSubmatch(query); captured != nil {
		categoryPath := strings.TrimSpace(captured[1])
		if jobs := m.SearchByCategory(categoryPath); len(jobs) > 0 {
			return jobs
		}
	}

	lowerQuery := strings.ToLower(query)
	queryTokens := tokensLongerThan(lowerQuery, 3)

	var matched []types.MatchedJob
	for _, job := range m.jobs {
		score := 0

		if tax := job.Taxonomy; tax != nil {
			if anyInQuery(tax.Sectors, lowerQuery) {
				score += scoreSectorHit
			}
			if anyInQuery(tax.InnovationImperatives, lowerQuery) {
				score += scoreImperativeHit
			}
			if anyInQuery(tax.OpportunityAreas, lowerQuery) {
				score += scoreAreaHit
			}
			if anyLowercaseInQuery(tax.MatchedKeywords, lowerQuery) {
				score += scoreKeywordHit
			}
		}

		if hasTraditionalKeywordMatch(&job, queryTokens) {
			score += scoreTraditionalHit
		}

		if score > 0 {
			matched = append(matched, types.MatchedJob{Job: job, MatchScore: score})
		}
	}

	// Stable sort keeps ties in original job store order.
	sort.SliceStable(matched, func(i, j int) bool {
		return rankKey(matched[i]) > rankKey(matched[j])
	})

	if len(matched) > maxGeneralResults {
		matched = matched[:maxGeneralResults]
	}
	return matched
}

// hasTraditionalKeywordMatch reports whether any query token appears in the
// job's combined search text, skills keywords, or work areas. The three
// sub-conditions overlap; the caller awards the bonus at most once.
func hasTraditionalKeywordMatch(job *types.Job, tokens []string) bool {
	jobText := job.SearchText()
	skills := strings.ToLower(job.SkillsKeywords)
	areas := strings.ToLower(job.WorkAreas)

	for _, token := range tokens {
		if strings.Contains(jobText, token) ||
			(skills != "" && strings.Contains(skills, token)) ||
			(areas != "" && strings.Contains(areas, token)) {
			return true
		}
	}
	return false
}

// rankKey combines match score and taxonomy impact into the final ranking key.
func rankKey(job types.MatchedJob) float64 {
	return float64(job.MatchScore)*10 + job.ImpactScore()
}

func tokensLongerThan(lowerQuery string, minLen int) []string {
	var tokens []string
	for _, token := range strings.Fields(lowerQuery) {
		if len(token) > minLen {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

func anyInQuery(values []string, lowerQuery string) bool {
	for _, value := range values {
		if strings.Contains(lowerQuery, strings.ToLower(value)) {
			return true
		}
	}
	return false
}

// anyLowercaseInQuery is for values already stored lowercase (matched keywords).
func anyLowercaseInQuery(values []string, lowerQuery string) bool {
	for _, value := range values {
		if strings.Contains(lowerQuery, value) {
			return true
		}
	}
	return false
}
