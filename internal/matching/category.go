package matching

import (
	"sort"
	"strings"

	"github.com/jonathan/climate-careers/internal/types"
)

// Category match tier scores. Tiers are mutually exclusive per job: the first
// tier that applies wins and no further tier is evaluated.
const (
	scoreExactCategory  = 10
	scorePrefixCategory = 5
	scoreSectorCategory = 2
)

// SearchByCategory returns the jobs matching a category path, sorted by
// descending match score and truncated to the top 15.
//
// Per job, the highest applicable tier wins:
//   - 10 when any job category equals the path exactly;
//   - 5 when some job category extends the query path segment by segment
//     (a parent-path query matches deeper job categories);
//   - 2 when any job category's sector merely starts with the query's sector.
func (m *Matcher) SearchByCategory(categoryPath string) []types.MatchedJob {
	queryParts := types.CategorySegments(categoryPath)
	sector := queryParts[0]

	var matched []types.MatchedJob
	for _, job := range m.jobs {
		if len(job.ClimateCategories) == 0 {
			continue
		}

		score := 0
		if containsString(job.ClimateCategories, categoryPath) {
			score = scoreExactCategory
		} else if anyCategory(job.ClimateCategories, func(cat string) bool {
			return segmentPrefixMatch(queryParts, cat)
		}) {
			score = scorePrefixCategory
		} else if anyCategory(job.ClimateCategories, func(cat string) bool {
			return strings.HasPrefix(cat, sector)
		}) {
			score = scoreSectorCategory
		}
		if score == 0 {
			continue
		}

		matched = append(matched, types.MatchedJob{
			Job:               job,
			MatchScore:        score,
			MatchedCategories: matchedCategories(job.ClimateCategories, categoryPath, queryParts),
		})
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].MatchScore > matched[j].MatchScore
	})

	if len(matched) > maxCategoryResults {
		matched = matched[:maxCategoryResults]
	}
	return matched
}

// matchedCategories returns the subset of a job's categories satisfying the
// matched predicate: exact equality, string prefix, or segment-wise prefix.
func matchedCategories(categories []string, categoryPath string, queryParts []string) []string {
	var out []string
	for _, cat := range categories {
		if cat == categoryPath || strings.HasPrefix(cat, categoryPath) || segmentPrefixMatch(queryParts, cat) {
			out = append(out, cat)
		}
	}
	return out
}

// segmentPrefixMatch reports whether every segment of the query equals the
// corresponding segment of the category, in order. The query may be shorter.
func segmentPrefixMatch(queryParts []string, category string) bool {
	catParts := types.CategorySegments(category)
	if len(queryParts) > len(catParts) {
		return false
	}
	for i, part := range queryParts {
		if catParts[i] != part {
			return false
		}
	}
	return true
}

func containsString(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

func anyCategory(categories []string, pred func(string) bool) bool {
	for _, cat := range categories {
		if pred(cat) {
			return true
		}
	}
	return false
}
