// Package taxonomy builds and serves the climate keyword taxonomy: the
// mapping from lowercase keywords to the sectors, opportunity areas,
// innovation imperatives, moonshots and tech categories they denote, plus the
// per-category-path keyword lists used for category detection in chat.
package taxonomy

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/jonathan/climate-careers/internal/types"
)

// Index is the read-only keyword/category taxonomy built once at startup.
type Index struct {
	// Keywords maps a lowercase keyword to the taxonomy nodes it denotes.
	Keywords map[string]types.KeywordEntry `json:"keyword_taxonomy"`
	// Categories maps a full category path to its keywords and job count.
	Categories map[string]types.CategoryInfo `json:"categories"`
}

// Empty returns an index with no keywords or categories. The server falls
// back to an empty index when the taxonomy files are absent; job endpoints
// keep working, only category detection degrades.
func Empty() *Index {
	return &Index{
		Keywords:   make(map[string]types.KeywordEntry),
		Categories: make(map[string]types.CategoryInfo),
	}
}

// LoadIndex reads a keyword taxonomy JSON file (the output of the
// enrich-taxonomy tool) and an optional category taxonomy file. Either path
// may be empty or missing; the corresponding part of the index stays empty.
func LoadIndex(keywordPath, categoryPath string) (*Index, error) {
	idx := Empty()

	if keywordPath != "" {
		data, err := os.ReadFile(keywordPath)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read keyword taxonomy %s: %w", keywordPath, err)
			}
		} else {
			var keywords map[string]types.KeywordEntry
			if err := json.Unmarshal(data, &keywords); err != nil {
				return nil, fmt.Errorf("failed to parse keyword taxonomy: %w", err)
			}
			idx.Keywords = keywords
		}
	}

	if categoryPath != "" {
		data, err := os.ReadFile(categoryPath)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read category taxonomy %s: %w", categoryPath, err)
			}
		} else {
			var categories map[string]types.CategoryInfo
			if err := json.Unmarshal(data, &categories); err != nil {
				return nil, fmt.Errorf("failed to parse category taxonomy: %w", err)
			}
			idx.Categories = categories
		}
	}

	return idx, nil
}

// KeywordCount returns the number of indexed keywords.
func (idx *Index) KeywordCount() int {
	return len(idx.Keywords)
}

// CategoryCount returns the number of indexed category paths.
func (idx *Index) CategoryCount() int {
	return len(idx.Categories)
}

// CategoryMatch is one category path detected in a user query.
type CategoryMatch struct {
	Path            string
	Score           int
	MatchedKeywords []string
	Info            types.CategoryInfo
}

// DetectCategories finds category paths whose keywords appear as substrings
// of the query, scored by the number of matching keywords. Returns the top 3.
func (idx *Index) DetectCategories(query string) []CategoryMatch {
	lower := strings.ToLower(query)

	var matches []CategoryMatch
	for path, info := range idx.Categories {
		var matched []string
		for _, keyword := range info.Keywords {
			if strings.Contains(lower, keyword) {
				matched = append(matched, keyword)
			}
		}
		if len(matched) > 0 {
			matches = append(matches, CategoryMatch{
				Path:            path,
				Score:           len(matched),
				MatchedKeywords: matched,
				Info:            info,
			})
		}
	}

	// Highest score first; ties broken by path for deterministic output
	// since map iteration order is random.
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Path < matches[j].Path
	})

	if len(matches) > 3 {
		matches = matches[:3]
	}
	return matches
}

// RelatedCategory is a sibling category in the same sector.
type RelatedCategory struct {
	Path     string
	JobCount int
}

// RelatedCategories returns the other category paths sharing the sector of
// the given path, sorted by path.
func (idx *Index) RelatedCategories(categoryPath string) []RelatedCategory {
	sector := types.CategorySector(categoryPath)

	var related []RelatedCategory
	for path, info := range idx.Categories {
		if path != categoryPath && strings.HasPrefix(path, sector) {
			related = append(related, RelatedCategory{Path: path, JobCount: info.JobCount})
		}
	}
	sort.Slice(related, func(i, j int) bool { return related[i].Path < related[j].Path })
	return related
}
