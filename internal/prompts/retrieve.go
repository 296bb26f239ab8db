package prompts

import (
	"sort"
	"strings"

	"github.com/jonathan/climate-careers/internal/store"
	"github.com/jonathan/climate-careers/internal/taxonomy"
)

const (
	maxContextImperatives = 5
	maxContextMoonshots   = 3
)

// climateTerms mark a query as on-topic even when no taxonomy keyword hits.
var climateTerms = []string{
	"climate", "carbon", "emission", "renewable", "clean energy",
	"sustainability", "decarbonization", "net zero", "greenhouse gas",
}

// offTopicTerms trigger the redirect response for clearly unrelated queries.
var offTopicTerms = []string{"weather", "recipe", "movie", "game", "sports"}

// QueryContext holds the knowledge-base slices retrieved for a single query.
type QueryContext struct {
	Keywords    []string
	Sectors     []store.SectorInfo
	Imperatives []string
	Moonshots   []string
}

// ExtractKeywords scans a query for taxonomy keywords and sector names.
// Each keyword hit contributes the sectors it maps to; sector names match
// directly. The result is deduplicated and sorted for stable output.
func ExtractKeywords(query string, idx *taxonomy.Index, st *store.Store) []string {
	lower := strings.ToLower(query)
	seen := make(map[string]bool)
	var matches []string

	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			matches = append(matches, name)
		}
	}

	if idx != nil {
		for keyword, entry := range idx.Keywords {
			if strings.Contains(lower, keyword) {
				for _, sector := range entry.Sectors {
					add(sector)
				}
			}
		}
	}

	for _, sector := range st.Sectors() {
		if strings.Contains(lower, strings.ToLower(sector.Name)) {
			add(sector.Name)
		}
	}

	sort.Strings(matches)
	return matches
}

// Retrieve assembles the context block for a query. With no keywords it
// returns a general overview of every sector; otherwise it narrows to the
// matched sectors plus the imperatives and moonshots that mention them.
func Retrieve(keywords []string, idx *taxonomy.Index, st *store.Store) QueryContext {
	ctx := QueryContext{Keywords: keywords}

	if len(keywords) == 0 {
		ctx.Sectors = st.Sectors()
		return ctx
	}

	for _, keyword := range keywords {
		if sector, ok := st.SectorByKey(store.SectorKey(keyword)); ok {
			ctx.Sectors = append(ctx.Sectors, sector)
		}
	}

	ctx.Imperatives = filterByKeywords(allImperatives(idx), keywords, maxContextImperatives)
	ctx.Moonshots = filterByKeywords(allMoonshots(idx), keywords, maxContextMoonshots)
	return ctx
}

// FilterQuery decides whether a query should be redirected instead of
// answered. A query is off-topic when it carries no climate signal, is long
// enough to be a real question, and mentions a known unrelated topic.
func FilterQuery(query string, keywords []string) (redirect string, offTopic bool) {
	lower := strings.ToLower(query)

	hasClimateTerm := len(keywords) > 0
	for _, term := range climateTerms {
		if strings.Contains(lower, term) {
			hasClimateTerm = true
			break
		}
	}
	if hasClimateTerm || len(query) <= 10 {
		return "", false
	}

	for _, term := range offTopicTerms {
		if strings.Contains(lower, term) {
			return MustGet("climate.json", "offtopic_redirect"), true
		}
	}
	return "", false
}

func allImperatives(idx *taxonomy.Index) []string {
	if idx == nil {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for _, entry := range idx.Keywords {
		for _, imp := range entry.Imperatives {
			if !seen[imp] {
				seen[imp] = true
				out = append(out, imp)
			}
		}
	}
	sort.Strings(out)
	return out
}

func allMoonshots(idx *taxonomy.Index) []string {
	if idx == nil {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for _, entry := range idx.Keywords {
		for _, ms := range entry.Moonshots {
			if !seen[ms] {
				seen[ms] = true
				out = append(out, ms)
			}
		}
	}
	sort.Strings(out)
	return out
}

func filterByKeywords(items, keywords []string, limit int) []string {
	var out []string
	for _, item := range items {
		lower := strings.ToLower(item)
		for _, kw := range keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				out = append(out, item)
				break
			}
		}
		if len(out) == limit {
			break
		}
	}
	return out
}
