package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/climate-careers/internal/store"
	"github.com/jonathan/climate-careers/internal/taxonomy"
	"github.com/jonathan/climate-careers/internal/types"
)

func testStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Parse([]byte(`{
		"jobs": [{"title": "Battery Engineer", "company": "VoltCo"}],
		"metadata": {"sectors": ["Electricity", "Transportation", "Food, Agriculture & Nature"]}
	}`))
	require.NoError(t, err)
	return s
}

func testIndex() *taxonomy.Index {
	idx := taxonomy.Empty()
	idx.Keywords["battery"] = types.KeywordEntry{
		Sectors:     []string{"Electricity"},
		Imperatives: []string{"Scale long-duration battery storage"},
		Moonshots:   []string{"Solid-state battery manufacturing"},
	}
	idx.Keywords["ev"] = types.KeywordEntry{
		Sectors:     []string{"Transportation"},
		Imperatives: []string{"Electrify road transport"},
	}
	return idx
}

func TestGet_LoadsEmbeddedPrompts(t *testing.T) {
	prompt, err := Get("climate.json", "offtopic_redirect")
	require.NoError(t, err)
	assert.NotEmpty(t, prompt)

	_, err = Get("climate.json", "no_such_key")
	assert.Error(t, err)

	_, err = Get("missing.json", "anything")
	assert.Error(t, err)
}

func TestFormat_ReplacesPlaceholders(t *testing.T) {
	out := Format("Hello {{.Name}}, rule: {{.Rule}}", map[string]string{
		"Name": "world",
		"Rule": "",
	})
	assert.Equal(t, "Hello world, rule: ", out)
}

func TestExtractKeywords_MatchesKeywordsAndSectorNames(t *testing.T) {
	st := testStore(t)
	idx := testIndex()

	matches := ExtractKeywords("Tell me about battery jobs in transportation", idx, st)

	// "battery" maps to Electricity; "transportation" matches the sector name.
	assert.Equal(t, []string{"Electricity", "Transportation"}, matches)
}

func TestExtractKeywords_NoSignalReturnsEmpty(t *testing.T) {
	matches := ExtractKeywords("hello there", testIndex(), testStore(t))
	assert.Empty(t, matches)
}

func TestRetrieve_NoKeywordsReturnsAllSectors(t *testing.T) {
	st := testStore(t)
	ctx := Retrieve(nil, testIndex(), st)

	assert.Len(t, ctx.Sectors, 3)
	assert.Empty(t, ctx.Imperatives)
	assert.Empty(t, ctx.Moonshots)
}

func TestRetrieve_NarrowsToMatchedSectors(t *testing.T) {
	st := testStore(t)
	ctx := Retrieve([]string{"Electricity"}, testIndex(), st)

	require.Len(t, ctx.Sectors, 1)
	assert.Equal(t, "Electricity", ctx.Sectors[0].Name)
	// Imperatives and moonshots mentioning the sector keyword come along.
	assert.Empty(t, ctx.Imperatives)
}

func TestRetrieve_FiltersImperativesByKeyword(t *testing.T) {
	st := testStore(t)
	ctx := Retrieve([]string{"battery", "Electricity"}, testIndex(), st)

	assert.Contains(t, ctx.Imperatives, "Scale long-duration battery storage")
	assert.NotContains(t, ctx.Imperatives, "Electrify road transport")
	assert.Contains(t, ctx.Moonshots, "Solid-state battery manufacturing")
}

func TestFilterQuery_RedirectsOffTopicQueries(t *testing.T) {
	redirect, offTopic := FilterQuery("what's a good recipe for dinner tonight", nil)

	assert.True(t, offTopic)
	assert.NotEmpty(t, redirect)
}

func TestFilterQuery_ClimateQueriesPassThrough(t *testing.T) {
	_, offTopic := FilterQuery("how do I get into renewable energy", nil)
	assert.False(t, offTopic)

	// Any extracted keyword marks the query on-topic.
	_, offTopic = FilterQuery("sports analytics roles at battery companies", []string{"Electricity"})
	assert.False(t, offTopic)

	// Short queries are never redirected.
	_, offTopic = FilterQuery("movie?", nil)
	assert.False(t, offTopic)
}

func TestFormatJobsTable_EmptyJobs(t *testing.T) {
	assert.Equal(t, "", FormatJobsTable(nil))
}

func TestFormatJobsTable_DefaultLayout(t *testing.T) {
	jobs := []types.MatchedJob{
		{Job: types.Job{
			Title:           "Solar (PV) Engineer | Remote",
			Company:         "Sunny & Co.",
			Location:        "Oakland, CA",
			ExperienceLevel: "Senior",
			URL:             "https://example.com/1",
			Taxonomy: &types.JobTaxonomy{
				EmissionsCategory: "Electricity",
				ImpactScore:       23.1,
			},
		}},
		{Job: types.Job{Title: "Analyst", Company: "GridCo"}},
	}

	table := FormatJobsTable(jobs)

	assert.Contains(t, table, "POSITION | COMPANY | LOCATION | SECTOR | IMPACT | LEVEL | DEADLINE | APPLY")
	// Pipes and parens are stripped from cells; commas survive in locations.
	assert.Contains(t, table, "Solar PV Engineer  Remote | Sunny  Co | Oakland, CA | Electricity | 23.1% | Senior | Rolling | https://example.com/1")
	// Jobs without taxonomy fall back to defaults.
	assert.Contains(t, table, "Analyst | GridCo | Not specified | General Climate Tech | N/A | Various | Rolling | ")
	assert.Contains(t, table, "IMPACT SCORE:")
}

func TestFormatJobsTable_CategoryLayout(t *testing.T) {
	jobs := []types.MatchedJob{
		{
			Job: types.Job{Title: "Battery Engineer", Company: "VoltCo", URL: "https://example.com/2"},
			MatchedCategories: []string{
				"Electricity > Energy Storage > Chemical",
				"Electricity > Energy Storage",
				"Transportation > EVs",
			},
		},
	}

	table := FormatJobsTable(jobs)

	assert.Contains(t, table, "POSITION | COMPANY | LOCATION | CLIMATE CATEGORIES | LEVEL | APPLY")
	// Only the last segment of the first two matched categories is shown.
	assert.Contains(t, table, "Battery Engineer | VoltCo | Not specified | Chemical, Energy Storage | Various | https://example.com/2")
	assert.Contains(t, table, "CLIMATE CATEGORIES:")
	assert.NotContains(t, table, "IMPACT SCORE:")
}

func TestBuildPrompt_JobQueryIncludesTableAndJobFormat(t *testing.T) {
	st := testStore(t)
	ctx := Retrieve([]string{"Electricity"}, testIndex(), st)
	jobs := []types.MatchedJob{
		{Job: types.Job{
			Title:   "Battery Engineer",
			Company: "VoltCo",
			Taxonomy: &types.JobTaxonomy{
				InnovationImperatives: []string{"Scale long-duration battery storage"},
				Moonshots:             []string{"Solid-state battery manufacturing"},
			},
		}},
	}

	prompt := BuildPrompt(ctx, "show me battery jobs", jobs, true, "")

	assert.Contains(t, prompt, "RELEVANT CLIMATE-TECH JOB OPPORTUNITIES:")
	assert.Contains(t, prompt, "**Electricity Sector:**")
	assert.Contains(t, prompt, "INNOVATION IMPERATIVES (Critical Near-Term Needs):")
	assert.Contains(t, prompt, "RELATED MOONSHOTS (High-Risk, High-Reward Technologies):")
	assert.Contains(t, prompt, "User Question: show me battery jobs")
	assert.Contains(t, prompt, MustGet("climate.json", "format_jobs"))
	// Job queries suppress the advice rule.
	assert.NotContains(t, prompt, MustGet("climate.json", "advice_rule"))
}

func TestBuildPrompt_AdviceQueryUsesAdviceFormat(t *testing.T) {
	st := testStore(t)
	ctx := Retrieve(nil, testIndex(), st)

	prompt := BuildPrompt(ctx, "how do I break into climate tech", nil, false, "")

	assert.Contains(t, prompt, MustGet("climate.json", "format_advice"))
	assert.Contains(t, prompt, MustGet("climate.json", "advice_rule"))
	assert.NotContains(t, prompt, "RELEVANT CLIMATE-TECH JOB OPPORTUNITIES:")
}

func TestBuildPrompt_CategoryMatchesAddDetails(t *testing.T) {
	_ = testStore(t)
	jobs := []types.MatchedJob{
		{
			Job:               types.Job{Title: "Battery Engineer", Company: "VoltCo"},
			MatchedCategories: []string{"Electricity > Energy Storage"},
		},
	}

	prompt := BuildPrompt(QueryContext{}, "show me jobs in energy storage", jobs, true, "")

	assert.Contains(t, prompt, "**CATEGORY-SPECIFIC JOB MATCHES:**")
	// The query phrase is stripped down to its subject.
	assert.Contains(t, prompt, `matching "energy storage"`)
	assert.Contains(t, prompt, "**CATEGORY MATCH DETAILS:**")
	assert.Contains(t, prompt, "- Battery Engineer at VoltCo: Electricity > Energy Storage")
}

func TestFormatCategoryContext_RendersDetectedCategories(t *testing.T) {
	idx := taxonomy.Empty()
	idx.Categories["Electricity > Energy Storage"] = types.CategoryInfo{
		Keywords: []string{"battery", "storage"},
		JobCount: 12,
	}
	idx.Categories["Electricity > Solar"] = types.CategoryInfo{
		Keywords: []string{"solar"},
		JobCount: 7,
	}

	matches := idx.DetectCategories("battery storage roles")
	require.NotEmpty(t, matches)

	out := FormatCategoryContext(matches, idx)

	assert.Contains(t, out, "**DETECTED CLIMATE CATEGORIES:**")
	assert.Contains(t, out, "**Electricity > Energy Storage**")
	assert.Contains(t, out, "Sector: Electricity")
	assert.Contains(t, out, "Focus Area: Energy Storage")
	assert.Contains(t, out, "Available Jobs: 12")
	assert.Contains(t, out, "Related Keywords: battery, storage")
	assert.Contains(t, out, "Solar (7 jobs)")
}

func TestFormatCategoryContext_EmptyMatches(t *testing.T) {
	assert.Equal(t, "", FormatCategoryContext(nil, taxonomy.Empty()))
}

func TestBuildPrompt_SystemCoreAlwaysPresent(t *testing.T) {
	prompt := BuildPrompt(QueryContext{}, "anything", nil, false, "")

	core := Format(MustGet("climate.json", "system_core"), map[string]string{
		"TableNote":  "",
		"AdviceRule": MustGet("climate.json", "advice_rule"),
	})
	assert.True(t, strings.HasPrefix(prompt, core))
}
