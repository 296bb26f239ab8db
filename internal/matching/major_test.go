package matching

import (
	"testing"

	"github.com/jonathan/climate-careers/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchByMajor_CaseInsensitiveEquality(t *testing.T) {
	m := New([]types.Job{
		{Title: "Process Engineer", Company: "SteelCo", ApplicableMajors: []string{"Chemical Engineering"}},
		{Title: "Software Engineer", Company: "GridCo", ApplicableMajors: []string{"Computer Science"}},
	})

	jobs := m.SearchByMajor("chemical engineering")

	require.Len(t, jobs, 1)
	assert.Equal(t, "Process Engineer", jobs[0].Title)
	assert.Equal(t, "chemical engineering", jobs[0].MatchedMajor)
}

func TestSearchByMajor_OrdersByLevelThenCompany(t *testing.T) {
	m := New([]types.Job{
		{Title: "VP", Company: "Acme", ExperienceLevel: "Executive", ApplicableMajors: []string{"Physics"}},
		{Title: "Intern B", Company: "Beta", ExperienceLevel: "Internship", ApplicableMajors: []string{"Physics"}},
		{Title: "Intern A", Company: "Alpha", ExperienceLevel: "Internship", ApplicableMajors: []string{"Physics"}},
		{Title: "Senior", Company: "Gamma", ExperienceLevel: "Senior", ApplicableMajors: []string{"Physics"}},
	})

	jobs := m.SearchByMajor("Physics")

	require.Len(t, jobs, 4)
	assert.Equal(t, "Intern A", jobs[0].Title)
	assert.Equal(t, "Intern B", jobs[1].Title)
	assert.Equal(t, "Senior", jobs[2].Title)
	assert.Equal(t, "VP", jobs[3].Title)
}

func TestSearchByMajor_UnknownLevelSortsLast(t *testing.T) {
	m := New([]types.Job{
		{Title: "Mystery Role", Company: "Acme", ExperienceLevel: "Fellowship", ApplicableMajors: []string{"Biology"}},
		{Title: "Executive Role", Company: "Beta", ExperienceLevel: "Executive", ApplicableMajors: []string{"Biology"}},
	})

	jobs := m.SearchByMajor("Biology")

	require.Len(t, jobs, 2)
	assert.Equal(t, "Executive Role", jobs[0].Title)
	assert.Equal(t, "Mystery Role", jobs[1].Title)
}

func TestSearchByMajor_NoResultCap(t *testing.T) {
	var pool []types.Job
	for i := 0; i < 40; i++ {
		pool = append(pool, types.Job{Title: "Role", ApplicableMajors: []string{"Economics"}})
	}

	m := New(pool)
	jobs := m.SearchByMajor("Economics")

	assert.Len(t, jobs, 40)
}

func TestLevelRank_KnownAndUnknownLevels(t *testing.T) {
	assert.Less(t, LevelRank("Internship"), LevelRank("Entry-Level"))
	assert.Less(t, LevelRank("Entry-Level"), LevelRank("Associate"))
	assert.Less(t, LevelRank("Associate"), LevelRank("Senior"))
	assert.Less(t, LevelRank("Senior"), LevelRank("Lead/Principal"))
	assert.Less(t, LevelRank("Lead/Principal"), LevelRank("Executive"))
	assert.Equal(t, 999, LevelRank("Sabbatical"))
}
