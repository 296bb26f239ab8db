package resume

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/climate-careers/internal/types"
)

func TestDeduplicateSkills_PreservesFirstCasing(t *testing.T) {
	skills := DeduplicateSkills([]string{"Python", "  python ", "GIS", "gis", "", "SQL"})
	assert.Equal(t, []string{"Python", "GIS", "SQL"}, skills)
}

func TestNormalizeIndustries_TrimsAndDedupes(t *testing.T) {
	out := NormalizeIndustries([]string{" Solar ", "solar", "Finance", "  "})
	assert.Equal(t, []string{"Solar", "Finance"}, out)
}

func TestParseDurationYears_ExplicitDurationWins(t *testing.T) {
	assert.Equal(t, 2.5, ParseDurationYears("2018", "2023", 2.5))
}

func TestParseDurationYears_FromDates(t *testing.T) {
	assert.Equal(t, 3.0, ParseDurationYears("June 2019", "May 2022", 0))
	// Reversed dates clamp to zero instead of going negative.
	assert.Equal(t, 0.0, ParseDurationYears("2022", "2019", 0))
}

func TestParseDurationYears_OpenEndedUsesCurrentYear(t *testing.T) {
	start := fmt.Sprintf("%d", time.Now().Year()-4)
	assert.Equal(t, 4.0, ParseDurationYears(start, "", 0))
}

func TestParseDurationYears_Unparseable(t *testing.T) {
	assert.Equal(t, 0.0, ParseDurationYears("some time ago", "recently", 0))
	// "Present" is not a year and there is no start year to count from.
	assert.Equal(t, 0.0, ParseDurationYears("", "Present", 0))
}

func TestEngineerLevelFromYears_Bands(t *testing.T) {
	assert.Equal(t, types.LevelUnknown, EngineerLevelFromYears(-1))
	assert.Equal(t, types.LevelJunior, EngineerLevelFromYears(0))
	assert.Equal(t, types.LevelJunior, EngineerLevelFromYears(1.9))
	assert.Equal(t, types.LevelMid, EngineerLevelFromYears(2))
	assert.Equal(t, types.LevelMid, EngineerLevelFromYears(5))
	assert.Equal(t, types.LevelSenior, EngineerLevelFromYears(5.1))
}

func TestComputeClimateYears_KeywordInIndustryCompanyOrTitle(t *testing.T) {
	work := []types.WorkExperience{
		{Title: "Software Engineer", Company: "BankCorp", Industry: "Finance", DurationYears: 3},
		{Title: "Software Engineer", Company: "SolarGrid", Industry: "Tech", DurationYears: 2},
		{Title: "Climate Analyst", Company: "Acme", Industry: "Consulting", DurationYears: 1.5},
	}

	assert.Equal(t, 6.5, ComputeTotalWorkforceYears(work))
	assert.Equal(t, 3.5, ComputeClimateYears(work))
}

func TestNormalize_RecomputesTotalsAndLevel(t *testing.T) {
	profile := &types.ResumeProfile{
		Skills:             []string{"Python", "python", "Modeling"},
		IndustriesWorkedIn: []string{"Energy", "energy"},
		// The model's own totals and level are discarded.
		TotalYearsInWorkforce:     40,
		TotalYearsInThisWorkforce: 40,
		EngineerLevel:             "senior",
		WorkExperience: []types.WorkExperience{
			{Title: "Analyst", Company: "GridCo", Industry: " Energy ", DurationYears: 1.5,
				Skills: []string{"Excel", "excel"}},
			{Title: "Intern", Company: "BankCorp", Industry: "Finance", DurationYears: -2},
		},
	}

	Normalize(profile)

	assert.Equal(t, []string{"Python", "Modeling"}, profile.Skills)
	assert.Equal(t, []string{"Energy"}, profile.IndustriesWorkedIn)
	assert.Equal(t, "Energy", profile.WorkExperience[0].Industry)
	assert.Equal(t, []string{"Excel"}, profile.WorkExperience[0].Skills)
	assert.Equal(t, 0.0, profile.WorkExperience[1].DurationYears)
	assert.Equal(t, 1.5, profile.TotalYearsInWorkforce)
	assert.Equal(t, 1.5, profile.TotalYearsInThisWorkforce)
	assert.Equal(t, types.LevelJunior, profile.EngineerLevel)
}
