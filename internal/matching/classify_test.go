package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsJobQuery_ExplicitJobPhrases(t *testing.T) {
	queries := []string{
		"Show me jobs in solar",
		"find jobs in carbon capture",
		"What jobs can I look at?",
		"any internships in wind energy",
		"give me a list of jobs",
		"who is hiring for battery roles",
	}
	for _, query := range queries {
		assert.True(t, IsJobQuery(query), "expected job query: %q", query)
	}
}

func TestIsJobQuery_AdvicePhrasesWinOverJobPhrases(t *testing.T) {
	// "how do i" marks an advice query even when a job phrase is present.
	assert.False(t, IsJobQuery("How do I find jobs in climate tech?"))
	assert.False(t, IsJobQuery("how do I break into climate tech"))
	assert.False(t, IsJobQuery("tell me about available jobs"))
}

func TestIsJobQuery_PlainQuestionsAreNotJobQueries(t *testing.T) {
	assert.False(t, IsJobQuery("solar energy"))
	assert.False(t, IsJobQuery("is the electricity sector growing?"))
}
