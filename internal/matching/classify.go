package matching

import "strings"

// adviceKeywords mark a query as a guidance question. Any hit here overrides
// every job-request signal: advice phrases take priority so the job table UI
// never triggers on "how do I..." questions.
var adviceKeywords = []string{
	"how do i", "how can i", "how to", "what should i", "what can i do",
	"advice", "help me", "guide", "tips", "suggestions",
	"transition", "break into", "get started", "learn",
	"what is", "explain", "tell me about", "describe",
	"why", "when", "where should", "which skills",
}

// explicitJobPhrases is the closed, hand-maintained list of phrasings that
// count as an explicit job-listing request. Exact substring containment only;
// phrasings outside the list are expected to miss. The list favors precision
// over recall.
var explicitJobPhrases = []string{
	"show me jobs", "find jobs", "list jobs", "search jobs",
	"show me positions", "find positions", "list positions",
	"show me roles", "find roles", "list roles",
	"job openings", "job opportunities", "job listings",
	"available jobs", "available positions", "available roles",
	"looking for a job", "looking for jobs", "looking for positions",
	"searching for jobs", "searching for positions",
	"find me a job", "find me jobs", "show me a job",
	"what jobs", "which jobs", "any jobs",
	"find a job", "look for a job", "search for a job",
	"open positions", "who is hiring", "companies hiring",
	"hiring near me", "apply for a job", "any jobs for",
	"a list of jobs", "list of jobs", "a table of jobs", "table of jobs",
	"give me a list", "show me a list", "give me a table", "show me a table",
	"can you give me a job", "can you give me jobs",
	"can you give me an excel of jobs", "give me a job", "give me jobs",
	"give me an excel of jobs",
	"show me internships", "find internships", "list internships", "search internships",
	"internship openings", "internship opportunities", "internship listings",
	"available internships", "looking for an internship", "looking for internships",
	"searching for internships", "find me an internship", "find me internships",
	"show me an internship", "what internships", "which internships", "any internships",
	"can you give me an internship", "can you give me internships",
	"can you give me an excel of internships", "give me an internship", "give me internships",
	"give me an excel of internships",
	"a list of internships", "list of internships", "a table of internships", "table of internships",
	"executive jobs", "executive-level jobs", "executive level jobs", "senior jobs", "senior-level jobs",
	"leadership jobs", "leadership positions", "c-suite jobs", "director jobs", "vp jobs",
	"what executive jobs", "what senior jobs", "what leadership jobs",
	"jobs can i look at", "positions can i look at", "roles can i look at",
	"what jobs can i", "what positions can i", "what roles can i",
	"jobs among these categories", "jobs in these categories", "positions in these categories",
	"jobs among", "positions among", "roles among",
	"give me some jobs", "show me some jobs", "find me some jobs",
	"jobs in advanced materials", "jobs in fusion", "jobs in direct air capture",
	"jobs in battery", "jobs in novel battery", "jobs in carbon capture",
}

// IsJobQuery reports whether the query is an explicit job-listing request.
// Advice phrasing short-circuits to false regardless of other signals.
func IsJobQuery(query string) bool {
	lower := strings.ToLower(query)

	for _, keyword := range adviceKeywords {
		if strings.Contains(lower, keyword) {
			return false
		}
	}

	for _, phrase := range explicitJobPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
