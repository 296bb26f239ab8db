// Package matching implements the job search and matching logic: query
// classification, category/major/general/resume matchers, and post-match
// preference refinement. Every matcher is a full scan over the in-memory job
// list with substring-containment heuristics; results are derived copies and
// the job list is never mutated.
package matching

import "github.com/jonathan/climate-careers/internal/types"

// Result-set caps per matcher. Major search is deliberately uncapped so users
// see every opportunity for their major.
const (
	maxCategoryResults = 15
	maxGeneralResults  = 10
	maxResumeResults   = 20
)

// Matcher runs searches against an immutable job list.
type Matcher struct {
	jobs []types.Job
}

// New creates a Matcher over the given job list. The slice is retained, not
// copied; callers hand over ownership at startup.
func New(jobs []types.Job) *Matcher {
	return &Matcher{jobs: jobs}
}

// Jobs returns the underlying job list.
func (m *Matcher) Jobs() []types.Job {
	return m.jobs
}
