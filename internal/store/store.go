// Package store loads the static jobs dataset and serves it as an immutable
// in-memory job store. Loading happens once at startup; every search derives
// new slices and never mutates the records, so unsynchronized concurrent
// reads are safe.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/jonathan/climate-careers/internal/types"
)

// Metadata describes the dataset summaries produced by the conversion tools.
type Metadata struct {
	TotalJobs   int      `json:"total_jobs"`
	Source      string   `json:"source,omitempty"`
	ConvertedAt string   `json:"converted_at,omitempty"`
	Sectors     []string `json:"sectors,omitempty"`
	Skills      []string `json:"skills,omitempty"`
	WorkAreas   []string `json:"work_areas,omitempty"`
	Companies   []string `json:"companies,omitempty"`
	Locations   []string `json:"locations,omitempty"`
}

// Dataset is the on-disk shape of the jobs file.
type Dataset struct {
	Jobs     []types.Job `json:"jobs"`
	Metadata Metadata    `json:"metadata"`
}

// SectorInfo is the sector summary used for prompt context retrieval.
type SectorInfo struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ImpactScore float64 `json:"impact_score"`
}

// Store is the read-only in-memory job store.
type Store struct {
	jobs     []types.Job
	metadata Metadata
	sectors  []SectorInfo
}

var sectorKeyPattern = regexp.MustCompile(`[, &]+`)

// SectorKey normalizes a sector display name into its lookup key.
func SectorKey(name string) string {
	return sectorKeyPattern.ReplaceAllString(strings.ToLower(name), "_")
}

// Load reads and parses the jobs dataset. The server treats a failure here as
// fatal: there is no degraded mode without job data.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read jobs dataset %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds a Store from raw dataset JSON.
func Parse(data []byte) (*Store, error) {
	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse jobs dataset: %w", err)
	}
	if len(ds.Jobs) == 0 {
		return nil, fmt.Errorf("jobs dataset contains no jobs")
	}
	if ds.Metadata.TotalJobs == 0 {
		ds.Metadata.TotalJobs = len(ds.Jobs)
	}

	s := &Store{jobs: ds.Jobs, metadata: ds.Metadata}
	for _, name := range ds.Metadata.Sectors {
		s.sectors = append(s.sectors, SectorInfo{
			Name:        name,
			Description: fmt.Sprintf("Climate-tech opportunities in %s", name),
			ImpactScore: 5,
		})
	}
	return s, nil
}

// Jobs returns the full job list. Callers must not modify the returned slice.
func (s *Store) Jobs() []types.Job {
	return s.jobs
}

// TotalJobs returns the number of jobs in the dataset.
func (s *Store) TotalJobs() int {
	return len(s.jobs)
}

// Metadata returns the dataset summaries.
func (s *Store) Metadata() Metadata {
	return s.metadata
}

// Sectors returns the sector summaries derived from dataset metadata.
func (s *Store) Sectors() []SectorInfo {
	return s.sectors
}

// SectorByKey looks up a sector summary by normalized key or display name.
func (s *Store) SectorByKey(keyword string) (SectorInfo, bool) {
	key := SectorKey(keyword)
	for _, info := range s.sectors {
		if SectorKey(info.Name) == key {
			return info, true
		}
	}
	return SectorInfo{}, false
}
