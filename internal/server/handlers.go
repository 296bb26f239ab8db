package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/climate-careers/internal/llm"
	"github.com/jonathan/climate-careers/internal/matching"
	"github.com/jonathan/climate-careers/internal/prompts"
	"github.com/jonathan/climate-careers/internal/resume"
	"github.com/jonathan/climate-careers/internal/types"
)

// maxUploadBytes caps resume uploads at 10MB.
const maxUploadBytes = 10 << 20

// ChatMetadata reports what the retrieval step extracted from the query.
type ChatMetadata struct {
	Keywords          []string `json:"keywords"`
	SectorsReferenced []string `json:"sectorsReferenced"`
}

// ChatJobsResponse is returned when the query is an explicit job search.
type ChatJobsResponse struct {
	Type     string             `json:"type"`
	Jobs     []types.MatchedJob `json:"jobs"`
	Count    int                `json:"count"`
	Query    string             `json:"query"`
	Metadata ChatMetadata       `json:"metadata"`
}

// ChatTextResponse is returned for advice and informational queries.
type ChatTextResponse struct {
	Type     string       `json:"type"`
	Response string       `json:"response"`
	Metadata ChatMetadata `json:"metadata"`
}

// RedirectResponse is returned for off-topic queries.
type RedirectResponse struct {
	Response string `json:"response"`
}

// CategoryJobsResponse is the body for /api/category-jobs.
type CategoryJobsResponse struct {
	Category string             `json:"category"`
	Count    int                `json:"count"`
	Jobs     []types.MatchedJob `json:"jobs"`
}

// MajorJobsResponse is the body for /api/major-jobs.
type MajorJobsResponse struct {
	Major string             `json:"major"`
	Count int                `json:"count"`
	Jobs  []types.MatchedJob `json:"jobs"`
}

// PreferenceMatchResponse is the body for /api/match-jobs-with-preferences.
type PreferenceMatchResponse struct {
	Count       int                `json:"count"`
	Jobs        []types.MatchedJob `json:"jobs"`
	Preferences *types.Preferences `json:"preferences"`
}

// UploadDebug carries diagnostic counters for a resume upload.
type UploadDebug struct {
	RequestID       string `json:"request_id"`
	TextLength      int    `json:"text_length"`
	SkillsExtracted int    `json:"skills_extracted"`
	JobsInDatabase  int    `json:"jobs_in_database"`
	MatchesFound    int    `json:"matches_found"`
}

// UploadResumeResponse is the body for /api/upload-resume.
type UploadResumeResponse struct {
	Profile *types.ResumeProfile `json:"profile"`
	Jobs    []types.MatchedJob   `json:"jobs"`
	Debug   UploadDebug          `json:"debug"`
}

// handleChat runs the full chat pipeline: keyword extraction, off-topic
// filtering, context retrieval, then either a structured job search response
// or an LLM-generated advice response.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req types.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error(), "")
		return
	}
	if err := req.Validate(); err != nil || strings.TrimSpace(req.Message) == "" {
		s.errorResponse(w, http.StatusBadRequest, "Message is required", "")
		return
	}

	message := req.Message
	keywords := prompts.ExtractKeywords(message, s.index, s.store)
	matchedCategories := s.index.DetectCategories(message)

	if s.verbose {
		log.Printf("Extracted keywords: %v", keywords)
		for _, m := range matchedCategories {
			log.Printf("Matched category: %s (score %d)", m.Path, m.Score)
		}
	}

	if redirect, offTopic := prompts.FilterQuery(message, keywords); offTopic {
		s.jsonResponse(w, http.StatusOK, RedirectResponse{Response: redirect})
		return
	}

	queryCtx := prompts.Retrieve(keywords, s.index, s.store)
	metadata := ChatMetadata{
		Keywords:          ensureSlice(keywords),
		SectorsReferenced: sectorNames(queryCtx),
	}

	if matching.IsJobQuery(message) {
		jobs := s.matcher.SearchGeneral(message)
		if s.verbose {
			log.Printf("Found %d matching jobs", len(jobs))
		}
		s.jsonResponse(w, http.StatusOK, ChatJobsResponse{
			Type:     "jobs",
			Jobs:     ensureJobs(jobs),
			Count:    len(jobs),
			Query:    message,
			Metadata: metadata,
		})
		return
	}

	if s.llm == nil {
		err := &ErrAPIKey{}
		s.errorResponse(w, HTTPStatus(err), err.Error(), "no API key configured")
		return
	}

	categoryContext := prompts.FormatCategoryContext(matchedCategories, s.index)
	prompt := prompts.BuildPrompt(queryCtx, message, nil, false, categoryContext)

	text, err := s.llm.GenerateContent(r.Context(), prompt, llm.TierStandard)
	if err != nil {
		classified := classifyLLMError(err)
		s.errorResponse(w, HTTPStatus(classified), classified.Error(), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, ChatTextResponse{
		Type:     "text",
		Response: text,
		Metadata: metadata,
	})
}

// handleCategoryJobs returns jobs tagged with a specific category path.
func (s *Server) handleCategoryJobs(w http.ResponseWriter, r *http.Request) {
	var req types.CategoryJobsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error(), "")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Category is required", "")
		return
	}

	jobs := s.matcher.SearchByCategory(req.Category)
	s.jsonResponse(w, http.StatusOK, CategoryJobsResponse{
		Category: req.Category,
		Count:    len(jobs),
		Jobs:     ensureJobs(jobs),
	})
}

// handleMajorJobs returns jobs applicable to an academic major, ordered by
// seniority.
func (s *Server) handleMajorJobs(w http.ResponseWriter, r *http.Request) {
	var req types.MajorJobsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error(), "")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Major is required", "")
		return
	}

	jobs := s.matcher.SearchByMajor(req.Major)
	s.jsonResponse(w, http.StatusOK, MajorJobsResponse{
		Major: req.Major,
		Count: len(jobs),
		Jobs:  ensureJobs(jobs),
	})
}

// handleMatchJobsWithPreferences matches jobs against a resume profile, then
// refines the result with sector, experience, and risk-appetite preferences.
func (s *Server) handleMatchJobsWithPreferences(w http.ResponseWriter, r *http.Request) {
	var req types.MatchPreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error(), "")
		return
	}
	if err := req.Validate(); err != nil {
		if req.Profile == nil {
			s.errorResponse(w, http.StatusBadRequest, "Profile data is required", "")
		} else {
			s.errorResponse(w, http.StatusBadRequest, "Invalid preferences: "+err.Error(), "")
		}
		return
	}

	jobs := s.matcher.MatchResume(req.Profile)
	jobs = matching.ApplyPreferences(jobs, req.Preferences)

	s.jsonResponse(w, http.StatusOK, PreferenceMatchResponse{
		Count:       len(jobs),
		Jobs:        ensureJobs(jobs),
		Preferences: req.Preferences,
	})
}

// handleUploadResume accepts a PDF resume, extracts its text, parses it into
// a profile with the LLM, and returns the profile with matched jobs.
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid upload: file may exceed the 10MB limit", err.Error())
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "No file uploaded", "")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType != "application/pdf" && !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		s.errorResponse(w, http.StatusBadRequest, "Only PDF files are supported. Please upload a PDF resume.", "")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to read uploaded file", err.Error())
		return
	}

	text, err := resume.ExtractPDFText(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to extract text from PDF", err.Error())
		return
	}
	if text == "" {
		s.errorResponse(w, http.StatusBadRequest, "Could not extract text from resume. The PDF may be scanned or image-based.", "")
		return
	}

	if s.parser == nil {
		keyErr := &ErrAPIKey{}
		s.errorResponse(w, HTTPStatus(keyErr), keyErr.Error(), "no API key configured")
		return
	}

	profile, err := s.parser.Parse(r.Context(), text)
	if err != nil {
		classified := classifyLLMError(err)
		s.errorResponse(w, HTTPStatus(classified), "Failed to parse resume with AI", err.Error())
		return
	}

	jobs := s.matcher.MatchResume(profile)
	requestID := uuid.NewString()
	if s.verbose {
		log.Printf("Resume upload %s: %d chars, %d skills, %d matches",
			requestID, len(text), len(profile.Skills), len(jobs))
	}

	s.jsonResponse(w, http.StatusOK, UploadResumeResponse{
		Profile: profile,
		Jobs:    ensureJobs(jobs),
		Debug: UploadDebug{
			RequestID:       requestID,
			TextLength:      len(text),
			SkillsExtracted: len(profile.Skills),
			JobsInDatabase:  s.store.TotalJobs(),
			MatchesFound:    len(jobs),
		},
	})
}

// handleHealth reports service status and dataset load diagnostics.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":           "ok",
		"message":          "Climate careers API is running",
		"jobsLoaded":       s.store.TotalJobs(),
		"sectorsLoaded":    len(s.store.Sectors()),
		"keywordsLoaded":   s.index.KeywordCount(),
		"totalCategories":  s.index.CategoryCount(),
		"apiKeyConfigured": s.apiKey != "",
	})
}

func sectorNames(ctx prompts.QueryContext) []string {
	names := make([]string, 0, len(ctx.Sectors))
	for _, sector := range ctx.Sectors {
		names = append(names, sector.Name)
	}
	return names
}

// ensureSlice keeps empty results encoding as [] instead of null.
func ensureSlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func ensureJobs(jobs []types.MatchedJob) []types.MatchedJob {
	if jobs == nil {
		return []types.MatchedJob{}
	}
	return jobs
}
