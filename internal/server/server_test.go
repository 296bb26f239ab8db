package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/climate-careers/internal/llm"
	"github.com/jonathan/climate-careers/internal/matching"
	"github.com/jonathan/climate-careers/internal/store"
	"github.com/jonathan/climate-careers/internal/taxonomy"
	"github.com/jonathan/climate-careers/internal/types"
)

// stubLLM returns a fixed response or error for every call.
type stubLLM struct {
	response string
	err      error
}

func (c *stubLLM) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return c.response, c.err
}

func (c *stubLLM) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return c.response, c.err
}

func (c *stubLLM) Close() error { return nil }

func newTestServer(t *testing.T, client llm.Client) *Server {
	t.Helper()

	jobStore, err := store.Parse([]byte(`{
		"jobs": [
			{"title": "Solar Installer", "company": "SunCo", "location": "Phoenix, AZ",
			 "experience_level": "Entry Level",
			 "climate_categories": ["Electricity > Solar"],
			 "applicable_majors": ["Electrical Engineering"]},
			{"title": "Battery Engineer", "company": "VoltCo",
			 "experience_level": "Senior",
			 "climate_categories": ["Electricity > Energy Storage"],
			 "applicable_majors": ["Chemical Engineering"],
			 "skills_keywords": "python, electrochemistry"}
		],
		"metadata": {"sectors": ["Electricity"]}
	}`))
	require.NoError(t, err)

	idx := taxonomy.Empty()
	idx.Keywords["solar"] = types.KeywordEntry{Sectors: []string{"Electricity"}}
	idx.Categories["Electricity > Solar"] = types.CategoryInfo{Keywords: []string{"solar"}, JobCount: 1}

	s := &Server{
		store:   jobStore,
		index:   idx,
		matcher: matching.New(jobStore.Jobs()),
	}
	if client != nil {
		s.llm = client
		s.apiKey = "test-key"
	}
	return s
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestHandleHealth_ReportsDiagnostics(t *testing.T) {
	s := newTestServer(t, &stubLLM{})
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()

	s.handleHealth(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(2), body["jobsLoaded"])
	assert.Equal(t, float64(1), body["sectorsLoaded"])
	assert.Equal(t, float64(1), body["keywordsLoaded"])
	assert.Equal(t, true, body["apiKeyConfigured"])
}

func TestHandleChat_MissingMessage(t *testing.T) {
	s := newTestServer(t, nil)

	rec := postJSON(t, s.handleChat, `{"message": ""}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Message is required")
}

func TestHandleChat_InvalidBody(t *testing.T) {
	s := newTestServer(t, nil)

	rec := postJSON(t, s.handleChat, `{not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleChat_JobQueryReturnsStructuredJobs(t *testing.T) {
	s := newTestServer(t, nil) // job searches work without an LLM

	rec := postJSON(t, s.handleChat, `{"message": "show me jobs in solar"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body ChatJobsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "jobs", body.Type)
	require.NotEmpty(t, body.Jobs)
	assert.Equal(t, "Solar Installer", body.Jobs[0].Title)
	assert.Equal(t, body.Count, len(body.Jobs))
	assert.Contains(t, body.Metadata.Keywords, "Electricity")
	assert.Contains(t, body.Metadata.SectorsReferenced, "Electricity")
}

func TestHandleChat_OffTopicQueryRedirects(t *testing.T) {
	s := newTestServer(t, nil)

	rec := postJSON(t, s.handleChat, `{"message": "recommend a good movie for tonight"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body RedirectResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Response)
}

func TestHandleChat_AdviceQueryUsesLLM(t *testing.T) {
	s := newTestServer(t, &stubLLM{response: "Start with an entry-level solar role."})

	rec := postJSON(t, s.handleChat, `{"message": "how do I get into solar energy"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body ChatTextResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "text", body.Type)
	assert.Equal(t, "Start with an entry-level solar role.", body.Response)
}

func TestHandleChat_AdviceQueryWithoutAPIKey(t *testing.T) {
	s := newTestServer(t, nil)

	rec := postJSON(t, s.handleChat, `{"message": "how do I get into solar energy"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleChat_QuotaErrorMapsTo429(t *testing.T) {
	s := newTestServer(t, &stubLLM{err: fmt.Errorf("generation failed: quota exceeded")})

	rec := postJSON(t, s.handleChat, `{"message": "how do I get into solar energy"}`)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestHandleCategoryJobs_ReturnsTaggedJobs(t *testing.T) {
	s := newTestServer(t, nil)

	rec := postJSON(t, s.handleCategoryJobs, `{"category": "Energy Storage"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body CategoryJobsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Energy Storage", body.Category)
	require.Equal(t, 1, body.Count)
	assert.Equal(t, "Battery Engineer", body.Jobs[0].Title)
}

func TestHandleCategoryJobs_MissingCategory(t *testing.T) {
	s := newTestServer(t, nil)

	rec := postJSON(t, s.handleCategoryJobs, `{}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Category is required")
}

func TestHandleCategoryJobs_NoMatchesReturnsEmptyArray(t *testing.T) {
	s := newTestServer(t, nil)

	rec := postJSON(t, s.handleCategoryJobs, `{"category": "Geothermal"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"jobs":[]`)
}

func TestHandleMajorJobs_ReturnsApplicableJobs(t *testing.T) {
	s := newTestServer(t, nil)

	rec := postJSON(t, s.handleMajorJobs, `{"major": "electrical engineering"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body MajorJobsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 1, body.Count)
	assert.Equal(t, "Solar Installer", body.Jobs[0].Title)
}

func TestHandleMajorJobs_MissingMajor(t *testing.T) {
	s := newTestServer(t, nil)

	rec := postJSON(t, s.handleMajorJobs, `{"major": ""}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Major is required")
}

func TestHandleMatchJobsWithPreferences_MatchesProfile(t *testing.T) {
	s := newTestServer(t, nil)

	rec := postJSON(t, s.handleMatchJobsWithPreferences, `{
		"profile": {
			"name": "Jane",
			"skills": ["python"],
			"work_experience": []
		},
		"preferences": {"sectors": ["electricity"]}
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body PreferenceMatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 1, body.Count)
	assert.Equal(t, "Battery Engineer", body.Jobs[0].Title)
	require.NotNil(t, body.Preferences)
	assert.Equal(t, []string{"electricity"}, body.Preferences.Sectors)
}

func TestHandleMatchJobsWithPreferences_MissingProfile(t *testing.T) {
	s := newTestServer(t, nil)

	rec := postJSON(t, s.handleMatchJobsWithPreferences, `{"preferences": {}}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Profile data is required")
}

func TestHandleMatchJobsWithPreferences_InvalidRiskAppetite(t *testing.T) {
	s := newTestServer(t, nil)

	rec := postJSON(t, s.handleMatchJobsWithPreferences, `{
		"profile": {"name": "Jane", "skills": [], "work_experience": []},
		"preferences": {"riskAppetite": "reckless"}
	}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid preferences")
}

func TestHandleUploadResume_NoFile(t *testing.T) {
	s := newTestServer(t, &stubLLM{})

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload-resume", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()

	s.handleUploadResume(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "No file uploaded")
}

func TestHandleUploadResume_RejectsNonPDF(t *testing.T) {
	s := newTestServer(t, &stubLLM{})

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("resume", "resume.docx")
	require.NoError(t, err)
	_, err = part.Write([]byte("not a pdf"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload-resume", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()

	s.handleUploadResume(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Only PDF files are supported")
}

func TestWithCORS_HandlesPreflight(t *testing.T) {
	s := newTestServer(t, nil)
	handler := s.withCORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not run for OPTIONS")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestErrorResponse_IncludesDetails(t *testing.T) {
	s := newTestServer(t, nil)
	rec := httptest.NewRecorder()

	s.errorResponse(rec, http.StatusBadRequest, "bad input", "field missing")

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "bad input", body["error"])
	assert.Equal(t, "field missing", body["details"])
}
