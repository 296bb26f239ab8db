package resume

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/climate-careers/internal/llm"
	"github.com/jonathan/climate-careers/internal/prompts"
	"github.com/jonathan/climate-careers/internal/schemas"
	"github.com/jonathan/climate-careers/internal/types"
)

// maxResumeChars bounds the resume text sent to the model.
const maxResumeChars = 120000

// Parser extracts structured profiles from resume text using an LLM.
type Parser struct {
	client llm.Client
}

// NewParser creates a resume parser backed by the given LLM client.
func NewParser(client llm.Client) *Parser {
	return &Parser{client: client}
}

// Parse extracts a profile from resume text. A failed model call or malformed
// JSON is retried once before giving up. The returned profile is
// schema-validated and normalized.
func (p *Parser) Parse(ctx context.Context, text string) (*types.ResumeProfile, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("resume text is empty")
	}
	if len(text) > maxResumeChars {
		text = text[:maxResumeChars]
	}

	prompt := prompts.MustGet("resume.json", "extract_profile") + "\n\n---\nResume text:\n\n" + text

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		raw, err := p.client.GenerateJSON(ctx, prompt, llm.TierStandard)
		if err != nil {
			lastErr = fmt.Errorf("resume extraction failed: %w", err)
			continue
		}

		profile, err := decodeProfile(raw)
		if err != nil {
			lastErr = fmt.Errorf("failed to parse profile JSON: %w", err)
			continue
		}

		Normalize(profile)
		return profile, nil
	}

	return nil, lastErr
}

func decodeProfile(raw string) (*types.ResumeProfile, error) {
	cleaned := llm.CleanJSONBlock(raw)

	if err := schemas.ValidateResumeProfile(cleaned); err != nil {
		return nil, err
	}

	var profile types.ResumeProfile
	if err := json.Unmarshal([]byte(cleaned), &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
