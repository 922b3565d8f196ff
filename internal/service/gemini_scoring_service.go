package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"github.com/scribehire/scribehire/config"
	"google.golang.org/api/option"
)

type geminiScoringService struct {
	client *genai.GenerativeModel
	cfg    *config.Config
}

// NewGeminiScoringService builds the Gemini-backed scorer. With no API key
// configured the service is constructed anyway and every scoring call fails
// explicitly, so the rest of the application keeps working.
func NewGeminiScoringService(cfg *config.Config) (ScoringService, error) {
	if cfg.Gemini.APIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. AI scoring will be unavailable.")
		return &geminiScoringService{cfg: cfg, client: nil}, nil
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.Gemini.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	model := client.GenerativeModel("gemini-1.5-flash")
	model.ResponseMIMEType = "application/json"
	return &geminiScoringService{client: model, cfg: cfg}, nil
}

const scoringSystemPrompt = `You are an expert English writing assessor. Evaluate the candidate's writing sample against the given task and provide detailed, constructive feedback.

Scoring guidelines (each 0-100):
- overall_score: holistic assessment
- grammar_score: accuracy, sentence structure, punctuation
- vocabulary_score: range, appropriateness, precision
- coherence_score: organization, flow, logical connections
- task_achievement_score: how well the response addresses the prompt

Respond with a single JSON object, no surrounding prose:
{
  "overall_score": number,
  "grammar_score": number,
  "vocabulary_score": number,
  "coherence_score": number,
  "task_achievement_score": number,
  "feedback": "detailed paragraph explaining the assessment",
  "strengths": ["strength 1", "strength 2", "strength 3"],
  "improvements": ["area for improvement 1", "area 2", "area 3"]
}`

func (s *geminiScoringService) ScoreWritingTest(ctx context.Context, criteria ScoringCriteria) (*ScoringResult, error) {
	if s.client == nil {
		return nil, fmt.Errorf("gemini client not initialized")
	}

	var prompt strings.Builder
	prompt.WriteString(scoringSystemPrompt)
	prompt.WriteString("\n\nTest Prompt: ")
	prompt.WriteString(criteria.Prompt)
	prompt.WriteString("\n\nInstructions: ")
	prompt.WriteString(criteria.Instructions)
	prompt.WriteString("\n\nCandidate's Response:\n---\n")
	prompt.WriteString(criteria.Content)
	prompt.WriteString("\n---\n\nEvaluate this writing sample and provide scores and feedback.")

	resp, err := s.client.GenerateContent(ctx, genai.Text(prompt.String()))
	if err != nil {
		log.Error().Err(err).Msg("Gemini API error during scoring")
		return nil, fmt.Errorf("gemini API error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		log.Warn().Msg("Gemini returned no candidates or parts in response")
		return nil, fmt.Errorf("gemini returned no content")
	}

	raw := ""
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			raw += string(txt)
		}
	}
	if raw == "" {
		return nil, fmt.Errorf("gemini returned no text content")
	}

	result, err := parseScoringResult(raw)
	if err != nil {
		log.Warn().Err(err).Str("rawResponse", raw).Msg("Failed to parse scoring result from Gemini response")
		return nil, err
	}
	return result, nil
}

// parseScoringResult unmarshals the model's reply, tolerating markdown code
// fences around the JSON object.
func parseScoringResult(raw string) (*ScoringResult, error) {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	var result ScoringResult
	if err := json.Unmarshal([]byte(trimmed), &result); err != nil {
		return nil, fmt.Errorf("unmarshal scoring response: %w", err)
	}
	if result.Feedback == "" {
		result.Feedback = "No feedback provided"
	}
	return &result, nil
}
