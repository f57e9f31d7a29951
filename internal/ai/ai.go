/*
Package ai wraps the Gemini API for event page analysis: the full
extraction call, the lightweight pre-check classifier, the missing-field
repair call, and one-shot coaching completions. It returns raw model
responses annotated with their finish reason; interpreting the text is the
caller's job.
*/
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/kbygtools/eventscout/internal/types"
)

const (
	defaultModel           = "gemini-2.0-flash"
	defaultTemperature     = 0.1
	defaultMaxOutputTokens = 8192
)

// Config holds the Gemini client settings.
type Config struct {
	APIKey          string
	Model           string
	Temperature     float32
	MaxOutputTokens int32
}

// UserProfile personalizes prompts for the operator's go-to-market context.
// All fields are optional.
type UserProfile struct {
	CompanyName      string
	Role             string
	Product          string
	ValueProp        string
	TargetPersonas   string
	TargetIndustries string
	Competitors      string
	Notes            string
}

// ChatMessage is one turn of a coaching conversation.
type ChatMessage struct {
	Role    string // "user" or "assistant"
	Content string
}

type Client struct {
	genai       *genai.Client
	model       string
	temperature float32
	maxTokens   int32
}

func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = defaultTemperature
	}
	maxTokens := cfg.MaxOutputTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxOutputTokens
	}

	return &Client{
		genai:       client,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
	}, nil
}

func (c *Client) generate(ctx context.Context, prompt string) (types.ModelResponse, error) {
	contents := []*genai.Content{
		{
			Parts: []*genai.Part{{Text: prompt}},
			Role:  "user",
		},
	}

	resp, err := c.genai.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(c.temperature),
		MaxOutputTokens: c.maxTokens,
	})
	if err != nil {
		return types.ModelResponse{}, fmt.Errorf("gemini API call failed: %w", err)
	}

	finishReason := ""
	if len(resp.Candidates) > 0 {
		finishReason = string(resp.Candidates[0].FinishReason)
	}

	return types.ModelResponse{
		Text:         resp.Text(),
		FinishReason: finishReason,
	}, nil
}

// AnalyzeEventPage asks the model for the full structured event record.
// hostHints may carry a learned host parsing dictionary; empty is fine.
func (c *Client) AnalyzeEventPage(ctx context.Context, sig types.PageSignals, profile UserProfile, hostHints string) (types.ModelResponse, error) {
	return c.generate(ctx, buildAnalysisPrompt(sig, profile, hostHints))
}

// RepairMissingFields asks the model to fill only the named missing fields
// of the current record, keeping known-good values intact.
func (c *Client) RepairMissingFields(ctx context.Context, missing []string, current types.EventRecord, sig types.PageSignals) (types.ModelResponse, error) {
	return c.generate(ctx, buildRepairPrompt(missing, current, sig))
}

// PreCheckResult is the outcome of the "is this a single event page"
// classifier.
type PreCheckResult struct {
	IsEvent       bool   `json:"isEvent"`
	Confidence    string `json:"confidence"`
	EventName     string `json:"eventName,omitempty"`
	EventDate     string `json:"eventDate,omitempty"`
	EventLocation string `json:"eventLocation,omitempty"`
	EventID       string `json:"eventId,omitempty"`
}

// PreCheckEventPage runs the strict single-event classifier over a
// truncated slice of the page. A garbled classifier response degrades to a
// low-confidence non-event rather than an error.
func (c *Client) PreCheckEventPage(ctx context.Context, sig types.PageSignals, hostHints string) (PreCheckResult, error) {
	resp, err := c.generate(ctx, buildPreCheckPrompt(sig, hostHints))
	if err != nil {
		return PreCheckResult{}, err
	}
	return parsePreCheckResponse(resp.Text), nil
}

func parsePreCheckResponse(text string) PreCheckResult {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	var result PreCheckResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return PreCheckResult{Confidence: "low"}
	}
	if result.Confidence == "" {
		result.Confidence = "low"
	}
	return result
}

// CoachForPersona produces one-shot engagement advice for a persona bucket
// expected at the event.
func (c *Client) CoachForPersona(ctx context.Context, persona types.Persona, rec types.EventRecord, profile UserProfile, history []ChatMessage, question string) (string, error) {
	resp, err := c.generate(ctx, buildPersonaCoachPrompt(persona, rec, profile, history, question))
	if err != nil {
		return "", err
	}
	answer := strings.TrimSpace(resp.Text)
	if answer == "" {
		return "", fmt.Errorf("no response from model")
	}
	return answer, nil
}

// CoachForPerson produces one-shot engagement advice for a specific person
// on the event roster.
func (c *Client) CoachForPerson(ctx context.Context, person types.Person, rec types.EventRecord, profile UserProfile, history []ChatMessage, question string) (string, error) {
	resp, err := c.generate(ctx, buildTargetCoachPrompt(person, rec, profile, history, question))
	if err != nil {
		return "", err
	}
	answer := strings.TrimSpace(resp.Text)
	if answer == "" {
		return "", fmt.Errorf("no response from model")
	}
	return answer, nil
}
