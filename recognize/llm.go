package recognize

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/c360studio/notegraph/llm"
)

// maxRecognitionChars limits text sent for recognition. ~8000 chars ≈
// ~2000 tokens, enough for typical notes without blowing the context
// window on large documents.
const maxRecognitionChars = 8000

// LLMRecognizer recognizes entities with a chat-completion model.
type LLMRecognizer struct {
	client *llm.Client
	logger *slog.Logger
}

// NewLLMRecognizer creates a model-backed recognizer.
func NewLLMRecognizer(client *llm.Client, logger *slog.Logger) *LLMRecognizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LLMRecognizer{client: client, logger: logger}
}

// Recognize extracts entity spans from text.
func (r *LLMRecognizer) Recognize(ctx context.Context, text string) ([]Span, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	analyzed := truncateForRecognition(text, maxRecognitionChars)

	temp := 0.0 // Deterministic extraction
	resp, err := r.client.Complete(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: "system", Content: nerSystemPrompt},
			{Role: "user", Content: fmt.Sprintf(nerUserPrompt, analyzed)},
		},
		Temperature: &temp,
		MaxTokens:   2048,
	})
	if err != nil {
		return nil, fmt.Errorf("entity recognition failed: %w", err)
	}

	spans, err := parseRecognitionResponse(resp.Content, len(analyzed))
	if err != nil {
		return nil, fmt.Errorf("parse recognition response: %w", err)
	}

	r.logger.Debug("recognized entities",
		"input_chars", len(analyzed),
		"entities", len(spans))

	return spans, nil
}

// truncateForRecognition truncates text, preferring a paragraph boundary.
func truncateForRecognition(text string, maxChars int) string {
	if len(text) <= maxChars {
		return text
	}
	truncated := text[:maxChars]
	if lastPara := strings.LastIndex(truncated, "\n\n"); lastPara > maxChars/2 {
		return truncated[:lastPara]
	}
	return truncated
}

// parseRecognitionResponse extracts spans from the model response and
// drops ill-formed entries rather than failing the whole call.
func parseRecognitionResponse(content string, textLen int) ([]Span, error) {
	jsonStr := llm.ExtractJSONArray(content)
	if jsonStr == "" {
		return nil, fmt.Errorf("no JSON array found in response")
	}

	var raw []Span
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON response: %w", err)
	}

	spans := make([]Span, 0, len(raw))
	for _, s := range raw {
		if s.Text == "" {
			continue
		}
		if s.Start < 0 || s.End < s.Start || s.End > textLen {
			// Model offsets drift; keep the entity, drop the span.
			s.Start = 0
			s.End = 0
		}
		if s.Confidence < 0 || s.Confidence > 1 {
			s.Confidence = 0
		}
		s.Label = strings.ToLower(strings.TrimSpace(s.Label))
		spans = append(spans, s)
	}

	return spans, nil
}
