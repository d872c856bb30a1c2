// Package mood wraps mood inference for the interaction path: an optional
// LLM classifier with the keyword heuristic as the always-available
// fallback. Classification failure is never an error for callers.
package mood

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	analysis "github.com/linmiao/lumipet/backend/internal/analysis/mood"
	"github.com/linmiao/lumipet/backend/internal/model/pet"
)

const classifierSystemPrompt = `You classify the emotional state of a short user message sent to a virtual pet companion.
Respond with a single JSON object, nothing else:
{"mood": "<happy|sad|frustrated|tired|overwhelmed|anxious|neutral>", "confidence": <0..1>, "reason": "<one short sentence>"}`

const classifierUserPrompt = `User message: {message}`

// Config controls the mood service.
type Config struct {
	Enabled bool
}

// Guidance is the inference result plus the tone hint for remote framing.
type Guidance struct {
	Mood       pet.Mood
	Confidence float32
	Hint       string
}

// Service infers mood from user text.
type Service struct {
	enabled    bool
	classifier compose.Runnable[map[string]any, *schema.Message]
}

type classifierPayload struct {
	Mood       string  `json:"mood"`
	Confidence float32 `json:"confidence"`
	Reason     string  `json:"reason"`
}

// NewService builds the mood service. chatModel may be nil; the service
// then runs on the heuristic alone.
func NewService(ctx context.Context, chatModel model.ChatModel, cfg Config) (*Service, error) {
	svc := &Service{enabled: cfg.Enabled && chatModel != nil}
	if !svc.enabled {
		return svc, nil
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage(classifierSystemPrompt),
		schema.UserMessage(classifierUserPrompt),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile mood classifier chain: %w", err)
	}

	svc.classifier = runnable
	return svc, nil
}

// Enabled reports whether the LLM classifier is active.
func (s *Service) Enabled() bool {
	return s != nil && s.enabled && s.classifier != nil
}

// Infer returns mood guidance for the user message. The heuristic answers
// when the classifier is disabled, fails, or returns garbage.
func (s *Service) Infer(ctx context.Context, userMessage string) Guidance {
	if !s.Enabled() {
		return s.heuristic(userMessage)
	}

	msg, err := s.classifier.Invoke(ctx, map[string]any{"message": strings.TrimSpace(userMessage)})
	if err != nil {
		log.Printf("[mood] classifier invoke failed, using heuristic: %v", err)
		return s.heuristic(userMessage)
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return s.heuristic(userMessage)
	}

	payload, err := parseClassifierOutput(msg.Content)
	if err != nil {
		log.Printf("[mood] classifier output unparseable, using heuristic: %v", err)
		return s.heuristic(userMessage)
	}

	mood, ok := pet.ParseMood(strings.ToLower(strings.TrimSpace(payload.Mood)))
	if !ok {
		return s.heuristic(userMessage)
	}

	confidence := payload.Confidence
	if confidence <= 0 {
		confidence = 0.6
	}
	if confidence > 1 {
		confidence = 1
	}

	return Guidance{
		Mood:       mood,
		Confidence: confidence,
		Hint:       analysis.Guidance(analysis.Decision{Mood: mood, Score: 3}),
	}
}

func (s *Service) heuristic(userMessage string) Guidance {
	decision := analysis.Analyze(userMessage)
	confidence := float32(0.3)
	if decision.Score > 0 {
		confidence = 0.55
	}
	return Guidance{
		Mood:       decision.Mood,
		Confidence: confidence,
		Hint:       analysis.Guidance(decision),
	}
}

// parseClassifierOutput tolerates chatter around the JSON object.
func parseClassifierOutput(content string) (*classifierPayload, error) {
	trimmed := strings.TrimSpace(content)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("missing json object")
	}

	payload := &classifierPayload{}
	if err := json.Unmarshal([]byte(trimmed[start:end+1]), payload); err != nil {
		return nil, err
	}
	return payload, nil
}
