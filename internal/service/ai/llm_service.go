// Package ai implements the remote generative dialogue port on top of an
// eino chat-model chain. The resolver consumes it through the Generator
// interface and treats every failure the same; this package only maps
// provider quota signals onto the typed sentinel so the failure kind is
// logged correctly.
package ai

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/linmiao/lumipet/backend/internal/engine/resolve"
	"github.com/linmiao/lumipet/backend/internal/model/persona"
	moodservice "github.com/linmiao/lumipet/backend/internal/service/mood"
)

// Service generates in-persona replies via the configured chat model.
type Service struct {
	moodSvc *moodservice.Service
	chain   compose.Runnable[map[string]any, *schema.Message]
}

// NewService creates the generation service around an already-built chat
// model. The caller shares one model between this service and the mood
// classifier. moodSvc may be nil.
func NewService(ctx context.Context, chatModel model.ChatModel, moodSvc *moodservice.Service) (*Service, error) {
	if chatModel == nil {
		return nil, fmt.Errorf("chat model is required")
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile generation chain: %w", err)
	}

	return &Service{
		moodSvc: moodSvc,
		chain:   runnable,
	}, nil
}

// Generate implements resolve.Generator.
func (s *Service) Generate(ctx context.Context, p persona.Persona, userText string) (string, error) {
	input := map[string]any{
		"system": s.buildSystemPrompt(ctx, p, userText),
		"query":  userText,
	}

	response, err := s.chain.Invoke(ctx, input)
	if err != nil {
		return "", classifyGenerateError(err)
	}
	if response == nil {
		return "", nil
	}

	log.Printf("[ai] generated reply persona=%s length=%d", p.ID, len(response.Content))
	return response.Content, nil
}

// buildSystemPrompt assembles the persona framing, optionally enriched with
// a mood hint for the current message.
func (s *Service) buildSystemPrompt(ctx context.Context, p persona.Persona, userText string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s. Reduce stress and burnout. Use 2-5 word sentences. %s NEVER mention anything technical.",
		p.Name, p.Framing)

	if s.moodSvc != nil {
		if guidance := s.moodSvc.Infer(ctx, userText); guidance.Hint != "" {
			b.WriteString("\n")
			b.WriteString(guidance.Hint)
		}
	}

	return b.String()
}

// classifyGenerateError maps provider quota/rate signals onto the resolver
// sentinel; everything else passes through as a transport failure.
func classifyGenerateError(err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "quota") || strings.Contains(msg, "429") || strings.Contains(msg, "rate limit") {
		return fmt.Errorf("%w: %v", resolve.ErrQuota, err)
	}
	return err
}
