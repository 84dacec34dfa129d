package generator

import (
	"context"
	"encoding/json"
	"fmt"

	"coursegen/config"
	"coursegen/services/sources"

	"github.com/tmc/langchaingo/llms"
)

// Service drives the multi-step generation pipeline against the LLM.
type Service struct {
	llm     llms.Model
	sources *sources.Service
	cfg     config.GenerationConfig
}

func NewService(llm llms.Model, sourceService *sources.Service, cfg config.GenerationConfig) *Service {
	return &Service{
		llm:     llm,
		sources: sourceService,
		cfg:     cfg,
	}
}

// callLLM runs one chat completion with the shared temperature and the
// step-specific token budget. The request's model overrides the client
// default when set.
func (s *Service) callLLM(ctx context.Context, model, system, user string, maxTokens int) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, user),
	}

	opts := []llms.CallOption{
		llms.WithTemperature(s.cfg.Temperature),
		llms.WithMaxTokens(maxTokens),
	}
	if model != "" {
		opts = append(opts, llms.WithModel(model))
	}

	resp, err := s.llm.GenerateContent(ctx, messages, opts...)
	if err != nil {
		return "", fmt.Errorf("LLM call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("LLM returned no choices")
	}

	return resp.Choices[0].Content, nil
}

// decodeInto converts a loosely parsed JSON value into a typed struct by
// round-tripping through encoding/json.
func decodeInto(value any, target any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to re-marshal parsed value: %w", err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to decode parsed value: %w", err)
	}
	return nil
}
