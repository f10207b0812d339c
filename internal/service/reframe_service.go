package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"optimistify/internal/config"
	"optimistify/internal/model"
	"optimistify/pkg/logger"

	einoModel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

var providerLabels = map[string]string{
	config.ProviderOpenAI: "OpenAI",
	config.ProviderQwen:   "Qwen",
	config.ProviderArk:    "Ark",
}

// ReframeService relays one turn to the chat model. It holds no conversation
// state: the caller passes the full history in and gets the extended history
// back.
type ReframeService struct {
	chatModel einoModel.BaseChatModel
	template  prompt.ChatTemplate
	llm       config.LLMConfig
	reframe   config.ReframeConfig
	persona   []*schema.Message
}

type ReframeResult struct {
	Text    string
	History []model.Message
}

// NewReframeService wires the service. chatModel may be nil when the
// provider could not be built; every call then fails as misconfigured.
func NewReframeService(cfg *config.Config, chatModel einoModel.BaseChatModel) *ReframeService {
	systemPrompt := cfg.Reframe.SystemPrompt
	if strings.TrimSpace(systemPrompt) == "" {
		systemPrompt = DefaultSystemPrompt
	}

	return &ReframeService{
		chatModel: chatModel,
		template:  newPromptTemplate(),
		llm:       cfg.LLM,
		reframe:   cfg.Reframe,
		persona:   []*schema.Message{schema.SystemMessage(systemPrompt)},
	}
}

// Reframe runs a single turn. On any failure the returned error is *Error
// and history is left untouched.
func (s *ReframeService) Reframe(ctx context.Context, text string, history []model.Message) (*ReframeResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, newError(KindInvalidInput, msgNoText, nil)
	}
	if err := model.ValidateHistory(history); err != nil {
		return nil, newError(KindInvalidInput, err.Error(), err)
	}

	if s.llm.APIKey == "" {
		return nil, newError(KindMisconfiguration, s.providerLabel()+" API key is not configured", nil)
	}
	if s.chatModel == nil {
		return nil, newError(KindMisconfiguration, "Language model is not configured", nil)
	}

	messages, err := s.template.Format(ctx, map[string]any{
		personaKey: s.persona,
		historyKey: model.ToSchema(model.Window(history, s.reframe.MaxHistoryMessages)),
		textKey:    text,
	})
	if err != nil {
		return nil, newError(KindMisconfiguration, "Could not build prompt", err)
	}

	entry := logger.WithFields(logrus.Fields{
		"provider":      s.llm.Provider,
		"model":         s.reframe.Model,
		"history_len":   len(history),
		"prompt_length": len(messages),
	})

	start := time.Now()
	reply, err := s.chatModel.Generate(ctx, messages,
		einoModel.WithModel(s.reframe.Model),
		einoModel.WithTemperature(s.reframe.Temperature),
		einoModel.WithMaxTokens(s.reframe.MaxTokens),
	)
	latency := time.Since(start)

	if err != nil {
		if errors.Is(err, model.ErrEmptyCompletion) {
			entry.Warn("language model returned no choices")
			return nil, newError(KindEmptyUpstreamResponse, msgNoResponse, err)
		}
		entry.WithError(err).Error("language model call failed")
		return nil, newError(KindUpstreamFailure, upstreamReason(err), err)
	}

	if reply == nil || strings.TrimSpace(reply.Content) == "" {
		entry.Warn("language model returned empty content")
		return nil, newError(KindEmptyUpstreamResponse, msgNoResponse, nil)
	}

	entry.WithField("latency_ms", latency.Milliseconds()).Debug("reframe completed")

	return &ReframeResult{
		Text:    reply.Content,
		History: model.AppendTurn(history, text, reply.Content),
	}, nil
}

func (s *ReframeService) providerLabel() string {
	if label, ok := providerLabels[s.llm.Provider]; ok {
		return label
	}
	return "Language model"
}

// upstreamReason extracts a client-safe reason from an upstream error.
func upstreamReason(err error) string {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "Language model request timed out"
	}
	return msgUpstreamFailure
}

// String describes the service for startup logs.
func (s *ReframeService) String() string {
	return fmt.Sprintf("reframe(provider=%s, model=%s, temperature=%.2f, max_tokens=%d, max_history=%d)",
		s.llm.Provider, s.reframe.Model, s.reframe.Temperature, s.reframe.MaxTokens, s.reframe.MaxHistoryMessages)
}
