package model

import (
	"context"
	"fmt"

	"optimistify/internal/config"
	"optimistify/internal/utils"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino-ext/components/model/qwen"
	einoModel "github.com/cloudwego/eino/components/model"
)

const defaultQwenBaseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1"

// NewChatModel creates the chat-completion client for the configured
// provider. modelName is the default model; callers may still override it
// per call with einoModel.WithModel.
func NewChatModel(ctx context.Context, cfg config.LLMConfig, modelName string) (einoModel.BaseChatModel, error) {
	httpClient := utils.NewHTTPClient(cfg.Timeout, cfg.DebugRequest)

	switch cfg.Provider {
	case config.ProviderOpenAI, "":
		return newOpenAIChatModel(cfg.APIKey, cfg.BaseURL, modelName, httpClient), nil

	case config.ProviderQwen:
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = defaultQwenBaseURL
		}
		chatModel, err := qwen.NewChatModel(ctx, &qwen.ChatModelConfig{
			BaseURL:    baseURL,
			APIKey:     cfg.APIKey,
			Model:      modelName,
			Timeout:    cfg.Timeout,
			HTTPClient: httpClient,
		})
		if err != nil {
			return nil, fmt.Errorf("create qwen model: %w", err)
		}
		return chatModel, nil

	case config.ProviderArk:
		chatModel, err := ark.NewChatModel(ctx, &ark.ChatModelConfig{
			APIKey: cfg.APIKey,
			Model:  modelName,
		})
		if err != nil {
			return nil, fmt.Errorf("create ark model: %w", err)
		}
		return chatModel, nil

	default:
		return nil, fmt.Errorf("unsupported model provider: %s", cfg.Provider)
	}
}
