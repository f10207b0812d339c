package model

import (
	"context"
	"errors"
	"io"
	"net/http"

	einoModel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	openai "github.com/sashabaranov/go-openai"
)

// ErrEmptyCompletion is returned when the API answered without any choice.
var ErrEmptyCompletion = errors.New("completion returned no choices")

type openaiChatModel struct {
	client *openai.Client
	model  string
}

func newOpenAIChatModel(apiKey, baseURL, model string, httpClient *http.Client) *openaiChatModel {
	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}
	if httpClient != nil {
		clientConfig.HTTPClient = httpClient
	}

	return &openaiChatModel{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
	}
}

func (m *openaiChatModel) Generate(ctx context.Context, messages []*schema.Message, opts ...einoModel.Option) (*schema.Message, error) {
	resp, err := m.client.CreateChatCompletion(ctx, m.buildRequest(messages, opts))
	if err != nil {
		return nil, err
	}

	if len(resp.Choices) == 0 {
		return nil, ErrEmptyCompletion
	}

	return &schema.Message{
		Role:    schema.Assistant,
		Content: resp.Choices[0].Message.Content,
	}, nil
}

func (m *openaiChatModel) Stream(ctx context.Context, messages []*schema.Message, opts ...einoModel.Option) (*schema.StreamReader[*schema.Message], error) {
	req := m.buildRequest(messages, opts)
	req.Stream = true

	stream, err := m.client.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return nil, err
	}

	reader, writer := schema.Pipe[*schema.Message](16)

	go func() {
		defer stream.Close()
		defer writer.Close()

		for {
			chunk, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				writer.Send(nil, err)
				return
			}

			if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
				continue
			}

			closed := writer.Send(&schema.Message{
				Role:    schema.Assistant,
				Content: chunk.Choices[0].Delta.Content,
			}, nil)
			if closed {
				return
			}
		}
	}()

	return reader, nil
}

func (m *openaiChatModel) buildRequest(messages []*schema.Message, opts []einoModel.Option) openai.ChatCompletionRequest {
	options := einoModel.GetCommonOptions(&einoModel.Options{Model: &m.model}, opts...)

	req := openai.ChatCompletionRequest{
		Model:    m.model,
		Messages: convertMessages(messages),
	}
	if options.Model != nil && *options.Model != "" {
		req.Model = *options.Model
	}
	if options.Temperature != nil {
		req.Temperature = *options.Temperature
	}
	if options.MaxTokens != nil {
		req.MaxTokens = *options.MaxTokens
	}
	if options.TopP != nil {
		req.TopP = *options.TopP
	}
	if len(options.Stop) > 0 {
		req.Stop = options.Stop
	}
	return req
}

func convertMessages(messages []*schema.Message) []openai.ChatCompletionMessage {
	result := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		role := openai.ChatMessageRoleUser
		switch msg.Role {
		case schema.Assistant:
			role = openai.ChatMessageRoleAssistant
		case schema.System:
			role = openai.ChatMessageRoleSystem
		}

		result = append(result, openai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		})
	}
	return result
}
