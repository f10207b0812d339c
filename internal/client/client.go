package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"optimistify/internal/model"

	"github.com/go-resty/resty/v2"
)

const reframePath = "/api/optimistify"

// ErrTransport marks failures where no answer came back from the endpoint.
var ErrTransport = errors.New("reframe endpoint unreachable")

// APIError is a non-2xx answer from the endpoint.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("reframe endpoint returned %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	http *resty.Client
}

// New returns a client for the server at baseURL. timeout <= 0 leaves the
// transport default in place. No retries are configured.
func New(baseURL string, timeout time.Duration) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		rc.SetTimeout(timeout)
	}
	return &Client{http: rc}
}

// Reframe sends one turn and returns the assistant text and the updated
// history.
func (c *Client) Reframe(ctx context.Context, text string, history []model.Message) (*model.ReframeResponse, error) {
	if history == nil {
		history = []model.Message{}
	}

	var (
		result  model.ReframeResponse
		failure model.ErrorResponse
	)
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(model.ReframeRequest{Text: text, ConversationHistory: history}).
		SetResult(&result).
		SetError(&failure).
		Post(reframePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	if resp.IsError() || resp.StatusCode() != http.StatusOK {
		msg := failure.Error
		if msg == "" {
			msg = "Failed to process request"
		}
		return nil, &APIError{StatusCode: resp.StatusCode(), Message: msg}
	}

	return &result, nil
}
