package transcript

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"optimistify/internal/client"
	"optimistify/internal/model"
	"optimistify/pkg/logger"

	"github.com/google/uuid"
)

const (
	FallbackReply  = "Sorry, I couldn't process your request."
	defaultFailure = "Failed to process request"
)

var (
	ErrEmptyMessage = errors.New("message is empty")
	ErrBusy         = errors.New("a reply is still pending")
)

// Reframer performs one turn against the reframe endpoint.
type Reframer interface {
	Reframe(ctx context.Context, text string, history []model.Message) (*model.ReframeResponse, error)
}

// DisplayMessage is a rendered chat bubble. ID only gives the bubble a
// stable identity.
type DisplayMessage struct {
	ID      string
	Content string
	IsUser  bool
}

// Controller keeps the display list and the conversation history for one
// chat, and allows a single request in flight at a time.
type Controller struct {
	reframer Reframer
	now      func() time.Time

	mu          sync.Mutex
	messages    []DisplayMessage
	history     []model.Message
	loading     bool
	initialSent bool
	lastError   string
	listeners   []func([]DisplayMessage)
}

func New(reframer Reframer) *Controller {
	return &Controller{
		reframer: reframer,
		now:      time.Now,
	}
}

// OnChange registers fn to run after every change to the display list. fn
// gets a copy of the list and runs on the goroutine that made the change.
func (c *Controller) OnChange(fn func([]DisplayMessage)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// Start sends the initial prompt as the first turn. It fires at most once per
// controller; blank prompts do not consume the one shot.
func (c *Controller) Start(ctx context.Context, prompt string) (DisplayMessage, error) {
	if strings.TrimSpace(prompt) == "" {
		return DisplayMessage{}, ErrEmptyMessage
	}

	c.mu.Lock()
	if c.initialSent {
		c.mu.Unlock()
		return DisplayMessage{}, nil
	}
	c.initialSent = true
	c.mu.Unlock()

	return c.Submit(ctx, prompt)
}

// Submit appends the user bubble, waits for the reply and appends it. A
// failed call yields the fallback bubble, not an error; the error is only
// for submissions rejected before reaching the network.
func (c *Controller) Submit(ctx context.Context, text string) (DisplayMessage, error) {
	if strings.TrimSpace(text) == "" {
		return DisplayMessage{}, ErrEmptyMessage
	}

	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		return DisplayMessage{}, ErrBusy
	}
	c.loading = true
	c.lastError = ""
	c.messages = append(c.messages, DisplayMessage{
		ID:      c.newID("user"),
		Content: text,
		IsUser:  true,
	})
	history := append([]model.Message(nil), c.history...)
	c.notifyLocked()
	c.mu.Unlock()

	resp, err := c.reframer.Reframe(ctx, text, history)
	if err == nil && resp == nil {
		err = errors.New("empty reply from reframe endpoint")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	defer func() { c.loading = false }()

	var reply DisplayMessage
	if err != nil {
		logger.Warnf("reframe request failed: %v", err)
		c.lastError = bannerText(err)
		reply = DisplayMessage{ID: c.newID("error"), Content: FallbackReply}
	} else {
		c.history = resp.ConversationHistory
		reply = DisplayMessage{ID: c.newID("assistant"), Content: resp.Text}
	}
	c.messages = append(c.messages, reply)
	c.notifyLocked()

	return reply, nil
}

func (c *Controller) Messages() []DisplayMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]DisplayMessage(nil), c.messages...)
}

// History is the conversation returned by the last successful turn.
func (c *Controller) History() []model.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.Message(nil), c.history...)
}

func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// LastError is the endpoint's message for the most recent failed turn, or ""
// once a new turn starts.
func (c *Controller) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastError
}

func (c *Controller) newID(kind string) string {
	return fmt.Sprintf("%s-%d-%s", kind, c.now().UnixMilli(), uuid.NewString()[:8])
}

// notifyLocked hands listeners a snapshot. Listeners must not call back into
// the controller.
func (c *Controller) notifyLocked() {
	if len(c.listeners) == 0 {
		return
	}
	snapshot := append([]DisplayMessage(nil), c.messages...)
	for _, fn := range c.listeners {
		fn(snapshot)
	}
}

func bannerText(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return defaultFailure
}
