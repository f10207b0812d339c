package model

import (
	"fmt"

	"github.com/cloudwego/eino/schema"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ValidateHistory rejects entries that cannot appear in caller-held history.
// The persona is injected server-side, so a system entry is refused too.
func ValidateHistory(history []Message) error {
	for i, msg := range history {
		if msg.Role != RoleUser && msg.Role != RoleAssistant {
			return fmt.Errorf("conversationHistory[%d]: unsupported role %q", i, msg.Role)
		}
	}
	return nil
}

// AppendTurn returns a new history with the user and assistant entries added.
// The input slice is never modified.
func AppendTurn(history []Message, userText, assistantText string) []Message {
	out := make([]Message, 0, len(history)+2)
	out = append(out, history...)
	return append(out,
		Message{Role: RoleUser, Content: userText},
		Message{Role: RoleAssistant, Content: assistantText},
	)
}

// Window keeps at most limit trailing entries, starting on a user message so
// the user/assistant pairing survives. limit <= 0 means no limit.
func Window(history []Message, limit int) []Message {
	if limit <= 0 || len(history) <= limit {
		return history
	}
	tail := history[len(history)-limit:]
	for len(tail) > 0 && tail[0].Role != RoleUser {
		tail = tail[1:]
	}
	return tail
}

func ToSchema(history []Message) []*schema.Message {
	out := make([]*schema.Message, 0, len(history))
	for _, msg := range history {
		out = append(out, &schema.Message{
			Role:    schema.RoleType(msg.Role),
			Content: msg.Content,
		})
	}
	return out
}
