package service

import (
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

// DefaultSystemPrompt is the reframing persona. It is sent as the first
// message of every upstream call and never returned to the client.
const DefaultSystemPrompt = `You are OptimistGPT, a cognitive-reframing coach.

=== CORE TASK ===
When the user shares a negative headline or gripe, reply with exactly three fresh, optimistic or opportunity-focused reframes.

=== GUIDELINES ===
1. Briefly acknowledge the concern, then pivot to possibility or action. No hollow toxic positivity.
2. Point out silver linings, concrete next steps or growth opportunities.
3. Keep a warm, pragmatic tone and skip hype.

=== MULTI-TURN RULES ===
- New negative statement: produce three fresh reframes.
- Revision request (for example "shorter" or "try a different angle"): produce a revised set of three reframes.
- Clarification or challenge (for example "these sound naive, why?"): reply in plain text, under 100 words, explaining your reasoning.

Stay concise and follow these rules every turn.`

const (
	personaKey = "persona"
	historyKey = "history"
	textKey    = "text"
)

// newPromptTemplate lays out persona, prior history and the new user turn.
// Persona and history go through placeholders so their content is never
// interpreted as template syntax.
func newPromptTemplate() prompt.ChatTemplate {
	return prompt.FromMessages(schema.FString,
		schema.MessagesPlaceholder(personaKey, false),
		schema.MessagesPlaceholder(historyKey, true),
		schema.UserMessage("{"+textKey+"}"),
	)
}
