package model

type ReframeRequest struct {
	Text                string    `json:"text"`
	ConversationHistory []Message `json:"conversationHistory"`
}
