package model

type ReframeResponse struct {
	Text                string    `json:"text"`
	ConversationHistory []Message `json:"conversationHistory"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
