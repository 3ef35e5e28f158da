package models

// ChatRequest is the payload coming from the frontend into /chat.
type ChatRequest struct {
	// ConversationID isolates session context per conversation. Empty means
	// the shared default conversation.
	ConversationID string `json:"conversation_id"`
	Message        string `json:"message" binding:"required"`
}

// ChatResponse is what the chat endpoint returns to the frontend.
type ChatResponse struct {
	Response string `json:"response"`
}
