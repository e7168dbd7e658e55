package model

// ConversationEntry is one turn of a chat session
type ConversationEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Conversation roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)
