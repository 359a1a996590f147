// FILE: internal/dto/chat_dto.go
package dto

// ChatEntry is one transcript row as the frontend renders it.
type ChatEntry struct {
	Sender  string `json:"sender"`
	Message string `json:"message"`
}

type NewSessionResponse struct {
	SessionName string `json:"session_name"`
}

// OpenChatResponse backs both the landing view and explicit session
// switches: the resolved transcript plus the sidebar session list.
type OpenChatResponse struct {
	Chats       []ChatEntry `json:"chats"`
	SessionName string      `json:"session_name"`
	Sessions    []string    `json:"sessions"`
}

// Message is deliberately unvalidated: a blank message is a legal request
// that gets the "type something" reply instead of a 400.
type SendMessageRequest struct {
	Message string `json:"message"`
}

type SendMessageResponse struct {
	Reply       string `json:"reply"`
	SessionName string `json:"session_name,omitempty"`
}

type SessionListResponse struct {
	Sessions []string `json:"sessions"`
}

type SessionHistoryResponse struct {
	Chats       []ChatEntry `json:"chats"`
	SessionName string      `json:"session_name"`
}

type DeleteSessionRequest struct {
	SessionName string `json:"session_name" validate:"required"`
}

type DeleteSessionResponse struct {
	Deleted      bool   `json:"deleted"`
	SessionName  string `json:"session_name,omitempty"`
	DeletedCount int64  `json:"deleted_count,omitempty"`
}
