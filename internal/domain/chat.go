package domain

import "time"

// Conversation modes. The mode selects the system prompt sent to the LLM
// and which context (uploaded files) rides along with a turn.
const (
	ModeChat          = "chat"
	ModeCoding        = "coding"
	ModeSummarization = "summarization"
	ModeFiles         = "files"
)

// Message roles. RoleAI is the internal role for assistant replies; it is
// translated to RoleAssistant on the completion wire.
const (
	RoleUser      = "user"
	RoleAI        = "ai"
	RoleAssistant = "assistant"
)

// ValidMode reports whether m is a known conversation mode.
func ValidMode(m string) bool {
	switch m {
	case ModeChat, ModeCoding, ModeSummarization, ModeFiles:
		return true
	}
	return false
}

// Message is a single chat message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// UploadedFile is an extracted document attached to a session
type UploadedFile struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Content string `json:"content"`
}

// ChatSession is one conversation thread with its messages, mode and files.
// Sessions are stored per user as a JSON snapshot, keyed by session ID.
type ChatSession struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	Timestamp  time.Time      `json:"timestamp"`
	Messages   []Message      `json:"messages"`
	Mode       string         `json:"mode,omitempty"`
	Files      []UploadedFile `json:"files,omitempty"`
	IsPinned   bool           `json:"isPinned,omitempty"`
	IsArchived bool           `json:"isArchived,omitempty"`
}

// Clone returns a deep copy of the session so callers can hand out
// snapshots without sharing the underlying slices.
func (s *ChatSession) Clone() ChatSession {
	out := *s
	if s.Messages != nil {
		out.Messages = make([]Message, len(s.Messages))
		copy(out.Messages, s.Messages)
	}
	if s.Files != nil {
		out.Files = make([]UploadedFile, len(s.Files))
		copy(out.Files, s.Files)
	}
	return out
}

// FilePayload is the name+content pair carried on a completion request in
// files mode.
type FilePayload struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// CompletionRequest is the request to the chat completion endpoint
type CompletionRequest struct {
	Messages []Message     `json:"messages"`
	Mode     string        `json:"mode"`
	Files    []FilePayload `json:"files,omitempty"`
}

// CompletionResponse is the successful completion endpoint response
type CompletionResponse struct {
	Response string `json:"response"`
}

// ExtractionResponse is the successful upload endpoint response
type ExtractionResponse struct {
	Text     string `json:"text"`
	Filename string `json:"filename"`
}
