package types

import "time"

// Sender tags who authored a conversation message
type Sender string

// Sender constants
const (
	SenderUser  Sender = "user"
	SenderCoach Sender = "coach"
)

// MessageKind optionally classifies a message's content
type MessageKind string

// Message kind constants
const (
	KindText       MessageKind = "text"
	KindSuggestion MessageKind = "suggestion"
	KindAnalysis   MessageKind = "analysis"
	KindRoadmap    MessageKind = "roadmap"
)

// ConversationMessage is one turn in the coach conversation log.
// Messages are append-only and never mutated; timestamp order equals
// insertion order because the log has a single writer.
type ConversationMessage struct {
	ID        string      `json:"id"`
	Sender    Sender      `json:"sender"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
	Kind      MessageKind `json:"kind,omitempty"`
}
