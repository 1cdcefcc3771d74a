package message

import "time"

// Level is the severity of a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Message is a user-facing notification. Sticky messages stay pending
// until dismissed.
type Message struct {
	ID          string     `json:"id"`
	Level       Level      `json:"level"`
	Text        string     `json:"text"`
	Sticky      bool       `json:"sticky"`
	CreatedAt   time.Time  `json:"created_at"`
	DismissedAt *time.Time `json:"dismissed_at,omitempty"`
}
