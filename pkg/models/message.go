package models

import "time"

type Message struct {
	ID         MessageID `json:"id"`
	SenderID   UserID    `json:"senderId"`
	ReceiverID UserID    `json:"receiverId"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	// Read starts false and can only flip to true, via MarkAsRead for
	// the matching (sender, receiver) direction.
	Read bool `json:"read"`
}

// Conversation is derived per viewer and never stored: one entry per
// distinct counterpart across all messages touching the viewer.
type Conversation struct {
	CounterpartID UserID   `json:"userId"`
	LastMessage   *Message `json:"lastMessage"`
	UnreadCount   int      `json:"unreadCount"`
}
