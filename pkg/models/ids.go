package models

// Distinct identifier types per entity kind. IDs are opaque strings on
// the wire; the types exist so a PostID can never be passed where a
// UserID is expected.
type (
	UserID    string
	PostID    string
	CommentID string
	MessageID string
)
