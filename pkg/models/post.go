package models

import "time"

type Post struct {
	ID       PostID `json:"id"`
	AuthorID UserID `json:"authorId"`
	Content  string `json:"content"`
	Image    string `json:"image,omitempty"`
	// Likes is a set: no user id appears twice.
	Likes []UserID `json:"likes"`
	// Comments keep insertion order in storage; display order is the
	// caller's concern.
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"createdAt"`
}

type Comment struct {
	ID CommentID `json:"id"`
	// PostID is an informational back-reference; comments are nested
	// inside their post and never looked up through it.
	PostID    PostID    `json:"postId"`
	AuthorID  UserID    `json:"authorId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// LikedBy reports whether user is in the post's like set.
func (p Post) LikedBy(user UserID) bool {
	for _, id := range p.Likes {
		if id == user {
			return true
		}
	}
	return false
}
