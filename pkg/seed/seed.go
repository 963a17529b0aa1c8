// Package seed provides the sample data a store writes on first run,
// when its blob is absent from the key/value store.
package seed

import (
	"time"

	"socialdb/pkg/models"
	"socialdb/pkg/utils"
)

// Users returns the default user set. IDs are fixed so the sample posts
// and messages can reference them.
func Users(now time.Time) []models.User {
	return []models.User{
		{
			ID:          "1",
			Username:    "admin",
			DisplayName: "Admin",
			Avatar:      utils.AvatarURL("admin"),
			Bio:         "Keeping the lights on around here.",
			JoinedAt:    now,
		},
		{
			ID:          "2",
			Username:    "user1",
			DisplayName: "User One",
			Avatar:      utils.AvatarURL("user1"),
			Bio:         "I love chatting!",
			JoinedAt:    now,
		},
		{
			ID:          "3",
			Username:    "user2",
			DisplayName: "User Two",
			Avatar:      utils.AvatarURL("user2"),
			Bio:         "Hi everyone!",
			JoinedAt:    now,
		},
	}
}

// Posts returns the sample posts shown on a fresh feed.
func Posts(now time.Time) []models.Post {
	return []models.Post{
		{
			ID:       "1",
			AuthorID: "1",
			Content:  "Welcome! This is the place to hang out and share what's on your mind.",
			Likes:    []models.UserID{"2", "3"},
			Comments: []models.Comment{
				{
					ID:        "c1",
					PostID:    "1",
					AuthorID:  "2",
					Content:   "Great place!",
					CreatedAt: now.Add(-time.Hour),
				},
			},
			CreatedAt: now.Add(-24 * time.Hour),
		},
		{
			ID:        "2",
			AuthorID:  "2",
			Content:   "Hi all! How is everyone doing?",
			Likes:     []models.UserID{"1"},
			Comments:  []models.Comment{},
			CreatedAt: now.Add(-12 * time.Hour),
		},
		{
			ID:       "3",
			AuthorID: "3",
			Content:  "Today is a great day for a chat!",
			Likes:    []models.UserID{"1", "2"},
			Comments: []models.Comment{
				{
					ID:        "c2",
					PostID:    "3",
					AuthorID:  "1",
					Content:   "Agreed!",
					CreatedAt: now.Add(-30 * time.Minute),
				},
			},
			CreatedAt: now.Add(-6 * time.Hour),
		},
	}
}

// Messages returns the sample direct-message exchange between the first
// two default users. All of them start read.
func Messages(now time.Time) []models.Message {
	return []models.Message{
		{
			ID:         "m1",
			SenderID:   "1",
			ReceiverID: "2",
			Content:    "Hey! How are you?",
			CreatedAt:  now.Add(-24 * time.Hour),
			Read:       true,
		},
		{
			ID:         "m2",
			SenderID:   "2",
			ReceiverID: "1",
			Content:    "Great! And you?",
			CreatedAt:  now.Add(-23*time.Hour - 53*time.Minute),
			Read:       true,
		},
		{
			ID:         "m3",
			SenderID:   "1",
			ReceiverID: "2",
			Content:    "Doing well too, thanks!",
			CreatedAt:  now.Add(-23*time.Hour - 36*time.Minute),
			Read:       true,
		},
	}
}
