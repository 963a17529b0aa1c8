package models

import "time"

type User struct {
	ID       UserID `json:"id"`
	Username string `json:"username"`
	// DisplayName and Bio are the only fields a profile update may change.
	DisplayName string `json:"displayName"`
	// Avatar is derived from the username at creation and never changes.
	Avatar   string    `json:"avatar"`
	Bio      string    `json:"bio"`
	JoinedAt time.Time `json:"joinedAt"`
}
